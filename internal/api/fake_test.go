package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeGraylog は Graylog API の最小限のフェイク
type fakeGraylog struct {
	t *testing.T

	mu       sync.Mutex
	teams    []Team
	streams  []Stream
	shares   map[string]Capabilities // stream GRN -> capabilities
	users    map[string]string       // username -> password
	requests []string                // "METHOD path?query"
	queries  []map[string]string
	submits  map[string]Capabilities
}

func newFakeGraylog(t *testing.T) *fakeGraylog {
	return &fakeGraylog{
		t:       t,
		shares:  map[string]Capabilities{},
		users:   map[string]string{},
		submits: map[string]Capabilities{},
	}
}

func (f *fakeGraylog) start() *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	f.t.Cleanup(server.Close)
	return server
}

func (f *fakeGraylog) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeGraylog) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	q := map[string]string{}
	for k := range r.URL.Query() {
		q[k] = r.URL.Query().Get(k)
	}
	f.queries = append(f.queries, q)

	path := strings.TrimPrefix(r.URL.Path, "/api")

	if path == "/system/sessions" && r.Method == http.MethodPost {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if pass, ok := f.users[body["username"]]; ok && pass == body["password"] {
			writeJSON(w, http.StatusOK, map[string]any{
				"session_id":  "sess-" + body["username"],
				"valid_until": "2030-01-01T00:00:00.000+0000",
			})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"type": "ApiError", "message": "Invalid credentials"})
		return
	}

	if user, pass, ok := r.BasicAuth(); !ok || pass != "session" || user == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"type": "ApiError", "message": "unauthorized"})
		return
	}

	switch {
	case path == "/"+DefaultPluginsPath+"/teams" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"teams": filterTeams(f.teams, q["query"])})
	case path == "/streams/paginated" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"streams": filterStreams(f.streams, q["query"])})
	case strings.HasPrefix(path, "/authz/shares/entities/") && strings.HasSuffix(path, "/prepare"):
		grn := strings.TrimSuffix(strings.TrimPrefix(path, "/authz/shares/entities/"), "/prepare")
		body, _ := io.ReadAll(r.Body)
		if string(body) != "{}" {
			f.t.Errorf("prepare body = %q, want {}", body)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"entity":                        grn,
			"available_grantees":            []any{},
			"selected_grantee_capabilities": f.shares[grn],
		})
	case strings.HasPrefix(path, "/authz/shares/entities/") && r.Method == http.MethodPost:
		grn := strings.TrimPrefix(path, "/authz/shares/entities/")
		var body struct {
			Selected Capabilities `json:"selected_grantee_capabilities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			f.t.Errorf("decode submit body: %v", err)
		}
		f.shares[grn] = body.Selected
		f.submits[grn] = body.Selected
		writeJSON(w, http.StatusOK, map[string]any{"entity": grn})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"type": "ApiError", "message": "HTTP 404 Not Found"})
	}
}

func filterTeams(teams []Team, query string) []Team {
	out := []Team{}
	for _, t := range teams {
		if strings.Contains(t.Name, query) {
			out = append(out, t)
		}
	}
	return out
}

func filterStreams(streams []Stream, query string) []Stream {
	out := []Stream{}
	for _, s := range streams {
		if strings.Contains(s.Title, query) {
			out = append(out, s)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
