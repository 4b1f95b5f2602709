package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/config"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sharesPrefix = "/api/authz/shares/entities/"

// fakeGraylog はチーム・ストリーム・共有だけを扱う Graylog のフェイク
type fakeGraylog struct {
	t *testing.T

	mu       sync.Mutex
	teams    []api.Team
	streams  []api.Stream
	shares   map[string]api.Capabilities // stream GRN -> capabilities
	failGRN  string                      // この GRN への submit は 403 を返す
	requests []string
}

func newFakeGraylog(t *testing.T) *fakeGraylog {
	return &fakeGraylog{
		t: t,
		teams: []api.Team{
			{ID: "t1", Name: "developer"},
			{ID: "t2", Name: "ops"},
		},
		streams: []api.Stream{
			{ID: "s2", Title: "ledger"},
			{ID: "s1", Title: "API"},
			{ID: "s3", Title: "audit"},
		},
		shares: map[string]api.Capabilities{},
	}
}

func (f *fakeGraylog) start() *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	f.t.Cleanup(server.Close)
	return server
}

func (f *fakeGraylog) client() *api.Client {
	return api.NewClient(f.start().URL, api.WithToken("tok"))
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

func (f *fakeGraylog) countSuffix(method, suffix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, method+" ") && strings.HasSuffix(r, suffix) {
			n++
		}
	}
	return n
}

func (f *fakeGraylog) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	query := r.URL.Query().Get("query")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/"+api.DefaultPluginsPath+"/teams":
		out := []api.Team{}
		for _, t := range f.teams {
			if strings.Contains(t.Name, query) {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"teams": out})
	case r.Method == http.MethodGet && r.URL.Path == "/api/streams/paginated":
		out := []api.Stream{}
		for _, s := range f.streams {
			if strings.Contains(s.Title, query) {
				out = append(out, s)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"streams": out})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/prepare"):
		grn := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, sharesPrefix), "/prepare")
		writeJSON(w, http.StatusOK, map[string]any{"selected_grantee_capabilities": f.shares[grn]})
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, sharesPrefix):
		grn := strings.TrimPrefix(r.URL.Path, sharesPrefix)
		if grn == f.failGRN {
			writeJSON(w, http.StatusForbidden, map[string]string{"type": "ApiError", "message": "Not authorized"})
			return
		}
		var body struct {
			Selected api.Capabilities `json:"selected_grantee_capabilities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			f.t.Errorf("decode submit body: %v", err)
		}
		f.shares[grn] = body.Selected
		writeJSON(w, http.StatusOK, map[string]any{"entity": grn})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"type": "ApiError", "message": "HTTP 404 Not Found"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// useServer は GRAYLOG_* を fake に向け、設定キャッシュを初期化する
func useServer(t *testing.T, url string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"GRAYLOG_OUTPUT", "GRAYLOG_PERMISSION", "GRAYLOG_PLUGINS_PATH"} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
	t.Setenv("GRAYLOG_HOST", url)
	t.Setenv("GRAYLOG_TOKEN", "tok")
	ui.SetColorEnabled(false)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
}

// execute はコマンドを単体で実行する
// フラグはパッケージ変数に残るため実行前に既定値へ戻す
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	if args == nil {
		args = []string{}
	}
	var out strings.Builder
	c.SetOut(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}
