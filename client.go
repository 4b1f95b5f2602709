package pandalog

import (
	"time"

	"github.com/pandalog/pandalog/internal/api"
)

// Client is the Graylog API client used by the pandalog commands.
type Client = api.Client

// ClientOption configures a Client.
type ClientOption = api.ClientOption

type (
	// Team is a Graylog team.
	Team = api.Team
	// Stream is a Graylog stream.
	Stream = api.Stream
	// Capabilities maps grantee GRNs to capabilities such as "view".
	Capabilities = api.Capabilities
	// APIError is returned for non-2xx responses.
	APIError = api.APIError
	// NotFoundError is returned when a team or stream lookup matches nothing.
	NotFoundError = api.NotFoundError
)

// ErrNotFound matches every NotFoundError with errors.Is.
var ErrNotFound = api.ErrNotFound

// NewClient creates a client for the Graylog instance at host.
// host is a bare host name (https is assumed) or a URL with scheme.
func NewClient(host string, opts ...ClientOption) *Client {
	return api.NewClient(host, opts...)
}

// WithToken sets the session token used for basic authentication.
func WithToken(token string) ClientOption { return api.WithToken(token) }

// WithHTTPTimeout sets the timeout of every request.
func WithHTTPTimeout(timeout time.Duration) ClientOption { return api.WithHTTPTimeout(timeout) }

// WithInsecureSkipVerify disables TLS certificate verification.
// Only meant for deployments with self-signed certificates.
func WithInsecureSkipVerify(skip bool) ClientOption { return api.WithInsecureSkipVerify(skip) }

// WithPluginsPath overrides the path of the security plugin that serves teams.
func WithPluginsPath(path string) ClientOption { return api.WithPluginsPath(path) }

// NewClientFromConfig creates an authenticated client from the resolved configuration.
func NewClientFromConfig(cfg *Config) *Client {
	g := cfg.Graylog()
	h := cfg.HTTP()
	return api.NewClient(g.Host,
		api.WithToken(g.Token),
		api.WithHTTPTimeout(h.TimeoutDuration()),
		api.WithInsecureSkipVerify(h.InsecureSkipVerify),
		api.WithPluginsPath(g.PluginsPath),
	)
}

// Grant returns a copy of current with every team granted permission.
func Grant(current Capabilities, permission string, teams []Team) Capabilities {
	return api.Grant(current, permission, teams)
}

// Revoke returns a copy of current without the entries of teams.
func Revoke(current Capabilities, teams []Team) Capabilities {
	return api.Revoke(current, teams)
}
