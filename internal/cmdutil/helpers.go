package cmdutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/config"
	"github.com/pandalog/pandalog/internal/debug"
	"github.com/spf13/cobra"
)

// ConfigError は接続設定が不足していることを表す
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// NewConfigError は ConfigError を作成する
func NewConfigError(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// UsageError はコマンドの使い方が誤っていることを表す
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

// NewUsageError は UsageError を作成する
func NewUsageError(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// UsageArgs は引数の検証エラーを UsageError に変換する
func UsageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{msg: err.Error()}
		}
		return nil
	}
}

// GetConfigStore はConfigStoreを取得する
// グローバルフラグはrootCmd.PersistentPreRunEで適用済み
func GetConfigStore(cmd *cobra.Command) (*config.Store, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// NewClient は設定から未認証のAPIクライアントを作成する
func NewClient(cmd *cobra.Command, cfg *config.Store, token string) (*api.Client, error) {
	g := cfg.Graylog()
	if g.Host == "" {
		return nil, NewConfigError("graylog host is required\nSpecify with -h/--host or set GRAYLOG_HOST")
	}

	h := cfg.HTTP()
	insecure := h.InsecureSkipVerify
	if f := cmd.Flags().Lookup("insecure"); f != nil && f.Changed {
		insecure, _ = cmd.Flags().GetBool("insecure")
	}
	timeout := h.TimeoutDuration()
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		seconds, _ := cmd.Flags().GetInt("timeout")
		timeout = time.Duration(seconds) * time.Second
	}

	debug.Log("creating api client", "host", g.Host, "insecure", insecure, "timeout", timeout)

	return api.NewClient(g.Host,
		api.WithToken(token),
		api.WithHTTPTimeout(timeout),
		api.WithInsecureSkipVerify(insecure),
		api.WithPluginsPath(g.PluginsPath),
	), nil
}

// GetAPIClient は認証済みAPIクライアントを取得する
func GetAPIClient(cmd *cobra.Command) (*api.Client, *config.Store, error) {
	cfg, err := GetConfigStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	token := cfg.Graylog().Token
	if token == "" {
		return nil, nil, NewConfigError("session token is required\nSpecify with -t/--token or set GRAYLOG_TOKEN (see 'pandalog-auth get-sts-token')")
	}

	client, err := NewClient(cmd, cfg, token)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// SplitNames はカンマ区切りの名前を分割する（前後の空白は除去し、空要素は捨てる）
func SplitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// TeamFinder はチーム名からチームを解決する
type TeamFinder interface {
	FindTeam(ctx context.Context, name string) (*api.Team, error)
}

// StreamFinder はストリームを一覧・検索する
type StreamFinder interface {
	ListStreams(ctx context.Context) ([]api.Stream, error)
	FindStream(ctx context.Context, title string) (*api.Stream, error)
}

// ResolveTeams はチーム名を順に検索して解決する
// 1件でも見つからなければエラーを返す
func ResolveTeams(ctx context.Context, finder TeamFinder, names []string) ([]api.Team, error) {
	teams := make([]api.Team, 0, len(names))
	for _, name := range names {
		team, err := finder.FindTeam(ctx, name)
		if err != nil {
			return nil, err
		}
		debug.Log("resolved team", "query", name, "id", team.ID, "name", team.Name)
		teams = append(teams, *team)
	}
	return teams, nil
}

// ResolveStreams は対象ストリームを解決する
// all が真なら全ストリーム、そうでなければ names を順に検索する
func ResolveStreams(ctx context.Context, finder StreamFinder, all bool, names []string) ([]api.Stream, error) {
	if all {
		return finder.ListStreams(ctx)
	}
	if len(names) == 0 {
		return nil, NewUsageError("please provide streams with --stream-names or set the --all flag")
	}

	streams := make([]api.Stream, 0, len(names))
	for _, name := range names {
		stream, err := finder.FindStream(ctx, name)
		if err != nil {
			return nil, err
		}
		debug.Log("resolved stream", "query", name, "id", stream.ID, "title", stream.Title)
		streams = append(streams, *stream)
	}
	return streams, nil
}
