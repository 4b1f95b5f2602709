package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yacchi/jubako"
)

// isolate はユーザー設定と GRAYLOG_* 環境変数の影響を受けないようにする
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range []string{
		"GRAYLOG_HOST", "GRAYLOG_USER", "GRAYLOG_PASS", "GRAYLOG_TOKEN",
		"GRAYLOG_PASSWORD", "GRAYLOG_SESSION_TOKEN", "GRAYLOG_INSECURE",
		"GRAYLOG_SKIP_TLS_VERIFY", "GRAYLOG_HTTP_TIMEOUT", "GRAYLOG_OUTPUT",
		"GRAYLOG_PLUGINS_PATH", "GRAYLOG_PERMISSION",
	} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
	ResetConfig()
	t.Cleanup(ResetConfig)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	g := cfg.Graylog()
	if g.Host != "" {
		t.Errorf("Host = %q, want empty", g.Host)
	}
	if g.PluginsPath != "plugins/org.graylog.plugins.security" {
		t.Errorf("PluginsPath = %q", g.PluginsPath)
	}
	if g.Permission != "view" {
		t.Errorf("Permission = %q, want view", g.Permission)
	}

	h := cfg.HTTP()
	if h.InsecureSkipVerify {
		t.Error("InsecureSkipVerify must default to false")
	}
	if h.TimeoutDuration() != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", h.TimeoutDuration())
	}

	if cfg.Display().Output != "table" {
		t.Errorf("Output = %q, want table", cfg.Display().Output)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GRAYLOG_HOST", "logs.example.com")
	t.Setenv("GRAYLOG_USER", "alice")
	t.Setenv("GRAYLOG_PASS", "secret")
	t.Setenv("GRAYLOG_TOKEN", "tok")
	t.Setenv("GRAYLOG_INSECURE", "true")
	t.Setenv("GRAYLOG_HTTP_TIMEOUT", "5")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	g := cfg.Graylog()
	if g.Host != "logs.example.com" || g.User != "alice" || g.Password != "secret" || g.Token != "tok" {
		t.Errorf("Graylog = %+v", *g)
	}
	if !cfg.HTTP().InsecureSkipVerify {
		t.Error("InsecureSkipVerify = false, want true")
	}
	if cfg.HTTP().Timeout != 5 {
		t.Errorf("Timeout = %d, want 5", cfg.HTTP().Timeout)
	}
}

func TestEnvAliases(t *testing.T) {
	isolate(t)
	t.Setenv("GRAYLOG_PASSWORD", "from-alias")
	t.Setenv("GRAYLOG_SESSION_TOKEN", "alias-token")
	t.Setenv("GRAYLOG_TOKEN", "primary-token")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Graylog().Password; got != "from-alias" {
		t.Errorf("Password = %q, want from-alias", got)
	}
	// 正式な名前が優先される
	if got := cfg.Graylog().Token; got != "primary-token" {
		t.Errorf("Token = %q, want primary-token", got)
	}
}

func TestUserConfigFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, AppName, "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	content := "graylog:\n  host: file.example.com\n  permission: manage\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	// 環境変数はファイルより優先
	t.Setenv("GRAYLOG_HOST", "env.example.com")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GetUserConfigPath() != path {
		t.Errorf("GetUserConfigPath() = %q, want %q", cfg.GetUserConfigPath(), path)
	}
	if got := cfg.Graylog().Host; got != "env.example.com" {
		t.Errorf("Host = %q, want env.example.com", got)
	}
	if got := cfg.Graylog().Permission; got != "manage" {
		t.Errorf("Permission = %q, want manage", got)
	}
}

func TestFlagsLayer(t *testing.T) {
	isolate(t)
	t.Setenv("GRAYLOG_HOST", "env.example.com")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := cfg.SetFlagsLayer([]jubako.SetOption{
		jubako.String(PathHost, "flag.example.com"),
		jubako.String(PathOutput, "json"),
	}); err != nil {
		t.Fatalf("SetFlagsLayer() error = %v", err)
	}

	if got := cfg.Graylog().Host; got != "flag.example.com" {
		t.Errorf("Host = %q, want flag.example.com", got)
	}
	if got := cfg.Display().Output; got != "json" {
		t.Errorf("Output = %q, want json", got)
	}
}

func TestLoadReturnsSameStore(t *testing.T) {
	isolate(t)

	a, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	b, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if a != b {
		t.Error("Load() should return the cached store")
	}
}
