package config

import (
	"os"
	"time"
)

// ResolvedConfig は全レイヤーをマージし、デフォルト適用後の設定
// jubakoのmaterializationはJSONを使用するため、jsonタグが必須
// env: ディレクティブは GRAYLOG_ 接頭辞を除いた環境変数名
type ResolvedConfig struct {
	Graylog ResolvedGraylog `json:"graylog"`
	HTTP    ResolvedHTTP    `json:"http"`
	Display ResolvedDisplay `json:"display"`
}

// ResolvedGraylog は接続先と認証情報
type ResolvedGraylog struct {
	Host        string `json:"host" jubako:"/graylog/host,env:HOST"`
	User        string `json:"user" jubako:"/graylog/user,env:USER"`
	Password    string `json:"password" jubako:"/graylog/password,env:PASS"`
	Token       string `json:"token" jubako:"/graylog/token,env:TOKEN"`
	PluginsPath string `json:"plugins_path" jubako:"/graylog/plugins_path,env:PLUGINS_PATH"`
	Permission  string `json:"permission" jubako:"/graylog/permission,env:PERMISSION"`
}

// ResolvedHTTP はHTTPクライアント設定
type ResolvedHTTP struct {
	Timeout            int  `json:"timeout" jubako:"/http/timeout,env:HTTP_TIMEOUT"`
	InsecureSkipVerify bool `json:"insecure_skip_verify" jubako:"/http/insecure_skip_verify,env:INSECURE"`
}

// TimeoutDuration はタイムアウトをtime.Durationで返す
func (h *ResolvedHTTP) TimeoutDuration() time.Duration {
	return time.Duration(h.Timeout) * time.Second
}

// ResolvedDisplay は表示設定
type ResolvedDisplay struct {
	Output string `json:"output" jubako:"/display/output,env:OUTPUT"`
	Color  string `json:"color" jubako:"/display/color,env:COLOR"`
}

// envAliases は別名の環境変数を正式な名前に展開する
var envAliases = map[string]string{
	"GRAYLOG_PASSWORD":        "GRAYLOG_PASS",
	"GRAYLOG_SESSION_TOKEN":   "GRAYLOG_TOKEN",
	"GRAYLOG_SKIP_TLS_VERIFY": "GRAYLOG_INSECURE",
}

// expandEnvAliases は別名を展開した環境変数リストを返す
// 正式な名前が既に設定されている場合はそちらを優先する
func expandEnvAliases() []string {
	envs := os.Environ()

	for alias, name := range envAliases {
		if value := os.Getenv(alias); value != "" {
			if os.Getenv(name) == "" {
				envs = append(envs, name+"="+value)
			}
		}
	}

	return envs
}
