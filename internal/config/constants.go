package config

import (
	_ "embed"
)

// レイヤー名定数（優先度の低い順）
const (
	LayerDefaults = "defaults"
	LayerUser     = "user"
	LayerEnv      = "env"
	LayerArgs     = "args"
)

// EnvPrefix は環境変数の接頭辞
const EnvPrefix = "GRAYLOG_"

// 設定パス（JSON Pointer）
const (
	PathHost        = "/graylog/host"
	PathUser        = "/graylog/user"
	PathPassword    = "/graylog/password"
	PathToken       = "/graylog/token"
	PathPluginsPath = "/graylog/plugins_path"
	PathPermission  = "/graylog/permission"
	PathOutput      = "/display/output"
	PathColor       = "/display/color"
)

//go:embed defaults.yaml
var defaultConfigYAML []byte
