package cmdutil

import (
	"github.com/pandalog/pandalog/internal/config"
	"github.com/spf13/cobra"
	"github.com/yacchi/jubako"
)

// flagPaths はArgsレイヤーに反映する文字列フラグ
var flagPaths = map[string]string{
	"host":     config.PathHost,
	"token":    config.PathToken,
	"user":     config.PathUser,
	"password": config.PathPassword,
	"output":   config.PathOutput,
}

// ApplyGlobalFlags は指定されたフラグを設定のArgsレイヤーに適用する
// 未定義・未指定のフラグは無視する
func ApplyGlobalFlags(cmd *cobra.Command, cfg *config.Store) error {
	var setOptions []jubako.SetOption
	for flag, path := range flagPaths {
		if value, _ := cmd.Flags().GetString(flag); value != "" {
			setOptions = append(setOptions, jubako.String(path, value))
		}
	}
	if len(setOptions) == 0 {
		return nil
	}
	return cfg.SetFlagsLayer(setOptions)
}
