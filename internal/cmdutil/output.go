package cmdutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jq"
	"github.com/pandalog/pandalog/internal/config"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// 出力形式
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// OutputOptions は構造化出力のオプション
type OutputOptions struct {
	Format   string // table / json / yaml
	JQFilter string // jq filter expression (json only)
}

// IsStructured は table 以外の形式かどうかを返す
// --jq が指定された場合は json とみなす
func (o OutputOptions) IsStructured() bool {
	return o.JQFilter != "" || (o.Format != "" && o.Format != OutputTable)
}

// GetOutputOptions は設定と --jq フラグから出力オプションを組み立てる
func GetOutputOptions(cmd *cobra.Command, cfg *config.Store) OutputOptions {
	jqFilter, _ := cmd.Flags().GetString("jq")
	return OutputOptions{
		Format:   strings.ToLower(cfg.Display().Output),
		JQFilter: jqFilter,
	}
}

// ValidateFormat は出力形式を検証する
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case "", OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return NewUsageError("unsupported output format %q (table, json, yaml)", format)
	}
}

// OutputStructured は data を json / yaml で出力する
func OutputStructured(w io.Writer, data any, opts OutputOptions) error {
	if opts.JQFilter != "" {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal data: %w", err)
		}
		return jq.EvaluateFormatted(bytes.NewReader(jsonBytes), w, opts.JQFilter, "  ", ui.IsColorEnabled())
	}

	switch strings.ToLower(opts.Format) {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
}
