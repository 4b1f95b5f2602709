package cmd

import (
	"strings"

	"github.com/pandalog/pandalog/internal/cmd/auth"
	"github.com/pandalog/pandalog/internal/cmd/stream"
	"github.com/pandalog/pandalog/internal/cmd/team"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/config"
	"github.com/pandalog/pandalog/internal/debug"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pandalog",
	Short: "Pandalog - share Graylog streams with teams",
	Long: `Pandalog manages Graylog stream sharing from the command line.

Example usage:
  $ export GRAYLOG_HOST=logs.example.com
  $ export GRAYLOG_TOKEN=$(pandalog-auth get-sts-token -u $USER)
  $ pandalog get-teams
  $ pandalog get-streams
  $ pandalog to-stream --all "All Pandas" developer
  $ pandalog from-stream --stream-names "API,ledger" staging-developer`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

var authRootCmd = &cobra.Command{
	Use:   "pandalog-auth",
	Short: "Pandalog Auth - issue Graylog session tokens",
	Long: `Pandalog Auth logs in to Graylog and prints a session token.

Example usage:
  $ pandalog-auth get-sts-token -h $HOST -u $USER
  $ pandalog-auth get-sts-token -h $HOST -u $USER -p $PASS`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

// preRun は両方のルートコマンドに共通の前処理
func preRun(cmd *cobra.Command, args []string) error {
	// デバッグモードの有効化
	if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
		debug.Enable()
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// グローバルフラグを取得してArgsレイヤーに適用
	if err := cmdutil.ApplyGlobalFlags(cmd, cfg); err != nil {
		return err
	}

	// カラー設定
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		ui.SetColorEnabled(false)
	} else {
		switch strings.ToLower(cfg.Display().Color) {
		case "never":
			ui.SetColorEnabled(false)
		case "always":
			ui.SetColorEnabled(true)
		}
	}

	debug.Log("config loaded", "user_config", cfg.GetUserConfigPath(), "host", cfg.Graylog().Host)

	return cmdutil.ValidateFormat(cfg.Display().Output)
}

// Execute は pandalog を実行する
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

// ExecuteAuth は pandalog-auth を実行する
func ExecuteAuth() error {
	authRootCmd.Version = Version
	return authRootCmd.Execute()
}

func addGlobalFlags(c *cobra.Command) {
	// -h は --host に使うため、cobra 既定の help フラグより先に短縮なしで定義する
	c.PersistentFlags().Bool("help", false, "Show help")
	c.PersistentFlags().StringP("host", "h", "", "Graylog host (env: GRAYLOG_HOST)")
	c.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification (self-signed deployments only)")
	c.PersistentFlags().Int("timeout", 0, "HTTP timeout in seconds (default: 30)")
	c.PersistentFlags().StringP("output", "o", "", "Output format (table, json, yaml)")
	c.PersistentFlags().String("jq", "", "Filter JSON output using a jq expression")
	c.PersistentFlags().Bool("no-color", false, "Disable color output")
	c.PersistentFlags().Bool("debug", false, "Enable debug logging")
	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cmdutil.NewUsageError("%v", err)
	})
}

func init() {
	addGlobalFlags(rootCmd)
	rootCmd.PersistentFlags().StringP("token", "t", "", "Graylog session token (env: GRAYLOG_TOKEN)")

	rootCmd.AddCommand(team.GetTeamsCmd)
	rootCmd.AddCommand(stream.GetStreamsCmd)
	rootCmd.AddCommand(stream.ToStreamCmd)
	rootCmd.AddCommand(stream.FromStreamCmd)
	rootCmd.AddCommand(stream.GetSharesCmd)
	rootCmd.AddCommand(stream.OpenStreamCmd)
	rootCmd.AddCommand(newVersionCmd("pandalog"))
	rootCmd.AddCommand(newCompletionCmd("pandalog"))

	addGlobalFlags(authRootCmd)
	authRootCmd.AddCommand(auth.GetSTSTokenCmd)
	authRootCmd.AddCommand(newVersionCmd("pandalog-auth"))
	authRootCmd.AddCommand(newCompletionCmd("pandalog-auth"))
}
