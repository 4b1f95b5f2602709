package auth

import (
	"fmt"

	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/debug"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	GetSTSTokenCmd.Flags().StringP("user", "u", "", "Graylog user (env: GRAYLOG_USER)")
	GetSTSTokenCmd.Flags().StringP("password", "p", "", "Graylog password (env: GRAYLOG_PASS, prompted when omitted)")
}

// GetSTSTokenCmd はログインしてセッショントークンを発行する
var GetSTSTokenCmd = &cobra.Command{
	Use:   "get-sts-token",
	Short: "Get/issue a temporary session token",
	Long: `Log in to Graylog and print a session token.

The token is used as GRAYLOG_TOKEN by the pandalog command. When no
password is given by flag or environment, it is read from the terminal
without echo.

Examples:
  pandalog-auth get-sts-token -h logs.example.com -u alice
  export GRAYLOG_TOKEN=$(pandalog-auth get-sts-token -u alice -p "$PASS")`,
	Args: cmdutil.UsageArgs(cobra.NoArgs),
	RunE: runGetSTSToken,
}

func runGetSTSToken(cmd *cobra.Command, args []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	g := cfg.Graylog()
	if g.User == "" {
		return cmdutil.NewUsageError("graylog user is required\nSpecify with -u/--user or set GRAYLOG_USER")
	}

	// ホストの確認はパスワード入力より先に行う
	client, err := cmdutil.NewClient(cmd, cfg, "")
	if err != nil {
		return err
	}

	password := g.Password
	if password == "" {
		password, err = ui.Password("Password:")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	token, err := client.Login(cmd.Context(), g.User, password)
	if err != nil {
		return err
	}
	debug.Log("session issued", "user", g.User)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
