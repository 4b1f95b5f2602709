package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/debug"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
)

// 共有の変更内容
type shareAction int

const (
	actionGrant shareAction = iota
	actionRevoke
)

func (a shareAction) String() string {
	if a == actionRevoke {
		return "revoke"
	}
	return "grant"
}

// shareClient はチーム・ストリームの解決と共有の変更を行う
type shareClient interface {
	cmdutil.TeamFinder
	cmdutil.StreamFinder
	GrantStreamAccess(ctx context.Context, streamID, permission string, teams []api.Team) error
	RevokeStreamAccess(ctx context.Context, streamID, permission string, teams []api.Team) error
}

// shareRequest は to-stream / from-stream の入力
type shareRequest struct {
	action      shareAction
	all         bool
	streamNames []string
	teamNames   []string
	permission  string
	// 全ストリームからの解除で確認を求めるか
	confirm bool
}

func init() {
	for _, c := range []*cobra.Command{ToStreamCmd, FromStreamCmd} {
		c.Flags().BoolP("all", "a", false, "Apply to all streams")
		c.Flags().StringP("stream-names", "s", "", "Comma-separated list of stream titles")
		_ = c.RegisterFlagCompletionFunc("stream-names", cmdutil.CompleteStreamList)
	}
	ToStreamCmd.Flags().String("permission", "", "Capability to grant (default: view)")
	FromStreamCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt for --all")
}

// ToStreamCmd はストリームをチームに共有する
var ToStreamCmd = &cobra.Command{
	Use:   "to-stream [--all | --stream-names <titles>] <team>...",
	Short: "Share stream(s) with team(s)",
	Long: `Share streams with one or more teams.

Teams are resolved by name first, then the target streams, then the
current shares of each stream are fetched and submitted again with the
teams added. Existing shares of other grantees are kept.

Examples:
  pandalog to-stream --all "All Pandas" developer
  pandalog to-stream -s "API,ledger" developer
  pandalog to-stream -s API --permission manage ops`,
	Args:              cmdutil.UsageArgs(cobra.MinimumNArgs(1)),
	ValidArgsFunction: cmdutil.CompleteTeamNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShare(cmd, args, actionGrant)
	},
}

// FromStreamCmd はストリームのチームへの共有を解除する
var FromStreamCmd = &cobra.Command{
	Use:   "from-stream [--all | --stream-names <titles>] <team>...",
	Short: "Unshare stream(s) with team(s)",
	Long: `Remove the shares of one or more teams from streams.

Removing a team that has no share on a stream leaves that stream
unchanged. With --all an interactive confirmation is shown unless
--yes is given.

Examples:
  pandalog from-stream -s "API,ledger" staging-developer
  pandalog from-stream --all --yes contractors`,
	Args:              cmdutil.UsageArgs(cobra.MinimumNArgs(1)),
	ValidArgsFunction: cmdutil.CompleteTeamNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShare(cmd, args, actionRevoke)
	},
}

func runShare(cmd *cobra.Command, args []string, action shareAction) error {
	all, _ := cmd.Flags().GetBool("all")
	streamNames, _ := cmd.Flags().GetString("stream-names")
	if all && streamNames != "" {
		return cmdutil.NewUsageError("--all and --stream-names cannot be used together")
	}

	client, cfg, err := cmdutil.GetAPIClient(cmd)
	if err != nil {
		return err
	}

	permission, _ := cmd.Flags().GetString("permission")
	if permission == "" {
		permission = cfg.Graylog().Permission
	}
	yes, _ := cmd.Flags().GetBool("yes")

	req := shareRequest{
		action:      action,
		all:         all,
		streamNames: cmdutil.SplitNames(streamNames),
		teamNames:   args,
		permission:  permission,
		confirm:     action == actionRevoke && all && !yes && ui.IsInteractive(),
	}
	return share(cmd.Context(), client, cmd.OutOrStdout(), req)
}

// share はチームとストリームを解決し、ストリームごとに共有を更新する
// 途中で失敗した場合、それまでのストリームへの変更は残る
func share(ctx context.Context, client shareClient, w io.Writer, req shareRequest) error {
	if !req.all && len(req.streamNames) == 0 {
		return cmdutil.NewUsageError("please provide streams with --stream-names or set the --all flag")
	}

	teams, err := cmdutil.ResolveTeams(ctx, client, req.teamNames)
	if err != nil {
		return err
	}

	streams, err := cmdutil.ResolveStreams(ctx, client, req.all, req.streamNames)
	if err != nil {
		return err
	}
	if len(streams) == 0 {
		_, _ = fmt.Fprintln(w, "No streams found")
		return nil
	}

	if req.confirm {
		ok, err := ui.Confirm(fmt.Sprintf("Remove %s from all %d streams?", joinTeamNames(teams), len(streams)), false)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}

	debug.Log("updating shares", "action", req.action.String(), "teams", len(teams), "streams", len(streams))

	for i, s := range streams {
		if err := apply(ctx, client, req, s, teams); err != nil {
			return fmt.Errorf("failed to %s access on stream %q (%d of %d streams updated): %w",
				req.action, s.Title, i, len(streams), err)
		}
		printProgress(w, req, s, teams)
	}
	return nil
}

func apply(ctx context.Context, client shareClient, req shareRequest, s api.Stream, teams []api.Team) error {
	if req.action == actionRevoke {
		return client.RevokeStreamAccess(ctx, s.ID, req.permission, teams)
	}
	return client.GrantStreamAccess(ctx, s.ID, req.permission, teams)
}

func printProgress(w io.Writer, req shareRequest, s api.Stream, teams []api.Team) {
	if req.action == actionRevoke {
		_, _ = fmt.Fprintf(w, "%s Unshared %s from %s\n", ui.Green("✓"), ui.Cyan(s.Title), joinTeamNames(teams))
		return
	}
	_, _ = fmt.Fprintf(w, "%s Shared %s with %s (%s)\n",
		ui.Green("✓"), ui.Cyan(s.Title), joinTeamNames(teams), ui.PermissionColor(req.permission))
}

func joinTeamNames(teams []api.Team) string {
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
