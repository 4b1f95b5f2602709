package team

import (
	"fmt"
	"io"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
)

// GetTeamsCmd はチーム一覧を表示する
var GetTeamsCmd = &cobra.Command{
	Use:     "get-teams",
	Aliases: []string{"teams"},
	Short:   "List teams",
	Long: `List Graylog teams sorted by name.

Examples:
  pandalog get-teams
  pandalog get-teams -o json
  pandalog get-teams --jq '.[].name'`,
	Args: cmdutil.UsageArgs(cobra.NoArgs),
	RunE: runGetTeams,
}

func runGetTeams(cmd *cobra.Command, args []string) error {
	client, cfg, err := cmdutil.GetAPIClient(cmd)
	if err != nil {
		return err
	}

	teams, err := client.ListTeams(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get teams: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts := cmdutil.GetOutputOptions(cmd, cfg); opts.IsStructured() {
		return cmdutil.OutputStructured(out, teams, opts)
	}

	if len(teams) == 0 {
		_, _ = fmt.Fprintln(out, "No teams found")
		return nil
	}
	outputTeamTable(out, teams)
	return nil
}

func outputTeamTable(w io.Writer, teams []api.Team) {
	table := ui.NewTable("ID", "NAME")
	for _, t := range teams {
		table.AddRow(t.ID, t.Name)
	}
	table.Render(w)
}
