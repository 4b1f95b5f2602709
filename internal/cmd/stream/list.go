package stream

import (
	"fmt"
	"io"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
)

// GetStreamsCmd はストリーム一覧を表示する
var GetStreamsCmd = &cobra.Command{
	Use:     "get-streams",
	Aliases: []string{"streams"},
	Short:   "List streams",
	Long: `List Graylog streams sorted by title.

Examples:
  pandalog get-streams
  pandalog get-streams -o yaml
  pandalog get-streams --jq '.[] | select(.title | startswith("prod")) | .id'`,
	Args: cmdutil.UsageArgs(cobra.NoArgs),
	RunE: runGetStreams,
}

func runGetStreams(cmd *cobra.Command, args []string) error {
	client, cfg, err := cmdutil.GetAPIClient(cmd)
	if err != nil {
		return err
	}

	streams, err := client.ListStreams(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get streams: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts := cmdutil.GetOutputOptions(cmd, cfg); opts.IsStructured() {
		return cmdutil.OutputStructured(out, streams, opts)
	}

	if len(streams) == 0 {
		_, _ = fmt.Fprintln(out, "No streams found")
		return nil
	}
	outputStreamTable(out, streams)
	return nil
}

func outputStreamTable(w io.Writer, streams []api.Stream) {
	table := ui.NewTable("ID", "TITLE")
	for _, s := range streams {
		table.AddRow(s.ID, s.Title)
	}
	table.Render(w)
}
