package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/spf13/cobra"
)

// GetSharesCmd はストリームの現在の共有を表示する
var GetSharesCmd = &cobra.Command{
	Use:   "get-shares <stream>...",
	Short: "Show who a stream is shared with",
	Long: `Show the current grantee capabilities of one or more streams.

Nothing is changed on the server: the shares are read with the same
prepare call that to-stream and from-stream use before submitting.

Examples:
  pandalog get-shares API
  pandalog get-shares API ledger -o json`,
	Args:              cmdutil.UsageArgs(cobra.MinimumNArgs(1)),
	ValidArgsFunction: cmdutil.CompleteStreamTitles,
	RunE:              runGetShares,
}

// shareEntry は1件の共有
type shareEntry struct {
	Stream     string `json:"stream" yaml:"stream"`
	GRN        string `json:"grn" yaml:"grn"`
	Type       string `json:"type" yaml:"type"`
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Capability string `json:"capability" yaml:"capability"`
}

// sharesReader は共有の取得に使う API
type sharesReader interface {
	FindStream(ctx context.Context, title string) (*api.Stream, error)
	ListTeams(ctx context.Context) ([]api.Team, error)
	PrepareShares(ctx context.Context, streamID string) (api.Capabilities, error)
}

func runGetShares(cmd *cobra.Command, args []string) error {
	client, cfg, err := cmdutil.GetAPIClient(cmd)
	if err != nil {
		return err
	}

	entries, err := collectShares(cmd.Context(), client, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts := cmdutil.GetOutputOptions(cmd, cfg); opts.IsStructured() {
		return cmdutil.OutputStructured(out, entries, opts)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No shares found")
		return nil
	}
	outputShareTable(out, entries)
	return nil
}

// collectShares はストリームごとの共有をGRN順に並べて返す
// チームのGRNにはチーム名を添える
func collectShares(ctx context.Context, client sharesReader, titles []string) ([]shareEntry, error) {
	var teamNames map[string]string
	entries := make([]shareEntry, 0)

	for _, title := range titles {
		s, err := client.FindStream(ctx, title)
		if err != nil {
			return nil, err
		}
		caps, err := client.PrepareShares(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get shares of stream %q: %w", s.Title, err)
		}

		for _, grn := range caps.GRNs() {
			entry := shareEntry{Stream: s.Title, GRN: grn, Capability: caps[grn]}
			if entityType, id, err := api.ParseGRN(grn); err == nil {
				entry.Type = entityType
				entry.ID = id
			}
			if entry.Type == api.EntityTeam {
				if teamNames == nil {
					if teamNames, err = loadTeamNames(ctx, client); err != nil {
						return nil, err
					}
				}
				entry.Name = teamNames[entry.ID]
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func loadTeamNames(ctx context.Context, client sharesReader) (map[string]string, error) {
	teams, err := client.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

func outputShareTable(w io.Writer, entries []shareEntry) {
	table := ui.NewTable("STREAM", "TYPE", "ID", "NAME", "CAPABILITY")
	for _, e := range entries {
		entityType := e.Type
		if entityType == "" {
			entityType = e.GRN
		}
		table.AddRow(e.Stream, entityType, e.ID, e.Name, ui.PermissionColor(e.Capability))
	}
	table.Render(w)
}
