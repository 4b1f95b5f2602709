package cmdutil

import (
	"context"
	"slices"
	"strings"

	"github.com/pandalog/pandalog/internal/debug"
	"github.com/spf13/cobra"
)

// 補完は PersistentPreRunE を通らないため、ここでフラグを反映する
func completionCandidates(cmd *cobra.Command, list func(ctx context.Context) ([]string, error)) []string {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := GetConfigStore(cmd)
	if err != nil {
		return nil
	}
	if err := ApplyGlobalFlags(cmd, cfg); err != nil {
		return nil
	}
	names, err := list(ctx)
	if err != nil {
		debug.Log("completion failed", "command", cmd.Name(), "error", err)
		return nil
	}
	return names
}

// CompleteTeamNames は位置引数のチーム名を補完する
func CompleteTeamNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := completionCandidates(cmd, func(ctx context.Context) ([]string, error) {
		client, _, err := GetAPIClient(cmd)
		if err != nil {
			return nil, err
		}
		teams, err := client.ListTeams(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(teams))
		for _, t := range teams {
			names = append(names, t.Name)
		}
		return names, nil
	})
	return FilterCompletions(names, args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func streamTitles(cmd *cobra.Command) []string {
	return completionCandidates(cmd, func(ctx context.Context) ([]string, error) {
		client, _, err := GetAPIClient(cmd)
		if err != nil {
			return nil, err
		}
		streams, err := client.ListStreams(ctx)
		if err != nil {
			return nil, err
		}
		titles := make([]string, 0, len(streams))
		for _, s := range streams {
			titles = append(titles, s.Title)
		}
		return titles, nil
	})
}

// CompleteStreamTitles は位置引数のストリーム名を補完する
func CompleteStreamTitles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return FilterCompletions(streamTitles(cmd), args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// CompleteStreamList はカンマ区切りの --stream-names の最後の要素を補完する
func CompleteStreamList(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	current := toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
		current = toComplete[i+1:]
	}

	var candidates []string
	for _, title := range FilterCompletions(streamTitles(cmd), SplitNames(prefix), current) {
		candidates = append(candidates, prefix+title)
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// FilterCompletions は toComplete で始まり、まだ指定されていない候補を返す
func FilterCompletions(candidates, used []string, toComplete string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) && !slices.Contains(used, c) {
			out = append(out, c)
		}
	}
	return out
}
