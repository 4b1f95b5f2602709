package stream

import (
	"fmt"

	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/debug"
	"github.com/pandalog/pandalog/internal/ui"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// テストで差し替える
var openBrowser = browser.OpenURL

func init() {
	OpenStreamCmd.Flags().Bool("print", false, "Print the URL instead of opening a browser")
}

// OpenStreamCmd はストリームの検索画面をブラウザで開く
var OpenStreamCmd = &cobra.Command{
	Use:   "open-stream <stream>",
	Short: "Open the search page of a stream in the browser",
	Long: `Resolve a stream by title and open its search page in the web browser.

If the browser cannot be opened, the URL is printed instead.

Examples:
  pandalog open-stream API
  pandalog open-stream ledger --print`,
	Args:              cmdutil.UsageArgs(cobra.ExactArgs(1)),
	ValidArgsFunction: cmdutil.CompleteStreamTitles,
	RunE:              runOpenStream,
}

func runOpenStream(cmd *cobra.Command, args []string) error {
	client, _, err := cmdutil.GetAPIClient(cmd)
	if err != nil {
		return err
	}

	s, err := client.FindStream(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	url := client.SearchURL(s.ID)

	out := cmd.OutOrStdout()
	if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
		_, _ = fmt.Fprintln(out, url)
		return nil
	}

	debug.Log("opening browser", "url", url)
	if err := openBrowser(url); err != nil {
		ui.Warning("Could not open browser: %v", err)
		_, _ = fmt.Fprintf(out, "Open this URL in your browser:\n%s\n", url)
		return nil
	}
	_, _ = fmt.Fprintf(out, "Opening %s in your browser.\n", ui.Cyan(url))
	return nil
}
