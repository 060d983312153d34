package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List releases",
	Long: `List all releases of the repository, including drafts and prereleases. The
listing follows the API's pagination links until the last page.`,
	Args: cobra.NoArgs,
	Run:  executeList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func executeList(cmd *cobra.Command, args []string) {
	e := cli.NewReleaseExecutor(NewClient(cmd))
	err := e.List(cmd.Context())
	if err != nil {
		os.Exit(1)
	}
}
