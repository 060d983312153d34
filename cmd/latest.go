package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest release by semver tag",
	Long: `Show the release with the highest semantic-version tag. Drafts and tags that
do not parse as semantic versions are ignored.`,
	Args: cobra.NoArgs,
	Run:  executeLatest,
}

func init() {
	RootCmd.AddCommand(latestCmd)
	latestCmd.Flags().Bool("prereleases", false, "consider prereleases as well")
	latestCmd.Flags().Bool("output-id", false, "print only the release id")
}

func executeLatest(cmd *cobra.Command, args []string) {
	prereleases, _ := cmd.Flags().GetBool("prereleases")
	outputID, _ := cmd.Flags().GetBool("output-id")

	e := cli.NewReleaseExecutor(NewClient(cmd))
	err := e.Latest(cmd.Context(), prereleases, outputID)
	if err != nil {
		os.Exit(1)
	}
}
