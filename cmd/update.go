package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [ARTIFACT...]",
	Short: "Update a release, creating it if necessary",
	Long: `Update the release identified by --id or --tag and upload the listed artifact
files as its assets. When no release matches and a tag is given, the release
is created instead. Artifacts whose name collides with an existing asset are
skipped unless --force is given.`,
	Args: cobra.ArbitraryArgs,
	Run:  executeUpdate,
}

func init() {
	RootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Int64P("id", "i", 0, "id of the release")
	updateCmd.Flags().StringP("tag", "t", "", "tag of the release")
	updateCmd.Flags().StringP("name", "n", "", "name of the release (defaults to the tag)")
	updateCmd.Flags().StringP("commit", "c", "", "commitish the tag is created from")
	updateCmd.Flags().StringP("body", "b", "", "description of the release")
	updateCmd.Flags().Bool("draft", false, "mark the release as a draft")
	updateCmd.Flags().Bool("prerelease", false, "mark the release as a prerelease")
	updateCmd.Flags().Bool("force", false, "replace conflicting assets instead of skipping them")
	updateCmd.Flags().Bool("output-id", false, "print only the release id")
	updateCmd.MarkFlagsOneRequired("id", "tag")
}

func executeUpdate(cmd *cobra.Command, args []string) {
	opts := updateOptionsFromFlags(cmd)
	opts.ID, _ = cmd.Flags().GetInt64("id")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.Artifacts = args

	e := cli.NewReleaseExecutor(NewClient(cmd))
	err := e.Update(cmd.Context(), opts)
	if err != nil {
		os.Exit(1)
	}
}
