package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [ARTIFACT...]",
	Short: "Create a new release",
	Long: `Create a new release for the given tag and upload the listed artifact files
as its assets. The tag does not need to exist yet: the forge creates it from
--commit, or from the default branch when --commit is not given.`,
	Args: cobra.ArbitraryArgs,
	Run:  executeCreate,
}

func init() {
	RootCmd.AddCommand(createCmd)
	createCmd.Flags().StringP("tag", "t", "", "tag of the release (required)")
	createCmd.Flags().StringP("name", "n", "", "name of the release (defaults to the tag)")
	createCmd.Flags().StringP("commit", "c", "", "commitish the tag is created from")
	createCmd.Flags().StringP("body", "b", "", "description of the release")
	createCmd.Flags().Bool("draft", false, "create the release as a draft")
	createCmd.Flags().Bool("prerelease", false, "mark the release as a prerelease")
	createCmd.Flags().Bool("output-id", false, "print only the release id")
	_ = createCmd.MarkFlagRequired("tag")
}

func executeCreate(cmd *cobra.Command, args []string) {
	opts := updateOptionsFromFlags(cmd)
	opts.Artifacts = args

	e := cli.NewReleaseExecutor(NewClient(cmd))
	err := e.Create(cmd.Context(), opts)
	if err != nil {
		os.Exit(1)
	}
}

// updateOptionsFromFlags reads the flags shared between create and update.
func updateOptionsFromFlags(cmd *cobra.Command) cli.UpdateOptions {
	tag, _ := cmd.Flags().GetString("tag")
	name, _ := cmd.Flags().GetString("name")
	commit, _ := cmd.Flags().GetString("commit")
	body, _ := cmd.Flags().GetString("body")
	draft, _ := cmd.Flags().GetBool("draft")
	prerelease, _ := cmd.Flags().GetBool("prerelease")
	outputID, _ := cmd.Flags().GetBool("output-id")
	return cli.UpdateOptions{
		Tag:        tag,
		Name:       name,
		Commit:     commit,
		Body:       body,
		Draft:      draft,
		Prerelease: prerelease,
		OutputID:   outputID,
	}
}
