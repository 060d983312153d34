package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a release by id or tag",
	Long: `Get a release by its numeric identifier or by its tag name and print it as JSON.
With --output-id, only the release id is printed, for use in shell pipelines.`,
	Args: cobra.NoArgs,
	Run:  executeGet,
}

func init() {
	RootCmd.AddCommand(getCmd)
	getCmd.Flags().Int64P("id", "i", 0, "numeric release identifier")
	getCmd.Flags().StringP("tag", "t", "", "release tag name")
	getCmd.Flags().Bool("output-id", false, "print only the release id")
	getCmd.MarkFlagsOneRequired("id", "tag")
	getCmd.MarkFlagsMutuallyExclusive("id", "tag")
}

func executeGet(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetInt64("id")
	tag := cmd.Flag("tag").Value.String()
	outputID, _ := cmd.Flags().GetBool("output-id")

	e := cli.NewReleaseExecutor(NewClient(cmd))
	err := e.Get(cmd.Context(), id, tag, outputID)
	if err != nil {
		os.Exit(1)
	}
}
