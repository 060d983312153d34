package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a release",
	Long: `Delete the release identified by --id or --tag, including its assets. The git
tag itself is left untouched.`,
	Args: cobra.NoArgs,
	Run:  executeDelete,
}

func init() {
	RootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().Int64P("id", "i", 0, "id of the release")
	deleteCmd.Flags().StringP("tag", "t", "", "tag of the release")
	deleteCmd.MarkFlagsOneRequired("id", "tag")
	deleteCmd.MarkFlagsMutuallyExclusive("id", "tag")
}

func executeDelete(cmd *cobra.Command, args []string) {
	releaseID, _ := cmd.Flags().GetInt64("id")
	tag, _ := cmd.Flags().GetString("tag")

	e := cli.NewReleaseExecutor(NewClient(cmd))
	err := e.Delete(cmd.Context(), releaseID, tag)
	if err != nil {
		os.Exit(1)
	}
}
