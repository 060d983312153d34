package asset

import (
	"os"

	"github.com/relm-oss/relm/cmd"
	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

// assetListCmd represents the 'asset list' command
var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the assets of a release",
	Long:  `List the assets of the release identified by --id or --tag.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		releaseID, _ := c.Flags().GetInt64("id")
		tag, _ := c.Flags().GetString("tag")

		e := cli.NewAssetExecutor(cmd.NewClient(c))
		err := e.List(c.Context(), releaseID, tag)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	assetCmd.AddCommand(assetListCmd)
	assetListCmd.Flags().Int64P("id", "i", 0, "id of the release")
	assetListCmd.Flags().StringP("tag", "t", "", "tag of the release")
	assetListCmd.MarkFlagsOneRequired("id", "tag")
	assetListCmd.MarkFlagsMutuallyExclusive("id", "tag")
}
