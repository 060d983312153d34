package asset

import (
	"os"

	"github.com/relm-oss/relm/cmd"
	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

// assetUpdateCmd represents the 'asset update' command
var assetUpdateCmd = &cobra.Command{
	Use:   "update <asset-id>",
	Short: "Update an asset's name or label",
	Long:  `Update the name or the label of an existing asset.`,
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		assetID := parseAssetID(args[0])
		name, _ := c.Flags().GetString("name")
		label, _ := c.Flags().GetString("label")

		e := cli.NewAssetExecutor(cmd.NewClient(c))
		err := e.Update(c.Context(), assetID, name, label)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	assetCmd.AddCommand(assetUpdateCmd)
	assetUpdateCmd.Flags().StringP("name", "n", "", "new file name of the asset")
	assetUpdateCmd.Flags().StringP("label", "l", "", "new display label of the asset")
	assetUpdateCmd.MarkFlagsOneRequired("name", "label")
}
