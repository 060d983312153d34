package asset

import (
	"os"

	"github.com/relm-oss/relm/cmd"
	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

// assetDeleteCmd represents the 'asset delete' command
var assetDeleteCmd = &cobra.Command{
	Use:   "delete <asset-id>",
	Short: "Delete an asset",
	Long:  `Delete a single asset from its release.`,
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		assetID := parseAssetID(args[0])

		e := cli.NewAssetExecutor(cmd.NewClient(c))
		err := e.Delete(c.Context(), assetID)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	assetCmd.AddCommand(assetDeleteCmd)
}
