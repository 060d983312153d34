package asset

import (
	"os"

	"github.com/relm-oss/relm/cmd"
	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

// assetDownloadCmd represents the 'asset download' command
var assetDownloadCmd = &cobra.Command{
	Use:   "download <asset-id>",
	Short: "Download an asset",
	Long: `Download the content of an asset. With --output, the file is written to the
given path, or into the given directory under the asset's name. Without
--output, it is written to the current directory under the asset's name.`,
	Args: cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		assetID := parseAssetID(args[0])
		output, _ := c.Flags().GetString("output")

		e := cli.NewAssetExecutor(cmd.NewClient(c))
		err := e.Download(c.Context(), assetID, output)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	assetCmd.AddCommand(assetDownloadCmd)
	assetDownloadCmd.Flags().StringP("output", "O", "", "file or directory to write the asset to")
}
