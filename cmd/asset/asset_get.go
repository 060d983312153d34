package asset

import (
	"os"
	"strconv"

	"github.com/relm-oss/relm/cmd"
	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

// assetGetCmd represents the 'asset get' command
var assetGetCmd = &cobra.Command{
	Use:   "get <asset-id>",
	Short: "Show an asset",
	Long:  `Show the metadata of a single asset as JSON.`,
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		assetID := parseAssetID(args[0])

		e := cli.NewAssetExecutor(cmd.NewClient(c))
		err := e.Get(c.Context(), assetID)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	assetCmd.AddCommand(assetGetCmd)
}

func parseAssetID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		cli.Stderrf("Invalid asset id %q", arg)
		os.Exit(1)
	}
	return id
}
