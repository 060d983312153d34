package asset

import (
	"github.com/relm-oss/relm/cmd"
	"github.com/spf13/cobra"
)

// assetCmd represents the asset command
var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage release assets",
	Long: `The command asset and its subcommands manage the uploaded assets of a
release: list, inspect, upload, download, rename and delete them.`,
}

func init() {
	cmd.RootCmd.AddCommand(assetCmd)
}
