package asset

import (
	"os"

	"github.com/relm-oss/relm/cmd"
	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/spf13/cobra"
)

// assetUploadCmd represents the 'asset upload' command
var assetUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload files as release assets",
	Long: `Upload one or more files as assets of the release identified by --id or
--tag. Files whose name collides with an existing asset are skipped unless
--force is given. The content type is detected from the file unless
--content-type is set.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		releaseID, _ := c.Flags().GetInt64("id")
		tag, _ := c.Flags().GetString("tag")
		contentType, _ := c.Flags().GetString("content-type")
		force, _ := c.Flags().GetBool("force")

		e := cli.NewAssetExecutor(cmd.NewClient(c))
		err := e.Upload(c.Context(), releaseID, tag, args, contentType, force)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	assetCmd.AddCommand(assetUploadCmd)
	assetUploadCmd.Flags().Int64P("id", "i", 0, "id of the release")
	assetUploadCmd.Flags().StringP("tag", "t", "", "tag of the release")
	assetUploadCmd.Flags().String("content-type", "", "content type of the uploaded files")
	assetUploadCmd.Flags().Bool("force", false, "replace conflicting assets instead of skipping them")
	assetUploadCmd.MarkFlagsOneRequired("id", "tag")
	assetUploadCmd.MarkFlagsMutuallyExclusive("id", "tag")
}
