package cmd

import (
	"os"

	"github.com/relm-oss/relm/internal/app/cli"
	"github.com/relm-oss/relm/internal/config"
	"github.com/relm-oss/relm/internal/forge"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "relm",
	Short: "A CLI for managing forge releases and assets",
	Long: `relm manages releases and release assets on a hosted source forge
(GitHub or a compatible API), intended for use in CI pipelines.

The API token is taken from the config file, RELM_TOKEN or GITHUB_TOKEN.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP("owner", "o", "", "owner of the repository (default from config)")
	RootCmd.PersistentFlags().StringP("repository", "r", "", "name of the repository (default from config)")
}

// NewClient builds a forge client from the persistent flags, falling back to
// the configuration for owner and repository. Exits on misconfiguration.
func NewClient(cmd *cobra.Command) *forge.Client {
	owner := cmd.Flag("owner").Value.String()
	if owner == "" {
		owner = config.Owner()
	}
	repository := cmd.Flag("repository").Value.String()
	if repository == "" {
		repository = config.Repository()
	}
	client, err := forge.NewClient(owner, repository)
	if err != nil {
		cli.Stderrf("%v", err)
		os.Exit(1)
	}
	return client
}
