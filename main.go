package main

import (
	"github.com/relm-oss/relm/cmd"
	_ "github.com/relm-oss/relm/cmd/asset"
	"github.com/relm-oss/relm/internal"
	"github.com/relm-oss/relm/internal/config"
)

func init() {
	config.InitConfig()
	config.InitViper()
	internal.InitLogging()
}
func main() {
	cmd.Execute()
}
