package main

import (
	"os"

	"github.com/epeers/krxdash/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @title KRX Dashboard API
// @version 1.0
// @description Company lookup, price chart, headquarters map and favorites for KRX listed companies.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "krxdash",
		Short: "KRX company dashboard",
		Long: `krxdash looks up a KRX listed company by name, charts its daily prices and
maps its headquarters region.

Without a subcommand it serves the web dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			log.SetLevel(cfg.LogLevel)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			return nil
		},
	}
	getConfig := func() *config.Config { return cfg }

	serve := newServeCmd(getConfig)
	root.RunE = serve.RunE
	root.AddCommand(serve)
	root.AddCommand(newLookupCmd(getConfig))
	root.AddCommand(newResolveCmd())
	root.AddCommand(newFavoritesCmd(getConfig))
	return root
}
