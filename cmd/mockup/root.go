package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/storeops/networking/config"
	"github.com/storeops/networking/fixtures"
	"github.com/storeops/networking/logging"
)

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mockup",
		Short:         "Serve simulated store API responses from fixtures.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}

			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./mockup.yaml)")

	root.AddCommand(newResolveCmd(a), newFixturesCmd(a))
	return root
}

// loader returns the configured fixture set.
func (a *app) loader() *fixtures.FSLoader {
	if a.cfg.Fixtures.Dir != "" {
		return fixtures.New(os.DirFS(a.cfg.Fixtures.Dir))
	}
	return fixtures.Default()
}
