// Package cli wires the lease store, configuration, and calculation engine
// into the leaseledger command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leaseledger/leaseledger/internal/config"
	"github.com/leaseledger/leaseledger/internal/store"
)

var (
	cfgFile  string
	logLevel string
	storeArg string

	conf   *config.Configuration
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "leaseledger",
	Short: "AASB16 lease amortization schedules and balance reports",
	Long: `leaseledger records property and motor vehicle lease contracts and
computes their amortization schedules: monthly payments, present value,
right-of-use asset depreciation, lease liability roll-forward, and the
journal and balance-summary reports for a reporting window.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			conf, err = config.LoadConfiguration(cfgFile)
			if err != nil {
				return err
			}
		} else {
			conf = config.Default()
		}
		if storeArg != "" {
			conf.StorePath = storeArg
		}
		logger, err = config.BuildLogger(conf.Logging, logLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&storeArg, "store", "", "path to the lease store JSON file")
}

func openStore() *store.Store {
	return store.NewStore(conf.StorePath, logger)
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
