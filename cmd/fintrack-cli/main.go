package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/notify"
	"fintrack/internal/services"
)

var outputFormat string

var rootCmd = &cobra.Command{
	Use:           "fintrack-cli",
	Short:         "Inspect fintrack data from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		switch outputFormat {
		case formatJSON, formatYAML:
			return nil
		default:
			return fmt.Errorf("unknown output format %q (want json or yaml)", outputFormat)
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "Output format: json or yaml")
	rootCmd.AddCommand(interestCmd, summaryCmd, budgetsCmd, remindersCmd)
}

// openDataManager loads every collection from the configured backend. Reminder
// notifications are recorded in memory and never published.
func openDataManager(ctx context.Context) (*services.DataManager, func(), error) {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentCLI)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, closeStore, err := backend.NewFactory(logger).CreateStore(ctx, backendCfg)
	if err != nil {
		return nil, nil, err
	}
	dm := services.NewDataManager(store, notify.NewRecorder(), services.WithLogger(logger))
	dm.LoadAll(ctx)
	return dm, func() { _ = closeStore() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
