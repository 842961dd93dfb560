package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"autotrack/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "autotrack",
		Short:         "Autotrack tracks a team's automation tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newCreateCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newStatusCmd(cfg, &jsonOutput),
		newDeleteCmd(cfg, &jsonOutput),
		newStatsCmd(cfg, &jsonOutput),
		newRosterCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newConfigCmd(cfg),
	)

	return cmd
}
