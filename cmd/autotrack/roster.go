package main

import (
	"github.com/spf13/cobra"

	"autotrack/internal/api"
	"autotrack/internal/config"
)

func newRosterCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print the submitter roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			emit := func(members []string) error {
				if *jsonOutput {
					return writeJSON(members)
				}
				for _, member := range members {
					if err := writePlain("%s\n", member); err != nil {
						return err
					}
				}
				return nil
			}

			if local {
				members, err := cfg.ResolveRoster()
				if err != nil {
					return err
				}
				return emit(members)
			}

			return withClient(cfg, func(client *api.Client) error {
				members, err := client.Roster(cmd.Context())
				if err != nil {
					return err
				}
				return emit(members)
			})
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "read the roster from local config instead of the server")
	return cmd
}
