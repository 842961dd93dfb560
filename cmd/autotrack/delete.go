package main

import (
	"github.com/spf13/cobra"

	"autotrack/internal/api"
	"autotrack/internal/config"
)

func newDeleteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  requireExactlyArgs(1, "exactly one task id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskIDArg(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.DeleteTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if !resp.Deleted {
					return writePlain("task %d not found; nothing deleted\n", id)
				}
				return writePlain("deleted task %d\n", id)
			})
		},
	}
}
