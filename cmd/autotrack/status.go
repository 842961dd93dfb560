package main

import (
	"github.com/spf13/cobra"

	"autotrack/internal/api"
	"autotrack/internal/config"
)

func newStatusCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a task's status (pending, running, completed, failed)",
		Args:  requireExactlyArgs(2, "usage: autotrack status <id> <status>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskIDArg(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UpdateStatus(cmd.Context(), id, api.TaskStatusRequest{Status: args[1]})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if !resp.Changed {
					return writePlain("task %d already %s\n", id, resp.Task.Status)
				}
				return writePlain("%s\n", formatTaskLine(resp.Task))
			})
		},
	}
}
