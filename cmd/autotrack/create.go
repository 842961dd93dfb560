package main

import (
	"strings"

	"github.com/spf13/cobra"

	"autotrack/internal/api"
	"autotrack/internal/config"
)

func newCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var req api.TaskCreateRequest

	cmd := &cobra.Command{
		Use:   "create <name...>",
		Short: "Create a task",
		Args:  requireAtLeastArgs(1, "task name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = strings.Join(args, " ")
			return withClient(cfg, func(client *api.Client) error {
				task, err := client.CreateTask(cmd.Context(), req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(task)
				}
				return writePlain("%s\n", formatTaskLine(task))
			})
		},
	}

	cmd.Flags().StringVarP(&req.Submitter, "submitter", "s", "", "submitter name")
	cmd.Flags().StringVarP(&req.Priority, "priority", "p", "", "priority (Low, Medium, High, Critical)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "free-form notes")

	return cmd
}
