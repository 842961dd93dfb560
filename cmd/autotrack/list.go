package main

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"autotrack/internal/api"
	"autotrack/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		status     string
		priority   string
		submitters []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				tasks, err := client.ListTasks(cmd.Context(), filterQuery(status, priority, submitters))
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(tasks)
				}
				return writeTaskList(tasks)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "status filter (comma-separated)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority filter (comma-separated)")
	cmd.Flags().StringArrayVar(&submitters, "submitter", nil, "submitter filter (repeatable; names may contain commas)")

	return cmd
}

// filterQuery keeps the non-blank filter flags. Status and priority stay
// comma-separated for the server to split; each submitter is sent as its own
// value.
func filterQuery(status, priority string, submitters []string) url.Values {
	query := url.Values{}
	if status = strings.TrimSpace(status); status != "" {
		query.Set("status", status)
	}
	if priority = strings.TrimSpace(priority); priority != "" {
		query.Set("priority", priority)
	}
	for _, submitter := range submitters {
		if strings.TrimSpace(submitter) != "" {
			query.Add("submitter", submitter)
		}
	}
	return query
}
