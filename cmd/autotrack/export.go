package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"autotrack/internal/api"
	"autotrack/internal/config"
	"autotrack/internal/format"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		outputPath string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks in the tasks.json document shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := format.ByName(formatName)
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				doc, err := client.Export(cmd.Context())
				if err != nil {
					return err
				}

				var w io.Writer = stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				return formatter.Write(w, doc)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&formatName, "format", "json", "output format (json, yaml)")

	return cmd
}
