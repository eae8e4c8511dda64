package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tvtally/internal/export"
)

func newTopListCommand() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "toplist",
		Short: "Fetch the ranked chart of top-rated TV series",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			list, err := rt.client.TopList(cmd.Context())
			if err != nil {
				rt.report(err)
				return err
			}

			if csvPath == "" {
				export.RenderSeriesTable(os.Stdout, list)
				return nil
			}

			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", csvPath, err)
			}
			if err := export.WriteSeriesCSV(f, list); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", csvPath, err)
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the chart table to this CSV file instead of rendering it")
	return cmd
}
