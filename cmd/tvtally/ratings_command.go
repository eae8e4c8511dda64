package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tvtally/internal/apperrors"
	"tvtally/internal/export"
	"tvtally/internal/models"
)

func newRatingsCommand() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   `ratings "<name> (<year>)"...`,
		Short: "Collect per-episode ratings for the named chart series",
		Long: `Collect per-episode ratings for one or more chart series.

Series are addressed by their unique id, "<name> (<year>)". A bare name is
accepted when it matches exactly one chart entry; names shared by several
series (e.g. "House of Cards") must carry the year.`,
		Args: cobra.MinimumNArgs(1),
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

			// Resolve every requested series before the first per-series
			// fetch, so an ambiguous or unknown name aborts up front.
			series := make([]models.SeriesEntry, 0, len(args))
			for _, arg := range args {
				entry, err := resolveSeries(list, arg)
				if err != nil {
					return err
				}
				series = append(series, entry)
			}

			var episodes []models.EpisodeEntry
			for _, entry := range series {
				rows, err := rt.client.EpisodeRatings(cmd.Context(), entry)
				if err != nil {
					rt.report(err)
					return err
				}
				episodes = append(episodes, rows...)
			}

			if csvPath == "" {
				export.RenderEpisodesTable(os.Stdout, episodes)
				return nil
			}

			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", csvPath, err)
			}
			if err := export.WriteEpisodesCSV(f, episodes); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", csvPath, err)
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the episode table to this CSV file instead of rendering it")
	return cmd
}

// resolveSeries looks the argument up as a unique id first, then as a display
// name. Ambiguous names stay errors; the caller must disambiguate with the
// year-qualified id.
func resolveSeries(list models.TopList, arg string) (models.SeriesEntry, error) {
	entry, err := list.Find(arg)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, &apperrors.ErrSeriesNotFound{}) {
		return models.SeriesEntry{}, err
	}
	return list.FindByName(arg)
}
