package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/artgrid/internal/artic"
	"github.com/lehigh-university-libraries/artgrid/internal/models"
	"github.com/lehigh-university-libraries/artgrid/internal/snapshot"
	"github.com/lehigh-university-libraries/artgrid/internal/view"
)

func newSnapshotCmd(rt *runtime) *cobra.Command {
	var output string
	var from, pages, limit, concurrency int

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save a range of pages to a Parquet or JSONL file",
		Long: `Fetches consecutive pages from the artworks API and writes them, in page
order, to a snapshot file. The file format follows the extension
(.parquet or .jsonl). Serve it offline with: artgrid serve --snapshot FILE`,
		Example: `  # Save the first 10 pages of 100 rows
  artgrid snapshot --output artworks.parquet --pages 10 --limit 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from < 1 || pages < 1 || limit < 1 || concurrency < 1 {
				return fmt.Errorf("--from, --pages, --limit and --concurrency must be positive")
			}

			client := artic.NewClient(rt.cfg.APIURL, rt.cfg.FetchTimeout)
			client.UserAgent = rt.cfg.UserAgent

			rows, err := fetchRange(cmd.Context(), client, from, pages, limit, concurrency)
			if err != nil {
				return err
			}
			if err := snapshot.Write(output, rows); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d artworks to %s\n", len(rows), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "artworks.parquet", "Snapshot file (.parquet or .jsonl)")
	cmd.Flags().IntVar(&from, "from", 1, "First page to fetch")
	cmd.Flags().IntVar(&pages, "pages", 5, "Number of pages to fetch")
	cmd.Flags().IntVar(&limit, "limit", 100, "Rows per page")
	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "Pages fetched in parallel")

	return cmd
}

// fetchRange fetches pages [from, from+pages) and returns their rows in page order.
// It stops early after the first empty page.
func fetchRange(ctx context.Context, fetcher view.Fetcher, from, pages, limit, concurrency int) ([]models.Artwork, error) {
	results := make([][]models.Artwork, pages)
	errs := make([]error, pages)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < pages; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			page := from + idx
			slog.Info("Fetching page", "page", page, "progress", fmt.Sprintf("%d/%d", idx+1, pages))
			results[idx], errs[idx] = fetcher.FetchPage(ctx, page, limit)
		}(i)
	}
	wg.Wait()

	var rows []models.Artwork
	for i := range results {
		if errs[i] != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", from+i, errs[i])
		}
		if len(results[i]) == 0 {
			slog.Info("Reached an empty page, stopping", "page", from+i)
			break
		}
		rows = append(rows, results[i]...)
	}
	return rows, nil
}
