package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/artgrid/internal/artic"
	"github.com/lehigh-university-libraries/artgrid/internal/export"
	"github.com/lehigh-university-libraries/artgrid/internal/pagination"
)

func newFetchCmd(rt *runtime) *cobra.Command {
	var page string
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one page of artworks and print it",
		Example: `  # Print page 3 as a table
  artgrid fetch --page 3

  # Export ten rows as CSV
  artgrid fetch --page 2 --limit 10 --format csv > page2.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.cfg
			if !cmd.Flags().Changed("limit") {
				limit = cfg.PageSize
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			client := artic.NewClient(cfg.APIURL, cfg.FetchTimeout)
			client.UserAgent = cfg.UserAgent

			p, err := client.FetchPageInfo(cmd.Context(), pagination.ParsePage(page), limit)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), format, p)
		},
	}

	cmd.Flags().StringVar(&page, "page", "1", "Page number (non-numeric values resolve to 1)")
	cmd.Flags().IntVar(&limit, "limit", pagination.DefaultPageSize, "Rows per page")
	cmd.Flags().StringVar(&format, "format", "table", "Output format ("+strings.Join(export.Formats, ", ")+")")

	return cmd
}
