package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
)

// Formats lists the supported output formats
var Formats = []string{"table", "json", "csv", "yaml"}

// Write renders a page of artworks in the given format
func Write(w io.Writer, format string, page *models.Page) error {
	switch format {
	case "table":
		return writeTable(w, page.Data)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(page)
	case "csv":
		return writeCSV(w, page.Data)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(page); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeTable(w io.Writer, rows []models.Artwork) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range models.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col.Header)
	}
	fmt.Fprintln(tw)

	for i := range rows {
		for j, col := range models.Columns {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, truncate(oneLine(rows[i].Value(col.Field)), 40))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, rows []models.Artwork) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(models.Columns))
	for i, col := range models.Columns {
		header[i] = col.Header
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range rows {
		record := make([]string, len(models.Columns))
		for j, col := range models.Columns {
			record[j] = rows[i].Value(col.Field)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
