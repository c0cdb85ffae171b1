package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
)

func titles(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Artwork.Title
	}
	return out
}

func TestSortRows(t *testing.T) {
	rows := []Row{
		{Index: 0, Artwork: &models.Artwork{Title: "nighthawks", DateStart: 1942}},
		{Index: 1, Artwork: &models.Artwork{Title: "American Gothic", DateStart: 1930}},
		{Index: 2, Artwork: &models.Artwork{Title: "The Bedroom", DateStart: 1889}},
	}

	assert.Equal(t, []string{"American Gothic", "nighthawks", "The Bedroom"}, titles(SortRows(rows, "title", false)))
	assert.Equal(t, []string{"nighthawks", "American Gothic", "The Bedroom"}, titles(SortRows(rows, "date_start", true)))
	assert.Equal(t, []string{"nighthawks", "American Gothic", "The Bedroom"}, titles(SortRows(rows, "unknown", false)))

	sorted := SortRows(rows, "date_start", false)
	assert.Equal(t, 2, sorted[0].Index, "rows keep their result-set index after sorting")
	assert.Equal(t, "nighthawks", rows[0].Artwork.Title, "input is not reordered")
}
