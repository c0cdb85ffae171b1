package view

import (
	"cmp"
	"slices"
	"strings"
)

// SortRows returns rows ordered by a column field. Unknown fields keep the fetched order.
func SortRows(rows []Row, field string, desc bool) []Row {
	sorted := slices.Clone(rows)

	var compare func(a, b Row) int
	switch field {
	case "date_start":
		compare = func(a, b Row) int { return cmp.Compare(a.Artwork.DateStart, b.Artwork.DateStart) }
	case "date_end":
		compare = func(a, b Row) int { return cmp.Compare(a.Artwork.DateEnd, b.Artwork.DateEnd) }
	case "title", "place_of_origin", "artist_display", "inscriptions":
		compare = func(a, b Row) int {
			return strings.Compare(strings.ToLower(a.Artwork.Value(field)), strings.ToLower(b.Artwork.Value(field)))
		}
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b Row) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}
