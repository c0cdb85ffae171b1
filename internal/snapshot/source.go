package snapshot

import (
	"context"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
	"github.com/lehigh-university-libraries/artgrid/internal/pagination"
)

// Source serves pages out of an in-memory snapshot, so the table works offline
type Source struct {
	rows []models.Artwork
}

func NewSource(rows []models.Artwork) *Source {
	return &Source{rows: rows}
}

// Open loads a snapshot file into a Source
func Open(path string) (*Source, error) {
	rows, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewSource(rows), nil
}

func (s *Source) Len() int {
	return len(s.rows)
}

// FetchPage returns a copy of the rows on a page; pages past the end are empty
func (s *Source) FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if page < 1 || limit < 1 || len(s.rows) == 0 || page-1 > (len(s.rows)-1)/limit {
		return []models.Artwork{}, nil
	}
	first, last := pagination.Range(page, limit)
	last = min(last, len(s.rows))

	out := make([]models.Artwork, last-first+1)
	copy(out, s.rows[first-1:last])
	return out, nil
}
