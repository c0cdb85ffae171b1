package selection

import "github.com/lehigh-university-libraries/artgrid/internal/models"

// Tracker holds the rows a user has checked, in the order they were checked.
// Membership is pointer identity: two equal records fetched separately are distinct entries.
// Callers serialize access.
type Tracker struct {
	rows []*models.Artwork
}

// Toggle adds row when checked and not already present, otherwise removes the first match
func (t *Tracker) Toggle(row *models.Artwork, checked bool) {
	if row == nil {
		return
	}

	i := t.index(row)
	if checked {
		if i == -1 {
			t.rows = append(t.rows, row)
		}
		return
	}

	if i != -1 {
		t.rows = append(t.rows[:i], t.rows[i+1:]...)
	}
}

func (t *Tracker) Contains(row *models.Artwork) bool {
	return t.index(row) != -1
}

func (t *Tracker) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the selected rows
func (t *Tracker) Rows() []*models.Artwork {
	rows := make([]*models.Artwork, len(t.rows))
	copy(rows, t.rows)
	return rows
}

func (t *Tracker) Clear() {
	t.rows = nil
}

func (t *Tracker) index(row *models.Artwork) int {
	for i, r := range t.rows {
		if r == row {
			return i
		}
	}
	return -1
}
