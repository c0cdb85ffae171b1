package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
)

func TestToggleRoundTrip(t *testing.T) {
	a := &models.Artwork{Title: "Nighthawks"}
	b := &models.Artwork{Title: "A Sunday on La Grande Jatte"}

	var tr Tracker
	tr.Toggle(a, true)
	before := tr.Rows()

	tr.Toggle(b, true)
	assert.True(t, tr.Contains(b))
	tr.Toggle(b, false)

	assert.Equal(t, before, tr.Rows())
	assert.False(t, tr.Contains(b))
}

func TestToggleIgnoresDuplicates(t *testing.T) {
	a := &models.Artwork{Title: "Nighthawks"}

	var tr Tracker
	tr.Toggle(a, true)
	tr.Toggle(a, true)

	assert.Equal(t, 1, tr.Len())
}

func TestIdentityNotContent(t *testing.T) {
	a := &models.Artwork{Title: "The Bedroom", DateStart: 1889}
	refetched := &models.Artwork{Title: "The Bedroom", DateStart: 1889}

	var tr Tracker
	tr.Toggle(a, true)
	tr.Toggle(refetched, true)
	require.Equal(t, 2, tr.Len())

	tr.Toggle(refetched, false)
	assert.True(t, tr.Contains(a))
	assert.False(t, tr.Contains(refetched))
}

func TestUncheckAbsentRow(t *testing.T) {
	var tr Tracker
	tr.Toggle(&models.Artwork{}, false)
	tr.Toggle(nil, true)
	assert.Zero(t, tr.Len())
}

func TestRowsIsACopy(t *testing.T) {
	a := &models.Artwork{Title: "American Gothic"}

	var tr Tracker
	tr.Toggle(a, true)
	rows := tr.Rows()
	rows[0] = nil

	assert.True(t, tr.Contains(a))

	tr.Clear()
	assert.Zero(t, tr.Len())
}
