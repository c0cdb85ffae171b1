package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
	"github.com/lehigh-university-libraries/artgrid/internal/view"
)

type emptyFetcher struct{}

func (emptyFetcher) FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	return nil, nil
}

func newStore() *SessionStore {
	return New(func() *view.View {
		return view.New(context.Background(), emptyFetcher{}, 20, nil)
	})
}

func TestGetOrCreate(t *testing.T) {
	s := newStore()

	_, ok := s.Get("a")
	assert.False(t, ok)

	first := s.GetOrCreate("a")
	assert.Same(t, first, s.GetOrCreate("a"))
	assert.NotSame(t, first, s.GetOrCreate("b"))
	assert.Equal(t, 2, s.Len())

	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Same(t, first, got)

	s.Delete("a")
	assert.Equal(t, 1, s.Len())
}

func TestExpire(t *testing.T) {
	s := newStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.GetOrCreate("stale")
	now = now.Add(time.Hour)
	s.GetOrCreate("fresh")

	assert.Equal(t, 1, s.Expire(30*time.Minute))
	_, ok := s.Get("fresh")
	assert.True(t, ok)
	_, ok = s.Get("stale")
	assert.False(t, ok)
}
