package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
)

type call struct {
	page  int
	limit int
}

// fakeFetcher answers with limit synthetic rows, or err when set
type fakeFetcher struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{page: page, limit: limit})
	if f.err != nil {
		return nil, f.err
	}
	rows := make([]models.Artwork, limit)
	for i := range rows {
		n := (page-1)*limit + i + 1
		rows[i] = models.Artwork{
			Title:         fmt.Sprintf("Artwork %d", n),
			PlaceOfOrigin: "France",
			ArtistDisplay: fmt.Sprintf("Artist %d", n),
			Inscriptions:  "signed",
			DateStart:     1800 + n,
			DateEnd:       1801 + n,
		}
	}
	return rows, nil
}

func (f *fakeFetcher) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestView(f Fetcher, size int) *View {
	return New(context.Background(), f, size, quietLogger())
}

func TestNavigateFetchesPage(t *testing.T) {
	f := &fakeFetcher{}
	v := newTestView(f, 10)

	v.Navigate(context.Background(), 3)
	state := v.Snapshot()

	assert.Equal(t, []call{{page: 3, limit: 10}}, f.Calls())
	assert.Equal(t, 3, state.CurrentPage)
	require.Len(t, state.Rows, 10)
	assert.Equal(t, "Artwork 21", state.Rows[0].Artwork.Title)
	assert.Equal(t, "Artist 30", state.Rows[9].Artwork.ArtistDisplay)
	assert.False(t, state.Loading)
}

func TestNavigateClampsPage(t *testing.T) {
	f := &fakeFetcher{}
	v := newTestView(f, 5)

	v.Navigate(context.Background(), 0)
	assert.Equal(t, 1, v.Snapshot().CurrentPage)
	assert.Equal(t, []call{{page: 1, limit: 5}}, f.Calls())
}

func TestFetchOnlyOnInputChange(t *testing.T) {
	f := &fakeFetcher{}
	v := newTestView(f, 20)
	ctx := context.Background()

	v.Navigate(ctx, 2)
	v.Navigate(ctx, 2)
	v.Snapshot()
	v.Navigate(ctx, 2)
	assert.Len(t, f.Calls(), 1, "re-rendering the same page must not refetch")

	v.Navigate(ctx, 3)
	require.True(t, v.SubmitPageSize(ctx, "30"))
	assert.Equal(t, []call{{2, 20}, {3, 20}, {3, 30}}, f.Calls())
}

func TestFetchFailureEmptiesResults(t *testing.T) {
	f := &fakeFetcher{}
	v := newTestView(f, 10)
	ctx := context.Background()

	v.Navigate(ctx, 2)
	require.Len(t, v.Snapshot().Rows, 10)

	f.mu.Lock()
	f.err = errors.New("connection refused")
	f.mu.Unlock()

	v.Navigate(ctx, 3)
	state := v.Snapshot()
	assert.Empty(t, state.Rows)
	assert.Equal(t, 3, state.CurrentPage)

	// A later request for the same page tries again
	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()
	v.Navigate(ctx, 3)
	assert.Len(t, v.Snapshot().Rows, 10)
}

func TestSubmitPageSize(t *testing.T) {
	ctx := context.Background()

	for _, input := range []string{"0", "-5", "abc", ""} {
		t.Run("rejects "+input, func(t *testing.T) {
			f := &fakeFetcher{}
			v := newTestView(f, 20)
			v.Navigate(ctx, 1)
			v.ToggleEditor()

			assert.False(t, v.SubmitPageSize(ctx, input))

			state := v.Snapshot()
			assert.Equal(t, 20, state.PageSize)
			assert.True(t, state.EditorOpen)
			assert.Len(t, state.Rows, 20)
			assert.Equal(t, input, state.PendingInput)
			assert.Len(t, f.Calls(), 1)
		})
	}

	t.Run("accepts 30", func(t *testing.T) {
		f := &fakeFetcher{}
		v := newTestView(f, 20)
		v.Navigate(ctx, 1)
		v.ToggleEditor()

		assert.True(t, v.SubmitPageSize(ctx, "30"))

		state := v.Snapshot()
		assert.Equal(t, 30, state.PageSize)
		assert.False(t, state.EditorOpen)
		assert.Len(t, state.Rows, 30)
	})
}

func TestSubmitPageNumber(t *testing.T) {
	f := &fakeFetcher{}
	v := newTestView(f, 10)
	v.Navigate(context.Background(), 5)

	path, ok := v.SubmitPageNumber("9")
	assert.True(t, ok)
	assert.Equal(t, "/page/9", path)
	assert.Equal(t, "9", v.Snapshot().PendingInput)

	_, ok = v.SubmitPageNumber("nine")
	assert.False(t, ok)
	assert.Equal(t, 5, v.Snapshot().CurrentPage, "navigation happens through the URL, not here")
	assert.Len(t, f.Calls(), 1)
}

func TestSelectionSurvivesNavigation(t *testing.T) {
	v := newTestView(&fakeFetcher{}, 3)
	ctx := context.Background()

	v.Navigate(ctx, 1)
	require.True(t, v.Toggle(1, 1, true))
	assert.False(t, v.Toggle(1, 7, true))
	assert.False(t, v.Toggle(1, -1, true))

	state := v.Snapshot()
	assert.True(t, state.Rows[1].Selected)
	assert.False(t, state.Rows[0].Selected)

	v.Navigate(ctx, 2)
	selected := v.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "Artwork 2", selected[0].Title)

	// Refetched page 1 rows are new records, so nothing shows as checked
	v.Navigate(ctx, 1)
	for _, row := range v.Snapshot().Rows {
		assert.False(t, row.Selected)
	}

	v.ClearSelection()
	assert.Empty(t, v.Selected())
}

func TestToggleRoundTrip(t *testing.T) {
	v := newTestView(&fakeFetcher{}, 3)
	v.Navigate(context.Background(), 1)

	v.Toggle(1, 0, true)
	before := v.Selected()

	v.Toggle(1, 2, true)
	v.Toggle(1, 2, false)

	assert.Equal(t, before, v.Selected())
}

func TestToggleRejectsOtherPage(t *testing.T) {
	v := newTestView(&fakeFetcher{}, 3)
	ctx := context.Background()

	assert.False(t, v.Toggle(1, 0, true), "nothing has landed yet")

	v.Navigate(ctx, 1)
	v.Navigate(ctx, 2)

	assert.False(t, v.Toggle(1, 0, true))
	assert.Empty(t, v.Selected())

	require.True(t, v.Toggle(2, 0, true))
	assert.Equal(t, "Artwork 4", v.Selected()[0].Title)
}

type panickingFetcher struct{}

func (panickingFetcher) FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	var rows []models.Artwork
	return rows[page:], nil
}

func TestFetcherPanicEmptiesResults(t *testing.T) {
	v := newTestView(panickingFetcher{}, 3)

	v.Navigate(context.Background(), 4)
	state := v.Snapshot()

	assert.Empty(t, state.Rows)
	assert.False(t, state.Loading)
}

// gatedFetcher blocks each page until the test releases it
type gatedFetcher struct {
	gates map[int]chan struct{}
}

func (g *gatedFetcher) FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	select {
	case <-g.gates[page]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []models.Artwork{{Title: fmt.Sprintf("page %d", page)}}, nil
}

func TestLastResolvedFetchWins(t *testing.T) {
	g := &gatedFetcher{gates: map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})}}
	v := newTestView(g, 1)

	// Neither request waits for its fetch
	expired, cancel := context.WithCancel(context.Background())
	cancel()
	v.Navigate(expired, 1)
	v.Navigate(expired, 2)
	assert.True(t, v.Snapshot().Loading)

	// Page 2 resolves first, then the stale page 1 response lands on top of it
	close(g.gates[2])
	require.Eventually(t, func() bool { return len(v.Snapshot().Rows) == 1 }, time.Second, time.Millisecond)
	close(g.gates[1])
	require.Eventually(t, func() bool {
		s := v.Snapshot()
		return !s.Loading && len(s.Rows) == 1 && s.Rows[0].Artwork.Title == "page 1"
	}, time.Second, time.Millisecond)

	assert.Equal(t, 2, v.Snapshot().CurrentPage)
}

func TestHungFetchKeepsPreviousRows(t *testing.T) {
	g := &gatedFetcher{gates: map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})}}
	close(g.gates[1])
	t.Cleanup(func() { close(g.gates[2]) })
	v := newTestView(g, 1)

	v.Navigate(context.Background(), 1)
	require.Len(t, v.Snapshot().Rows, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	v.Navigate(ctx, 2)

	state := v.Snapshot()
	assert.Equal(t, 2, state.CurrentPage)
	require.Len(t, state.Rows, 1)
	assert.Equal(t, "page 1", state.Rows[0].Artwork.Title)
	assert.True(t, state.Loading)
}
