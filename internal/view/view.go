package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
	"github.com/lehigh-university-libraries/artgrid/internal/pagination"
	"github.com/lehigh-university-libraries/artgrid/internal/selection"
)

// Fetcher returns one page of artworks
type Fetcher interface {
	FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error)
}

type fetchKey struct {
	page int
	size int
}

// View owns the state behind one browser session's table: page, page size,
// editor flag, pending input, result set and selection.
//
// Fetches are derived state. A fetch is issued only when (page, size) differs
// from the key of the previous fetch, and its result lands whenever it resolves.
// Overlapping fetches are not ordered: the last one to resolve wins.
type View struct {
	mu sync.Mutex

	ctx     context.Context
	fetcher Fetcher
	logger  *slog.Logger

	currentPage  int
	pageSize     int
	editorOpen   bool
	pendingInput string

	results   []*models.Artwork
	landed    fetchKey
	selection selection.Tracker

	key      fetchKey
	issued   bool
	done     chan struct{}
	inflight int
}

// Row is a rendered result row. Index points back into the result set.
type Row struct {
	Index    int
	Artwork  *models.Artwork
	Selected bool
}

// State is a point-in-time copy of a view for rendering
type State struct {
	CurrentPage  int
	PageSize     int
	EditorOpen   bool
	PendingInput string
	Loading      bool
	Rows         []Row
	Selected     []*models.Artwork
}

// New creates a view. ctx bounds every fetch the view issues.
func New(ctx context.Context, fetcher Fetcher, pageSize int, logger *slog.Logger) *View {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &View{
		ctx:         ctx,
		fetcher:     fetcher,
		logger:      logger,
		currentPage: 1,
		pageSize:    pageSize,
		results:     []*models.Artwork{},
	}
}

// Navigate sets the current page resolved from the URL and waits, at most
// until ctx is done, for the data of that page.
func (v *View) Navigate(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}

	v.mu.Lock()
	v.currentPage = page
	done := v.syncLocked()
	v.mu.Unlock()

	wait(ctx, done)
}

// SubmitPageSize commits a positive page size and closes the editor.
// Anything else is ignored and the editor stays open.
func (v *View) SubmitPageSize(ctx context.Context, input string) bool {
	size, ok := pagination.ParsePositive(input)

	v.mu.Lock()
	v.pendingInput = input
	if !ok {
		v.mu.Unlock()
		return false
	}
	v.pageSize = size
	v.editorOpen = false
	done := v.syncLocked()
	v.mu.Unlock()

	wait(ctx, done)
	return true
}

// SubmitPageNumber returns the path of an explicitly entered page
func (v *View) SubmitPageNumber(input string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingInput = input
	return pagination.Controller{CurrentPage: v.currentPage}.GoTo(input)
}

// ToggleEditor opens or closes the page-size editor
func (v *View) ToggleEditor() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editorOpen = !v.editorOpen
}

// Toggle checks or unchecks the row at index in the result set of page.
// It reports false when the displayed results belong to another page or
// index is out of range.
func (v *View) Toggle(page, index int, checked bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.landed.page != page || index < 0 || index >= len(v.results) {
		return false
	}
	v.selection.Toggle(v.results[index], checked)
	return true
}

func (v *View) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Clear()
}

func (v *View) Selected() []*models.Artwork {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Rows()
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]Row, len(v.results))
	for i, a := range v.results {
		rows[i] = Row{Index: i, Artwork: a, Selected: v.selection.Contains(a)}
	}

	return State{
		CurrentPage:  v.currentPage,
		PageSize:     v.pageSize,
		EditorOpen:   v.editorOpen,
		PendingInput: v.pendingInput,
		Loading:      v.inflight > 0,
		Rows:         rows,
		Selected:     v.selection.Rows(),
	}
}

// syncLocked issues a fetch when the inputs changed since the last one and
// returns a channel closed once the relevant fetch has landed.
func (v *View) syncLocked() <-chan struct{} {
	key := fetchKey{page: v.currentPage, size: v.pageSize}
	if v.issued && key == v.key {
		return v.done
	}

	done := make(chan struct{})
	v.key = key
	v.issued = true
	v.done = done
	v.inflight++

	go v.fetchPage(key, done)
	return done
}

func (v *View) fetchPage(key fetchKey, done chan struct{}) {
	defer close(done)

	rows, err := v.fetch(key)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inflight--
	v.landed = key

	if err != nil {
		v.logger.Error("Error fetching artworks", "page", key.page, "limit", key.size, "err", err)
		v.results = []*models.Artwork{}
		// Let the next request for the same page issue a fresh fetch, as a reload would.
		if v.key == key {
			v.issued = false
		}
		return
	}

	results := make([]*models.Artwork, len(rows))
	for i := range rows {
		results[i] = &rows[i]
	}
	v.results = results
	v.logger.Debug("Artworks fetched", "page", key.page, "limit", key.size, "rows", len(results))
}

// fetch reports a panicking fetcher as a failed fetch. It runs outside any
// request goroutine, where no recoverer is installed.
func (v *View) fetch(key fetchKey) (rows []models.Artwork, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetcher panicked: %v", r)
		}
	}()
	return v.fetcher.FetchPage(v.ctx, key.page, key.size)
}

func wait(ctx context.Context, done <-chan struct{}) {
	select {
	case <-done:
	case <-ctx.Done():
	}
}
