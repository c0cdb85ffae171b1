package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
	"github.com/lehigh-university-libraries/artgrid/internal/pagination"
	"github.com/lehigh-university-libraries/artgrid/internal/view"
)

type contentPage struct {
	State       view.State
	Rows        []view.Row
	Columns     []models.Column
	SizeOptions []int
	Sort        string
	Order       string
	Query       string
	First       int
	Last        int
}

// HandleContent renders the table for / and /page/{pageNumber}
func (h *Handler) HandleContent(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(chi.URLParam(r, "pageNumber"))
	v := h.sessionView(w, r)

	ctx, cancel := h.renderContext(r)
	defer cancel()
	v.Navigate(ctx, page)

	state := v.Snapshot()
	sortField, order := sortParams(r)
	first, last := pagination.Range(state.CurrentPage, state.PageSize)

	data := contentPage{
		State:       state,
		Rows:        view.SortRows(state.Rows, sortField, order == "desc"),
		Columns:     models.Columns,
		SizeOptions: pagination.SizeOptions,
		Sort:        sortField,
		Order:       order,
		Query:       r.URL.RawQuery,
		First:       first,
		Last:        last,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("Unable to render page", "page", page, "err", err)
	}
}

func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	path, _ := urlController(r).Next()
	h.redirect(w, r, path)
}

func (h *Handler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	c := urlController(r)
	path, ok := c.Previous()
	if !ok {
		path = pagination.Path(c.CurrentPage)
	}
	h.redirect(w, r, path)
}

func (h *Handler) HandleEditor(w http.ResponseWriter, r *http.Request) {
	h.sessionView(w, r).ToggleEditor()
	h.redirect(w, r, currentPath(r))
}

// HandlePageSize commits a new page size; malformed input is ignored
func (h *Handler) HandlePageSize(w http.ResponseWriter, r *http.Request) {
	v := h.sessionView(w, r)

	ctx, cancel := h.renderContext(r)
	defer cancel()
	if !v.SubmitPageSize(ctx, r.FormValue("value")) {
		h.logger.Debug("Page size rejected", "input", r.FormValue("value"))
	}
	h.redirect(w, r, currentPath(r))
}

// HandleGoTo navigates to an entered page number; malformed input stays on the current page
func (h *Handler) HandleGoTo(w http.ResponseWriter, r *http.Request) {
	path, ok := h.sessionView(w, r).SubmitPageNumber(r.FormValue("value"))
	if !ok {
		path = currentPath(r)
	}
	h.redirect(w, r, path)
}

// HandleSelect toggles a row of the page in the URL. Rows are only resolved
// when that page's results are the ones the session holds.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	page := urlController(r).CurrentPage
	index, err := strconv.Atoi(r.FormValue("row"))
	checked, _ := strconv.ParseBool(r.FormValue("checked"))
	if err != nil || !h.sessionView(w, r).Toggle(page, index, checked) {
		h.logger.Debug("Row toggle rejected", "page", page, "row", r.FormValue("row"))
	}
	h.redirect(w, r, pagination.Path(page))
}

func (h *Handler) HandleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.sessionView(w, r).ClearSelection()
	h.redirect(w, r, currentPath(r))
}

// redirect sends the browser to path, keeping the sort query
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	if q := r.URL.RawQuery; q != "" {
		path += "?" + q
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func urlController(r *http.Request) pagination.Controller {
	return pagination.NewController(chi.URLParam(r, "pageNumber"))
}

func currentPath(r *http.Request) string {
	return pagination.Path(urlController(r).CurrentPage)
}

func sortParams(r *http.Request) (string, string) {
	field := r.URL.Query().Get("sort")
	valid := false
	for _, col := range models.Columns {
		if col.Field == field {
			valid = true
			break
		}
	}
	if !valid {
		return "", ""
	}
	if r.URL.Query().Get("order") == "desc" {
		return field, "desc"
	}
	return field, "asc"
}
