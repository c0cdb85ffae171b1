package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed web
var webFS embed.FS

var pageTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"sortLink": func(field, currentSort, currentOrder string) string {
		order := "asc"
		if field == currentSort && currentOrder == "asc" {
			order = "desc"
		}
		return "?sort=" + field + "&order=" + order
	},
	"withQuery": func(path, query string) string {
		if query == "" {
			return path
		}
		return path + "?" + query
	},
}).ParseFS(webFS, "web/*.html"))

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filepath := strings.TrimPrefix(r.URL.Path, "/static/")

	// Prevent directory traversal attacks
	if filepath == "" || strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		h.logger.Error("Unable to open static assets", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	}

	http.ServeFileFS(w, r, static, filepath)
}
