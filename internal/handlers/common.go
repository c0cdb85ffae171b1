package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/artgrid/internal/storage"
	"github.com/lehigh-university-libraries/artgrid/internal/view"
)

const sessionCookie = "artgrid_session"

type Handler struct {
	sessionStore *storage.SessionStore
	fetcher      view.Fetcher
	logger       *slog.Logger
	renderWait   time.Duration
}

// Options configures a Handler
type Options struct {
	// Ctx bounds every fetch issued by session views
	Ctx        context.Context
	Fetcher    view.Fetcher
	PageSize   int
	RenderWait time.Duration
	Logger     *slog.Logger
}

func New(opts Options) *Handler {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RenderWait <= 0 {
		opts.RenderWait = 10 * time.Second
	}

	viewLogger := opts.Logger.With("component", "view")
	return &Handler{
		sessionStore: storage.New(func() *view.View {
			return view.New(opts.Ctx, opts.Fetcher, opts.PageSize, viewLogger)
		}),
		fetcher:    opts.Fetcher,
		logger:     opts.Logger,
		renderWait: opts.RenderWait,
	}
}

// Sessions exposes the session store, for expiry
func (h *Handler) Sessions() *storage.SessionStore {
	return h.sessionStore
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.logger.Error(message, "status", code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Session helpers

// sessionView returns the caller's view, issuing a session cookie on first visit
func (h *Handler) sessionView(w http.ResponseWriter, r *http.Request) *view.View {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return h.sessionStore.GetOrCreate(c.Value)
		}
	}

	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Debug("Session created", "session_id", sessionID)
	return h.sessionStore.GetOrCreate(sessionID)
}

// renderContext bounds how long a request waits for its view's fetch
func (h *Handler) renderContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.renderWait)
}
