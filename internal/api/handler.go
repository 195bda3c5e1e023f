// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github-jira-relay/internal/errors"
	"github-jira-relay/internal/model"
)

// Relayer handles one raw webhook delivery end to end.
type Relayer interface {
	Handle(ctx context.Context, kind model.EventKind, raw []byte) (*model.JiraEvent, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	relay  Relayer
	token  string
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
// The timeout bounds the full pipeline for a request, including the mapping
// store queries and the remote Jira call.
func NewRouter(relay Relayer, token string, timeout time.Duration, logger *slog.Logger) http.Handler {
	h := &Handler{
		relay:  relay,
		token:  token,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/status", h.status)
	r.Post("/issuesevent", h.issuesEvent)
	r.Post("/issuecommentevent", h.issueCommentEvent)

	return r
}

// status is a simple liveness endpoint.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{})
}

// issuesEvent handles a GitHub IssuesEvent webhook delivery.
// POST /issuesevent?token=<shared-secret>
func (h *Handler) issuesEvent(w http.ResponseWriter, r *http.Request) {
	h.handleEvent(w, r, model.IssuesEvent)
}

// issueCommentEvent handles a GitHub IssueCommentEvent webhook delivery.
// POST /issuecommentevent?token=<shared-secret>
func (h *Handler) issueCommentEvent(w http.ResponseWriter, r *http.Request) {
	h.handleEvent(w, r, model.IssueCommentEvent)
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request, kind model.EventKind) {
	token := r.URL.Query().Get("token")
	if token == "" || token != h.token {
		respondWithError(w, http.StatusForbidden, "missing or invalid token")
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	result, err := h.relay.Handle(r.Context(), kind, raw)
	if err != nil {
		h.respondToError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"result": result})
}

// respondToError maps the pipeline's error taxonomy to HTTP statuses:
// unhandled-but-recognized shapes are acknowledged with 202 so the sender
// does not retry them, broken payloads get 400, and propagation failures get
// 500, which the sender may retry by redelivering.
func (h *Handler) respondToError(w http.ResponseWriter, err error) {
	var parseErr *apperrors.ParseError
	var malformedErr *apperrors.MalformedPayloadError
	var propErr *apperrors.PropagationError

	switch {
	case errors.As(err, &parseErr):
		h.logger.Info("Ignoring event without a translation", "error", err)
		respondWithJSON(w, http.StatusAccepted, map[string]string{"reason": "could not parse payload"})
	case errors.As(err, &malformedErr):
		h.logger.Warn("Rejected malformed payload", "error", err)
		respondWithError(w, http.StatusBadRequest, malformedErr.Reason)
	case errors.As(err, &propErr):
		h.logger.Error("Failed to propagate event", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not propagate event to Jira")
	default:
		h.logger.Error("Failed to handle event", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"reason": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
