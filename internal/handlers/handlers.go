package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bookline/bookline/internal/activity"
	"github.com/bookline/bookline/internal/outbox"
	"github.com/bookline/bookline/internal/storage"
)

// Handler wires the decision engine between the HTTP surface and the
// repositories. Every mutating endpoint follows the same shape: fresh
// snapshot, engine decision, one transaction for the whole batch of writes.
type Handler struct {
	repo       *storage.Repository
	activity   *activity.Repository
	outboxRepo *outbox.Repository
	logger     *slog.Logger
}

func New(repo *storage.Repository, activityRepo *activity.Repository, outboxRepo *outbox.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:       repo,
		activity:   activityRepo,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

const OwnerIDHeader = "X-Owner-Id"

func ownerIDFromHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(OwnerIDHeader))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
