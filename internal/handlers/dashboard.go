package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bookline/bookline/internal/model"
)

type dashboardResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Scheduled int    `json:"scheduled"`
	Completed int    `json:"completed"`
	Queued    int    `json:"queued"`
}

// Dashboard summarises one day's bookings plus the current queue depth.
// Defaults to today.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	date := model.Today()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := model.ParseCalendarDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		date = parsed
	}

	counts, err := h.repo.CountsForDate(r.Context(), ownerID, date)
	if err != nil {
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Date:      date.String(),
		Total:     counts.Total,
		Scheduled: counts.Scheduled,
		Completed: counts.Completed,
		Queued:    counts.Queued,
	})
}

type activityItem struct {
	ID            int64  `json:"id"`
	ActionType    string `json:"action_type"`
	Description   string `json:"description"`
	AppointmentID string `json:"appointment_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Activity returns the owner's most recent activity log entries, newest first.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.activity.ListRecent(r.Context(), ownerID, limit)
	if err != nil {
		http.Error(w, "failed to list activity", http.StatusInternalServerError)
		return
	}

	items := make([]activityItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, activityItem{
			ID:            e.ID,
			ActionType:    e.ActionType,
			Description:   e.Description,
			AppointmentID: e.AppointmentID,
			CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, items)
}
