package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bookline/bookline/internal/engine"
	"github.com/bookline/bookline/internal/model"
	"github.com/bookline/bookline/internal/outbox"
)

type queueItem struct {
	AppointmentID string `json:"appointment_id"`
	CustomerName  string `json:"customer_name"`
	ServiceID     string `json:"service_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	QueuePosition int    `json:"queue_position"`
}

// ListQueue returns the owner's waiting queue in position order.
func (h *Handler) ListQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	queued, err := h.repo.ListQueued(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "failed to list queue", http.StatusInternalServerError)
		return
	}

	items := make([]queueItem, 0, len(queued))
	for _, a := range queued {
		item := queueItem{
			AppointmentID: a.ID,
			CustomerName:  a.CustomerName,
			ServiceID:     a.ServiceID,
			Date:          a.Date.String(),
			Time:          a.Start.String(),
		}
		if a.QueuePosition != nil {
			item.QueuePosition = *a.QueuePosition
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

type assignFromQueueRequest struct {
	AppointmentID string `json:"appointment_id"`
}

// AssignFromQueue drains one queued appointment to the first bookable eligible
// staff member. Capacity is checked against today's load, so a queued booking
// for next week still counts against today's headroom; draining is a manual
// act happening now.
func (h *Handler) AssignFromQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req assignFromQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	snap, err := h.repo.Snapshot(ctx, ownerID)
	if err != nil {
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	assignment, ok := engine.AssignFromQueue(snap, req.AppointmentID, model.Today())
	if !ok {
		http.Error(w, "no staff member can take this appointment right now", http.StatusConflict)
		return
	}

	var assigned model.Appointment
	for _, a := range snap.Appointments {
		if a.ID == assignment.AppointmentID {
			assigned = a
			break
		}
	}
	staffID := assignment.StaffID
	assigned.StaffID = &staffID
	assigned.InQueue = false
	assigned.QueuePosition = nil

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.AssignAppointment(ctx, tx, ownerID, assignment.AppointmentID, assignment.StaffID); err != nil {
		http.Error(w, "failed to assign appointment", http.StatusInternalServerError)
		return
	}
	if err := h.repo.ApplyQueueUpdates(ctx, tx, ownerID, assignment.Renumbered); err != nil {
		http.Error(w, "failed to renumber queue", http.StatusInternalServerError)
		return
	}

	desc := engine.QueueAssignedDescription(assigned.CustomerName, assignment.StaffName)
	if err := h.activity.Record(ctx, tx, ownerID, "queue_assigned", desc, assignment.AppointmentID); err != nil {
		http.Error(w, "failed to record activity", http.StatusInternalServerError)
		return
	}

	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentAssigned, &assigned, map[string]any{
		"staff_name": assignment.StaffName,
	})
	if err == nil {
		err = h.outboxRepo.Insert(ctx, tx, evt)
	}
	if err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"appointment_id": assignment.AppointmentID,
		"staff_id":       assignment.StaffID,
		"staff_name":     assignment.StaffName,
	})
}
