package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bookline/bookline/internal/engine"
	"github.com/bookline/bookline/internal/model"
	"github.com/bookline/bookline/internal/outbox"
	"github.com/bookline/bookline/internal/storage"
)

type createAppointmentRequest struct {
	CustomerName string `json:"customer_name"`
	ServiceID    string `json:"service_id"`
	StaffID      string `json:"staff_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

type appointmentDecision struct {
	AppointmentID string   `json:"appointment_id"`
	StaffID       string   `json:"staff_id,omitempty"`
	StaffName     string   `json:"staff_name,omitempty"`
	Queued        bool     `json:"queued"`
	QueuePosition int      `json:"queue_position,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

type appointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	CustomerName  string `json:"customer_name"`
	ServiceID     string `json:"service_id"`
	StaffID       string `json:"staff_id,omitempty"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	InQueue       bool   `json:"in_queue"`
	QueuePosition int    `json:"queue_position,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Create books a new appointment. With an explicit staff_id the operator's
// choice wins: conflicts block, but capacity and leave only warn. Without one
// the engine picks first-fit or queues; a booking is never rejected for lack
// of staff.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.StaffID = strings.TrimSpace(req.StaffID)
	if req.CustomerName == "" || req.ServiceID == "" || req.Date == "" || req.Time == "" {
		http.Error(w, "customer_name, service_id, date and time are required", http.StatusBadRequest)
		return
	}

	date, err := model.ParseCalendarDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, err := model.ParseMinuteOfDay(req.Time)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	snap, err := h.repo.Snapshot(ctx, ownerID)
	if err != nil {
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}
	svc, ok := snap.ServiceByID(req.ServiceID)
	if !ok {
		http.Error(w, "unknown service_id", http.StatusUnprocessableEntity)
		return
	}

	appt := &model.Appointment{
		OwnerID:      ownerID,
		CustomerName: req.CustomerName,
		ServiceID:    svc.ID,
		Date:         date,
		Start:        start,
		Status:       model.StatusScheduled,
	}

	var (
		decision   appointmentDecision
		actionType string
		desc       string
		eventType  string
	)

	if req.StaffID != "" {
		staff, ok := snap.StaffByID(req.StaffID)
		if !ok {
			http.Error(w, "unknown staff_id", http.StatusUnprocessableEntity)
			return
		}
		if c := engine.FindConflict(snap.Appointments, snap.Services, staff.ID, date, start, svc.DurationMinutes, ""); c != nil {
			http.Error(w, fmt.Sprintf("time conflicts with an existing appointment at %s", c.Start), http.StatusConflict)
			return
		}
		decision.Warnings = explicitChoiceWarnings(snap, staff, date)
		staffID := staff.ID
		appt.StaffID = &staffID
		decision.StaffID = staff.ID
		decision.StaffName = staff.Name
		actionType = "appointment_created"
		desc = engine.AssignedDescription(appt.CustomerName, staff.Name)
		eventType = outbox.EventAppointmentCreated
	} else {
		assignment := engine.ResolveAssignment(snap, svc, date)
		if assignment.Queued {
			pos := assignment.Position
			appt.InQueue = true
			appt.QueuePosition = &pos
			decision.Queued = true
			decision.QueuePosition = pos
			actionType = "appointment_queued"
			desc = engine.QueuedDescription(appt.CustomerName, pos)
			eventType = outbox.EventAppointmentQueued
		} else {
			staffID := assignment.StaffID
			appt.StaffID = &staffID
			decision.StaffID = assignment.StaffID
			decision.StaffName = assignment.StaffName
			actionType = "appointment_created"
			desc = engine.AssignedDescription(appt.CustomerName, assignment.StaffName)
			eventType = outbox.EventAppointmentCreated
		}
	}

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := h.repo.CreateAppointment(ctx, tx, appt)
	if err != nil {
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}
	appt.ID = id
	decision.AppointmentID = id

	if err := h.activity.Record(ctx, tx, ownerID, actionType, desc, id); err != nil {
		http.Error(w, "failed to record activity", http.StatusInternalServerError)
		return
	}
	evt, err := outbox.AppointmentEvent(eventType, appt, nil)
	if err != nil {
		http.Error(w, "failed to build event", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, decision)
}

// explicitChoiceWarnings reports the advisories an operator override skips
// past: capacity and leave never block an explicit choice, they only warn.
func explicitChoiceWarnings(snap engine.Snapshot, staff model.StaffMember, date model.CalendarDate) []string {
	var warnings []string
	if staff.Availability == model.AvailabilityOnLeave {
		warnings = append(warnings, fmt.Sprintf("%s is on leave", staff.Name))
	}
	if load := engine.LoadOn(snap.Appointments, staff.ID, date); load >= staff.DailyCapacity {
		warnings = append(warnings, fmt.Sprintf("%s already has %d appointments on %s", staff.Name, load, date))
	}
	return warnings
}

type updateAppointmentRequest struct {
	AppointmentID string `json:"appointment_id"`
	CustomerName  string `json:"customer_name"`
	ServiceID     string `json:"service_id"`
	StaffID       string `json:"staff_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

// Update rewrites an appointment. Assigning staff to a queued appointment
// drains it from the queue; cancelling a queued appointment does the same.
// Either way the remaining queue is renumbered in the same transaction.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req updateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.StaffID = strings.TrimSpace(req.StaffID)
	if req.AppointmentID == "" || req.CustomerName == "" || req.ServiceID == "" || req.Date == "" || req.Time == "" {
		http.Error(w, "appointment_id, customer_name, service_id, date and time are required", http.StatusBadRequest)
		return
	}

	date, err := model.ParseCalendarDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, err := model.ParseMinuteOfDay(req.Time)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status := model.AppointmentStatus(req.Status)
	if req.Status == "" {
		status = model.StatusScheduled
	}
	if !validStatus(status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	snap, err := h.repo.Snapshot(ctx, ownerID)
	if err != nil {
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}
	svc, ok := snap.ServiceByID(req.ServiceID)
	if !ok {
		http.Error(w, "unknown service_id", http.StatusUnprocessableEntity)
		return
	}

	var decision appointmentDecision
	decision.AppointmentID = req.AppointmentID

	var newStaffID *string
	if req.StaffID != "" {
		staff, ok := snap.StaffByID(req.StaffID)
		if !ok {
			http.Error(w, "unknown staff_id", http.StatusUnprocessableEntity)
			return
		}
		// The appointment being edited must never conflict with itself.
		if c := engine.FindConflict(snap.Appointments, snap.Services, staff.ID, date, start, svc.DurationMinutes, req.AppointmentID); c != nil {
			http.Error(w, fmt.Sprintf("time conflicts with an existing appointment at %s", c.Start), http.StatusConflict)
			return
		}
		decision.Warnings = explicitChoiceWarnings(snap, staff, date)
		staffID := staff.ID
		newStaffID = &staffID
		decision.StaffID = staff.ID
		decision.StaffName = staff.Name
	}

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The queue-membership decision is made against the locked row, not the
	// pre-transaction snapshot.
	locked, err := h.repo.GetAppointmentForUpdate(ctx, tx, ownerID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	updated := locked
	updated.CustomerName = req.CustomerName
	updated.ServiceID = svc.ID
	updated.Date = date
	updated.Start = start
	updated.Status = status
	updated.StaffID = newStaffID

	wasQueued := locked.InQueue
	var renumbered []engine.QueueUpdate
	if appointmentLeavesQueue(wasQueued, newStaffID, status) {
		updated.InQueue = false
		updated.QueuePosition = nil
		renumbered = engine.Dequeue(snap.Appointments, updated.ID)
	}
	if updated.InQueue && updated.QueuePosition != nil {
		decision.Queued = true
		decision.QueuePosition = *updated.QueuePosition
	}

	if err := h.repo.UpdateAppointment(ctx, tx, &updated); err != nil {
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}
	if err := h.repo.ApplyQueueUpdates(ctx, tx, ownerID, renumbered); err != nil {
		http.Error(w, "failed to renumber queue", http.StatusInternalServerError)
		return
	}

	desc := fmt.Sprintf("Appointment for %q updated", updated.CustomerName)
	if err := h.activity.Record(ctx, tx, ownerID, "appointment_updated", desc, updated.ID); err != nil {
		http.Error(w, "failed to record activity", http.StatusInternalServerError)
		return
	}

	if wasQueued && updated.StaffID != nil {
		evt, err := outbox.AppointmentEvent(outbox.EventAppointmentAssigned, &updated, nil)
		if err == nil {
			err = h.outboxRepo.Insert(ctx, tx, evt)
		}
		if err != nil {
			http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

type cancelAppointmentRequest struct {
	AppointmentID string `json:"appointment_id"`
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req cancelAppointmentRequest
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

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := h.repo.GetAppointmentForUpdate(ctx, tx, ownerID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}
	if locked.Status == model.StatusCancelled {
		writeJSON(w, http.StatusOK, map[string]string{"appointment_id": locked.ID, "status": string(model.StatusCancelled)})
		return
	}

	updated := locked
	updated.Status = model.StatusCancelled
	var queueUpdates []engine.QueueUpdate
	if locked.InQueue {
		updated.InQueue = false
		updated.QueuePosition = nil
		queueUpdates = append(engine.Dequeue(snap.Appointments, locked.ID), engine.QueueUpdate{
			AppointmentID: locked.ID,
		})
	}

	if err := h.repo.SetAppointmentStatus(ctx, tx, ownerID, locked.ID, model.StatusCancelled); err != nil {
		http.Error(w, "failed to cancel appointment", http.StatusInternalServerError)
		return
	}
	if err := h.repo.ApplyQueueUpdates(ctx, tx, ownerID, queueUpdates); err != nil {
		http.Error(w, "failed to renumber queue", http.StatusInternalServerError)
		return
	}
	desc := fmt.Sprintf("Appointment for %q cancelled", updated.CustomerName)
	if err := h.activity.Record(ctx, tx, ownerID, "appointment_cancelled", desc, updated.ID); err != nil {
		http.Error(w, "failed to record activity", http.StatusInternalServerError)
		return
	}
	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentCancelled, &updated, nil)
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
	writeJSON(w, http.StatusOK, map[string]string{"appointment_id": updated.ID, "status": string(model.StatusCancelled)})
}

// Delete removes an appointment outright, renumbering the queue when the
// target was queued.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	snap, err := h.repo.Snapshot(ctx, ownerID)
	if err != nil {
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := h.repo.GetAppointmentForUpdate(ctx, tx, ownerID, id)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	var renumbered []engine.QueueUpdate
	if locked.InQueue {
		renumbered = engine.Dequeue(snap.Appointments, id)
	}

	if err := h.repo.DeleteAppointment(ctx, tx, ownerID, id); err != nil {
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}
	if err := h.repo.ApplyQueueUpdates(ctx, tx, ownerID, renumbered); err != nil {
		http.Error(w, "failed to renumber queue", http.StatusInternalServerError)
		return
	}
	desc := fmt.Sprintf("Appointment for %q deleted", locked.CustomerName)
	if err := h.activity.Record(ctx, tx, ownerID, "appointment_deleted", desc, ""); err != nil {
		http.Error(w, "failed to record activity", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	appts, err := h.repo.ListAppointments(r.Context(), ownerID, date, status, limit)
	if err != nil {
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, toAppointmentItem(a))
	}
	writeJSON(w, http.StatusOK, items)
}

func toAppointmentItem(a model.Appointment) appointmentItem {
	item := appointmentItem{
		AppointmentID: a.ID,
		CustomerName:  a.CustomerName,
		ServiceID:     a.ServiceID,
		Date:          a.Date.String(),
		Time:          a.Start.String(),
		Status:        string(a.Status),
		InQueue:       a.InQueue,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.StaffID != nil {
		item.StaffID = *a.StaffID
	}
	if a.QueuePosition != nil {
		item.QueuePosition = *a.QueuePosition
	}
	return item
}

// appointmentLeavesQueue reports whether an edit drains the appointment from
// the waiting queue: it was queued and is now either assigned or cancelled.
func appointmentLeavesQueue(wasQueued bool, staffID *string, status model.AppointmentStatus) bool {
	return wasQueued && (staffID != nil || status == model.StatusCancelled)
}

func validStatus(s model.AppointmentStatus) bool {
	switch s {
	case model.StatusScheduled, model.StatusCompleted, model.StatusCancelled, model.StatusNoShow:
		return true
	}
	return false
}
