package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bookline/bookline/internal/engine"
	"github.com/bookline/bookline/internal/model"
	"github.com/bookline/bookline/internal/outbox"
)

type staffRequest struct {
	StaffID       string `json:"staff_id"`
	Name          string `json:"name"`
	ServiceType   string `json:"service_type"`
	DailyCapacity int    `json:"daily_capacity"`
	Availability  string `json:"availability"`
}

type staffItem struct {
	StaffID       string `json:"staff_id"`
	Name          string `json:"name"`
	ServiceType   string `json:"service_type"`
	DailyCapacity int    `json:"daily_capacity"`
	Availability  string `json:"availability"`
	Load          int    `json:"load"`
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	if req.Name == "" || req.ServiceType == "" {
		http.Error(w, "name and service_type are required", http.StatusBadRequest)
		return
	}
	if req.DailyCapacity < 1 {
		http.Error(w, "daily_capacity must be at least 1", http.StatusBadRequest)
		return
	}
	availability := model.Availability(req.Availability)
	if req.Availability == "" {
		availability = model.AvailabilityAvailable
	}
	if availability != model.AvailabilityAvailable && availability != model.AvailabilityOnLeave {
		http.Error(w, "invalid availability", http.StatusBadRequest)
		return
	}

	s := &model.StaffMember{
		OwnerID:       ownerID,
		Name:          req.Name,
		ServiceType:   req.ServiceType,
		DailyCapacity: req.DailyCapacity,
		Availability:  availability,
	}
	id, err := h.repo.CreateStaff(r.Context(), s)
	if err != nil {
		http.Error(w, "failed to create staff member", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"staff_id": id})
}

// ListStaff returns the roster with each member's booking load, so callers
// see capacity headroom without a second request. The date query parameter
// selects which day's load to report; default today.
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
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

	snap, err := h.repo.Snapshot(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	items := make([]staffItem, 0, len(snap.Staff))
	for _, s := range snap.Staff {
		items = append(items, staffItem{
			StaffID:       s.ID,
			Name:          s.Name,
			ServiceType:   s.ServiceType,
			DailyCapacity: s.DailyCapacity,
			Availability:  string(s.Availability),
			Load:          engine.LoadOn(snap.Appointments, s.ID, date),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// UpdateStaff edits name, skill type and capacity. Availability moves through
// SetAvailability so the on-leave cascade always runs.
func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	req.Name = strings.TrimSpace(req.Name)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	if req.StaffID == "" || req.Name == "" || req.ServiceType == "" {
		http.Error(w, "staff_id, name and service_type are required", http.StatusBadRequest)
		return
	}
	if req.DailyCapacity < 1 {
		http.Error(w, "daily_capacity must be at least 1", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	existing, err := h.repo.GetStaff(ctx, ownerID, req.StaffID)
	if err != nil {
		http.Error(w, "staff member not found", http.StatusNotFound)
		return
	}
	existing.Name = req.Name
	existing.ServiceType = req.ServiceType
	existing.DailyCapacity = req.DailyCapacity
	if err := h.repo.UpdateStaff(ctx, &existing); err != nil {
		http.Error(w, "failed to update staff member", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"staff_id": existing.ID})
}

type availabilityRequest struct {
	StaffID      string `json:"staff_id"`
	Availability string `json:"availability"`
}

// SetAvailability flips a staff member between Available and On Leave. Going
// on leave moves the member's upcoming scheduled appointments into the queue,
// same as deleting them would.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	availability := model.Availability(req.Availability)
	if req.StaffID == "" {
		http.Error(w, "staff_id required", http.StatusBadRequest)
		return
	}
	if availability != model.AvailabilityAvailable && availability != model.AvailabilityOnLeave {
		http.Error(w, "invalid availability", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	snap, err := h.repo.Snapshot(ctx, ownerID)
	if err != nil {
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}
	staff, ok := snap.StaffByID(req.StaffID)
	if !ok {
		http.Error(w, "staff member not found", http.StatusNotFound)
		return
	}

	var moved []engine.QueueUpdate
	if availability == model.AvailabilityOnLeave && staff.Availability != model.AvailabilityOnLeave {
		moved = engine.CascadeRemoval(snap.Appointments, staff.ID, model.Today())
	}

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.SetStaffAvailability(ctx, tx, ownerID, staff.ID, availability); err != nil {
		http.Error(w, "failed to update availability", http.StatusInternalServerError)
		return
	}
	if err := h.applyCascade(ctx, tx, ownerID, staff, moved); err != nil {
		http.Error(w, "failed to move appointments to queue", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"staff_id":     staff.ID,
		"availability": string(availability),
		"moved":        len(moved),
	})
}

// DeleteStaff removes a staff member and moves their upcoming scheduled
// appointments into the waiting queue. Past and finished appointments keep
// their history untouched.
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
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
	staff, ok := snap.StaffByID(id)
	if !ok {
		http.Error(w, "staff member not found", http.StatusNotFound)
		return
	}

	moved := engine.CascadeRemoval(snap.Appointments, staff.ID, model.Today())

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Queue moves first: the cascade clears staff_id on the affected rows
	// before the staff row goes away.
	if err := h.applyCascade(ctx, tx, ownerID, staff, moved); err != nil {
		http.Error(w, "failed to move appointments to queue", http.StatusInternalServerError)
		return
	}
	if err := h.repo.DeleteStaff(ctx, tx, ownerID, staff.ID); err != nil {
		http.Error(w, "failed to delete staff member", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"staff_id": staff.ID,
		"moved":    len(moved),
	})
}

// applyCascade persists cascade queue moves and, when any happened, records
// the activity entry and outbox event in the same transaction.
func (h *Handler) applyCascade(ctx context.Context, tx pgx.Tx, ownerID string, staff model.StaffMember, moved []engine.QueueUpdate) error {
	if len(moved) == 0 {
		return nil
	}
	if err := h.repo.ApplyQueueUpdates(ctx, tx, ownerID, moved); err != nil {
		return err
	}
	desc := engine.CascadeDescription(staff.Name, len(moved))
	if err := h.activity.Record(ctx, tx, ownerID, "staff_cascade", desc, ""); err != nil {
		return err
	}

	ids := make([]string, 0, len(moved))
	for _, u := range moved {
		ids = append(ids, u.AppointmentID)
	}
	payload, err := json.Marshal(map[string]any{
		"owner_id":        ownerID,
		"staff_id":        staff.ID,
		"staff_name":      staff.Name,
		"appointment_ids": ids,
	})
	if err != nil {
		return err
	}
	return h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "staff",
		AggregateID:   staff.ID,
		EventType:     outbox.EventStaffCascade,
		Payload:       payload,
	})
}
