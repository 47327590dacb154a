package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bookline/bookline/internal/model"
)

type serviceRequest struct {
	ServiceID         string `json:"service_id"`
	Name              string `json:"name"`
	DurationMinutes   int    `json:"duration_minutes"`
	RequiredStaffType string `json:"required_staff_type"`
}

type serviceItem struct {
	ServiceID         string `json:"service_id"`
	Name              string `json:"name"`
	DurationMinutes   int    `json:"duration_minutes"`
	RequiredStaffType string `json:"required_staff_type"`
}

func validDuration(minutes int) bool {
	for _, d := range model.ServiceDurations {
		if minutes == d {
			return true
		}
	}
	return false
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.RequiredStaffType = strings.TrimSpace(req.RequiredStaffType)
	if req.Name == "" || req.RequiredStaffType == "" {
		http.Error(w, "name and required_staff_type are required", http.StatusBadRequest)
		return
	}
	if !validDuration(req.DurationMinutes) {
		http.Error(w, fmt.Sprintf("duration_minutes must be one of %v", model.ServiceDurations), http.StatusBadRequest)
		return
	}

	svc := &model.Service{
		OwnerID:           ownerID,
		Name:              req.Name,
		DurationMinutes:   req.DurationMinutes,
		RequiredStaffType: req.RequiredStaffType,
	}
	id, err := h.repo.CreateService(r.Context(), svc)
	if err != nil {
		http.Error(w, "failed to create service", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"service_id": id})
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	services, err := h.repo.ListServices(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "failed to list services", http.StatusInternalServerError)
		return
	}
	items := make([]serviceItem, 0, len(services))
	for _, s := range services {
		items = append(items, serviceItem{
			ServiceID:         s.ID,
			Name:              s.Name,
			DurationMinutes:   s.DurationMinutes,
			RequiredStaffType: s.RequiredStaffType,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.Name = strings.TrimSpace(req.Name)
	req.RequiredStaffType = strings.TrimSpace(req.RequiredStaffType)
	if req.ServiceID == "" || req.Name == "" || req.RequiredStaffType == "" {
		http.Error(w, "service_id, name and required_staff_type are required", http.StatusBadRequest)
		return
	}
	if !validDuration(req.DurationMinutes) {
		http.Error(w, fmt.Sprintf("duration_minutes must be one of %v", model.ServiceDurations), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	existing, err := h.repo.GetService(ctx, ownerID, req.ServiceID)
	if err != nil {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	existing.Name = req.Name
	existing.DurationMinutes = req.DurationMinutes
	existing.RequiredStaffType = req.RequiredStaffType
	if err := h.repo.UpdateService(ctx, &existing); err != nil {
		http.Error(w, "failed to update service", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"service_id": existing.ID})
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
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
	if err := h.repo.DeleteService(r.Context(), ownerID, id); err != nil {
		http.Error(w, "failed to delete service", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Types returns the distinct skill types known to the owner, drawn from both
// the roster and the service catalog.
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID := ownerIDFromHeader(r)
	if ownerID == "" {
		http.Error(w, "missing X-Owner-Id", http.StatusBadRequest)
		return
	}

	types, err := h.repo.DistinctTypes(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "failed to list types", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types)
}
