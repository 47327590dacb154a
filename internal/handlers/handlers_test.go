package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/bookline/bookline/internal/engine"
	"github.com/bookline/bookline/internal/model"
)

func TestOwnerIDFromHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	if got := ownerIDFromHeader(r); got != "" {
		t.Fatalf("expected empty owner id, got %q", got)
	}
	r.Header.Set(OwnerIDHeader, "  owner-1  ")
	if got := ownerIDFromHeader(r); got != "owner-1" {
		t.Fatalf("owner id = %q, want owner-1", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []model.AppointmentStatus{
		model.StatusScheduled, model.StatusCompleted, model.StatusCancelled, model.StatusNoShow,
	} {
		if !validStatus(s) {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if validStatus("Pending") {
		t.Fatal("unknown status should be invalid")
	}
}

func TestValidDuration(t *testing.T) {
	for _, d := range model.ServiceDurations {
		if !validDuration(d) {
			t.Fatalf("duration %d should be valid", d)
		}
	}
	if validDuration(45) {
		t.Fatal("duration 45 should be invalid")
	}
}

func TestAppointmentLeavesQueue(t *testing.T) {
	staffID := "s1"
	cases := []struct {
		name      string
		wasQueued bool
		staffID   *string
		status    model.AppointmentStatus
		want      bool
	}{
		{"queued gets staff", true, &staffID, model.StatusScheduled, true},
		{"queued gets cancelled", true, nil, model.StatusCancelled, true},
		{"queued stays queued", true, nil, model.StatusScheduled, false},
		{"not queued", false, &staffID, model.StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := appointmentLeavesQueue(tc.wasQueued, tc.staffID, tc.status); got != tc.want {
			t.Fatalf("%s: appointmentLeavesQueue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExplicitChoiceWarnings(t *testing.T) {
	staffID := "s1"
	date := model.CalendarDate("2026-09-01")
	staff := model.StaffMember{
		ID:            staffID,
		Name:          "Mina",
		DailyCapacity: 1,
		Availability:  model.AvailabilityOnLeave,
	}
	snap := engine.Snapshot{
		Staff: []model.StaffMember{staff},
		Appointments: []model.Appointment{
			{ID: "a1", StaffID: &staffID, Date: date, Status: model.StatusScheduled},
		},
	}

	warnings := explicitChoiceWarnings(snap, staff, date)
	if len(warnings) != 2 {
		t.Fatalf("expected leave and capacity warnings, got %v", warnings)
	}

	staff.Availability = model.AvailabilityAvailable
	staff.DailyCapacity = 5
	if warnings := explicitChoiceWarnings(snap, staff, date); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}
