package engine

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func TestFindConflict_OverlappingSlot(t *testing.T) {
	services := []model.Service{testService("cut", "Barber", 30)}
	appts := []model.Appointment{
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled), // 09:00-09:30
	}

	got := FindConflict(appts, services, "s1", "2026-09-01", 555, 30, "")
	if got == nil {
		t.Fatal("expected conflict for 09:15 booking against 09:00-09:30")
	}
	if got.ID != "a1" {
		t.Fatalf("expected conflicting appointment a1, got %s", got.ID)
	}
}

func TestFindConflict_TouchingBoundaryDoesNotConflict(t *testing.T) {
	services := []model.Service{testService("cut", "Barber", 30)}
	appts := []model.Appointment{
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled), // ends 09:30
	}

	// New 15-minute booking at exactly 09:30 for the same staff member.
	if HasConflict(appts, services, "s1", "2026-09-01", 570, 15, "") {
		t.Fatal("appointment starting exactly when another ends must not conflict")
	}
}

func TestFindConflict_SelfExclusionOnEdit(t *testing.T) {
	services := []model.Service{testService("cut", "Barber", 30)}
	appts := []model.Appointment{
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled),
	}

	// Editing a1 to the same slot: must not conflict with itself.
	if HasConflict(appts, services, "s1", "2026-09-01", 540, 30, "a1") {
		t.Fatal("appointment must not conflict with itself when excluded")
	}
	// Without the exclusion the same check does conflict.
	if !HasConflict(appts, services, "s1", "2026-09-01", 540, 30, "") {
		t.Fatal("expected conflict without exclusion")
	}
}

func TestFindConflict_CancelledDoesNotBlock(t *testing.T) {
	services := []model.Service{testService("cut", "Barber", 30)}
	appts := []model.Appointment{
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusCancelled),
	}

	if HasConflict(appts, services, "s1", "2026-09-01", 540, 30, "") {
		t.Fatal("cancelled appointment must not block its slot")
	}
}

func TestFindConflict_OtherStaffOrDateIgnored(t *testing.T) {
	services := []model.Service{testService("cut", "Barber", 30)}
	appts := []model.Appointment{
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled),
		booked("a2", "s2", "cut", "2026-09-01", 540, model.StatusScheduled),
	}

	if HasConflict(appts, services, "s3", "2026-09-01", 540, 30, "") {
		t.Fatal("unrelated staff must not conflict")
	}
	if HasConflict(appts, services, "s1", "2026-09-02", 540, 30, "") {
		t.Fatal("different date must not conflict")
	}
}

func TestFindConflict_UnresolvableServiceSkipped(t *testing.T) {
	// a1 references a service that no longer exists; with no duration to
	// measure against, it is treated as non-conflicting.
	appts := []model.Appointment{
		booked("a1", "s1", "gone", "2026-09-01", 540, model.StatusScheduled),
	}

	if HasConflict(appts, nil, "s1", "2026-09-01", 540, 30, "") {
		t.Fatal("appointment with dangling service id must be skipped")
	}
}

func TestFindConflict_QueuedAppointmentsNeverConflict(t *testing.T) {
	services := []model.Service{testService("cut", "Barber", 30)}
	appts := []model.Appointment{queued("q1", 1)}

	if HasConflict(appts, services, "s1", "2026-09-01", 600, 30, "") {
		t.Fatal("queued appointment has no staff and must not conflict")
	}
}
