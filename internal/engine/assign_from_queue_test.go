package engine

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func queueSnapshot() Snapshot {
	q1 := queued("q1", 1)
	q2 := queued("q2", 2)
	q3 := queued("q3", 3)
	q1.ServiceID, q2.ServiceID, q3.ServiceID = "cut", "cut", "cut"
	return Snapshot{
		Services: []model.Service{testService("cut", "Barber", 30)},
		Staff: []model.StaffMember{
			testStaff("s1", "Barber", 2, model.AvailabilityAvailable),
		},
		Appointments: []model.Appointment{q1, q2, q3},
	}
}

func TestAssignFromQueue_AssignsAndRenumbers(t *testing.T) {
	snap := queueSnapshot()

	got, ok := AssignFromQueue(snap, "q2", "2026-09-01")
	if !ok {
		t.Fatal("expected a successful queue assignment")
	}
	if got.StaffID != "s1" {
		t.Fatalf("expected s1, got %s", got.StaffID)
	}
	assertPositions(t, got.Renumbered, map[string]int{"q1": 1, "q3": 2})
}

func TestAssignFromQueue_NoBookableStaff(t *testing.T) {
	snap := queueSnapshot()
	snap.Staff[0].Availability = model.AvailabilityOnLeave

	if _, ok := AssignFromQueue(snap, "q1", "2026-09-01"); ok {
		t.Fatal("expected no assignment with all staff on leave")
	}
}

func TestAssignFromQueue_CapacityCountsTodayOnly(t *testing.T) {
	snap := queueSnapshot()
	// s1 has capacity 2 and two bookings today; the queued appointment must
	// stay queued even though s1 is free tomorrow.
	snap.Appointments = append(snap.Appointments,
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled),
		booked("a2", "s1", "cut", "2026-09-01", 600, model.StatusScheduled),
	)

	if _, ok := AssignFromQueue(snap, "q1", "2026-09-01"); ok {
		t.Fatal("expected q1 to stay queued while s1 is at capacity")
	}
	if _, ok := AssignFromQueue(snap, "q1", "2026-09-02"); !ok {
		t.Fatal("expected q1 assignable against tomorrow's load")
	}
}

func TestAssignFromQueue_UnknownOrUnqueuedAppointment(t *testing.T) {
	snap := queueSnapshot()

	if _, ok := AssignFromQueue(snap, "missing", "2026-09-01"); ok {
		t.Fatal("unknown appointment must not assign")
	}

	snap.Appointments[0].InQueue = false
	if _, ok := AssignFromQueue(snap, "q1", "2026-09-01"); ok {
		t.Fatal("appointment outside the queue must not assign")
	}
}

func TestAssignFromQueue_DanglingService(t *testing.T) {
	snap := queueSnapshot()
	snap.Services = nil

	if _, ok := AssignFromQueue(snap, "q1", "2026-09-01"); ok {
		t.Fatal("appointment with unresolvable service must stay queued")
	}
}
