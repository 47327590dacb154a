package engine

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func TestResolveAssignment_SkipsStaffAtCapacity(t *testing.T) {
	svc := testService("cut", "Barber", 30)
	snap := Snapshot{
		Services: []model.Service{svc},
		Staff: []model.StaffMember{
			testStaff("a", "Barber", 2, model.AvailabilityAvailable),
			testStaff("b", "Barber", 2, model.AvailabilityAvailable),
		},
		Appointments: []model.Appointment{
			booked("a1", "a", "cut", "2026-09-01", 540, model.StatusScheduled),
			booked("a2", "a", "cut", "2026-09-01", 600, model.StatusScheduled),
		},
	}

	got := ResolveAssignment(snap, svc, "2026-09-01")
	if got.Queued {
		t.Fatal("expected an assignment, got queued")
	}
	if got.StaffID != "b" {
		t.Fatalf("expected b (a is at capacity), got %s", got.StaffID)
	}
}

func TestResolveAssignment_FirstFitByListOrder(t *testing.T) {
	svc := testService("cut", "Barber", 30)
	snap := Snapshot{
		Services: []model.Service{svc},
		Staff: []model.StaffMember{
			testStaff("a", "Barber", 5, model.AvailabilityAvailable),
			testStaff("b", "Barber", 5, model.AvailabilityAvailable),
		},
		// a carries more load than b, but both are under capacity: first-fit
		// picks a, not the least-loaded b.
		Appointments: []model.Appointment{
			booked("a1", "a", "cut", "2026-09-01", 540, model.StatusScheduled),
			booked("a2", "a", "cut", "2026-09-01", 600, model.StatusScheduled),
		},
	}

	got := ResolveAssignment(snap, svc, "2026-09-01")
	if got.Queued || got.StaffID != "a" {
		t.Fatalf("expected first-fit a, got %+v", got)
	}
}

func TestResolveAssignment_QueuesWhenNobodyBookable(t *testing.T) {
	svc := testService("cut", "Barber", 30)
	snap := Snapshot{
		Services: []model.Service{svc},
		Staff: []model.StaffMember{
			testStaff("c", "Barber", 5, model.AvailabilityOnLeave),
			testStaff("d", "Barber", 1, model.AvailabilityAvailable),
		},
		Appointments: []model.Appointment{
			booked("a1", "d", "cut", "2026-09-01", 540, model.StatusScheduled),
		},
	}

	got := ResolveAssignment(snap, svc, "2026-09-01")
	if !got.Queued {
		t.Fatalf("expected queued, got assignment to %s", got.StaffID)
	}
	if got.Position != 1 {
		t.Fatalf("expected queue position 1, got %d", got.Position)
	}
}

func TestResolveAssignment_QueuePositionAppendsAfterMax(t *testing.T) {
	svc := testService("cut", "Barber", 30)
	snap := Snapshot{
		Services:     []model.Service{svc},
		Staff:        nil, // nobody eligible
		Appointments: []model.Appointment{queued("q1", 1), queued("q2", 2)},
	}

	got := ResolveAssignment(snap, svc, "2026-09-01")
	if !got.Queued || got.Position != 3 {
		t.Fatalf("expected queued at position 3, got %+v", got)
	}
}
