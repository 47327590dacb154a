package engine

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func TestCascadeRemoval_Scope(t *testing.T) {
	today := model.CalendarDate("2026-09-01")
	appts := []model.Appointment{
		booked("future1", "z", "cut", "2026-09-02", 540, model.StatusScheduled),
		booked("sameday", "z", "cut", "2026-09-01", 540, model.StatusScheduled),
		booked("past", "z", "cut", "2026-08-20", 540, model.StatusCompleted),
		booked("pastsched", "z", "cut", "2026-08-20", 600, model.StatusScheduled),
		booked("cancelled", "z", "cut", "2026-09-03", 540, model.StatusCancelled),
		booked("otherstaff", "y", "cut", "2026-09-02", 540, model.StatusScheduled),
	}

	updates := CascadeRemoval(appts, "z", today)
	if len(updates) != 2 {
		t.Fatalf("expected 2 requeued appointments, got %d", len(updates))
	}
	for _, u := range updates {
		if u.AppointmentID != "future1" && u.AppointmentID != "sameday" {
			t.Fatalf("unexpected cascade target %s", u.AppointmentID)
		}
		if u.StaffID != nil {
			t.Fatalf("cascaded %s must lose its staff assignment", u.AppointmentID)
		}
		if !u.InQueue {
			t.Fatalf("cascaded %s must be queued", u.AppointmentID)
		}
	}
}

func TestCascadeRemoval_SequentialPositionsAfterExistingQueue(t *testing.T) {
	today := model.CalendarDate("2026-09-01")
	appts := []model.Appointment{
		queued("q1", 1),
		queued("q2", 2),
		booked("m1", "z", "cut", "2026-09-02", 540, model.StatusScheduled),
		booked("m2", "z", "cut", "2026-09-03", 540, model.StatusScheduled),
	}

	updates := CascadeRemoval(appts, "z", today)
	// Two appointments moved in the same cascade get sequential positions
	// appended after the current maximum, never the same position.
	assertPositions(t, updates, map[string]int{"m1": 3, "m2": 4})
}

func TestCascadeRemoval_SoonestAppointmentQueuesFirst(t *testing.T) {
	today := model.CalendarDate("2026-09-01")
	appts := []model.Appointment{
		booked("later", "z", "cut", "2026-09-05", 540, model.StatusScheduled),
		booked("sameDayLater", "z", "cut", "2026-09-02", 600, model.StatusScheduled),
		booked("sooner", "z", "cut", "2026-09-02", 540, model.StatusScheduled),
	}

	updates := CascadeRemoval(appts, "z", today)
	assertPositions(t, updates, map[string]int{"sooner": 1, "sameDayLater": 2, "later": 3})
}

func TestCascadeRemoval_NothingToMove(t *testing.T) {
	today := model.CalendarDate("2026-09-01")
	appts := []model.Appointment{
		booked("past", "z", "cut", "2026-08-01", 540, model.StatusCompleted),
	}

	if updates := CascadeRemoval(appts, "z", today); len(updates) != 0 {
		t.Fatalf("expected no cascade updates, got %d", len(updates))
	}
}
