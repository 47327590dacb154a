package engine

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func TestNextQueuePosition(t *testing.T) {
	if got := NextQueuePosition(nil); got != 1 {
		t.Fatalf("empty queue: expected 1, got %d", got)
	}

	appts := []model.Appointment{
		queued("q1", 1),
		queued("q2", 2),
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled),
	}
	if got := NextQueuePosition(appts); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestDequeue_RenumbersRemainder(t *testing.T) {
	appts := []model.Appointment{
		queued("q1", 1),
		queued("q2", 2),
		queued("q3", 3),
	}

	updates := Dequeue(appts, "q2")
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	assertPositions(t, updates, map[string]int{"q1": 1, "q3": 2})
}

func TestDequeue_RepairsGaps(t *testing.T) {
	// Positions with a gap (a previous renumbering failure); dequeueing
	// anything restores 1..N.
	appts := []model.Appointment{
		queued("q1", 2),
		queued("q2", 5),
		queued("q3", 9),
	}

	updates := Dequeue(appts, "q2")
	assertPositions(t, updates, map[string]int{"q1": 1, "q3": 2})
}

func TestQueueContiguityAcrossOperations(t *testing.T) {
	// Simulate a sequence of enqueues and dequeues, applying the engine's
	// updates back onto the snapshot, and check {1..N} holds throughout.
	var appts []model.Appointment

	enqueue := func(id string) {
		appts = append(appts, queued(id, NextQueuePosition(appts)))
		assertContiguous(t, appts)
	}
	dequeue := func(id string) {
		updates := Dequeue(appts, id)
		var next []model.Appointment
		for _, a := range appts {
			if a.ID == id {
				continue
			}
			next = append(next, a)
		}
		appts = next
		applyUpdates(t, appts, updates)
		assertContiguous(t, appts)
	}

	enqueue("q1")
	enqueue("q2")
	enqueue("q3")
	dequeue("q1")
	enqueue("q4")
	dequeue("q3")
	dequeue("q2")
	dequeue("q4")
	if len(appts) != 0 {
		t.Fatalf("expected empty queue, got %d entries", len(appts))
	}
}

func assertPositions(t *testing.T, updates []QueueUpdate, want map[string]int) {
	t.Helper()
	if len(updates) != len(want) {
		t.Fatalf("expected %d updates, got %d", len(want), len(updates))
	}
	for _, u := range updates {
		wantPos, ok := want[u.AppointmentID]
		if !ok {
			t.Fatalf("unexpected update for %s", u.AppointmentID)
		}
		if u.Position == nil || *u.Position != wantPos {
			t.Fatalf("expected %s at position %d, got %v", u.AppointmentID, wantPos, u.Position)
		}
		if !u.InQueue {
			t.Fatalf("renumbered %s must stay queued", u.AppointmentID)
		}
	}
}

func applyUpdates(t *testing.T, appts []model.Appointment, updates []QueueUpdate) {
	t.Helper()
	for _, u := range updates {
		found := false
		for i := range appts {
			if appts[i].ID == u.AppointmentID {
				appts[i].InQueue = u.InQueue
				appts[i].QueuePosition = u.Position
				appts[i].StaffID = u.StaffID
				found = true
			}
		}
		if !found {
			t.Fatalf("update for unknown appointment %s", u.AppointmentID)
		}
	}
}

func assertContiguous(t *testing.T, appts []model.Appointment) {
	t.Helper()
	seen := map[int]string{}
	n := 0
	for _, a := range appts {
		if !a.InQueue {
			continue
		}
		n++
		if a.QueuePosition == nil {
			t.Fatalf("queued %s has no position", a.ID)
		}
		if prev, dup := seen[*a.QueuePosition]; dup {
			t.Fatalf("position %d held by both %s and %s", *a.QueuePosition, prev, a.ID)
		}
		seen[*a.QueuePosition] = a.ID
	}
	for p := 1; p <= n; p++ {
		if _, ok := seen[p]; !ok {
			t.Fatalf("positions not contiguous: missing %d of 1..%d", p, n)
		}
	}
}
