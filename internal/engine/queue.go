package engine

import (
	"sort"

	"github.com/bookline/bookline/internal/model"
)

// QueueUpdate is one appointment's queue-membership mutation. A batch of
// updates from Dequeue, AssignFromQueue, or CascadeRemoval is meant to be
// persisted in a single transaction so the contiguity invariant is never
// observable as broken.
type QueueUpdate struct {
	AppointmentID string
	StaffID       *string
	InQueue       bool
	Position      *int
}

// NextQueuePosition returns the position for a newly queued appointment:
// one past the current maximum, 1 for an empty queue.
func NextQueuePosition(appointments []model.Appointment) int {
	max := 0
	for _, a := range appointments {
		if a.InQueue && a.QueuePosition != nil && *a.QueuePosition > max {
			max = *a.QueuePosition
		}
	}
	return max + 1
}

// Dequeue removes appointmentID from the queued set and renumbers the
// remaining queue 1..N by current position. The returned updates cover the
// remainder only; the caller decides what the removed appointment becomes
// (assigned, cancelled, deleted).
func Dequeue(appointments []model.Appointment, appointmentID string) []QueueUpdate {
	var remaining []model.Appointment
	for _, a := range appointments {
		if a.InQueue && a.ID != appointmentID {
			remaining = append(remaining, a)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return positionOf(remaining[i]) < positionOf(remaining[j])
	})

	updates := make([]QueueUpdate, 0, len(remaining))
	for i, a := range remaining {
		pos := i + 1
		updates = append(updates, QueueUpdate{
			AppointmentID: a.ID,
			InQueue:       true,
			Position:      &pos,
		})
	}
	return updates
}

func positionOf(a model.Appointment) int {
	if a.QueuePosition == nil {
		return 0
	}
	return *a.QueuePosition
}
