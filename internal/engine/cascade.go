package engine

import (
	"sort"

	"github.com/bookline/bookline/internal/model"
)

// CascadeRemoval computes the queue moves caused by deleting a staff member or
// setting one on leave: every Scheduled appointment of theirs dated today or
// later is unassigned and appended to the queue with a fresh sequential
// position past the current maximum, so the batch lands contiguous. Moved
// appointments enter in date-then-time order, soonest first.
//
// Past appointments and non-Scheduled ones are left alone, dangling staff
// reference included; history stays as it happened.
func CascadeRemoval(appointments []model.Appointment, staffID string, today model.CalendarDate) []QueueUpdate {
	var moved []model.Appointment
	for _, a := range appointments {
		if !a.AssignedTo(staffID) {
			continue
		}
		if a.Status != model.StatusScheduled {
			continue
		}
		if a.Date.Before(today) {
			continue
		}
		moved = append(moved, a)
	}
	sort.SliceStable(moved, func(i, j int) bool {
		if moved[i].Date != moved[j].Date {
			return moved[i].Date.Before(moved[j].Date)
		}
		return moved[i].Start < moved[j].Start
	})

	next := NextQueuePosition(appointments)
	updates := make([]QueueUpdate, 0, len(moved))
	for _, a := range moved {
		pos := next
		next++
		updates = append(updates, QueueUpdate{
			AppointmentID: a.ID,
			StaffID:       nil,
			InQueue:       true,
			Position:      &pos,
		})
	}
	return updates
}
