package engine

import "github.com/bookline/bookline/internal/model"

// FindConflict returns the first existing booking that would collide with
// placing a duration-minute appointment for staffID at start on date. It
// returns nil when the slot is free.
//
// Cancelled appointments never block a slot, and excludeID lets an edit skip
// the appointment being edited so it cannot conflict with itself. An existing
// appointment whose service id no longer resolves is skipped: with stale data
// we would rather allow a booking than block on a record we cannot measure.
func FindConflict(
	appointments []model.Appointment,
	services []model.Service,
	staffID string,
	date model.CalendarDate,
	start model.MinuteOfDay,
	durationMinutes int,
	excludeID string,
) *model.Appointment {
	for i := range appointments {
		a := &appointments[i]
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if !a.AssignedTo(staffID) {
			continue
		}
		if a.Date != date {
			continue
		}
		if a.Status == model.StatusCancelled {
			continue
		}

		svc, ok := serviceByID(services, a.ServiceID)
		if !ok {
			continue
		}
		if Overlaps(start, durationMinutes, a.Start, svc.DurationMinutes) {
			return a
		}
	}
	return nil
}

// HasConflict is FindConflict reduced to its advisory boolean.
func HasConflict(
	appointments []model.Appointment,
	services []model.Service,
	staffID string,
	date model.CalendarDate,
	start model.MinuteOfDay,
	durationMinutes int,
	excludeID string,
) bool {
	return FindConflict(appointments, services, staffID, date, start, durationMinutes, excludeID) != nil
}

func serviceByID(services []model.Service, id string) (model.Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return model.Service{}, false
}
