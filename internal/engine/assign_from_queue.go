package engine

import "github.com/bookline/bookline/internal/model"

// QueueAssignment is a successful assign-from-queue decision: the staff target
// for the drained appointment plus the renumbered remainder of the queue.
type QueueAssignment struct {
	AppointmentID string
	StaffID       string
	StaffName     string
	Renumbered    []QueueUpdate
}

// AssignFromQueue tries to place a queued appointment with the first bookable
// eligible staff member, using today's load for the capacity check. It returns
// false when the appointment or its service cannot be resolved, or when no
// staff member can take it. Both are defined outcomes, not errors; the
// appointment simply stays queued.
func AssignFromQueue(snap Snapshot, appointmentID string, today model.CalendarDate) (QueueAssignment, bool) {
	var appt *model.Appointment
	for i := range snap.Appointments {
		if snap.Appointments[i].ID == appointmentID {
			appt = &snap.Appointments[i]
			break
		}
	}
	if appt == nil || !appt.InQueue {
		return QueueAssignment{}, false
	}

	svc, ok := snap.ServiceByID(appt.ServiceID)
	if !ok {
		return QueueAssignment{}, false
	}

	for _, candidate := range EligibleStaff(snap.Staff, svc) {
		if !Bookable(candidate, LoadOn(snap.Appointments, candidate.ID, today)) {
			continue
		}
		return QueueAssignment{
			AppointmentID: appt.ID,
			StaffID:       candidate.ID,
			StaffName:     candidate.Name,
			Renumbered:    Dequeue(snap.Appointments, appt.ID),
		}, true
	}
	return QueueAssignment{}, false
}
