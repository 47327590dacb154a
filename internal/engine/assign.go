package engine

import "github.com/bookline/bookline/internal/model"

// Assignment is the outcome of auto-assignment: a staff target, or a queue
// position when nobody can take the booking. A booking request never fails
// outright for lack of staff.
type Assignment struct {
	StaffID   string
	StaffName string
	Queued    bool
	Position  int
}

// ResolveAssignment picks a staff member for an appointment submitted without
// an explicit staff choice: the first eligible, available, under-capacity
// candidate in staff-list order. First-fit, not least-loaded; the operator's
// staff list order is the tie-break.
//
// Callers that received an explicit staff choice skip this entirely; an
// explicit choice is checked for conflicts but capacity and leave only warn.
func ResolveAssignment(snap Snapshot, svc model.Service, date model.CalendarDate) Assignment {
	for _, candidate := range EligibleStaff(snap.Staff, svc) {
		if Bookable(candidate, LoadOn(snap.Appointments, candidate.ID, date)) {
			return Assignment{StaffID: candidate.ID, StaffName: candidate.Name}
		}
	}
	return Assignment{Queued: true, Position: NextQueuePosition(snap.Appointments)}
}
