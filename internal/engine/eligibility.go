package engine

import "github.com/bookline/bookline/internal/model"

// EligibleStaff returns the staff members whose service type matches the
// service's required type, preserving input order. Order matters: first-fit
// assignment ties break by position in this slice.
func EligibleStaff(staff []model.StaffMember, svc model.Service) []model.StaffMember {
	var eligible []model.StaffMember
	for _, s := range staff {
		if s.ServiceType == svc.RequiredStaffType {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

// LoadOn counts staffID's non-cancelled appointments on date.
func LoadOn(appointments []model.Appointment, staffID string, date model.CalendarDate) int {
	load := 0
	for _, a := range appointments {
		if a.AssignedTo(staffID) && a.Date == date && a.Status != model.StatusCancelled {
			load++
		}
	}
	return load
}

// Bookable reports whether a staff member can take one more appointment given
// their current load for the target date.
func Bookable(s model.StaffMember, load int) bool {
	return s.Availability == model.AvailabilityAvailable && load < s.DailyCapacity
}
