package model

import "time"

type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityOnLeave   Availability = "On Leave"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "No-Show"
)

// ServiceDurations is the set of durations the API accepts, in minutes.
var ServiceDurations = []int{15, 30, 60}

type Service struct {
	ID                string
	OwnerID           string
	Name              string
	DurationMinutes   int
	RequiredStaffType string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type StaffMember struct {
	ID            string
	OwnerID       string
	Name          string
	ServiceType   string
	DailyCapacity int
	Availability  Availability
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Appointment is either resolved (InQueue false, QueuePosition nil, StaffID set
// or deliberately empty) or queued (InQueue true, StaffID nil, QueuePosition a
// positive integer). The engine keeps those two states mutually exclusive.
type Appointment struct {
	ID            string
	OwnerID       string
	CustomerName  string
	ServiceID     string
	StaffID       *string
	Date          CalendarDate
	Start         MinuteOfDay
	Status        AppointmentStatus
	InQueue       bool
	QueuePosition *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AssignedTo reports whether the appointment is assigned to the given staff id.
func (a Appointment) AssignedTo(staffID string) bool {
	return a.StaffID != nil && *a.StaffID == staffID
}
