package engine

import "github.com/bookline/bookline/internal/model"

func strPtr(s string) *string { return &s }

func minute(n int) model.MinuteOfDay { return model.MinuteOfDay(n) }

func intPtr(n int) *int { return &n }

func testService(id, requiredType string, duration int) model.Service {
	return model.Service{ID: id, Name: "svc-" + id, DurationMinutes: duration, RequiredStaffType: requiredType}
}

func testStaff(id, serviceType string, capacity int, availability model.Availability) model.StaffMember {
	return model.StaffMember{ID: id, Name: "staff-" + id, ServiceType: serviceType, DailyCapacity: capacity, Availability: availability}
}

func booked(id, staffID, serviceID string, date model.CalendarDate, start model.MinuteOfDay, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID:           id,
		CustomerName: "customer-" + id,
		ServiceID:    serviceID,
		StaffID:      strPtr(staffID),
		Date:         date,
		Start:        start,
		Status:       status,
	}
}

func queued(id string, position int) model.Appointment {
	return model.Appointment{
		ID:            id,
		CustomerName:  "customer-" + id,
		ServiceID:     "svc",
		Date:          "2026-09-01",
		Start:         600,
		Status:        model.StatusScheduled,
		InQueue:       true,
		QueuePosition: intPtr(position),
	}
}
