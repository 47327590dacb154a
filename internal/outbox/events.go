package outbox

import (
	"encoding/json"

	"github.com/bookline/bookline/internal/model"
)

const (
	EventAppointmentCreated   = "bookline.appointment.created.v1"
	EventAppointmentQueued    = "bookline.appointment.queued.v1"
	EventAppointmentAssigned  = "bookline.appointment.assigned.v1"
	EventAppointmentCancelled = "bookline.appointment.cancelled.v1"
	EventStaffCascade         = "bookline.staff.cascade.v1"
)

// AppointmentEvent builds an outbox event carrying the appointment's current
// state plus any extra fields the caller wants downstream consumers to see.
func AppointmentEvent(eventType string, appt *model.Appointment, extra map[string]any) (Event, error) {
	payload := map[string]any{
		"appointment_id": appt.ID,
		"owner_id":       appt.OwnerID,
		"customer_name":  appt.CustomerName,
		"service_id":     appt.ServiceID,
		"date":           appt.Date.String(),
		"time":           appt.Start.String(),
		"status":         string(appt.Status),
	}
	if appt.StaffID != nil {
		payload["staff_id"] = *appt.StaffID
	}
	if appt.InQueue && appt.QueuePosition != nil {
		payload["queue_position"] = *appt.QueuePosition
	}
	for k, v := range extra {
		payload[k] = v
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Payload:       raw,
	}, nil
}
