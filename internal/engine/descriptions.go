package engine

import "fmt"

// Activity descriptions for engine decisions. The engine hands these back as
// text; the activity log sink writes them.

func QueuedDescription(customerName string, position int) string {
	return fmt.Sprintf("Appointment for %q added to queue (position %d)", customerName, position)
}

func AssignedDescription(customerName, staffName string) string {
	return fmt.Sprintf("Appointment for %q created and assigned to %s", customerName, staffName)
}

func QueueAssignedDescription(customerName, staffName string) string {
	return fmt.Sprintf("Appointment for %q assigned to %s from queue", customerName, staffName)
}

func CascadeDescription(staffName string, moved int) string {
	if moved == 1 {
		return fmt.Sprintf("1 appointment for %s moved to queue", staffName)
	}
	return fmt.Sprintf("%d appointments for %s moved to queue", moved, staffName)
}
