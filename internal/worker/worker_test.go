package worker

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func queuedAppt(id string, position int) model.Appointment {
	return model.Appointment{
		ID:            id,
		Status:        model.StatusScheduled,
		InQueue:       true,
		QueuePosition: &position,
	}
}

func TestQueueHead(t *testing.T) {
	assignedID := "staff-1"
	appts := []model.Appointment{
		{ID: "a1", StaffID: &assignedID, Status: model.StatusScheduled},
		queuedAppt("q3", 3),
		queuedAppt("q1", 1),
		queuedAppt("q2", 2),
	}

	head, ok := queueHead(appts)
	if !ok {
		t.Fatalf("expected a queue head")
	}
	if head.ID != "q1" {
		t.Fatalf("head = %s, want q1", head.ID)
	}
}

func TestQueueHead_EmptyQueue(t *testing.T) {
	assignedID := "staff-1"
	appts := []model.Appointment{
		{ID: "a1", StaffID: &assignedID, Status: model.StatusScheduled},
	}
	if _, ok := queueHead(appts); ok {
		t.Fatalf("expected no queue head")
	}
}
