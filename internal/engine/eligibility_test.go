package engine

import (
	"testing"

	"github.com/bookline/bookline/internal/model"
)

func TestEligibleStaff_StableFilter(t *testing.T) {
	svc := testService("color", "Colorist", 60)
	staff := []model.StaffMember{
		testStaff("s1", "Barber", 5, model.AvailabilityAvailable),
		testStaff("s2", "Colorist", 5, model.AvailabilityOnLeave),
		testStaff("s3", "Colorist", 5, model.AvailabilityAvailable),
	}

	got := EligibleStaff(staff, svc)
	if len(got) != 2 {
		t.Fatalf("expected 2 eligible staff, got %d", len(got))
	}
	// Eligibility is skill-type only, in input order; leave and capacity are
	// checked later by Bookable.
	if got[0].ID != "s2" || got[1].ID != "s3" {
		t.Fatalf("expected [s2 s3], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestLoadOn_CountsNonCancelledForDate(t *testing.T) {
	appts := []model.Appointment{
		booked("a1", "s1", "cut", "2026-09-01", 540, model.StatusScheduled),
		booked("a2", "s1", "cut", "2026-09-01", 600, model.StatusCompleted),
		booked("a3", "s1", "cut", "2026-09-01", 660, model.StatusCancelled),
		booked("a4", "s1", "cut", "2026-09-02", 540, model.StatusScheduled),
		booked("a5", "s2", "cut", "2026-09-01", 540, model.StatusScheduled),
	}

	if load := LoadOn(appts, "s1", "2026-09-01"); load != 2 {
		t.Fatalf("expected load 2, got %d", load)
	}
}

func TestBookable(t *testing.T) {
	available := testStaff("s1", "Barber", 2, model.AvailabilityAvailable)
	onLeave := testStaff("s2", "Barber", 2, model.AvailabilityOnLeave)

	if !Bookable(available, 1) {
		t.Fatal("under-capacity available staff must be bookable")
	}
	if Bookable(available, 2) {
		t.Fatal("staff at capacity must not be bookable")
	}
	if Bookable(onLeave, 0) {
		t.Fatal("staff on leave must not be bookable")
	}
}
