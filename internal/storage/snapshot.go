package storage

import (
	"context"

	"github.com/bookline/bookline/internal/engine"
)

// Snapshot loads the full appointment/staff/service picture for one owner.
// Handlers call this immediately before every engine decision; the engine is
// stateless, so a stale snapshot is the only way to get a stale decision.
func (r *Repository) Snapshot(ctx context.Context, ownerID string) (engine.Snapshot, error) {
	// Human-scale data set; the cap is a guard, not pagination.
	appts, err := r.ListAppointments(ctx, ownerID, "", "", 10000)
	if err != nil {
		return engine.Snapshot{}, err
	}
	staff, err := r.ListStaff(ctx, ownerID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	services, err := r.ListServices(ctx, ownerID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return engine.Snapshot{
		Appointments: appts,
		Staff:        staff,
		Services:     services,
	}, nil
}
