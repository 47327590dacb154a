package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookline/bookline/internal/activity"
	"github.com/bookline/bookline/internal/engine"
	"github.com/bookline/bookline/internal/model"
	"github.com/bookline/bookline/internal/outbox"
	"github.com/bookline/bookline/internal/storage"
)

// Drainer periodically walks owners with queued appointments and assigns the
// head of each queue whenever a staff member has freed up. Draining stops at
// the first appointment nobody can take, preserving queue order.
type Drainer struct {
	repo       *storage.Repository
	activity   *activity.Repository
	outboxRepo *outbox.Repository
	logger     *slog.Logger
	cfg        Config
}

type Config struct {
	Every       time.Duration
	OwnerBatch  int
	MaxPerOwner int
}

func NewDrainer(repo *storage.Repository, activityRepo *activity.Repository, outboxRepo *outbox.Repository, logger *slog.Logger, cfg Config) *Drainer {
	if cfg.OwnerBatch <= 0 {
		cfg.OwnerBatch = 100
	}
	if cfg.MaxPerOwner <= 0 {
		cfg.MaxPerOwner = 20
	}
	return &Drainer{
		repo:       repo,
		activity:   activityRepo,
		outboxRepo: outboxRepo,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run blocks until ctx is cancelled. A zero interval disables the worker.
func (d *Drainer) Run(ctx context.Context) {
	if d.cfg.Every <= 0 {
		d.logger.Info("queue drainer disabled")
		return
	}
	d.logger.Info("queue drainer started", "every", d.cfg.Every.String())

	ticker := time.NewTicker(d.cfg.Every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("queue drainer stopped")
			return
		case <-ticker.C:
			if err := d.tick(ctx); err != nil {
				d.logger.Error("queue drain tick failed", "error", err)
			}
		}
	}
}

func (d *Drainer) tick(ctx context.Context) error {
	owners, err := d.repo.OwnersWithQueuedAppointments(ctx, d.cfg.OwnerBatch)
	if err != nil {
		return err
	}
	for _, ownerID := range owners {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := d.drainOwner(ctx, ownerID); err != nil {
			d.logger.Error("queue drain failed", "owner_id", ownerID, "error", err)
		}
	}
	return nil
}

// drainOwner assigns from the head of one owner's queue until either the
// queue empties, the head has no bookable staff, or the per-tick cap is hit.
// Each assignment reloads the snapshot so capacity counts stay honest.
func (d *Drainer) drainOwner(ctx context.Context, ownerID string) error {
	today := model.Today()
	for i := 0; i < d.cfg.MaxPerOwner; i++ {
		snap, err := d.repo.Snapshot(ctx, ownerID)
		if err != nil {
			return err
		}
		head, ok := queueHead(snap.Appointments)
		if !ok {
			return nil
		}
		assignment, ok := engine.AssignFromQueue(snap, head.ID, today)
		if !ok {
			return nil
		}
		if err := d.persist(ctx, ownerID, head, assignment); err != nil {
			return err
		}
		d.logger.Info("assigned from queue",
			"owner_id", ownerID,
			"appointment_id", assignment.AppointmentID,
			"staff_id", assignment.StaffID)
	}
	return nil
}

func queueHead(appointments []model.Appointment) (model.Appointment, bool) {
	var head model.Appointment
	found := false
	for _, a := range appointments {
		if !a.InQueue || a.QueuePosition == nil {
			continue
		}
		if !found || *a.QueuePosition < *head.QueuePosition {
			head = a
			found = true
		}
	}
	return head, found
}

func (d *Drainer) persist(ctx context.Context, ownerID string, head model.Appointment, assignment engine.QueueAssignment) error {
	tx, err := d.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := d.repo.AssignAppointment(ctx, tx, ownerID, assignment.AppointmentID, assignment.StaffID); err != nil {
		return err
	}
	if err := d.repo.ApplyQueueUpdates(ctx, tx, ownerID, assignment.Renumbered); err != nil {
		return err
	}

	desc := engine.QueueAssignedDescription(head.CustomerName, assignment.StaffName)
	if err := d.activity.Record(ctx, tx, ownerID, "queue_assigned", desc, assignment.AppointmentID); err != nil {
		return err
	}

	assigned := head
	staffID := assignment.StaffID
	assigned.StaffID = &staffID
	assigned.InQueue = false
	assigned.QueuePosition = nil
	evt, err := outbox.AppointmentEvent(outbox.EventAppointmentAssigned, &assigned, map[string]any{
		"staff_name": assignment.StaffName,
	})
	if err != nil {
		return err
	}
	if err := d.outboxRepo.Insert(ctx, tx, evt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
