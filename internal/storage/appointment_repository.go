package storage

import (
	"context"

	"github.com/bookline/bookline/internal/engine"
	"github.com/bookline/bookline/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const appointmentColumns = `
	id::text, owner_id::text, customer_name, service_id::text,
	staff_id::text, appointment_date::text, start_minute, status,
	in_queue, queue_position, created_at, updated_at`

func (r *Repository) CreateAppointment(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO appointments
			(id, owner_id, customer_name, service_id, staff_id, appointment_date, start_minute, status, in_queue, queue_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, appt.OwnerID, appt.CustomerName, appt.ServiceID, appt.StaffID,
		string(appt.Date), int(appt.Start), string(appt.Status), appt.InQueue, appt.QueuePosition)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetAppointmentForUpdate re-reads the target row under FOR UPDATE so the
// handler's queue-membership decision holds until the transaction commits.
func (r *Repository) GetAppointmentForUpdate(ctx context.Context, tx pgx.Tx, ownerID, id string) (model.Appointment, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE
	`, ownerID, id)
	return scanAppointment(row)
}

// UpdateAppointment rewrites the mutable fields of an appointment, queue state
// included. Callers pass the full desired record; partial updates are composed
// upstream from a fresh read.
func (r *Repository) UpdateAppointment(ctx context.Context, tx pgx.Tx, appt *model.Appointment) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET customer_name = $3,
			service_id = $4,
			staff_id = $5,
			appointment_date = $6,
			start_minute = $7,
			status = $8,
			in_queue = $9,
			queue_position = $10,
			updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`, appt.OwnerID, appt.ID, appt.CustomerName, appt.ServiceID, appt.StaffID,
		string(appt.Date), int(appt.Start), string(appt.Status), appt.InQueue, appt.QueuePosition)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) SetAppointmentStatus(ctx context.Context, tx pgx.Tx, ownerID, id string, status model.AppointmentStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $3, updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) DeleteAppointment(ctx context.Context, tx pgx.Tx, ownerID, id string) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM appointments
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) ListAppointments(ctx context.Context, ownerID string, date, status string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE owner_id = $1
			AND ($2 = '' OR appointment_date::text = $2)
			AND ($3 = '' OR status = $3)
		ORDER BY appointment_date DESC, start_minute DESC
		LIMIT $4
	`, ownerID, date, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *Repository) ListQueued(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE owner_id = $1 AND in_queue
		ORDER BY queue_position
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// AssignAppointment resolves an appointment onto a staff member, clearing any
// queue membership in the same statement so the queued/resolved states stay
// mutually exclusive.
func (r *Repository) AssignAppointment(ctx context.Context, tx pgx.Tx, ownerID, id, staffID string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET staff_id = $3,
			in_queue = false,
			queue_position = NULL,
			updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id, staffID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ApplyQueueUpdates persists an engine batch (renumbering, cascade) inside the
// caller's transaction so the whole batch commits or none of it does.
func (r *Repository) ApplyQueueUpdates(ctx context.Context, tx pgx.Tx, ownerID string, updates []engine.QueueUpdate) error {
	for _, u := range updates {
		_, err := tx.Exec(ctx, `
			UPDATE appointments
			SET staff_id = $3,
				in_queue = $4,
				queue_position = $5,
				updated_at = now()
			WHERE owner_id = $1 AND id = $2
		`, ownerID, u.AppointmentID, u.StaffID, u.InQueue, u.Position)
		if err != nil {
			return err
		}
	}
	return nil
}

// OwnersWithQueuedAppointments lists owners the queue drain worker should
// visit this tick.
func (r *Repository) OwnersWithQueuedAppointments(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT owner_id::text
		FROM appointments
		WHERE in_queue
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return owners, nil
}

type DashboardCounts struct {
	Total     int
	Scheduled int
	Completed int
	Queued    int
}

func (r *Repository) CountsForDate(ctx context.Context, ownerID string, date model.CalendarDate) (DashboardCounts, error) {
	var c DashboardCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE appointment_date::text = $2),
			count(*) FILTER (WHERE appointment_date::text = $2 AND status = 'Scheduled'),
			count(*) FILTER (WHERE appointment_date::text = $2 AND status = 'Completed'),
			count(*) FILTER (WHERE in_queue)
		FROM appointments
		WHERE owner_id = $1
	`, ownerID, string(date)).Scan(&c.Total, &c.Scheduled, &c.Completed, &c.Queued)
	return c, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var (
		appt     model.Appointment
		staffID  *string
		date     string
		start    int
		status   string
		position *int
	)
	err := row.Scan(
		&appt.ID,
		&appt.OwnerID,
		&appt.CustomerName,
		&appt.ServiceID,
		&staffID,
		&date,
		&start,
		&status,
		&appt.InQueue,
		&position,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	appt.StaffID = staffID
	appt.Date = model.CalendarDate(date)
	appt.Start = model.MinuteOfDay(start)
	appt.Status = model.AppointmentStatus(status)
	appt.QueuePosition = position
	return appt, nil
}

func scanAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var appts []model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}
