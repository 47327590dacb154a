package activity

import (
	"context"
	"time"

	"github.com/bookline/bookline/libs/db"
	"github.com/jackc/pgx/v5"
)

// Repository is the append-only activity log. The engine produces the
// description text; this package only writes and lists it. Nothing in the
// decision path ever reads it back.
type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

type Entry struct {
	ID            int64
	OwnerID       string
	ActionType    string
	Description   string
	AppointmentID string
	CreatedAt     time.Time
}

func (r *Repository) Record(ctx context.Context, tx pgx.Tx, ownerID, actionType, description, appointmentID string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO activity_logs (owner_id, action_type, description, appointment_id)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`, ownerID, actionType, description, appointmentID)
	return err
}

// RecordDirect writes outside any transaction, for log entries that do not
// ride along with a domain write.
func (r *Repository) RecordDirect(ctx context.Context, ownerID, actionType, description, appointmentID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_logs (owner_id, action_type, description, appointment_id)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`, ownerID, actionType, description, appointmentID)
	return err
}

func (r *Repository) ListRecent(ctx context.Context, ownerID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id::text, action_type, description, COALESCE(appointment_id::text, ''), created_at
		FROM activity_logs
		WHERE owner_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.ActionType, &e.Description, &e.AppointmentID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return entries, nil
}
