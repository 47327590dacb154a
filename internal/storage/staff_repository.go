package storage

import (
	"context"

	"github.com/bookline/bookline/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const staffColumns = `
	id::text, owner_id::text, name, service_type, daily_capacity, availability_status, created_at, updated_at`

func (r *Repository) CreateStaff(ctx context.Context, s *model.StaffMember) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff (id, owner_id, name, service_type, daily_capacity, availability_status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, s.OwnerID, s.Name, s.ServiceType, s.DailyCapacity, string(s.Availability))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetStaff(ctx context.Context, ownerID, id string) (model.StaffMember, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	return scanStaff(row)
}

// ListStaff returns the roster newest first. The order matters: auto
// assignment is first-fit over this list, so it doubles as the tie-break.
func (r *Repository) ListStaff(ctx context.Context, ownerID string) ([]model.StaffMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []model.StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return staff, nil
}

func (r *Repository) UpdateStaff(ctx context.Context, s *model.StaffMember) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE staff
		SET name = $3,
			service_type = $4,
			daily_capacity = $5,
			availability_status = $6,
			updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`, s.OwnerID, s.ID, s.Name, s.ServiceType, s.DailyCapacity, string(s.Availability))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) SetStaffAvailability(ctx context.Context, tx pgx.Tx, ownerID, id string, availability model.Availability) error {
	tag, err := tx.Exec(ctx, `
		UPDATE staff
		SET availability_status = $3, updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id, string(availability))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) DeleteStaff(ctx context.Context, tx pgx.Tx, ownerID, id string) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM staff
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

func scanStaff(row rowScanner) (model.StaffMember, error) {
	var (
		s            model.StaffMember
		availability string
	)
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.ServiceType,
		&s.DailyCapacity,
		&availability,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return model.StaffMember{}, err
	}
	s.Availability = model.Availability(availability)
	return s, nil
}
