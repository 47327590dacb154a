package storage

import (
	"context"

	"github.com/bookline/bookline/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const serviceColumns = `
	id::text, owner_id::text, name, duration_minutes, required_staff_type, created_at, updated_at`

func (r *Repository) CreateService(ctx context.Context, s *model.Service) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO services (id, owner_id, name, duration_minutes, required_staff_type)
		VALUES ($1, $2, $3, $4, $5)
	`, id, s.OwnerID, s.Name, s.DurationMinutes, s.RequiredStaffType)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetService(ctx context.Context, ownerID, id string) (model.Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	return scanService(row)
}

func (r *Repository) ListServices(ctx context.Context, ownerID string) ([]model.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return services, nil
}

func (r *Repository) UpdateService(ctx context.Context, s *model.Service) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $3,
			duration_minutes = $4,
			required_staff_type = $5,
			updated_at = now()
		WHERE owner_id = $1 AND id = $2
	`, s.OwnerID, s.ID, s.Name, s.DurationMinutes, s.RequiredStaffType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) DeleteService(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM services
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

// DistinctTypes returns every skill label in use across staff and services,
// for form suggestions.
func (r *Repository) DistinctTypes(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT service_type FROM staff WHERE owner_id = $1
		UNION
		SELECT required_staff_type FROM services WHERE owner_id = $1
		ORDER BY 1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return types, nil
}

func scanService(row rowScanner) (model.Service, error) {
	var s model.Service
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.DurationMinutes,
		&s.RequiredStaffType,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return model.Service{}, err
	}
	return s, nil
}
