package postgres

import (
	"context"
	"database/sql"
	"time"

	"park-safety-service/internal/domain/animals"
)

type LocationsRepo struct {
	db *sql.DB
}

func NewLocationsRepo(db *sql.DB) *LocationsRepo {
	return &LocationsRepo{db: db}
}

func (r *LocationsRepo) UpsertMaintenance(ctx context.Context, location string, parkID int64, t time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (location, park_id, maintenance_performed)
		VALUES ($1,$2,$3)
		ON CONFLICT (location, park_id) DO UPDATE SET
			maintenance_performed = EXCLUDED.maintenance_performed,
			updated_at = now()
	`, location, parkID, t)
	return err
}

func (r *LocationsRepo) List(ctx context.Context) ([]animals.Location, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT location, park_id, maintenance_performed, updated_at
		FROM locations
		ORDER BY location, park_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Location, 0)
	for rows.Next() {
		var l animals.Location
		if err := rows.Scan(&l.Location, &l.ParkID, &l.MaintenancePerformed, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LocationsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locations`)
	return err
}
