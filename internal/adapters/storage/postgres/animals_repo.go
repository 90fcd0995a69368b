package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"park-safety-service/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, name, species, sex,
	digestion_period_in_hours, herbivore,
	current_location, last_fed_at, added_at,
	is_active, removed_at, park_id
`

func scanAnimal(row interface{ Scan(...any) error }) (animals.Animal, error) {
	var a animals.Animal
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Sex,
		&a.DigestionPeriodHours,
		&a.Herbivore,
		&a.CurrentLocation,
		&a.LastFedAt,
		&a.AddedAt,
		&a.IsActive,
		&a.RemovedAt,
		&a.ParkID,
	)
	return a, err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	if err != nil {
		return animals.Animal{}, err
	}
	return a, nil
}

// UpsertProfile escribe solo las columnas del alta; un alta que llega fuera
// de orden no pisa last_fed_at / current_location / removed_at ya conocidos.
func (r *AnimalsRepo) UpsertProfile(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name, species, sex,
			digestion_period_in_hours, herbivore,
			added_at, is_active, park_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			species = EXCLUDED.species,
			sex = EXCLUDED.sex,
			digestion_period_in_hours = EXCLUDED.digestion_period_in_hours,
			herbivore = EXCLUDED.herbivore,
			added_at = EXCLUDED.added_at,
			is_active = EXCLUDED.is_active,
			park_id = EXCLUDED.park_id
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Sex,
		a.DigestionPeriodHours,
		a.Herbivore,
		a.AddedAt,
		a.IsActive,
		a.ParkID,
	)
	return err
}

func (r *AnimalsRepo) Insert(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, current_location, last_fed_at,
			is_active, removed_at, park_id
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO NOTHING
	`,
		a.ID,
		a.CurrentLocation,
		a.LastFedAt,
		a.IsActive,
		a.RemovedAt,
		a.ParkID,
	)
	return err
}

func (r *AnimalsRepo) UpdateLastFed(ctx context.Context, id int64, t time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals SET last_fed_at = $2 WHERE id = $1
	`, id, t)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *AnimalsRepo) UpdateLocation(ctx context.Context, id int64, location string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals SET current_location = $2 WHERE id = $1
	`, id, location)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *AnimalsRepo) MarkRemoved(ctx context.Context, id int64, t time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals SET is_active = FALSE, removed_at = $2 WHERE id = $1
	`, id, t)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *AnimalsRepo) ListActive(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE is_active
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM animals`)
	return err
}
