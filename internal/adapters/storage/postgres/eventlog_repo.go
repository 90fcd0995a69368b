package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"park-safety-service/internal/domain/animals"
)

type EventLogRepo struct {
	db *sql.DB
}

func NewEventLogRepo(db *sql.DB) *EventLogRepo {
	return &EventLogRepo{db: db}
}

func (r *EventLogRepo) Append(ctx context.Context, e animals.LogEntry) error {
	var metadata []byte
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal log metadata: %w", err)
		}
		metadata = b
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO park_events (kind, animal_id, park_id, time, metadata)
		VALUES ($1,$2,$3,$4,$5)
	`,
		e.Kind,
		e.AnimalID,
		e.ParkID,
		e.Time,
		metadata,
	)
	return err
}

func (r *EventLogRepo) ListByTime(ctx context.Context) ([]animals.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, animal_id, park_id, time, metadata, created_at
		FROM park_events
		ORDER BY time, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.LogEntry, 0)
	for rows.Next() {
		var e animals.LogEntry
		var metadata []byte

		if err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.AnimalID,
			&e.ParkID,
			&e.Time,
			&metadata,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal log metadata (id %d): %w", e.ID, err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventLogRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM park_events`)
	return err
}
