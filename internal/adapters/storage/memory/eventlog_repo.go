package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"park-safety-service/internal/domain/animals"
)

type eventLogRepo struct {
	mu      sync.RWMutex
	entries []animals.LogEntry
	nextID  int64
}

func NewEventLogRepo() animals.EventLogRepository {
	return &eventLogRepo{nextID: 1}
}

func (r *eventLogRepo) Append(ctx context.Context, e animals.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()

	r.entries = append(r.entries, e)
	return nil
}

func (r *eventLogRepo) ListByTime(ctx context.Context) ([]animals.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.LogEntry, len(r.entries))
	copy(out, r.entries)

	// orden por tiempo de evento, con el id de secuencia como desempate
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time.Equal(out[j].Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}

func (r *eventLogRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	return nil
}
