package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"park-safety-service/internal/domain/animals"
)

type locationsRepo struct {
	mu    sync.RWMutex
	byKey map[string]animals.Location
}

func NewLocationsRepo() animals.LocationRepository {
	return &locationsRepo{
		byKey: make(map[string]animals.Location),
	}
}

func key(location string, parkID int64) string {
	return fmt.Sprintf("%s/%d", location, parkID)
}

func (r *locationsRepo) UpsertMaintenance(ctx context.Context, location string, parkID int64, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey[key(location, parkID)] = animals.Location{
		Location:             location,
		ParkID:               parkID,
		MaintenancePerformed: t,
		UpdatedAt:            time.Now(),
	}
	return nil
}

func (r *locationsRepo) List(ctx context.Context) ([]animals.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Location, 0, len(r.byKey))
	for _, l := range r.byKey {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].ParkID < out[j].ParkID
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func (r *locationsRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey = make(map[string]animals.Location)
	return nil
}
