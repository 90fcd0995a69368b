package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"park-safety-service/internal/domain/animals"
)

type animalsRepo struct {
	mu   sync.RWMutex
	byID map[int64]animals.Animal
}

func NewAnimalsRepo() animals.AnimalRepository {
	return &animalsRepo{
		byID: make(map[int64]animals.Animal),
	}
}

func (r *animalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

// UpsertProfile escribe solo las columnas del alta; last_fed_at,
// current_location y removed_at del registro existente quedan como estaban.
func (r *animalsRepo) UpsertProfile(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.byID[a.ID]
	cur.ID = a.ID
	cur.Name = a.Name
	cur.Species = a.Species
	cur.Sex = a.Sex
	cur.DigestionPeriodHours = a.DigestionPeriodHours
	cur.Herbivore = a.Herbivore
	cur.AddedAt = a.AddedAt
	cur.IsActive = a.IsActive
	cur.ParkID = a.ParkID

	r.byID[a.ID] = cur
	return nil
}

func (r *animalsRepo) Insert(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == 0 {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		// mismo contrato que ON CONFLICT DO NOTHING
		return nil
	}

	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) UpdateLastFed(ctx context.Context, id int64, t time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	a.LastFedAt = &t
	r.byID[id] = a
	return true, nil
}

func (r *animalsRepo) UpdateLocation(ctx context.Context, id int64, location string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	a.CurrentLocation = &location
	r.byID[id] = a
	return true, nil
}

func (r *animalsRepo) MarkRemoved(ctx context.Context, id int64, t time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	a.IsActive = false
	a.RemovedAt = &t
	r.byID[id] = a
	return true, nil
}

func (r *animalsRepo) ListActive(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *animalsRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[int64]animals.Animal)
	return nil
}
