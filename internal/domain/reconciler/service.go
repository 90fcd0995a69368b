package reconciler

import (
	"context"
	"errors"
	"fmt"

	"park-safety-service/internal/domain/animals"
	"park-safety-service/internal/domain/events"
	"park-safety-service/internal/domain/hungerindex"
	"park-safety-service/internal/platform/logger"
)

// Service aplica cada evento del feed sobre el almacén autoritativo y el
// índice derivado. Todos los handlers son idempotentes frente a la
// re-entrega del mismo evento; el orden temporal lo resuelve el guard del
// índice, no el reconciliador.
type Service struct {
	animals   animals.AnimalRepository
	eventLog  animals.EventLogRepository
	locations animals.LocationRepository
	index     *hungerindex.Store
	log       logger.Logger
}

func NewService(
	animalRepo animals.AnimalRepository,
	eventLog animals.EventLogRepository,
	locationRepo animals.LocationRepository,
	index *hungerindex.Store,
	log logger.Logger,
) *Service {
	return &Service{
		animals:   animalRepo,
		eventLog:  eventLog,
		locations: locationRepo,
		index:     index,
		log:       log,
	}
}

// Apply despacha el evento a su handler. El switch sobre la unión cerrada
// es exhaustivo: un tipo nuevo de evento que no se contemple acá termina en
// error, nunca se ignora en silencio.
func (s *Service) Apply(ctx context.Context, ev events.ParkEvent) error {
	switch e := ev.(type) {
	case events.AnimalAdded:
		return s.handleAnimalAdded(ctx, e)
	case events.AnimalFed:
		return s.handleAnimalFed(ctx, e)
	case events.AnimalLocationUpdated:
		return s.handleAnimalLocationUpdated(ctx, e)
	case events.AnimalRemoved:
		return s.handleAnimalRemoved(ctx, e)
	case events.MaintenancePerformed:
		return s.handleMaintenancePerformed(ctx, e)
	default:
		return fmt.Errorf("%w: %T", events.ErrUnknownKind, ev)
	}
}

func (s *Service) handleAnimalAdded(ctx context.Context, e events.AnimalAdded) error {
	s.log.Info("animal added", map[string]any{
		"animal_id": e.AnimalID,
		"name":      e.Name,
		"species":   e.Species,
		"herbivore": e.Herbivore,
	})

	// No reactivar un animal que ya fue dado de baja: si existe, se arrastra
	// su is_active; si no existe, el alta arranca activo.
	isActive := true
	existing, err := s.animals.GetByID(ctx, e.AnimalID)
	switch {
	case err == nil:
		isActive = existing.IsActive
	case errors.Is(err, animals.ErrNotFound):
	default:
		return err
	}

	if err := s.animals.UpsertProfile(ctx, animals.Animal{
		ID:                   e.AnimalID,
		Name:                 ptr(e.Name),
		Species:              ptr(e.Species),
		Sex:                  ptr(e.Sex),
		DigestionPeriodHours: ptr(e.DigestionPeriodHours),
		Herbivore:            ptr(e.Herbivore),
		AddedAt:              ptr(e.Time),
		IsActive:             isActive,
		ParkID:               ptr(e.ParkID),
	}); err != nil {
		return err
	}

	if err := s.eventLog.Append(ctx, animals.LogEntry{
		Kind:     string(events.KindAnimalAdded),
		AnimalID: e.AnimalID,
		ParkID:   e.ParkID,
		Time:     e.Time,
		Metadata: map[string]any{
			"name":                      e.Name,
			"species":                   e.Species,
			"sex":                       e.Sex,
			"digestion_period_in_hours": e.DigestionPeriodHours,
			"herbivore":                 e.Herbivore,
		},
	}); err != nil {
		return err
	}

	// La ubicación no se toca acá: recién se conoce con un evento de ubicación.
	return s.index.Update(ctx, e.AnimalID, hungerindex.Patch{
		Herbivore:            ptr(e.Herbivore),
		DigestionPeriodHours: ptr(e.DigestionPeriodHours),
		Active:               ptr(isActive),
	})
}

func (s *Service) handleAnimalFed(ctx context.Context, e events.AnimalFed) error {
	s.log.Info("animal fed", map[string]any{"animal_id": e.AnimalID})

	matched, err := s.animals.UpdateLastFed(ctx, e.AnimalID, e.Time)
	if err != nil {
		return err
	}
	if !matched {
		// el evento llegó antes que el alta: registro parcial solo con lo que se sabe
		if err := s.animals.Insert(ctx, animals.Animal{
			ID:        e.AnimalID,
			ParkID:    ptr(e.ParkID),
			LastFedAt: ptr(e.Time),
			IsActive:  true,
		}); err != nil {
			return err
		}
	}

	if err := s.eventLog.Append(ctx, animals.LogEntry{
		Kind:     string(events.KindAnimalFed),
		AnimalID: e.AnimalID,
		ParkID:   e.ParkID,
		Time:     e.Time,
	}); err != nil {
		return err
	}

	return s.index.Update(ctx, e.AnimalID, hungerindex.Patch{
		LastFed: hungerindex.FedAt(e.Time),
	})
}

func (s *Service) handleAnimalLocationUpdated(ctx context.Context, e events.AnimalLocationUpdated) error {
	s.log.Info("animal location updated", map[string]any{
		"animal_id": e.AnimalID,
		"location":  e.Location,
	})

	matched, err := s.animals.UpdateLocation(ctx, e.AnimalID, e.Location)
	if err != nil {
		return err
	}
	if !matched {
		if err := s.animals.Insert(ctx, animals.Animal{
			ID:              e.AnimalID,
			ParkID:          ptr(e.ParkID),
			CurrentLocation: ptr(e.Location),
			IsActive:        true,
		}); err != nil {
			return err
		}
	}

	if err := s.index.Place(ctx, e.AnimalID, e.Location, e.Time); err != nil {
		return err
	}

	return s.eventLog.Append(ctx, animals.LogEntry{
		Kind:     string(events.KindAnimalLocationUpdated),
		AnimalID: e.AnimalID,
		ParkID:   e.ParkID,
		Time:     e.Time,
		Metadata: map[string]any{"location": e.Location},
	})
}

func (s *Service) handleAnimalRemoved(ctx context.Context, e events.AnimalRemoved) error {
	s.log.Info("animal removed", map[string]any{"animal_id": e.AnimalID})

	matched, err := s.animals.MarkRemoved(ctx, e.AnimalID, e.Time)
	if err != nil {
		return err
	}
	if !matched {
		if err := s.animals.Insert(ctx, animals.Animal{
			ID:        e.AnimalID,
			ParkID:    ptr(e.ParkID),
			IsActive:  false,
			RemovedAt: ptr(e.Time),
		}); err != nil {
			return err
		}
	}

	if _, err := s.index.Remove(ctx, e.AnimalID); err != nil {
		return err
	}

	return s.eventLog.Append(ctx, animals.LogEntry{
		Kind:     string(events.KindAnimalRemoved),
		AnimalID: e.AnimalID,
		ParkID:   e.ParkID,
		Time:     e.Time,
	})
}

func (s *Service) handleMaintenancePerformed(ctx context.Context, e events.MaintenancePerformed) error {
	if err := s.locations.UpsertMaintenance(ctx, e.Location, e.ParkID, e.Time); err != nil {
		// el registro de mantenimiento es best-effort: nunca aborta el lote
		s.log.Error("maintenance upsert failed", map[string]any{
			"location": e.Location,
			"error":    err.Error(),
		})
		return nil
	}

	s.log.Info("maintenance performed", map[string]any{
		"location": e.Location,
		"at":       e.Time,
	})
	return nil
}

// WipeAll borra todo: primero el índice derivado y recién después los datos
// autoritativos, para que una lectura concurrente nunca vea datos
// autoritativos sin índice que los respalde.
func (s *Service) WipeAll(ctx context.Context) error {
	n, err := s.index.ClearAll(ctx)
	if err != nil {
		return err
	}
	if err := s.eventLog.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.animals.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.locations.DeleteAll(ctx); err != nil {
		return err
	}

	s.log.Info("all data deleted", map[string]any{"index_keys_removed": n})
	return nil
}

func ptr[T any](v T) *T { return &v }
