package reconciler

import (
	"context"
	"errors"

	"park-safety-service/internal/domain/animals"
	"park-safety-service/internal/domain/events"
	"park-safety-service/internal/domain/hungerindex"
)

// RebuildIndex reconstruye el índice derivado completo desde el log de
// eventos aplicados, en orden temporal. El índice es una vista
// materializada best-effort, así que una reconstrucción siempre es válida
// mientras el log autoritativo esté entero.
func (s *Service) RebuildIndex(ctx context.Context) error {
	if _, err := s.index.ClearAll(ctx); err != nil {
		return err
	}

	entries, err := s.eventLog.ListByTime(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := s.applyLogEntryToIndex(ctx, entry); err != nil {
			s.log.Error("rebuild: log entry skipped", map[string]any{
				"log_id":    entry.ID,
				"kind":      entry.Kind,
				"animal_id": entry.AnimalID,
				"error":     err.Error(),
			})
		}
	}

	s.log.Info("index rebuilt from event log", map[string]any{"entries": len(entries)})
	return nil
}

func (s *Service) applyLogEntryToIndex(ctx context.Context, entry animals.LogEntry) error {
	switch events.Kind(entry.Kind) {
	case events.KindAnimalAdded:
		p := hungerindex.Patch{}
		if v, ok := entry.Metadata["herbivore"].(bool); ok {
			p.Herbivore = ptr(v)
		}
		if v, ok := entry.Metadata["digestion_period_in_hours"].(float64); ok {
			p.DigestionPeriodHours = ptr(v)
		}
		// El flag de actividad sale del estado autoritativo final, que ya
		// arrastró cualquier baja previa al re-alta.
		a, err := s.animals.GetByID(ctx, entry.AnimalID)
		switch {
		case err == nil:
			p.Active = ptr(a.IsActive)
		case errors.Is(err, animals.ErrNotFound):
			p.Active = ptr(true)
		default:
			return err
		}
		return s.index.Update(ctx, entry.AnimalID, p)

	case events.KindAnimalFed:
		return s.index.Update(ctx, entry.AnimalID, hungerindex.Patch{
			LastFed: hungerindex.FedAt(entry.Time),
		})

	case events.KindAnimalLocationUpdated:
		loc, ok := entry.Metadata["location"].(string)
		if !ok {
			return errors.New("location entry without location metadata")
		}
		return s.index.Place(ctx, entry.AnimalID, loc, entry.Time)

	case events.KindAnimalRemoved:
		_, err := s.index.Remove(ctx, entry.AnimalID)
		return err
	}

	// maintenance no se loguea y no afecta al índice
	return nil
}
