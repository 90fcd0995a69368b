package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown event kind")

// envelope lee solo el discriminador antes de la segunda pasada de decode.
type envelope struct {
	Kind Kind `json:"kind"`
}

// Decode convierte un evento JSON del feed en su tipo concreto.
func Decode(raw []byte) (ParkEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}

	switch env.Kind {
	case KindAnimalAdded:
		var e AnimalAdded
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		return e, nil
	case KindAnimalFed:
		var e AnimalFed
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		return e, nil
	case KindAnimalLocationUpdated:
		var e AnimalLocationUpdated
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		return e, nil
	case KindAnimalRemoved:
		var e AnimalRemoved
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		return e, nil
	case KindMaintenancePerformed:
		var e MaintenancePerformed
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind)
	}
}

// DecodeBatch decodifica el lote completo tal como lo entrega el feed,
// preservando el orden de llegada.
func DecodeBatch(data []byte) ([]ParkEvent, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}

	out := make([]ParkEvent, 0, len(raws))
	for i, raw := range raws {
		ev, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// Subject describe al sujeto del evento para logs ("animal 7", "location A5").
func Subject(ev ParkEvent) string {
	switch e := ev.(type) {
	case AnimalAdded:
		return fmt.Sprintf("animal %d", e.AnimalID)
	case AnimalFed:
		return fmt.Sprintf("animal %d", e.AnimalID)
	case AnimalLocationUpdated:
		return fmt.Sprintf("animal %d", e.AnimalID)
	case AnimalRemoved:
		return fmt.Sprintf("animal %d", e.AnimalID)
	case MaintenancePerformed:
		return fmt.Sprintf("location %s", e.Location)
	default:
		return ""
	}
}
