package hungerindex

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"park-safety-service/internal/platform/logger"
)

// Store mantiene dos estructuras en el KV:
//   - animal:{id}  → Record JSON compacto del animal
//   - hungry:{loc} → hash animal-id → timestamp de la última colocación,
//     solo para carnívoros activos que se creen con hambre en esa ubicación
//
// La ausencia de una entrada en hungry:{loc} significa "no es riesgo acá",
// no "desconocido".
type Store struct {
	kv  KV
	log logger.Logger
}

func NewStore(kv KV, log logger.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// NormalizeLocation pasa a mayúscula el primer carácter ("a5" → "A5").
// El resto del código de ubicación es opaco y se deja intacto.
func NormalizeLocation(location string) string {
	if location == "" {
		return location
	}
	return strings.ToUpper(location[:1]) + location[1:]
}

func (s *Store) getRecord(ctx context.Context, animalID int64) (Record, bool, error) {
	raw, ok, err := s.kv.Get(ctx, animalKey(animalID))
	if err != nil {
		return Record{}, false, err
	}
	if !ok {
		return Record{}, false, nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// registro corrupto: se trata como ausente y la próxima escritura lo regenera
		s.log.Warn("malformed animal record, treating as absent", map[string]any{
			"animal_id": animalID,
		})
		return Record{}, false, nil
	}
	return rec, true, nil
}

func (s *Store) putRecord(ctx context.Context, animalID int64, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, animalKey(animalID), string(b))
}

// Place registra que el animal fue colocado en location al tiempo t.
//
// El guard de ordenación compara t contra el timestamp ya aplicado en el
// hash de la ubicación anterior: si el aplicado es estrictamente posterior,
// el evento entrante es obsoleto y la operación entera se aborta sin mutar
// ninguno de los dos almacenes. Eso hace que el resultado final no dependa
// del orden de llegada de los eventos de ubicación.
func (s *Store) Place(ctx context.Context, animalID int64, location string, t time.Time) error {
	rec, _, err := s.getRecord(ctx, animalID)
	if err != nil {
		return err
	}

	field := strconv.FormatInt(animalID, 10)

	if rec.Location != nil {
		prev, ok, err := s.kv.HGet(ctx, hungryKey(*rec.Location), field)
		if err != nil {
			return err
		}
		if ok {
			prevTime, perr := time.Parse(time.RFC3339Nano, prev)
			if perr == nil && prevTime.After(t) {
				s.log.Debug("stale placement ignored", map[string]any{
					"animal_id": animalID,
					"location":  location,
				})
				return nil
			}
		}
	}

	dest := NormalizeLocation(location)
	prevLocation := rec.Location

	rec.Location = &dest
	if err := s.putRecord(ctx, animalID, rec); err != nil {
		return err
	}

	if prevLocation != nil {
		if err := s.kv.HDel(ctx, hungryKey(*prevLocation), field); err != nil {
			return err
		}
	}

	// herbívoros e inactivos nunca entran al índice de hambre
	if rec.Herbivore != nil && *rec.Herbivore {
		return nil
	}
	if rec.IsActive != nil && !*rec.IsActive {
		return nil
	}

	// Solo se suprime la alerta cuando se sabe positivamente que no tiene
	// hambre: última comida y período de digestión conocidos, y la digestión
	// todavía no terminó. Cualquier dato desconocido cuenta como riesgo.
	if rec.LastFedAt.Set && rec.LastFedAt.Valid && rec.DigestionPeriodHours != nil {
		digestion := time.Duration(*rec.DigestionPeriodHours * float64(time.Hour))
		if t.Sub(rec.LastFedAt.Time) < digestion {
			return nil
		}
	}

	return s.kv.HSet(ctx, hungryKey(dest), field, t.UTC().Format(time.RFC3339Nano))
}

// Update mezcla los campos presentes del patch sobre el registro del animal
// (o sobre uno vacío si todavía no existe) y lo persiste.
//
// Si el registro tiene ubicación conocida y el animal dejó de ser riesgo
// —el patch lo declara herbívoro, la última comida quedó no-nula, o quedó
// inactivo— se lo saca del hash de esa ubicación.
func (s *Store) Update(ctx context.Context, animalID int64, p Patch) error {
	rec, _, err := s.getRecord(ctx, animalID)
	if err != nil {
		return err
	}

	rec.merge(p)

	if err := s.putRecord(ctx, animalID, rec); err != nil {
		return err
	}

	if rec.Location == nil {
		return nil
	}

	nowHerbivore := p.Herbivore != nil && *p.Herbivore
	nowFed := rec.LastFedAt.Set && rec.LastFedAt.Valid
	nowInactive := rec.IsActive != nil && !*rec.IsActive
	if nowHerbivore || nowFed || nowInactive {
		return s.kv.HDel(ctx, hungryKey(*rec.Location), strconv.FormatInt(animalID, 10))
	}
	return nil
}

// Remove borra el registro del animal y su entrada de índice si la tiene.
// Devuelve false sin escribir nada cuando el animal no está en el índice.
func (s *Store) Remove(ctx context.Context, animalID int64) (bool, error) {
	rec, ok, err := s.getRecord(ctx, animalID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	field := strconv.FormatInt(animalID, 10)
	if rec.Location != nil {
		if err := s.kv.HDel(ctx, hungryKey(*rec.Location), field); err != nil {
			return false, err
		}
	}
	if _, err := s.kv.Del(ctx, animalKey(animalID)); err != nil {
		return false, err
	}

	s.log.Info("animal removed from index", map[string]any{"animal_id": animalID})
	return true, nil
}

// ClearAll borra todos los registros por-animal y todos los índices
// por-ubicación. Devuelve la cantidad de claves eliminadas.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	animalKeys, err := s.kv.Keys(ctx, animalKeyPrefix+"*")
	if err != nil {
		return 0, err
	}
	hungryKeys, err := s.kv.Keys(ctx, hungryKeyPrefix+"*")
	if err != nil {
		return 0, err
	}

	keys := append(animalKeys, hungryKeys...)
	if len(keys) == 0 {
		return 0, nil
	}

	n, err := s.kv.Del(ctx, keys...)
	if err != nil {
		return 0, err
	}
	s.log.Info("index cleared", map[string]any{"keys_removed": n})
	return n, nil
}

// GetRecord expone el registro compacto para la API de lectura.
func (s *Store) GetRecord(ctx context.Context, animalID int64) (Record, bool, error) {
	return s.getRecord(ctx, animalID)
}

// HungryAt devuelve el mapa animal-id → timestamp de colocación para la
// ubicación dada (normalizada), tal como se expone por la API.
func (s *Store) HungryAt(ctx context.Context, location string) (map[string]string, error) {
	return s.kv.HGetAll(ctx, hungryKey(NormalizeLocation(location)))
}
