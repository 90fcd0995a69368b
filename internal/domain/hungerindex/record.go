package hungerindex

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	animalKeyPrefix = "animal:"
	hungryKeyPrefix = "hungry:"
)

func animalKey(id int64) string        { return animalKeyPrefix + strconv.FormatInt(id, 10) }
func hungryKey(location string) string { return hungryKeyPrefix + location }

// NullTime distingue tres estados para last_fed_at:
//   - no seteado (Set=false): el dato es desconocido y no aparece en el JSON
//   - null explícito (Set=true, Valid=false): sabemos que nunca fue alimentado
//   - valor (Set=true, Valid=true)
//
// La distinción importa: "desconocido" se trata como riesgo de hambre,
// mientras que un campo ausente jamás se serializa como cero.
type NullTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

// FedAt construye un NullTime con valor.
func FedAt(t time.Time) NullTime { return NullTime{Set: true, Valid: true, Time: t} }

// NeverFed construye el null explícito.
func NeverFed() NullTime { return NullTime{Set: true} }

// IsZero habilita `omitzero`: un NullTime sin setear no se serializa.
func (n NullTime) IsZero() bool { return !n.Set }

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Set || !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time)
}

func (n *NullTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullTime{Set: true}
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*n = NullTime{Set: true, Valid: true, Time: t}
	return nil
}

// Record es el registro compacto por animal que mantiene el índice derivado.
// Todo campo ausente significa "desconocido", no "falso/cero"; el registro se
// construye de manera incremental a medida que llegan distintos eventos.
type Record struct {
	Location             *string  `json:"location,omitempty"`
	Herbivore            *bool    `json:"herbivore,omitempty"`
	DigestionPeriodHours *float64 `json:"digestion_period_in_hours,omitempty"`
	LastFedAt            NullTime `json:"last_fed_at,omitzero"`
	IsActive             *bool    `json:"is_active,omitempty"`
}

// Patch es una actualización parcial tipada: los campos nil no se tocan.
// LastFed con Set=false tampoco toca nada; NeverFed() limpia el valor
// dejando el null explícito.
type Patch struct {
	Herbivore            *bool
	DigestionPeriodHours *float64
	LastFed              NullTime
	Active               *bool
}

func (r *Record) merge(p Patch) {
	if p.Herbivore != nil {
		r.Herbivore = p.Herbivore
	}
	if p.DigestionPeriodHours != nil {
		r.DigestionPeriodHours = p.DigestionPeriodHours
	}
	if p.LastFed.Set {
		r.LastFedAt = p.LastFed
	}
	if p.Active != nil {
		r.IsActive = p.Active
	}
}
