package animals

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// AnimalRepository es el almacén autoritativo de animales.
//
// UpsertProfile escribe solo las columnas de perfil del evento de alta
// (nombre, especie, sexo, digestión, dieta, added_at, is_active, park) y
// no toca last_fed_at / current_location / removed_at, para que un alta
// que llega después de un fed/moved no pise esos datos.
//
// Los Update* devuelven false cuando no existe fila para ese id; el
// reconciliador decide entonces sintetizar un registro parcial con Insert.
type AnimalRepository interface {
	GetByID(ctx context.Context, id int64) (Animal, error)
	UpsertProfile(ctx context.Context, a Animal) error
	Insert(ctx context.Context, a Animal) error
	UpdateLastFed(ctx context.Context, id int64, t time.Time) (bool, error)
	UpdateLocation(ctx context.Context, id int64, location string) (bool, error)
	MarkRemoved(ctx context.Context, id int64, t time.Time) (bool, error)
	ListActive(ctx context.Context) ([]Animal, error)
	DeleteAll(ctx context.Context) error
}

// EventLogRepository es el log append-only de eventos aplicados.
type EventLogRepository interface {
	Append(ctx context.Context, e LogEntry) error
	ListByTime(ctx context.Context) ([]LogEntry, error)
	DeleteAll(ctx context.Context) error
}

type LocationRepository interface {
	UpsertMaintenance(ctx context.Context, location string, parkID int64, t time.Time) error
	List(ctx context.Context) ([]Location, error)
	DeleteAll(ctx context.Context) error
}
