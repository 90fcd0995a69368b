package animals

import "time"

// Animal es el registro autoritativo de un animal del parque.
// Los campos puntero son columnas nullable: un evento puede llegar antes
// que el alta del animal y sintetizar un registro parcial, así que todo
// lo que no se conoce queda en nil (nunca en cero).
type Animal struct {
	ID                   int64
	Name                 *string
	Species              *string
	Sex                  *string
	DigestionPeriodHours *float64
	Herbivore            *bool
	CurrentLocation      *string
	LastFedAt            *time.Time
	AddedAt              *time.Time
	IsActive             bool
	RemovedAt            *time.Time
	ParkID               *int64
}

// LogEntry es una fila del log de eventos aplicados. Append-only: nunca se
// actualiza ni se borra individualmente, solo con el wipe total.
type LogEntry struct {
	ID        int64
	Kind      string
	AnimalID  int64
	ParkID    int64
	Time      time.Time
	Metadata  map[string]any
	CreatedAt time.Time
}

// Location guarda el último mantenimiento registrado por (location, park).
type Location struct {
	Location             string
	ParkID               int64
	MaintenancePerformed time.Time
	UpdatedAt            time.Time
}
