package events

import "time"

// Kind identifica el tipo de evento que emite el feed del parque.
type Kind string

const (
	KindAnimalAdded           Kind = "animal_added"
	KindAnimalFed             Kind = "animal_fed"
	KindAnimalLocationUpdated Kind = "animal_location_updated"
	KindAnimalRemoved         Kind = "animal_removed"
	KindMaintenancePerformed  Kind = "maintenance_performed"
)

// ParkEvent es la unión cerrada de los cinco tipos de evento.
// isParkEvent() evita implementaciones fuera del paquete: el switch del
// reconciliador puede asumir que cubre todos los casos.
type ParkEvent interface {
	EventKind() Kind
	Park() int64
	OccurredAt() time.Time

	isParkEvent()
}

// Base son los campos comunes a todos los eventos del feed.
type Base struct {
	ParkID int64     `json:"park_id"`
	Time   time.Time `json:"time"`
}

func (b Base) Park() int64           { return b.ParkID }
func (b Base) OccurredAt() time.Time { return b.Time }

// AnimalAdded llega cuando un animal ingresa al parque. Es el único evento
// que trae el perfil completo (especie, dieta, período de digestión).
type AnimalAdded struct {
	Base
	AnimalID             int64   `json:"id"`
	Name                 string  `json:"name"`
	Species              string  `json:"species"`
	Sex                  string  `json:"sex"`
	DigestionPeriodHours float64 `json:"digestion_period_in_hours"`
	Herbivore            bool    `json:"herbivore"`
}

func (AnimalAdded) EventKind() Kind { return KindAnimalAdded }
func (AnimalAdded) isParkEvent()    {}

type AnimalFed struct {
	Base
	AnimalID int64 `json:"animal_id"`
}

func (AnimalFed) EventKind() Kind { return KindAnimalFed }
func (AnimalFed) isParkEvent()    {}

type AnimalLocationUpdated struct {
	Base
	AnimalID int64  `json:"animal_id"`
	Location string `json:"location"`
}

func (AnimalLocationUpdated) EventKind() Kind { return KindAnimalLocationUpdated }
func (AnimalLocationUpdated) isParkEvent()    {}

type AnimalRemoved struct {
	Base
	AnimalID int64 `json:"animal_id"`
}

func (AnimalRemoved) EventKind() Kind { return KindAnimalRemoved }
func (AnimalRemoved) isParkEvent()    {}

type MaintenancePerformed struct {
	Base
	Location string `json:"location"`
}

func (MaintenancePerformed) EventKind() Kind { return KindMaintenancePerformed }
func (MaintenancePerformed) isParkEvent()    {}
