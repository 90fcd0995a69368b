package animals

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, repo AnimalRepository, locations LocationRepository) {
	r.Get("/animals", listAnimalsHandler(repo))
	r.Get("/locations/maintenance", listMaintenanceHandler(locations))
}

// animalResponse es la vista autoritativa de un animal. Los campos
// nullable se omiten cuando no se conocen.
type animalResponse struct {
	ID                   int64      `json:"id"`
	Name                 *string    `json:"name,omitempty"`
	Species              *string    `json:"species,omitempty"`
	Sex                  *string    `json:"sex,omitempty"`
	DigestionPeriodHours *float64   `json:"digestion_period_in_hours,omitempty"`
	Herbivore            *bool      `json:"herbivore,omitempty"`
	CurrentLocation      *string    `json:"current_location,omitempty"`
	LastFedAt            *time.Time `json:"last_fed_at,omitempty"`
	AddedAt              *time.Time `json:"added_at,omitempty"`
	IsActive             bool       `json:"is_active"`
	ParkID               *int64     `json:"park_id,omitempty"`
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		Species:              a.Species,
		Sex:                  a.Sex,
		DigestionPeriodHours: a.DigestionPeriodHours,
		Herbivore:            a.Herbivore,
		CurrentLocation:      a.CurrentLocation,
		LastFedAt:            a.LastFedAt,
		AddedAt:              a.AddedAt,
		IsActive:             a.IsActive,
		ParkID:               a.ParkID,
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales activos
// @Description Lista el estado autoritativo actual de los animales activos del parque, en orden de id.
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Router /animals [get]
func listAnimalsHandler(repo AnimalRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.ListActive(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(list))
		for _, a := range list {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type maintenanceResponse struct {
	Location             string    `json:"location"`
	ParkID               int64     `json:"park_id"`
	MaintenancePerformed time.Time `json:"maintenance_performed"`
}

// listMaintenanceHandler godoc
// @Summary Último mantenimiento por ubicación
// @Tags animals
// @Produce json
// @Success 200 {array} maintenanceResponse
// @Router /locations/maintenance [get]
func listMaintenanceHandler(locations LocationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := locations.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		out := make([]maintenanceResponse, 0, len(list))
		for _, l := range list {
			out = append(out, maintenanceResponse{
				Location:             l.Location,
				ParkID:               l.ParkID,
				MaintenancePerformed: l.MaintenancePerformed,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
