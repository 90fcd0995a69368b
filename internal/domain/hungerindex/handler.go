package hungerindex

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/locations/{location}/hungry", hungryAtHandler(store))
	r.Get("/animals/{animalID}/record", recordHandler(store))
}

// hungryResponse es el índice de hambre de una ubicación: animal-id (en
// forma de string) → timestamp de la última colocación.
type hungryResponse struct {
	Location string            `json:"location"`
	Animals  map[string]string `json:"animals"`
}

// hungryAtHandler godoc
// @Summary Carnívoros con hambre en una ubicación
// @Description Devuelve los animales que hoy se consideran riesgo en la ubicación dada: carnívoros activos sin constancia de haber sido alimentados dentro de su período de digestión. La ausencia de un animal significa "no es riesgo acá".
// @Tags index
// @Produce json
// @Param location path string true "Código de ubicación (ej: A5; se normaliza la primera letra)"
// @Success 200 {object} hungryResponse
// @Router /locations/{location}/hungry [get]
func hungryAtHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := NormalizeLocation(chi.URLParam(r, "location"))

		m, err := store.HungryAt(r.Context(), location)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if m == nil {
			m = map[string]string{}
		}

		writeJSON(w, http.StatusOK, hungryResponse{Location: location, Animals: m})
	}
}

// recordHandler godoc
// @Summary Registro derivado de un animal
// @Description Devuelve el registro compacto del animal en el índice derivado. Los campos ausentes son "desconocido", nunca cero; last_fed_at en null explícito significa "sabemos que nunca fue alimentado".
// @Tags index
// @Produce json
// @Param animalID path int true "ID del animal"
// @Success 200 {object} Record
// @Failure 400 {string} string "id inválido"
// @Failure 404 {string} string "animal desconocido para el índice"
// @Router /animals/{animalID}/record [get]
func recordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		rec, ok, err := store.GetRecord(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
