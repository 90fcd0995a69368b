package ingest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Administrator son las operaciones administrativas del reconciliador que
// expone la API: wipe total y reconstrucción del índice desde el log.
type Administrator interface {
	WipeAll(ctx context.Context) error
	RebuildIndex(ctx context.Context) error
}

func RegisterRoutes(r chi.Router, ing *Ingestor, admin Administrator) {
	r.Route("/nulds", func(nr chi.Router) {
		nr.Post("/request", syncHandler(ing))
		nr.Post("/rebuild", rebuildHandler(admin))
		nr.Delete("/data", wipeHandler(admin))
	})
}

type okResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// syncHandler godoc
// @Summary Disparar una pasada de ingesta
// @Description Ejecuta el mismo ciclo que el scheduler: fetch del feed, auditoría del lote crudo y aplicación evento por evento. Las fallas por evento no abortan el lote; quedan resumidas en el reporte.
// @Tags nulds
// @Produce json
// @Success 200 {object} Report
// @Failure 500 {string} string "fetch o decodificación del feed falló"
// @Router /nulds/request [post]
func syncHandler(ing *Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := ing.Run(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// rebuildHandler godoc
// @Summary Reconstruir el índice derivado
// @Description Borra el índice derivado y lo reconstruye reproduciendo el log de eventos en orden temporal.
// @Tags nulds
// @Produce json
// @Success 200 {object} okResponse
// @Failure 500 {string} string "reconstrucción falló"
// @Router /nulds/rebuild [post]
func rebuildHandler(admin Administrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := admin.RebuildIndex(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true, Message: "index rebuilt from event log"})
	}
}

// wipeHandler godoc
// @Summary Borrar todos los datos
// @Description Borra todo: primero el índice derivado, después el log de eventos, los animales y las ubicaciones. Idempotente.
// @Tags nulds
// @Produce json
// @Success 200 {object} okResponse
// @Failure 500 {string} string "borrado falló"
// @Router /nulds/data [delete]
func wipeHandler(admin Administrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := admin.WipeAll(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true, Message: "all data deleted"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
