package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"park-safety-service/internal/domain/events"
	"park-safety-service/internal/platform/logger"
	"park-safety-service/internal/platform/metrics"
)

// Fetcher trae un lote de eventos del feed. El body crudo acompaña al lote
// para poder auditarlo tal como llegó.
type Fetcher interface {
	FetchEvents(ctx context.Context) ([]events.ParkEvent, []byte, error)
}

// Reconciler aplica un evento contra los dos almacenes.
type Reconciler interface {
	Apply(ctx context.Context, ev events.ParkEvent) error
}

// Report resume un lote aplicado. Los errores por evento no abortan el
// lote: se cuentan acá en vez de quedar solo como efecto de log.
type Report struct {
	BatchID      string         `json:"batch_id"`
	Total        int            `json:"total"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	FailedByKind map[string]int `json:"failed_by_kind,omitempty"`
}

type Ingestor struct {
	fetcher  Fetcher
	recon    Reconciler
	auditDir string
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Options struct {
	// AuditDir guarda una copia cruda de cada lote. Vacío = sin auditoría.
	AuditDir string
	Metrics  *metrics.Metrics
}

func New(fetcher Fetcher, recon Reconciler, log logger.Logger, opts Options) *Ingestor {
	return &Ingestor{
		fetcher:  fetcher,
		recon:    recon,
		auditDir: strings.TrimSpace(opts.AuditDir),
		log:      log,
		metrics:  opts.Metrics,
		now:      time.Now,
	}
}

// Run hace una pasada completa: fetch, auditoría y aplicación del lote.
// Un error acá es del fetch; los errores por evento quedan en el Report.
func (i *Ingestor) Run(ctx context.Context) (Report, error) {
	evs, raw, err := i.fetcher.FetchEvents(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("ingest: %w", err)
	}

	i.audit(raw)

	rep := i.Process(ctx, evs)
	i.metrics.BatchCompleted()
	return rep, nil
}

// Process aplica los eventos estrictamente en secuencia, en el orden
// recibido. Un evento que falla se loguea con su kind y sujeto, y el lote
// sigue con el próximo: la aplicación parcial es el modo de falla aceptado.
func (i *Ingestor) Process(ctx context.Context, evs []events.ParkEvent) Report {
	rep := Report{
		BatchID:      uuid.NewString(),
		Total:        len(evs),
		FailedByKind: make(map[string]int),
	}

	i.log.Debug("processing batch", map[string]any{
		"batch_id": rep.BatchID,
		"total":    rep.Total,
	})

	for _, ev := range evs {
		kind := string(ev.EventKind())

		if err := i.recon.Apply(ctx, ev); err != nil {
			rep.Failed++
			rep.FailedByKind[kind]++
			i.metrics.EventFailed(kind)
			i.log.Error("event processing failed", map[string]any{
				"batch_id": rep.BatchID,
				"kind":     kind,
				"subject":  events.Subject(ev),
				"error":    err.Error(),
			})
			continue
		}

		rep.Succeeded++
		i.metrics.EventProcessed(kind)
	}

	if rep.Failed == 0 {
		rep.FailedByKind = nil
	}
	return rep
}

func (i *Ingestor) audit(raw []byte) {
	if i.auditDir == "" || len(raw) == 0 {
		return
	}

	name := i.now().UTC().Format("2006-01-02T15-04-05") + "-" + uuid.NewString() + ".json"
	path := filepath.Join(i.auditDir, name)

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		// la auditoría es best-effort, no frena la ingesta
		i.log.Warn("audit write failed", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	i.log.Debug("raw batch written", map[string]any{"path": path})
}

// RunEvery ejecuta Run cada interval hasta que el contexto se cancele.
// Una corrida en curso termina el evento que está aplicando antes de cortar.
func (i *Ingestor) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i.log.Info("scheduled sync enabled", map[string]any{"interval": interval.String()})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rep, err := i.Run(ctx)
			if err != nil {
				i.log.Error("scheduled sync failed", map[string]any{"error": err.Error()})
				continue
			}
			i.log.Info("scheduled sync completed", map[string]any{
				"batch_id":  rep.BatchID,
				"total":     rep.Total,
				"succeeded": rep.Succeeded,
				"failed":    rep.Failed,
			})
		}
	}
}
