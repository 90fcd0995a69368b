package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "park-safety-service/docs"
	cachemem "park-safety-service/internal/adapters/cache/memory"
	cacheredis "park-safety-service/internal/adapters/cache/redis"
	"park-safety-service/internal/adapters/feed"
	storagemem "park-safety-service/internal/adapters/storage/memory"
	pg "park-safety-service/internal/adapters/storage/postgres"
	"park-safety-service/internal/domain/animals"
	"park-safety-service/internal/domain/hungerindex"
	"park-safety-service/internal/domain/reconciler"
	"park-safety-service/internal/ingest"
	"park-safety-service/internal/platform/logger"
	"park-safety-service/internal/platform/metrics"
)

type Options struct {
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, prueba DB_DSN y cae a in-memory.
	DB *sql.DB

	// Opcional: si viene, usa ese KV. Si no, prueba REDIS_ADDR y cae a in-memory.
	KV hungerindex.KV

	FeedURL     string
	FeedTimeout time.Duration
	AuditDir    string

	Metrics *metrics.Metrics
}

// New arma el router y el pipeline de ingesta completos. Devuelve también
// el Ingestor para que main pueda correr el scheduler.
func New(opts Options) (http.Handler, *ingest.Ingestor, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Almacén autoritativo
	var (
		animalRepo   animals.AnimalRepository
		eventLogRepo animals.EventLogRepository
		locationRepo animals.LocationRepository
	)

	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, using in-memory store", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		eventLogRepo = pg.NewEventLogRepo(db)
		locationRepo = pg.NewLocationsRepo(db)
	} else {
		animalRepo = storagemem.NewAnimalsRepo()
		eventLogRepo = storagemem.NewEventLogRepo()
		locationRepo = storagemem.NewLocationsRepo()
	}

	// Índice derivado
	kv := opts.KV
	if kv == nil {
		if addr := os.Getenv("REDIS_ADDR"); addr != "" {
			opened, err := cacheredis.Open(addr)
			if err == nil {
				kv = opened
			} else {
				log.Warn("redis unavailable, using in-memory index", map[string]any{"error": err.Error()})
			}
		}
	}
	if kv == nil {
		kv = cachemem.NewKV()
	}

	index := hungerindex.NewStore(kv, log)
	recon := reconciler.NewService(animalRepo, eventLogRepo, locationRepo, index, log)

	fetcher, err := feed.NewClient(opts.FeedURL, opts.FeedTimeout)
	if err != nil {
		return nil, nil, err
	}
	ing := ingest.New(fetcher, recon, log, ingest.Options{
		AuditDir: opts.AuditDir,
		Metrics:  opts.Metrics,
	})

	// Rutas por módulo
	ingest.RegisterRoutes(r, ing, recon)
	hungerindex.RegisterRoutes(r, index)
	animals.RegisterRoutes(r, animalRepo, locationRepo)

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r, ing, nil
}
