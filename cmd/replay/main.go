package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"

	cachemem "park-safety-service/internal/adapters/cache/memory"
	cacheredis "park-safety-service/internal/adapters/cache/redis"
	storagemem "park-safety-service/internal/adapters/storage/memory"
	pg "park-safety-service/internal/adapters/storage/postgres"
	"park-safety-service/internal/domain/animals"
	"park-safety-service/internal/domain/events"
	"park-safety-service/internal/domain/hungerindex"
	"park-safety-service/internal/domain/reconciler"
	"park-safety-service/internal/ingest"
	"park-safety-service/internal/platform/logger"
)

// Replay offline: carga un lote de eventos desde un archivo JSON, lo ordena
// por tiempo de evento y lo aplica contra los almacenes configurados. El
// guard de ordenación hace que el resultado coincida con el de la ingesta
// en vivo, ordene o no.
func main() {
	file := flag.String("file", "input.json", "archivo JSON con el lote de eventos")
	flag.Parse()

	_ = godotenv.Load()
	appLog := logger.NewFromEnv()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	evs, err := events.DecodeBatch(data)
	if err != nil {
		log.Fatalf("decode batch: %v", err)
	}

	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].OccurredAt().Before(evs[j].OccurredAt())
	})

	ctx := context.Background()

	var (
		animalRepo   animals.AnimalRepository
		eventLogRepo animals.EventLogRepository
		locationRepo animals.LocationRepository
	)
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		animalRepo = pg.NewAnimalsRepo(db)
		eventLogRepo = pg.NewEventLogRepo(db)
		locationRepo = pg.NewLocationsRepo(db)
	} else {
		animalRepo = storagemem.NewAnimalsRepo()
		eventLogRepo = storagemem.NewEventLogRepo()
		locationRepo = storagemem.NewLocationsRepo()
	}

	var kv hungerindex.KV
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		opened, err := cacheredis.Open(addr)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer opened.Close()
		kv = opened
	} else {
		kv = cachemem.NewKV()
	}

	index := hungerindex.NewStore(kv, appLog)
	recon := reconciler.NewService(animalRepo, eventLogRepo, locationRepo, index, appLog)

	ing := ingest.New(nil, recon, appLog, ingest.Options{})
	rep := ing.Process(ctx, evs)

	out, _ := json.MarshalIndent(rep, "", "  ")
	os.Stdout.Write(append(out, '\n'))
}
