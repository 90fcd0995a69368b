package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	pg "park-safety-service/internal/adapters/storage/postgres"
	"park-safety-service/internal/platform/logger"
	"park-safety-service/internal/platform/metrics"
	"park-safety-service/internal/router"
)

// @title Park Safety Service API
// @version 1.0
// @description Ingiere los eventos de telemetría del parque, mantiene el estado autoritativo en Postgres y un índice derivado de carnívoros con hambre por ubicación.
// @BasePath /
func main() {
	_ = godotenv.Load()

	appLog := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	feedURL := os.Getenv("NULDS_API_URL")
	if feedURL == "" {
		feedURL = "https://api.example.com/data"
	}

	opts := router.Options{
		Logger:      appLog,
		FeedURL:     feedURL,
		FeedTimeout: 15 * time.Second,
		AuditDir:    os.Getenv("AUDIT_DIR"),
		Metrics:     metrics.New(),
	}

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		if err := pg.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		opts.DB = db
	}

	handler, ing, err := router.New(opts)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// SYNC_INTERVAL habilita la pasada programada (ej: "1m"). Sin setear,
	// la ingesta solo corre por el trigger manual.
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid SYNC_INTERVAL %q: %v", v, err)
		}
		go ing.RunEvery(ctx, interval)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLog.Info("starting server", map[string]any{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
