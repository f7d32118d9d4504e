package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"softmatrices_site_go/config"
	"softmatrices_site_go/db"
	"softmatrices_site_go/handlers"
	"softmatrices_site_go/middleware"
	"softmatrices_site_go/services"
	"softmatrices_site_go/services/jobs"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Relay events are optional; without DB_PATH the recorder is a no-op
	if cfg.DBPath != "" {
		if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
	} else {
		log.Println("[INFO] DB_PATH not set, relay events will not be recorded")
	}

	relay := services.NewContactRelayFromConfig(cfg)
	recorder := services.NewRelayEventRecorder(db.DB, cfg.IPHashSecret)
	monitor := services.NewRelayMonitor(cfg)

	scheduler, err := jobs.StartScheduler(db.DB, cfg, monitor)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	contact := handlers.NewContactHandler(relay, recorder, monitor)
	e := newServer(cfg, contact, monitor, middleware.NewContactRateLimiter(cfg.ContactRateLimit))

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RelayTimeout+5*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	<-scheduler.Stop().Done()
	recorder.Wait()
	log.Println("Server stopped")
}
