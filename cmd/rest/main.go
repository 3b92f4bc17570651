package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Tarunsai01/ARIA/internal/bootstrap"
	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/internal/server"
	"github.com/Tarunsai01/ARIA/internal/tracer"
	"github.com/Tarunsai01/ARIA/pkg/database"
)

func main() {
	cfg := config.Load()

	// No-op unless OTEL_ENABLED=true; the returned func flushes spans.
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		// Panic instead of Fatal so the deferred cleanup still runs.
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Embedding worker. Consume only subscribes; the actual work runs
	// on the subscription goroutine until ctx is canceled.
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutdown signal received, draining connections...")
		if err := srv.GetApp().Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Panicf("Server stopped: %v", err)
	}
	log.Println("Shutdown complete")
}
