package main

import (
	"context"
	"log"

	"github.com/sihanyu03/LawTriposChatbot/internal/bootstrap"
	"github.com/sihanyu03/LawTriposChatbot/internal/config"
	"github.com/sihanyu03/LawTriposChatbot/internal/server"
	"github.com/sihanyu03/LawTriposChatbot/internal/tracer"
	"github.com/sihanyu03/LawTriposChatbot/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	container.Logger.Info("bootstrap", "Application wired", map[string]interface{}{
		"environment": cfg.App.Environment,
		"port":        cfg.App.Port,
	})

	// The consumer keeps running for documents ingested while the API is up.
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			container.Logger.Error("consumer", "Background consumer failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
