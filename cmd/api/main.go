package main

import (
	"context"
	"log"

	"github.com/pageforge/pageforge-backend/config"
	"github.com/pageforge/pageforge-backend/internal/bootstrap"
	"github.com/pageforge/pageforge-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(context.Background(), &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  "pageforge-backend",
		Version:      cfg.App.Version,
		DB:           db,
		Redis:        rdb,
		ListTTL:      cfg.Redis.ListTTL,
		ExportDir:    cfg.Export.Dir,
		ExportPrefix: cfg.Export.PublicPrefix,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
