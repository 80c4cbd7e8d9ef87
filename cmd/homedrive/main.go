package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/avidal/homedrive/internal/adapter/handler"
	"github.com/avidal/homedrive/internal/infrastructure/blob"
	"github.com/avidal/homedrive/internal/infrastructure/repository"
	"github.com/avidal/homedrive/internal/usecase"
	"github.com/avidal/homedrive/pkg/config"
	"github.com/avidal/homedrive/pkg/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	metadata, err := repository.NewSQLiteMetadata(cfg.Storage.Database)
	if err != nil {
		log.Fatal("Failed to initialize metadata store: ", err)
	}
	defer metadata.Close()

	blobs, err := blob.NewDiskStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to initialize blob store: ", err)
	}

	namespace := usecase.NewNamespace(metadata, blobs)

	uploadLimit := middleware.NewUploadLimit(cfg.Server.MaxUploadSize)

	watcher, err := config.NewWatcher(config.Path(), func(updated *config.Config) {
		uploadLimit.Set(updated.Server.MaxUploadSize)
	})
	if err != nil {
		log.Printf("Config hot-reload disabled: %v", err)
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Logging.Requests {
		router.Use(middleware.RequestLogger("/api/health"))
	}
	router.Use(uploadLimit.Middleware())

	handler.NewNamespaceHandler(namespace).RegisterRoutes(router)

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
