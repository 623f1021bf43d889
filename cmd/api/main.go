package main

import (
	"net/http"
	"os"
	"time"

	"person-pet-registry/internal/platform/logger"
	"person-pet-registry/internal/router"
)

// @title        person-pet-registry API
// @version      1.0
// @description  REST backend managing persons and their pets.
// @BasePath     /
func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	log := logger.NewFromEnv()

	r := router.New(router.Options{Log: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
