package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Arthur-so/Decentralized-scientific-journal/config"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/api"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/journal"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/storage"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the ledger store
	store, err := openStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database tables: %v", err)
	}

	// Build the engine, replaying any existing event log
	engine, err := journal.NewEngine(context.Background(), store, journal.Config{
		Owner:     models.Identity(cfg.Journal.Owner),
		Price:     cfg.Journal.Price,
		Editors:   cfg.InitialEditors(),
		Authors:   cfg.InitialAuthors(),
		Reviewers: cfg.InitialReviewers(),
	})
	if err != nil {
		log.Fatalf("Failed to build journal engine: %v", err)
	}
	log.Printf("Journal ready: owner=%s price=%d", engine.Owner(), engine.Price())

	logger, err := utils.NewJournalLogger("logs")
	if err != nil {
		log.Fatalf("Failed to create journal logger: %v", err)
	}
	defer logger.Close()

	// Initialize API server
	server := api.NewServer(cfg.Server.Port, engine, logger)

	go func() {
		log.Printf("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil {
			log.Printf("API server stopped: %v", err)
		}
	}()

	waitForShutdown(server)
}

// openStore picks the ledger backend from the database URL: postgres URLs go
// to lib/pq, anything else is treated as an SQLite path.
func openStore(dbURL string) (storage.Store, error) {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return storage.NewPostgresStore(dbURL)
	}
	return storage.NewSQLiteStore(dbURL)
}

func waitForShutdown(server *api.Server) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")

	// Graceful server shutdown
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
