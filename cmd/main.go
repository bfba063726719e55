package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/senyabanana/job-bids/internal/auth"
	"github.com/senyabanana/job-bids/internal/db"
	"github.com/senyabanana/job-bids/internal/handlers"
	"github.com/senyabanana/job-bids/internal/repository"
	"github.com/senyabanana/job-bids/internal/router"
	"github.com/senyabanana/job-bids/internal/router/config"
	"github.com/senyabanana/job-bids/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbSource, err := db.ConnString(cfg)
	if err != nil {
		log.Fatal("cannot build database url:", err)
	}
	runDBMigration(cfg.MigrationURL, dbSource)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	tokens, err := auth.NewService(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		log.Fatalf("error initializing auth: %v", err)
	}

	jobRepo := repository.NewPostgresJobRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)

	jobService := services.NewJobService(jobRepo)
	bidService := services.NewBidService(bidRepo, jobRepo)

	routes := router.InitRoutes(router.Handlers{
		Auth: handlers.NewAuthHandler(tokens, logger, cfg.CookieSecure),
		Jobs: handlers.NewJobHandler(jobService, logger, cfg.RequestTimeout),
		Bids: handlers.NewBidHandler(bidService, logger, cfg.RequestTimeout),
	}, tokens, cfg.CORSAllowedOrigins)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
