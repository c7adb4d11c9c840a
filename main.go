package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/camden-git/theaterbackend/config"
	"github.com/camden-git/theaterbackend/database"
	"github.com/camden-git/theaterbackend/handlers"
	"github.com/camden-git/theaterbackend/importer"
	"github.com/camden-git/theaterbackend/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	if cfg.SeedOnStartup {
		if err := seedDataset(cfg, db); err != nil {
			log.Fatalf("FATAL: Failed to seed dataset: %v", err)
		}
	}

	movieRepo := repository.NewMovieRepository(db)
	movieHandler := &handlers.MovieHandler{
		Movies:   movieRepo,
		Validate: validator.New(),
	}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Mount("/movies", movieHandler.Routes())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// seedDataset loads the movies CSV through the importer unless the
// catalog already holds data
func seedDataset(cfg config.Config, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var placeholder sq.PlaceholderFormat = sq.Dollar
	if cfg.Environment == config.EnvTesting {
		placeholder = sq.Question
	}

	imp := importer.NewCSVImporter(sqlDB, cfg.MoviesCSVPath, placeholder)
	populated, err := imp.IsPopulated()
	if err != nil {
		return err
	}
	if populated {
		log.Printf("Database already populated, skipping dataset seeding")
		return nil
	}
	return imp.Seed()
}
