package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	EnvDeveloping = "developing"
	EnvTesting    = "testing"
)

const (
	defaultDatabasePath  = "theater.db"
	defaultPostgresPort  = 5432
	defaultMoviesCSVPath = "./seed_data/imdb_movies.csv"
)

type Config struct {
	// environment selects the database backend: "testing" uses SQLite,
	// anything else uses PostgreSQL
	Environment string

	// SQLite database path (testing environment)
	DatabasePath string

	// PostgreSQL connection settings (developing environment)
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string

	// dataset seeding
	MoviesCSVPath string
	SeedOnStartup bool
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Environment:      getEnvOrDefault("ENVIRONMENT", EnvDeveloping),
		DatabasePath:     getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "test_user"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "test_password"),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "test_host"),
		PostgresPort:     getEnvIntOrDefault("POSTGRES_DB_PORT", defaultPostgresPort),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "test_db"),
		MoviesCSVPath:    getEnvOrDefault("PATH_TO_MOVIES_CSV", defaultMoviesCSVPath),
		SeedOnStartup:    getEnvBoolOrDefault("SEED_ON_STARTUP", false),
	}

	return cfg, nil
}

// PostgresDSN assembles the connection string for the postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort,
	)
}
