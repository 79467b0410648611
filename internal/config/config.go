package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/smartcity/prizedash/internal/aggregate"
)

// Scenario sources
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceDemo     = "demo"
)

type Config struct {
	Port            string
	Env             string
	DataDir         string
	Source          string
	SQLitePath      string
	DatabaseURL     string
	ResultCacheSize int
	ParamsFile      string
	AllowedOrigins  string
}

// Load reads the configuration from the environment, after loading .env if present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("GO_ENV", "development"),
		DataDir:         getEnv("DATA_DIR", "data/submissions"),
		Source:          getEnv("SCENARIO_SOURCE", SourceCSV),
		SQLitePath:      getEnv("SQLITE_DATABASE", "data/prizedash.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		ResultCacheSize: getEnvInt("RESULT_CACHE_SIZE", 16),
		ParamsFile:      getEnv("PARAMS_FILE", ""),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
	}
}

// IsProduction reports whether GO_ENV selects production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the settings the selected source depends on
func (c *Config) Validate() error {
	switch c.Source {
	case SourceCSV:
		if c.DataDir == "" {
			return fmt.Errorf("config: DATA_DIR is required for the csv source")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_DATABASE is required for the sqlite source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres source")
		}
	case SourceDemo:
	default:
		return fmt.Errorf("config: unknown SCENARIO_SOURCE %q", c.Source)
	}
	if c.ResultCacheSize <= 0 {
		return fmt.Errorf("config: RESULT_CACHE_SIZE must be positive, got %d", c.ResultCacheSize)
	}
	return nil
}

// LoadParams overlays a YAML file onto the default aggregation parameters.
// An empty path returns the defaults.
func LoadParams(path string) (aggregate.Params, error) {
	params := aggregate.DefaultParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("config: failed to read params file: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("config: failed to parse params file %s: %w", path, err)
	}
	if _, ok := params.VehicleTypes[params.DefaultVehicleType]; !ok {
		return params, fmt.Errorf("config: default vehicle type %q has no entry in vehicle_types", params.DefaultVehicleType)
	}
	return params, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
