// Package config loads application configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the seat-map server.  Each field
// corresponds to an environment variable.
type Config struct {
	Env       string // APP_ENV (dev, test, prod)
	Port      string // APP_PORT, required
	JWTSecret string // JWT_SECRET, required; verifies customer and owner tokens

	DBUser string // DB_USER
	DBPass string // DB_PASS (empty allowed)
	DBHost string // DB_HOST; empty disables MySQL and venues are read from VenueDir
	DBPort string // DB_PORT
	DBName string // DB_NAME

	VenueDir          string        // VENUE_DIR, directory of <venueId>.json documents
	PriceFile         string        // PRICE_FILE, YAML tier table; empty uses DefaultPriceTiers
	SelectionMaxSeats int           // SELECTION_MAX_SEATS
	SelectionTTL      time.Duration // SELECTION_TTL, lifetime of a stored selection
	CatalogSize       int           // CATALOG_SIZE, normalized venues kept in memory
	AMQPURL           string        // RABBITMQ_URL or AMQP_URL; empty disables events

	LogLevel string // LOG_LEVEL
	LogJSON  bool   // LOG_JSON
}

// DBEnabled reports whether a MySQL venue store is configured.
func (c Config) DBEnabled() bool {
	return c.DBHost != ""
}

// LoadDotEnv reads the given .env files into the environment.  Missing files
// are ignored; variables already set win over file values.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from the environment.  Every missing required
// variable is reported in the returned error.
func Load() (Config, error) {
	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:               envStr("APP_ENV", "dev"),
		Port:              must("APP_PORT"),
		JWTSecret:         must("JWT_SECRET"),
		DBUser:            os.Getenv("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            envStr("DB_PORT", "3306"),
		DBName:            os.Getenv("DB_NAME"),
		VenueDir:          envStr("VENUE_DIR", "venues"),
		PriceFile:         os.Getenv("PRICE_FILE"),
		SelectionMaxSeats: envInt("SELECTION_MAX_SEATS", 8),
		SelectionTTL:      envDur("SELECTION_TTL", 24*time.Hour),
		CatalogSize:       envInt("CATALOG_SIZE", 64),
		AMQPURL:           firstEnv("RABBITMQ_URL", "AMQP_URL"),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		LogJSON:           envBool("LOG_JSON", false),
	}
	if cfg.DBEnabled() {
		must("DB_USER")
		must("DB_NAME")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.SelectionMaxSeats < 1 {
		cfg.SelectionMaxSeats = 1
	}
	if cfg.CatalogSize < 1 {
		cfg.CatalogSize = 1
	}
	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
