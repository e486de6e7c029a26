package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultAllowedOrigin is the form client the API serves by default.
const DefaultAllowedOrigin = "https://clinicial-trails-client.vercel.app"

// Config holds process settings read from the environment.
type Config struct {
	Port        string
	GinMode     string
	Environment string
	ServiceName string

	// DatabaseURL selects the store backend by scheme: mongodb://,
	// mongodb+srv://, sqlite:// or mysql:// (a bare MySQL DSN also works).
	DatabaseURL  string
	DatabaseName string
	DebugSQL     bool

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	MetricsEnabled bool
	TracingEnabled bool
	LogFile        string
}

// Load reads the configuration from environment variables. Call
// godotenv.Load first to pick up a .env file.
func Load() *Config {
	cfg := &Config{
		Port:           firstEnv("8000", "PORT", "SERVER_PORT"),
		GinMode:        strings.ToLower(os.Getenv("GIN_MODE")),
		Environment:    strings.ToLower(os.Getenv("ENVIRONMENT")),
		ServiceName:    firstEnv("clinical-trials-api", "SERVICE_NAME"),
		DatabaseURL:    firstEnv("", "DATABASE_URL", "MONGODB_URL", "MONDODB_URL"),
		DatabaseName:   firstEnv("clinical_trials", "DB_DATABASE"),
		DebugSQL:       envBool("DEBUG_SQL"),
		AllowedOrigins: envList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigin),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),
		MetricsEnabled: envBool("METRICS_ENABLED"),
		TracingEnabled: envBool("OTEL_ENABLED"),
		LogFile:        os.Getenv("LOG_FILE"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = mysqlDSNFromParts()
	}
	return cfg
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// mysqlDSNFromParts builds a MySQL DSN from the DB_* variables. It returns
// "" when DB_HOST is unset.
func mysqlDSNFromParts() string {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return ""
	}
	dbPort := firstEnv("3306", "DB_PORT")
	dbDatabase := os.Getenv("DB_DATABASE")
	dbUsername := os.Getenv("DB_USERNAME")
	dbPassword := os.Getenv("DB_PASSWORD")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbUsername,
		dbPassword,
		dbHost,
		dbPort,
		dbDatabase,
	)
}

func firstEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envList(key, fallback string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
