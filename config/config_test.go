package config

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SERVER_PORT", "DATABASE_URL", "MONGODB_URL", "MONDODB_URL", "DB_HOST", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected no database url, got %q", cfg.DatabaseURL)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{DefaultAllowedOrigin}) {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPS != 0 || cfg.MetricsEnabled {
		t.Fatalf("expected rate limiting and metrics off by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017/trials")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.org ,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("METRICS_ENABLED", "yes")
	t.Setenv("ENVIRONMENT", "Production")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected SERVER_PORT fallback, got %q", cfg.Port)
	}
	if cfg.DatabaseURL != "mongodb://localhost:27017/trials" {
		t.Fatalf("expected MONGODB_URL fallback, got %q", cfg.DatabaseURL)
	}
	if want := []string{"http://localhost:3000", "https://example.org"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.MetricsEnabled || !cfg.IsProduction() {
		t.Fatalf("expected metrics on and production mode")
	}
}

func TestLoadHonoursLegacyMongoVariable(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGODB_URL", "")
	t.Setenv("MONDODB_URL", "mongodb://db.internal:27017/trials")

	if got := Load().DatabaseURL; got != "mongodb://db.internal:27017/trials" {
		t.Fatalf("expected MONDODB_URL to be read, got %q", got)
	}

	t.Setenv("MONGODB_URL", "mongodb://preferred:27017/trials")
	if got := Load().DatabaseURL; got != "mongodb://preferred:27017/trials" {
		t.Fatalf("MONGODB_URL should win over MONDODB_URL, got %q", got)
	}
}

func TestLoadBuildsMySQLDSNFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGODB_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_DATABASE", "trials")
	t.Setenv("DB_USERNAME", "app")
	t.Setenv("DB_PASSWORD", "pw")

	cfg := Load()
	want := "app:pw@tcp(db.internal:3306)/trials?charset=utf8mb4&parseTime=True&loc=Local"
	if cfg.DatabaseURL != want {
		t.Fatalf("unexpected dsn %q", cfg.DatabaseURL)
	}
}

func TestOpenStoreWithoutDatabase(t *testing.T) {
	_, err := OpenStore(context.Background(), &Config{}, zap.NewNop())
	if !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("expected ErrNoDatabase, got %v", err)
	}
}

func TestOpenStoreSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	st, err := OpenStore(context.Background(), &Config{DatabaseURL: "sqlite://" + path}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close(context.Background())

	app, err := st.CreateApplication(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.GetApplication(context.Background(), app.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestMongoDatabaseName(t *testing.T) {
	cases := map[string]string{
		"mongodb://localhost:27017/trials":                        "trials",
		"mongodb://localhost:27017":                               "fallback",
		"mongodb+srv://u:p@cluster0.example.net/forms?retryWrites": "forms",
	}
	for uri, want := range cases {
		u, err := url.Parse(uri)
		if err != nil {
			t.Fatalf("parse %q: %v", uri, err)
		}
		if got := mongoDatabase(u, "fallback"); got != want {
			t.Fatalf("mongoDatabase(%q) = %q, want %q", uri, got, want)
		}
	}
	if got := mongoDatabase(nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for nil url, got %q", got)
	}
}
