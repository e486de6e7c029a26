package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"clinical-trials-api/store"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// ErrNoDatabase is returned when neither DATABASE_URL nor DB_HOST is set.
var ErrNoDatabase = errors.New("no database configured: set DATABASE_URL or DB_HOST")

// OpenStore connects to the store named by cfg.DatabaseURL, prepares its
// tables or indexes, and verifies it answers a ping.
func OpenStore(ctx context.Context, cfg *Config, log *zap.Logger) (store.Store, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	switch {
	case dsn == "":
		return nil, ErrNoDatabase
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return openMongo(ctx, dsn, cfg, log)
	case strings.HasPrefix(dsn, "sqlite://"):
		return openGorm(ctx, sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), cfg, log)
	default:
		return openGorm(ctx, mysql.Open(strings.TrimPrefix(dsn, "mysql://")), cfg, log)
	}
}

func openGorm(ctx context.Context, dialector gorm.Dialector, cfg *Config, log *zap.Logger) (store.Store, error) {
	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if cfg.IsProduction() && !cfg.DebugSQL {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			zap.NewStdLog(log.Named("gorm")),
			logger.Config{LogLevel: logLevel, SlowThreshold: 200 * time.Millisecond},
		),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	st := store.NewGormStore(db)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := st.Ping(pingCtx); err != nil {
		_ = st.Close(ctx)
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if err := st.AutoMigrate(); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	log.Info("Database connected successfully", zap.String("dialect", dialector.Name()))
	return st, nil
}

func openMongo(ctx context.Context, uri string, cfg *Config, log *zap.Logger) (store.Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	u, _ := url.Parse(uri)
	dbName := mongoDatabase(u, cfg.DatabaseName)
	st := store.NewMongoStore(client, dbName)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := st.Ping(pingCtx); err != nil {
		_ = st.Close(ctx)
		return nil, fmt.Errorf("failed to reach mongodb: %w", err)
	}
	if err := st.EnsureIndexes(pingCtx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	host := ""
	if u != nil {
		host = u.Host
	}
	log.Info("Mongodb connected", zap.String("host", host), zap.String("database", dbName))
	return st, nil
}

// mongoDatabase takes the database from the URI path, falling back to name.
func mongoDatabase(u *url.URL, name string) string {
	if u == nil {
		return name
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db
	}
	return name
}
