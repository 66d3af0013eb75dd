package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gameforum/internal/config"
	"gameforum/internal/db"
	"gameforum/internal/router"
	"gameforum/internal/services"
	"gameforum/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	kv, closeStore, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close storage", zap.Error(err))
		}
	}()
	logger.Info("storage ready", zap.String("backend", cfg.StorageBackend))

	ctx := context.Background()
	auth, err := services.NewAuthService(ctx, kv, logger.Named("auth"))
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	forum, err := services.NewForumService(ctx, kv, auth, logger.Named("forum"))
	if err != nil {
		return fmt.Errorf("init forum: %w", err)
	}
	prefs := services.NewPreferenceService(kv, logger.Named("preferences"))

	// 首次启动时填充示例数据
	if cfg.SeedSampleData {
		if err := forum.Seed(ctx, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup Sessions (flash messages)
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("gameforum_session", store))

	router.RegisterRoutes(r, router.Services{
		Auth:        auth,
		Forum:       forum,
		Preferences: prefs,
		SiteURL:     cfg.SiteURL,
	})

	logger.Info("gameforum server starting", zap.String("addr", cfg.Addr()))
	return r.Run(cfg.Addr())
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// openStorage returns the configured key-value backend and its closer.
func openStorage(cfg *config.Config) (storage.KV, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemory(), func() error { return nil }, nil
	case config.BackendRedis:
		r, err := storage.NewRedis(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case config.BackendSQLite, config.BackendPostgres:
		dsn := cfg.SQLitePath
		if cfg.StorageBackend == config.BackendPostgres {
			dsn = cfg.DatabaseURL
		}
		conn, err := db.Open(cfg.StorageBackend, dsn)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, err
		}
		return db.NewKV(conn), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
