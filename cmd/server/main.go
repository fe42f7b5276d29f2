package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/forgeline/storefront-api/docs"
	"github.com/forgeline/storefront-api/internal/api"
	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
	"github.com/forgeline/storefront-api/internal/core/service"
	mongodb "github.com/forgeline/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/forgeline/storefront-api/internal/infrastructure/db/redis"
	"github.com/forgeline/storefront-api/internal/infrastructure/queue"
	"github.com/forgeline/storefront-api/internal/pkg/config"
	"github.com/forgeline/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Storefront API
// @version      1.0
// @description  B2B storefront API with session-based authentication.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	if err := seedAdmin(ctx, cfg, userRepo, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	recorder := queue.NewRecorder(0, mongodb.NewAuthEventRepository(db), log)
	recorder.Start(ctx)

	e, err := api.NewRouter(api.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Audit:  recorder,
		Log:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// seedAdmin creates the first admin account when the users collection is
// empty. The seed password is stored as temporary, so the first login lands
// on the forced password change.
func seedAdmin(ctx context.Context, cfg *config.Config, userRepo ports.UserRepository, log zerolog.Logger) error {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Warn().Msg("no users and no seed admin configured, admin console unreachable")
		return nil
	}

	users := service.NewUserService(userRepo, log)
	admin, _, err := users.Create(ctx, ports.CreateUserInput{
		Email:    cfg.SeedAdminEmail,
		Name:     "Administrator",
		Password: cfg.SeedAdminPassword,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Info().Str("user_id", admin.ID).Msg("seed admin created with temporary password")
	return nil
}
