package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"crm-pulse/internal/config"
	"crm-pulse/internal/handler"
	"crm-pulse/internal/pkg/i18n"
	"crm-pulse/internal/realtime"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	config.SetupLogger(cfg)

	if envErr != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := config.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redis != nil {
		defer redis.Close()
	} else {
		log.Warn().Msg("REDIS_URL not set, unread counts will not be cached")
	}

	catalog := i18n.NewCatalog()
	if err := catalog.Load(cfg.LocalesPath, "notifications.yaml"); err != nil {
		log.Warn().Err(err).Str("path", cfg.LocalesPath).Msg("Failed to load notification translations")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, catalog, cfg)

	gateway := realtime.NewGateway(services.Session, realtime.OptionsFromConfig(cfg))
	services.Dispatch.SetPusher(gateway)
	if err := gateway.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start realtime gateway")
	}

	handlers := handler.NewHandlers(services)
	app := handler.NewApp(handler.AppOptions{
		CORSOrigins:   cfg.CORSOrigins,
		RequestLogger: true,
	})
	handler.RegisterRoutes(app, handlers, services.Session)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	if err := gateway.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Realtime gateway shutdown failed")
	}
}
