package main

import (
	"os"

	"anoa.com/schoolrecords/internal/bootstrap"
	"anoa.com/schoolrecords/internal/config"
	"anoa.com/schoolrecords/internal/server"
	"anoa.com/schoolrecords/pkg/database"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg.AppEnv)
	log.Logger = logger

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}

	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDevUsers(db); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed development users")
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
	}

	srv := server.New(cfg, db, redisClient, logger)

	logger.Info().Str("port", cfg.Port).Str("auth_mode", cfg.AuthMode).Msg("starting server")
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
