package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-blog-api/core"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(firstNonEmpty(os.Getenv("LOG_LEVEL"), "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := core.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup logging")
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	if err := core.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer redisClient.Close()

	userRepo := core.NewPgUserRepository(db)
	postRepo := core.NewPgPostRepository(db)
	revocation := core.NewRedisRevocationStore(redisClient)
	tokens := core.NewTokenService(cfg, revocation)

	if err := core.BootstrapAnonymous(ctx, userRepo, cfg); err != nil {
		log.Fatal().Err(err).Msg("bootstrap anonymous account failed")
	}

	router := core.NewRouter(cfg, userRepo, postRepo, tokens)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("addr", addr).Msg("starting api server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
