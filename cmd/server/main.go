package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/hongminglow/eventos-be/internal/config"
	"github.com/hongminglow/eventos-be/internal/http/handlers"
	"github.com/hongminglow/eventos-be/internal/imagehost"
	"github.com/hongminglow/eventos-be/internal/logger"
	"github.com/hongminglow/eventos-be/internal/server"
	"github.com/hongminglow/eventos-be/internal/storage"
	"github.com/hongminglow/eventos-be/internal/storage/postgres"
	"github.com/hongminglow/eventos-be/internal/storage/rest"
	"github.com/hongminglow/eventos-be/internal/supabase"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	anon := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, supabase.WithTimeout(cfg.ProviderTimeout))
	admin := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, supabase.WithTimeout(cfg.ProviderTimeout))

	store, pinger, err := openStore(ctx, cfg, anon)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("init storage")
	}
	defer store.Close()

	uploader, err := openImageHost(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("image_host", cfg.ImageHost).Msg("init image host")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(cfg, server.Deps{
		Identity: anon,
		Admin:    admin,
		Store:    store,
		Uploader: uploader,
		Pinger:   pinger,
		Registry: registry,
	})

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddress()).
			Str("env", cfg.Env).
			Str("storage", cfg.StorageDriver).
			Str("image_host", cfg.ImageHost).
			Msg("eventos backend listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutdown signal received")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	log.Info().Msg("shutdown complete")
}

// openStore returns the configured row store and, for the direct driver, a
// pinger for the health check.
func openStore(ctx context.Context, cfg config.Config, client *supabase.Client) (storage.Store, handlers.Pinger, error) {
	if cfg.StorageDriver == config.StoragePostgres {
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL, postgres.Options{
			ProfilesTable: cfg.ProfilesTable,
			EventsTable:   cfg.EventsTable,
			AutoMigrate:   cfg.AutoMigrate,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
	return rest.NewStore(client, cfg.ProfilesTable, cfg.EventsTable), nil, nil
}

func openImageHost(cfg config.Config) (imagehost.Uploader, error) {
	if cfg.ImageHost == config.ImageHostS3 {
		return imagehost.NewS3(imagehost.S3Options{
			Endpoint:   cfg.S3Endpoint,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			PublicBase: cfg.S3PublicBaseURL,
			UseSSL:     cfg.S3UseSSL,
		})
	}
	return imagehost.NewCloudflare(cfg.CloudflareAPIBase, cfg.CloudflareAccountID, cfg.CloudflareAPIToken, cfg.ProviderTimeout), nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}
}
