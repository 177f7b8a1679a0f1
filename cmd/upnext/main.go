package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/upnext/upnext/internal/api"
	"github.com/upnext/upnext/internal/catalog"
	"github.com/upnext/upnext/internal/catalog/tmdb"
	"github.com/upnext/upnext/internal/config"
	"github.com/upnext/upnext/internal/logger"
	"github.com/upnext/upnext/internal/query"
	"github.com/upnext/upnext/internal/query/gazetteer"
	"github.com/upnext/upnext/internal/search"
)

func main() {
	// Load .env if present; real env vars still take priority.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Msg("starting upnext")

	gaz, err := gazetteer.Load(cfg.Gazetteer.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load gazetteer tables")
	}
	actors, directors, franchises, titles := gaz.Counts()
	log.Info().
		Str("version", gaz.Version()).
		Int("actors", actors).
		Int("directors", directors).
		Int("franchises", franchises).
		Int("titles", titles).
		Msg("gazetteer tables loaded")

	tmdbClient := tmdb.NewClient(cfg.TMDB, log.Logger)
	if !tmdbClient.IsConfigured() {
		log.Warn().Msg("TMDB API key not configured; catalog requests will fail")
	}

	client := catalog.NewCachedClient(tmdbClient, catalog.CacheConfig{
		TTL:      time.Duration(cfg.Search.CacheTTLMins) * time.Minute,
		MaxItems: cfg.Search.CacheMax,
	})

	parser := query.NewParser(gaz, log.Logger)
	coordinator := search.NewCoordinator(client, cfg.Search.MaxResults, log.Logger)
	handlers := api.NewHandlers(parser, coordinator, log.Logger)
	server := api.NewServer(handlers, log.Logger)

	go func() {
		log.Info().Str("address", cfg.Server.Address()).Msg("HTTP server listening")
		if err := server.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}
