package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"driver-assist-service/internal/adapters/cache"
	"driver-assist-service/internal/adapters/maps"
	"driver-assist-service/internal/adapters/pace"
	"driver-assist-service/internal/api"
	"driver-assist-service/internal/config"
	"driver-assist-service/internal/platform/db"
	"driver-assist-service/internal/platform/obs"
	"driver-assist-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Google APIs, cache backends) behind ports
// and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	logger := obs.InitLogger(cfg.LogLevel, cfg.LogPretty)

	routesProvider, err := maps.NewGoogleRoutesProvider(cfg.RoutesAPIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("routes provider init failed")
	}

	placesProvider, err := maps.NewGooglePlacesProvider(cfg.PlacesAPIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("places provider init failed")
	}

	geocoder, err := maps.NewGoogleGeocoder(cfg.RoutesAPIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("geocoder init failed")
	}

	places, closeCache, err := buildPlaceSearch(cfg, placesProvider, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cache init failed")
	}
	defer closeCache()

	router := api.NewRouter(routesProvider, places, geocoder)

	// Timeouts are tuned for cold-cache searches (external API latency).
	logger.Info().Str("port", cfg.Port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

// buildPlaceSearch stacks the optional pacing and caching decorators on
// top of the raw places provider. The returned close func releases
// whatever cache backend was opened.
func buildPlaceSearch(cfg *config.Config, provider ports.PlaceSearchProvider, logger zerolog.Logger) (ports.PlaceSearchProvider, func(), error) {
	closeCache := func() {}

	if cfg.RequestsPerMinute > 0 {
		pacer, err := pace.NewIntervalPacer(cfg.RequestsPerMinute)
		if err != nil {
			return nil, nil, err
		}
		provider = pace.NewPacedPlaceProvider(provider, pacer)
		logger.Info().Int("requests_per_minute", cfg.RequestsPerMinute).Msg("place search pacing enabled")
	}

	var store ports.PlaceCache

	switch {
	case cfg.DatabaseURL != "":
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeCache = func() { pg.Close() }
		store = cache.NewSQLPlaceCache(pg)
		logger.Info().Msg("place cache backend: postgres")

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closeCache = func() { client.Close() }
		store = cache.NewRedisPlaceCache(client)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("place cache backend: redis")

	case cfg.DBPath != "":
		lite, err := openSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(lite); err != nil {
			lite.Close()
			return nil, nil, err
		}
		closeCache = func() { lite.Close() }
		store = cache.NewSqlitePlaceCache(lite)
		logger.Info().Str("path", cfg.DBPath).Msg("place cache backend: sqlite")

	default:
		logger.Info().Msg("place caching disabled")
		return provider, closeCache, nil
	}

	return cache.NewCachedPlaceProvider(provider, store, cfg.CacheTTL, logger), closeCache, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	lite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", dbPath, err)
	}

	if err := lite.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", dbPath, err)
	}

	return lite, nil
}
