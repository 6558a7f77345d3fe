package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nameorigin/internal/cache"
	"nameorigin/internal/cache/memory"
	cachepg "nameorigin/internal/cache/postgres"
	cacheredis "nameorigin/internal/cache/redis"
	"nameorigin/internal/cache/resilient"
	jwttoken "nameorigin/internal/jwt_token"
	"nameorigin/internal/nameorigin/handler"
	originmetrics "nameorigin/internal/nameorigin/metrics"
	"nameorigin/internal/nameorigin/service"
	"nameorigin/internal/nameorigin/upstream"
	"nameorigin/internal/nameorigin/upstream/nationalize"
	"nameorigin/internal/nameorigin/upstream/restcountries"
	"nameorigin/internal/platform/config"
	"nameorigin/internal/platform/httpserver"
	"nameorigin/internal/platform/logger"
	"nameorigin/internal/platform/metrics"
	"nameorigin/internal/platform/postgres"
	redisclient "nameorigin/internal/platform/redis"
	"nameorigin/internal/popularity"
	"nameorigin/internal/popularity/publisher"
	popmemory "nameorigin/internal/popularity/store/memory"
	poppg "nameorigin/internal/popularity/store/postgres"
	httptransport "nameorigin/internal/transport/http"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

type infra struct {
	redis  *redisclient.Client
	db     *sql.DB
	kafka  *publisher.Kafka
	health map[string]httptransport.HealthCheck
}

func (i *infra) close(ctx context.Context, log *slog.Logger) {
	if i.kafka != nil {
		if err := i.kafka.Close(ctx); err != nil {
			log.Warn("failed to flush popularity events", "error", err)
		}
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inf, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		inf.close(closeCtx, log)
	}()

	store, err := buildCache(ctx, cfg, inf, log)
	if err != nil {
		return err
	}
	tracker, err := buildPopularity(ctx, cfg, inf, log)
	if err != nil {
		return err
	}

	originMetrics := originmetrics.New()
	hc := upstream.NewHTTPClient(cfg.Upstream.Timeout)
	nameClient := nationalize.New(cfg.Upstream.NationalizeURL,
		nationalize.WithAPIKey(cfg.Upstream.NationalizeAPIKey),
		nationalize.WithHTTPClient(hc),
		nationalize.WithMetrics(originMetrics),
	)
	countryClient := restcountries.New(cfg.Upstream.RestCountriesURL,
		restcountries.WithHTTPClient(hc),
		restcountries.WithMetrics(originMetrics),
	)
	metadata := service.NewMetadataFetcher(countryClient, store,
		service.WithMetadataTTL(cfg.Cache.TTL),
		service.WithMetadataLogger(log),
		service.WithMetadataMetrics(originMetrics),
		// one retry after a failed attempt, each bounded by the client timeout
		service.WithLookupTimeout(2*cfg.Upstream.Timeout+time.Second),
	)
	origins := service.NewOriginFetcher(nameClient, metadata, store,
		service.WithTTL(cfg.Cache.TTL),
		service.WithLogger(log),
		service.WithMetrics(originMetrics),
		service.WithPopularity(tracker),
	)

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	router := httptransport.NewRouter(httptransport.Deps{
		Handler:   handler.New(origins, tracker, log),
		Validator: jwttoken.NewJWTServiceAdapter(jwtService),
		Logger:    log,
		Metrics:   metrics.NewHTTP(),
		APIPrefix: cfg.APIPrefix,
		Health:    inf.health,
	})

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting nameorigin", "addr", cfg.Addr, "cache_backend", cfg.Cache.Backend,
			"popularity_backend", cfg.Popularity.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// connect opens the shared clients the configured backends need.
func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	inf := &infra{health: map[string]httptransport.HealthCheck{}}

	if cfg.Cache.Backend == config.BackendRedis {
		client, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		inf.redis = client
		inf.health["redis"] = client.Health
		log.Info("connected to redis")
	}

	if cfg.Cache.Backend == config.BackendPostgres || cfg.Popularity.Backend == config.BackendPostgres {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			inf.close(ctx, log)
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		inf.db = db
		inf.health["postgres"] = db.PingContext
		log.Info("connected to postgres")
	}

	if len(cfg.Popularity.KafkaBrokers) > 0 {
		k, err := publisher.Dial(ctx, cfg.Popularity.KafkaBrokers, cfg.Popularity.KafkaTopic,
			publisher.WithLogger(log))
		if err != nil {
			inf.close(ctx, log)
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		inf.kafka = k
		log.Info("publishing popularity events", "topic", cfg.Popularity.KafkaTopic)
	}
	return inf, nil
}

func buildCache(ctx context.Context, cfg config.Server, inf *infra, log *slog.Logger) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		primary := cacheredis.New(inf.redis.Client, cacheredis.WithKeyPrefix(cfg.Cache.KeyPrefix))
		return resilient.New(primary, resilient.WithLogger(log)), nil
	case config.BackendPostgres:
		primary := cachepg.New(inf.db)
		if err := primary.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate cache table: %w", err)
		}
		go purgeExpired(ctx, primary, log)
		return resilient.New(primary, resilient.WithLogger(log)), nil
	default:
		return memory.New(cfg.Cache.MaxEntries), nil
	}
}

// purgeExpired removes stale rows until ctx is cancelled. Reads already
// ignore expired rows; this only bounds table growth.
func purgeExpired(ctx context.Context, store *cachepg.Store, log *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Warn("cache purge failed", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("purged expired cache entries", "count", n)
			}
		}
	}
}

func buildPopularity(ctx context.Context, cfg config.Server, inf *infra, log *slog.Logger) (*popularity.Tracker, error) {
	var repo popularity.Repository = popmemory.NewInMemoryStore()
	if cfg.Popularity.Backend == config.BackendPostgres {
		pg := poppg.NewPostgres(inf.db)
		if err := pg.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate popularity table: %w", err)
		}
		repo = pg
	}

	opts := []popularity.Option{
		popularity.WithWindow(cfg.Popularity.Window),
		popularity.WithLogger(log),
		popularity.WithMetrics(popularity.NewMetrics()),
	}
	if inf.kafka != nil {
		opts = append(opts, popularity.WithEventSink(inf.kafka))
	}
	return popularity.New(repo, opts...), nil
}
