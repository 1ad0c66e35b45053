package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/config"
	"github.com/roberta039/flight-search-3/internal/httpserver"
	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/logger"
	"github.com/roberta039/flight-search-3/internal/provider"
	"github.com/roberta039/flight-search-3/internal/redis"
	"github.com/roberta039/flight-search-3/internal/scheduler"
	"github.com/roberta039/flight-search-3/internal/service"
	providersrc "github.com/roberta039/flight-search-3/internal/sources/providers"
	redisstore "github.com/roberta039/flight-search-3/internal/store/redis"
	"github.com/roberta039/flight-search-3/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	caches      *cache.Manager
	search      *service.FlightSearchService
	refresher   *scheduler.MonitorRefresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Optional providers.yaml overrides on top of the environment
	var overrides *providersrc.FileConfig
	if cfg.ProvidersFile != "" {
		loaded, err := providersrc.NewLoader(cfg.ProvidersFile).Load()
		if err != nil {
			loggerClient.Errorf("Failed to load providers file: %v", err)
			os.Exit(1)
		}
		if err := providersrc.NewMapper().Apply(cfg, loaded); err != nil {
			loggerClient.Errorf("Invalid providers file: %v", err)
			os.Exit(1)
		}
		overrides = loaded
		loggerClient.Info("provider overrides applied",
			logger.String("file", cfg.ProvidersFile))
	}

	// Cache manager owns TTL caches, rate limiters, monitors and history
	caches := cache.NewManager(nil)
	mapper := providersrc.NewMapper()

	// Build the enabled providers. A provider without credentials just
	// drops out of the fan-out instead of failing startup.
	var providers []provider.Client
	var providerNames []string
	var airportSource provider.AirportSource

	if cfg.Amadeus.Enabled {
		caches.SetRateLimit(providersrc.NameAmadeus, cfg.Amadeus.RateLimit, time.Minute)
		providers = append(providers, provider.NewAmadeus(provider.AmadeusConfig{
			BaseURL: cfg.Amadeus.BaseURL,
			Key:     cfg.Amadeus.Key,
			Secret:  cfg.Amadeus.Secret,
			Timeout: mapper.Timeout(overrides, providersrc.NameAmadeus, cfg.HTTPTimeout),
		}, caches, loggerClient))
		providerNames = append(providerNames, providersrc.NameAmadeus)
	}
	if cfg.SkyScrapper.Enabled {
		caches.SetRateLimit(providersrc.NameSkyScrapper, cfg.SkyScrapper.RateLimit, time.Minute)
		providers = append(providers, provider.NewSkyScrapper(provider.SkyScrapperConfig{
			BaseURL: cfg.SkyScrapper.BaseURL,
			Key:     cfg.SkyScrapper.Key,
			Timeout: mapper.Timeout(overrides, providersrc.NameSkyScrapper, cfg.HTTPTimeout),
		}, caches, loggerClient))
		providerNames = append(providerNames, providersrc.NameSkyScrapper)
	}
	if cfg.AirLabs.Enabled {
		caches.SetRateLimit(providersrc.NameAirLabs, cfg.AirLabs.RateLimit, time.Minute)
		airLabs := provider.NewAirLabs(provider.AirLabsConfig{
			BaseURL: cfg.AirLabs.BaseURL,
			Key:     cfg.AirLabs.Key,
			Timeout: mapper.Timeout(overrides, providersrc.NameAirLabs, cfg.HTTPTimeout),
		}, caches, loggerClient)
		providers = append(providers, airLabs)
		airportSource = airLabs
		providerNames = append(providerNames, providersrc.NameAirLabs)
	}

	if len(providers) == 0 {
		loggerClient.Warn("no flight provider configured, searches will return empty results")
	}

	// Redis is optional: without it monitors and history live in memory only
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Warnf("Redis unavailable, running without persistence: %v", err)
		} else {
			redisClient = client
			store = redisstore.New(client, loggerClient)
			if err := store.Hydrate(context.Background(), caches); err != nil {
				loggerClient.Warn("failed to hydrate monitors from redis",
					logger.Error(err))
			}
		}
	} else {
		loggerClient.Info("redis not configured, monitors are memory only")
	}

	searchOpts := service.Options{
		Providers:     providers,
		AirportSource: airportSource,
		Caches:        caches,
		Logger:        loggerClient,
		SearchTimeout: cfg.SearchTimeout,
	}
	if store != nil {
		searchOpts.Store = store
	}
	search := service.New(searchOpts)

	// Create manual refresh trigger channel
	refreshTrigger := make(chan struct{}, 1)

	refresher := scheduler.NewMonitorRefresher(
		search,
		loggerClient,
		cfg.MonitorRefreshInterval,
		refreshTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		TrustProxy:      cfg.TrustProxy,
		RedisClient:     redisClient,
		Caches:          caches,
		Search:          search,
		DefaultCurrency: cfg.DefaultCurrency,
		MaxResults:      cfg.MaxResults,
		RefreshTrigger:  refreshTrigger,
		Providers:       providerNames,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		caches:      caches,
		search:      search,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting flight search v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("flight-search %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start periodic monitor refresh
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monitor refresher: %w", err)
	}
	a.logger.Info("monitor refresher started",
		logger.Duration("interval", a.cfg.MonitorRefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("redis closed cleanly")
		}
	}

	a.logger.Info("flight search stopped cleanly")
	return nil
}
