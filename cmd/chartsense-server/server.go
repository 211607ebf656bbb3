package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/config"
	"github.com/chartsense/chartsense/internal/domain/analytics"
	"github.com/chartsense/chartsense/internal/domain/cds"
	"github.com/chartsense/chartsense/internal/domain/chart"
	"github.com/chartsense/chartsense/internal/domain/coding"
	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/internal/platform/auth"
	"github.com/chartsense/chartsense/internal/platform/cache"
	"github.com/chartsense/chartsense/internal/platform/db"
	"github.com/chartsense/chartsense/internal/platform/events"
	"github.com/chartsense/chartsense/internal/platform/middleware"
	"github.com/chartsense/chartsense/internal/platform/sandbox"
)

const (
	serviceName    = "ChartSense AI"
	requestTimeout = 30 * time.Second
	maxBodySize    = "1M"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "chartsense").Logger()
}

type services struct {
	patients  *patient.Service
	cds       *cds.Service
	chart     *chart.Service
	coding    *coding.Service
	analytics *analytics.Service
}

// buildServices wires the domain services onto pool. reg may be nil, in
// which case no domain metrics are registered.
func buildServices(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger, reg prometheus.Registerer) *services {
	var cdsMetrics *cds.Metrics
	if reg != nil {
		cdsMetrics = cds.NewMetrics(reg)
	}

	patientSvc := patient.NewService(patient.NewRepo(pool), cfg.DemoMode)

	chartSvc := chart.NewService(chart.NewRuleRepo(pool), chart.NewScoreRepo(pool), patientSvc,
		logger.With().Str("component", "chart").Logger())

	codingSvc := coding.NewService(coding.NewRepo(pool), patientSvc, patientSvc, cfg.RWBaseRateTHB,
		logger.With().Str("component", "coding").Logger())
	codingSvc.SetTxBeginner(pool)

	if reg != nil {
		chartSvc.SetMetrics(chart.NewMetrics(reg))
		codingSvc.SetMetrics(coding.NewMetrics(reg))
	}

	return &services{
		patients:  patientSvc,
		cds:       cds.NewService(cds.NewTemplateRepo(pool), cdsMetrics),
		chart:     chartSvc,
		coding:    codingSvc,
		analytics: analytics.NewService(analytics.NewRepo(pool)),
	}
}

func newSeeder(svcs *services, pool *pgxpool.Pool, logger zerolog.Logger) *sandbox.Seeder {
	s := sandbox.NewSeeder(svcs.patients, svcs.chart, svcs.cds, logger.With().Str("component", "seed").Logger())
	s.SetTxBeginner(pool)
	return s
}

// newServer builds the echo instance with the global middleware chain, the
// public health and metrics endpoints, and the /api/v1 group that domain
// handlers register on.
func newServer(cfg *config.Config, logger zerolog.Logger, reg *prometheus.Registry, recorder middleware.AuditRecorder) (*echo.Echo, *echo.Group) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = middleware.NewRequestValidator()

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.Metrics(middleware.NewHTTPMetrics(reg)))
	e.Use(middleware.BodyLimit(maxBodySize))

	jwtCfg := auth.JWTConfig{
		SigningKey: []byte(cfg.SecretKey),
		Issuer:     auth.Issuer,
		Skipper:    auth.AuthSkipper,
	}
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware(jwtCfg))
	} else {
		e.Use(auth.JWTMiddleware(jwtCfg))
	}
	e.Use(middleware.Audit(logger, recorder))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	if cfg.RateLimitRPS > 0 {
		rateLimitCfg.RequestsPerSecond = cfg.RateLimitRPS
	}
	if cfg.RateLimitBurst > 0 {
		rateLimitCfg.BurstSize = cfg.RateLimitBurst
	}

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(middleware.RequestTimeout(requestTimeout))
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})
	return e, api
}

func cacheHealthHandler(rdb *cache.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		if rdb == nil {
			return c.JSON(http.StatusOK, map[string]string{"status": "disabled"})
		}
		if err := rdb.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// auditPublisher forwards encounter access entries to the event exchange.
func auditPublisher(p events.Publisher) middleware.AuditRecorder {
	return middleware.AuditRecorderFunc(func(ctx context.Context, entry middleware.AuditEntry) error {
		evt, err := events.NewEvent(events.EncounterAccessed, "encounter", entry.EncounterID, entry)
		if err != nil {
			return err
		}
		return p.Publish(ctx, evt)
	})
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Cache
	rdb, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, chart score cache disabled")
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info().Msg("connected to redis")
	}

	// Events
	var publisher events.Publisher = events.Nop{}
	var recorder middleware.AuditRecorder
	if cfg.AMQPURL != "" {
		p, err := events.DialAMQP(cfg.AMQPURL, cfg.EventsExchange)
		if err != nil {
			logger.Warn().Err(err).Msg("amqp unavailable, event publishing disabled")
		} else {
			publisher = p
			recorder = auditPublisher(p)
			logger.Info().Str("exchange", cfg.EventsExchange).Msg("publishing events")
		}
	}
	defer publisher.Close()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svcs := buildServices(cfg, pool, logger, reg)
	svcs.chart.SetPublisher(publisher)
	svcs.coding.SetPublisher(publisher)
	if rdb != nil {
		scoreCache := cache.NewJSON[chart.Score](rdb, "chart_score", cfg.ChartScoreCacheTTL, cache.NewMetrics(reg))
		svcs.chart.SetCache(scoreCache)
	}

	if cfg.DemoMode {
		applied, err := db.NewMigrator(pool, cfg.MigrationsDir).Up(ctx, defaultSchema)
		if err != nil {
			logger.Fatal().Err(err).Msg("demo mode migrations failed")
		}
		logger.Info().Int("applied", applied).Msg("migrations up to date")
		if _, err := newSeeder(svcs, pool, logger).Seed(ctx); err != nil {
			logger.Error().Err(err).Msg("demo seed failed")
		}
	}

	e, api := newServer(cfg, logger, reg, recorder)
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/health/cache", cacheHealthHandler(rdb))

	patient.NewHandler(svcs.patients).RegisterRoutes(api)
	cds.NewHandler(svcs.cds).RegisterRoutes(api)
	chart.NewHandler(svcs.chart).RegisterRoutes(api)
	coding.NewHandler(svcs.coding).RegisterRoutes(api)
	analytics.NewHandler(svcs.analytics).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Bool("demo_mode", cfg.DemoMode).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
