package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/config"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/console"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/google"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/logging"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/metrics"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/reports"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/session"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/store"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, logger); err != nil {
		return err
	}

	db, err := store.New(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации локальной базы")
		return err
	}
	defer db.Close()

	seedCatalog(db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	startMetricsServer(ctx, cfg, logger)

	eventBus := events.NewEventBus()
	redisClient, sessionMgr := initSession(ctx, cfg, eventBus, logger)

	clientOpts := []api.Option{
		api.WithUnauthorizedHook(func() { sessionMgr.Clear(context.Background()) }),
	}
	if redisClient != nil {
		clientOpts = append(clientOpts, api.WithRedisCache(redisClient, time.Duration(models.CatalogCacheTTL)*time.Second))
	}
	client := api.NewClient(cfg.Backend, sessionMgr, logger, clientOpts...)

	if err := sessionMgr.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("could not restore session")
	}

	initMirror(ctx, cfg, db, client, redisClient, eventBus, logger)

	reportsMgr := reports.NewManager(client, db, sessionMgr.Permissions, cfg.Exports.Path, logger)

	c := console.New(cfg, client, sessionMgr, reportsMgr, db, eventBus, logger, os.Stdin, os.Stdout)
	logger.Info().Str("backend", cfg.Backend.BaseURL).Msg("console ready")
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}
	return nil
}

// seedCatalog preloads filter dropdown entries from a local file so they are
// available before the first backend round trip.
func seedCatalog(db *store.Store, logger *zerolog.Logger) {
	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "configs/catalog.yaml"
	}
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Msgf("Ошибка чтения %s", catalogPath)
		}
		return
	}

	var catalog struct {
		Doctors      []models.CatalogEntry `yaml:"doctors"`
		ServiceTypes []models.CatalogEntry `yaml:"service_types"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		logger.Warn().Err(err).Msg("Ошибка парсинга catalog.yaml")
		return
	}

	ctx := context.Background()
	if len(catalog.Doctors) > 0 {
		if err := db.ReplaceCatalog(ctx, store.CatalogDoctors, catalog.Doctors); err != nil {
			logger.Warn().Err(err).Msg("seed doctors catalog failed")
		}
	}
	if len(catalog.ServiceTypes) > 0 {
		if err := db.ReplaceCatalog(ctx, store.CatalogServiceTypes, catalog.ServiceTypes); err != nil {
			logger.Warn().Err(err).Msg("seed service types catalog failed")
		}
	}
}

func initSession(ctx context.Context, cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) (*redis.Client, *session.Manager) {
	var redisClient *redis.Client
	if cfg.Session.Redis.Address != "" {
		redisClient = session.NewRedisClient(cfg.Session.Redis)
		if err := session.Ping(ctx, redisClient); err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable")
		}
	}

	primary := session.NewRedisRepository(redisClient, cfg.Session.TTL())
	fallback := session.NewMemoryRepository()
	repo := session.NewFailoverRepository(primary, fallback, logger)
	return redisClient, session.NewManager(repo, bus, logger)
}

// initMirror wires the optional spreadsheet mirror: any booking mutation
// queues a full re-mirror of today's reservations.
func initMirror(ctx context.Context, cfg *config.Config, db *store.Store, client *api.Client, redisClient *redis.Client, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Google.CredentialsFile == "" || cfg.Google.BookingsSpreadsheetID == "" {
		return
	}

	sheetsSvc, err := google.NewSheetsService(ctx, cfg.Google.CredentialsFile, cfg.Google.BookingsSpreadsheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("Google Sheets отключён")
		return
	}
	if err := sheetsSvc.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("Google Sheets connection test failed")
		return
	}
	logger.Info().Msg("Google Sheets mirror enabled")

	lister := func(ctx context.Context) ([]models.Booking, error) {
		now := time.Now()
		env, err := client.ListBookings(ctx, api.BookingFilter{
			Page: 1,
			Size: 100,
			From: now,
			To:   now,
		})
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}

	mirror := worker.NewMirrorWorker(db, sheetsSvc, lister, redisClient, worker.RetryPolicy{}, logger)
	go mirror.Start(ctx)

	remirror := func(*events.Event) error {
		if err := mirror.EnqueueTask(ctx, worker.TaskReplace, 0, nil); err != nil {
			logger.Error().Err(err).Msg("enqueue mirror task failed")
		}
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, remirror)
	bus.Subscribe(events.EventBookingUpdated, remirror)
	bus.Subscribe(events.EventBookingDeleted, remirror)
}

func startMetricsServer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
