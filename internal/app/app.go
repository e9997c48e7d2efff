package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/skillbloom/skillbloom/internal/catalog"
	"github.com/skillbloom/skillbloom/internal/config"
	"github.com/skillbloom/skillbloom/internal/db"
	"github.com/skillbloom/skillbloom/internal/flow"
	"github.com/skillbloom/skillbloom/internal/llm"
	"github.com/skillbloom/skillbloom/internal/metrics"
	"github.com/skillbloom/skillbloom/internal/repository"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	Redis             *redis.Client
	Metrics           *metrics.Metrics
	Catalog           *catalog.Catalog
	LearnerService    *service.LearnerService
	ContentService    *service.ContentService
	ProgressService   *service.ProgressService
	DailyGoalService  *service.DailyGoalService
	OnboardingService *service.OnboardingService
	GardenService     *service.GardenService
	PageService       *service.PageService
	FlowStore         *flow.Store
	FlowController    *flow.Controller
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}
	if cfg.MetricsEnabled {
		a.Metrics = metrics.New()
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Repositories
	progressRepository := repository.NewProgressRepository(store)

	// Services
	a.Catalog = catalog.Default()
	a.LearnerService = service.NewLearnerService(cfg.LearnerSecret, cfg.LearnerExpiry, cfg.IsProduction())
	a.ContentService = service.NewContentService(
		llm.NewClient(cfg.MistralEndpoint, cfg.MistralAPIKey, cfg.MistralTimeout),
		cfg.MistralModel,
		cfg.FlowMaxQuizQuestions,
		a.Metrics,
	)
	a.ProgressService = service.NewProgressService(progressRepository)
	a.DailyGoalService = service.NewDailyGoalService(progressRepository, cfg.Location())
	a.OnboardingService = service.NewOnboardingService(a.Catalog, a.ProgressService)
	a.GardenService = service.NewGardenService(a.ProgressService, a.DailyGoalService)
	a.PageService = service.NewPageService(cfg.ContentPath, cfg.IsDevelopment())

	// Learn flow
	a.FlowStore = flow.NewStore(cfg.FlowSessionIdle, a.Metrics)
	a.FlowController = flow.NewController(a.FlowStore, a.ContentService, a.ProgressService, a.Metrics)

	return a, nil
}

// openStore connects the key-value backend selected by STORE_DRIVER.
func (a *App) openStore(ctx context.Context) (repository.KeyValueStore, error) {
	cfg := a.Cfg

	switch cfg.StoreDriver {
	case "sqlite", "pgx":
		database, err := db.Open(ctx, cfg.StoreDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = database

		err = db.Migrate(ctx, database.DB, cfg.StoreDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repository.NewSQLStore(database), nil

	case "redis":
		client, err := repository.NewRedisClient(ctx, repository.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		a.Redis = client
		slog.Info("redis connected", "host", cfg.RedisHost, "port", cfg.RedisPort, "db", cfg.RedisDB)
		return repository.NewRedisStore(client), nil

	case "s3":
		objects, err := storage.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return repository.NewObjectStore(objects), nil

	case "memory":
		slog.Warn("using in-memory progress store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown STORE_DRIVER %q (want sqlite, pgx, redis, s3 or memory)", cfg.StoreDriver)
}

// Start launches background jobs.
func (a *App) Start() error {
	return a.FlowStore.StartSweeper(a.Cfg.FlowSweepInterval)
}

func (a *App) Close() error {
	if a.FlowStore != nil {
		a.FlowStore.Stop()
	}

	var firstErr error
	if a.Redis != nil {
		firstErr = a.Redis.Close()
	}
	if a.DB != nil {
		err := a.DB.Close()
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
