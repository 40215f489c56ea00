// Package bootstrap wires configuration into the running services shared by
// the API server and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/receitas/backend/config"
	"github.com/pageza/receitas/backend/internal/api"
	"github.com/pageza/receitas/backend/internal/database"
	"github.com/pageza/receitas/backend/internal/mealdb"
	"github.com/pageza/receitas/backend/internal/middleware"
	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/service"
	"github.com/pageza/receitas/backend/internal/translate"
)

// App holds the assembled services.
type App struct {
	Config *config.Config
	Log    *slog.Logger

	Source    *mealdb.Client
	Detail    *service.DetailAssembler
	Search    *service.Search
	Feed      *service.Feed
	Favorites *service.Favorites
	Locale    *service.LocaleStore
	Exporter  *service.Exporter

	RateLimiter *middleware.RateLimiter
	Health      func(context.Context) error

	closers []func() error
}

// Stores are the two persisted values.
type Stores struct {
	Favorites service.Persistence[[]model.Recipe]
	Locale    service.Persistence[model.Locale]
	Health    func(context.Context) error
}

// New builds every service from cfg. Failing to reach the configured storage
// is fatal; failing to reach Redis for rate limiting only disables it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	var (
		rdb *redis.Client
		err error
	)
	if cfg.StorageDriver == config.DriverRedis || cfg.RateLimitPerMinute > 0 {
		rdb, err = database.NewRedisClient(cfg, log)
		if err != nil {
			if cfg.StorageDriver == config.DriverRedis {
				return nil, err
			}
			log.Warn("redis unavailable, rate limiting disabled", "error", err)
			rdb = nil
		} else {
			app.closers = append(app.closers, rdb.Close)
		}
	}

	stores, err := app.openStores(cfg, rdb)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Health = stores.Health

	if rdb != nil && cfg.RateLimitPerMinute > 0 {
		app.RateLimiter = middleware.NewRecipeRateLimiter(rdb, cfg.RateLimitPerMinute, log)
	}

	var objects service.ObjectStore
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if s3cfg != nil {
		objects = s3cfg
		log.Info("exports upload to s3", "bucket", s3cfg.BucketName)
	}

	fallback, err := model.ParseLocale(cfg.DefaultLocale)
	if err != nil {
		fallback = model.DefaultLocale
	}

	app.Source = mealdb.NewClient(cfg.MealDBBaseURL, nil, log.With("component", "mealdb"))
	translator := translate.NewMyMemory(translate.Options{
		Endpoint: cfg.TranslateURL,
		Email:    cfg.TranslateEmail,
	}, log.With("component", "translate"))

	app.Detail = service.NewDetailAssembler(app.Source, translator, log)
	app.Search = service.NewSearch(app.Source, log)
	app.Feed = service.NewFeed(app.Search)
	app.Favorites = service.NewFavorites(ctx, stores.Favorites, log)
	app.Locale = service.NewLocaleStore(ctx, stores.Locale, fallback, log)
	app.Exporter = service.NewExporter(app.Detail, objects, cfg.ExportURLTTL, log)

	return app, nil
}

// openStores opens the persistence adapters selected by STORAGE_DRIVER.
func (a *App) openStores(cfg *config.Config, rdb *redis.Client) (Stores, error) {
	favKey := database.StorageKey(cfg.StorageKeyPrefix, service.FavoritesKey)
	locKey := database.StorageKey(cfg.StorageKeyPrefix, service.LocaleKey)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		return Stores{
			Favorites: database.NewMemoryKV[[]model.Recipe](),
			Locale:    database.NewMemoryKV[model.Locale](),
		}, nil

	case config.DriverRedis:
		if rdb == nil {
			return Stores{}, errors.New("redis storage driver without a redis client")
		}
		return Stores{
			Favorites: database.NewRedisKV[[]model.Recipe](rdb, favKey),
			Locale:    database.NewRedisKV[model.Locale](rdb, locKey),
			Health:    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Open(cfg, a.Log)
		if err != nil {
			return Stores{}, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		if err := database.RunMigrations(db, a.Log); err != nil {
			return Stores{}, err
		}
		return Stores{
			Favorites: database.NewGormKV[[]model.Recipe](db, favKey),
			Locale:    database.NewGormKV[model.Locale](db, locKey),
			Health:    func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		}, nil
	}
	return Stores{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Services returns the bundle served by the HTTP API.
func (a *App) Services() api.Services {
	return api.Services{
		Source:      a.Source,
		Detail:      a.Detail,
		Exporter:    a.Exporter,
		Feed:        a.Feed,
		Favorites:   a.Favorites,
		Locale:      a.Locale,
		RateLimiter: a.RateLimiter,
		Health:      a.Health,
	}
}

// WarmFeed populates the feed with random recipes, as the listing shows on
// first load.
func (a *App) WarmFeed(ctx context.Context) {
	recipes := a.Feed.Load(ctx, service.Action{Kind: service.ActionRandom})
	a.Log.Info("feed warmed", "recipes", len(recipes))
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
