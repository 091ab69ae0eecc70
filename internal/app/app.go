// Package app assembles the restaurant service from configuration: the
// record store, the domain services, the event pipeline and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/api"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
	"github.com/dinedesk/restaurant-system/internal/core/service"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/db/kv"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/db/memory"
	mongostore "github.com/dinedesk/restaurant-system/internal/infrastructure/db/mongo"
	pgstore "github.com/dinedesk/restaurant-system/internal/infrastructure/db/postgres"
	redisstore "github.com/dinedesk/restaurant-system/internal/infrastructure/db/redis"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/http/handlers"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/mq"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/queue"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/stream"
	"github.com/dinedesk/restaurant-system/internal/pkg/config"
)

// sweepInterval is how often idle session and cart caches are trimmed.
const sweepInterval = 5 * time.Minute

// recordStore is a key-value backend that can also report its health.
type recordStore interface {
	ports.KeyValueStore
	handlers.Pinger
}

// App holds every long-lived component of a running service.
type App struct {
	log        zerolog.Logger
	sessionTTL time.Duration

	Sessions  *service.SessionService
	Identity  *service.IdentityService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Orders    *service.OrderService
	Dashboard *service.DashboardService

	hub        *stream.Hub
	dispatcher *queue.Dispatcher
	health     map[string]handlers.Pinger
	closers    []func() error
}

// New connects the configured backends, seeds fixture data when enabled and
// loads persisted state into the services.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{log: log, sessionTTL: cfg.SessionTTL, health: map[string]handlers.Pinger{}}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.health["store"] = store
	repo := kv.NewRepository(store)

	if cfg.Seed.Enabled {
		if err := service.NewSeeder(repo, component(log, "seeder")).Seed(ctx); err != nil {
			log.Warn().Err(err).Msg("seeding failed; continuing with stored data")
		}
	}

	a.hub = stream.NewHub(component(log, "stream"))
	a.closers = append(a.closers, func() error { a.hub.Close(); return nil })

	publishers := []queue.NamedPublisher{
		{Name: "log", Publisher: queue.NewLogPublisher(component(log, "events"))},
		{Name: "websocket", Publisher: a.hub},
	}
	if cfg.AMQP.URL != "" {
		pub, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("amqp: %w", err)
		}
		publishers = append(publishers, queue.NamedPublisher{Name: "amqp", Publisher: pub})
		a.health["amqp"] = pub
		a.closers = append(a.closers, pub.Close)
	}
	a.dispatcher = queue.NewDispatcher(cfg.Orders.DispatchWorkers, component(log, "dispatcher"), publishers...)

	a.Identity, err = service.NewIdentityService(repo, cfg.Seed.Password, component(log, "identity"))
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Catalog = service.NewCatalogService(repo, component(log, "catalog"))
	a.Cart = service.NewCartService(repo, component(log, "cart"))
	a.Orders = service.NewOrderService(repo, a.Cart, a.Identity, a.dispatcher, cfg.Orders.PrepTime, component(log, "orders"))
	a.Dashboard = service.NewDashboardService(a.Orders, a.Catalog)
	a.Sessions = service.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)

	a.Identity.Load(ctx)
	a.Catalog.Load(ctx)
	a.Orders.Load(ctx)

	log.Info().
		Str("store", cfg.StoreBackend).
		Int("menu_items", len(a.Catalog.List())).
		Int("orders", len(a.Orders.List())).
		Msg("state loaded")
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (recordStore, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		s, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case config.BackendMongo:
		s, err := mongostore.Open(ctx, mongostore.Options{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case config.BackendPostgres:
		s, err := pgstore.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return memory.NewKVStore(), nil
	}
}

// Start launches the event dispatcher workers and the idle-session sweeper.
// Both stop when ctx is done.
func (a *App) Start(ctx context.Context) {
	a.dispatcher.Start(ctx)
	if a.sessionTTL > 0 {
		go a.sweep(ctx, sweepInterval)
	}
}

func (a *App) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.evictIdle(now)
		}
	}
}

// evictIdle drops cached sessions and carts untouched for longer than the
// session TTL. Their tokens have expired by then.
func (a *App) evictIdle(now time.Time) (sessions, carts int) {
	cutoff := now.UTC().Add(-a.sessionTTL)
	sessions = a.Identity.EvictIdle(cutoff)
	carts = a.Cart.EvictIdle(cutoff)
	if sessions > 0 || carts > 0 {
		a.log.Debug().Int("sessions", sessions).Int("carts", carts).Msg("evicted idle session state")
	}
	return sessions, carts
}

// Router builds the HTTP API over the app's services. HTTP metrics are
// registered with reg.
func (a *App) Router(reg prometheus.Registerer) *echo.Echo {
	return api.NewRouter(api.Dependencies{
		Sessions:   a.Sessions,
		Identity:   a.Identity,
		Catalog:    a.Catalog,
		Cart:       a.Cart,
		Orders:     a.Orders,
		Dashboard:  a.Dashboard,
		Stream:     a.hub,
		Health:     a.health,
		Registerer: reg,
		Log:        component(a.log, "http"),
	})
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
