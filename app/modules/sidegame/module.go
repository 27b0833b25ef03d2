package sidegame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/eventbus"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils"
	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	sidegamehandlers "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/handlers"
	sidegamejwt "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/jwt"
	sidegamequeue "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/queue"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	sidegamerouter "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/router"
	sidegamemetrics "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/metrics"
	"github.com/Black-And-White-Club/golf-sidegames/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// Module represents the side-game module.
type Module struct {
	Service  sidegameservice.Service
	Router   *sidegamerouter.SideGameRouter
	Queue    *sidegamequeue.Service
	logger   *slog.Logger
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// Deps are the shared resources the module is built from.
type Deps struct {
	Config     *config.Config
	Obs        observability.Observability
	DB         *bun.DB
	EventBus   eventbus.EventBus
	Router     *message.Router
	Helpers    utils.Helpers
	HTTPRouter chi.Router
	Registry   *prometheus.Registry
}

// NewSideGameModule wires the repository, service, recompute queue, event
// handlers and HTTP routes.
func NewSideGameModule(ctx context.Context, routerCtx context.Context, deps Deps) (*Module, error) {
	cfg := deps.Config
	logger := deps.Obs.Provider.Logger
	tracer := deps.Obs.Registry.Tracer

	logger.InfoContext(ctx, "Initializing side game module")

	repo := sidegamedb.NewRepository(deps.DB)

	metrics := sidegamemetrics.NewNoop()
	if deps.Registry != nil {
		m, err := sidegamemetrics.NewPrometheus(deps.Registry, "golf")
		if err != nil {
			return nil, fmt.Errorf("failed to register side game metrics: %w", err)
		}
		metrics = m
	}

	service, err := sidegameservice.NewSideGameService(repo, logger, metrics, tracer, deps.DB, sidegameservice.Options{
		ResultCacheSize: cfg.SideGames.ResultCacheSize,
		DefaultTimezone: cfg.SideGames.DefaultTimezone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create side game service: %w", err)
	}

	queue, err := sidegamequeue.NewService(ctx, sidegamequeue.Config{
		DSN:        cfg.Postgres.DSN,
		MaxWorkers: cfg.SideGames.QueueWorkers,
		Delay:      cfg.SideGames.RecomputeDelay,
	}, deps.DB, logger, metrics, service, deps.EventBus, deps.Helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create recompute queue: %w", err)
	}
	service.UseScheduler(queue)

	handlers := sidegamehandlers.NewSideGameHandlers(service, logger, tracer)
	router := sidegamerouter.NewSideGameRouter(logger, deps.Router, deps.EventBus, deps.EventBus, deps.Helpers, tracer, deps.Registry)
	if err := router.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure side game router: %w", err)
	}

	if deps.HTTPRouter != nil {
		var provider sidegamejwt.Provider
		if cfg.JWT.Secret != "" {
			provider = sidegamejwt.NewProvider(cfg.JWT.Secret)
		} else {
			logger.WarnContext(ctx, "JWT secret not configured; side game writes are unauthenticated")
		}
		limiter := sidegamehandlers.NewClientRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
		httpHandlers := sidegamehandlers.NewHTTPHandlers(service, logger)

		deps.HTTPRouter.Route("/api/sidegames", func(r chi.Router) {
			r.Use(sidegamehandlers.CORS(cfg.HTTP.AllowedOrigins))
			r.Use(sidegamehandlers.RateLimit(limiter))
			httpHandlers.Mount(r, sidegamehandlers.RequireScorer(provider))
		})
	}

	return &Module{
		Service: service,
		Router:  router,
		Queue:   queue,
		logger:  logger,
	}, nil
}

// Run starts the recompute queue and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	defer cancel()

	if err := m.Queue.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to start recompute queue", "error", err)
		return
	}

	<-ctx.Done()
	m.logger.Info("Side game module goroutine stopped")
}

// Close stops the queue and the event router.
func (m *Module) Close() error {
	var errs []error
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping side game module")
		if m.cancel != nil {
			m.cancel()
		}

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if m.Queue != nil {
			if err := m.Queue.Stop(stopCtx); err != nil {
				errs = append(errs, err)
			}
		}
		if m.Router != nil {
			if err := m.Router.Close(); err != nil {
				errs = append(errs, fmt.Errorf("error closing side game router: %w", err))
			}
		}
	})
	return errors.Join(errs...)
}
