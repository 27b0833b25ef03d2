package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/eventbus"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils"
	"github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame"
	sidegameevents "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/events"
	"github.com/Black-And-White-Club/golf-sidegames/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// App owns the process-wide resources and the side-game module.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Logger        *slog.Logger
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPServer    *http.Server
	SideGames     *sidegame.Module

	routerCtx    context.Context
	routerCancel context.CancelFunc
	wg           sync.WaitGroup
}

// Initialize connects to Postgres and NATS and builds the module.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.Logger = obs.Provider.Logger

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	app.DB = bun.NewDB(pgdb, pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus, err := eventbus.NewEventBus(
		ctx,
		cfg.NATS.URL,
		app.Logger,
		"sidegames",
		obs.Registry.EventBusMetrics,
		obs.Registry.Tracer,
	)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = eventBus

	if err := app.ensureStream(ctx, sidegameevents.StreamName); err != nil {
		return err
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(app.Logger))
	if err != nil {
		return fmt.Errorf("failed to create Watermill router: %w", err)
	}
	app.Router = router
	app.routerCtx, app.routerCancel = context.WithCancel(context.Background())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpRouter := chi.NewRouter()
	httpRouter.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	httpRouter.Get("/healthz", app.handleHealth)
	httpRouter.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	module, err := sidegame.NewSideGameModule(ctx, app.routerCtx, sidegame.Deps{
		Config:     cfg,
		Obs:        obs,
		DB:         app.DB,
		EventBus:   eventBus,
		Router:     router,
		Helpers:    utils.NewHelper(app.Logger),
		HTTPRouter: httpRouter,
		Registry:   registry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize side game module: %w", err)
	}
	app.SideGames = module

	app.HTTPServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

func (app *App) ensureStream(ctx context.Context, name string) error {
	_, err := app.EventBus.GetJetStream().Stream(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %q: %w", name, err)
	}
	if err := app.EventBus.CreateStream(ctx, name); err != nil {
		return fmt.Errorf("failed to create stream %q: %w", name, err)
	}
	return nil
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.DB.PingContext(ctx); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := app.SideGames.Queue.HealthCheck(ctx); err != nil {
		http.Error(w, "queue unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run serves until ctx is cancelled or a component fails.
func (app *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	app.wg.Add(1)
	go app.SideGames.Run(ctx, &app.wg)

	go func() {
		if err := app.Router.Run(app.routerCtx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("watermill router stopped: %w", err)
		}
	}()

	go func() {
		app.Logger.Info("HTTP server listening", attr.String("addr", app.HTTPServer.Addr))
		if err := app.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server stopped: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close releases everything in reverse order of construction.
func (app *App) Close(ctx context.Context) {
	if app.HTTPServer != nil {
		if err := app.HTTPServer.Shutdown(ctx); err != nil {
			app.Logger.Error("Error shutting down HTTP server", attr.Error(err))
		}
	}
	if app.SideGames != nil {
		if err := app.SideGames.Close(); err != nil {
			app.Logger.Error("Error closing side game module", attr.Error(err))
		}
	}
	if app.routerCancel != nil {
		app.routerCancel()
	}
	app.wg.Wait()
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			app.Logger.Error("Error closing event bus", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Error closing database", attr.Error(err))
		}
	}
}
