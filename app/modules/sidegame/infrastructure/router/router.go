package sidegamerouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/frolf-bot-shared/eventbus"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tracingfrolfbot "github.com/Black-And-White-Club/frolf-bot-shared/observability/otel/tracing"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/handlerwrapper"
	sidegameevents "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/events"
	sidegamehandlers "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// SideGameRouter registers the side-game handlers on a Watermill router.
type SideGameRouter struct {
	logger           *slog.Logger
	Router           *message.Router
	subscriber       eventbus.EventBus
	publisher        eventbus.EventBus
	helper           utils.Helpers
	tracer           trace.Tracer
	middlewareHelper utils.MiddlewareHelpers
	metricsBuilder   *metrics.PrometheusMetricsBuilder
}

func NewSideGameRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *SideGameRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && os.Getenv(TestEnvironmentFlag) != TestEnvironmentValue {
		b := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &b
	}
	return &SideGameRouter{
		logger:           logger,
		Router:           router,
		subscriber:       subscriber,
		publisher:        publisher,
		helper:           helper,
		tracer:           tracer,
		middlewareHelper: utils.NewMiddlewareHelper(),
		metricsBuilder:   metricsBuilder,
	}
}

// Configure installs middleware and subscribes every handler.
func (r *SideGameRouter) Configure(ctx context.Context, handlers sidegamehandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware")
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.middlewareHelper.CommonMetadataMiddleware("sidegame"),
		r.middlewareHelper.RoutingMetadataMiddleware(),
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
		tracingfrolfbot.TraceHandler(r.tracer),
	)

	r.registerHandlers(ctx, handlers)
	return nil
}

type handlerDeps struct {
	ctx        context.Context
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	helper     utils.Helpers
}

func (r *SideGameRouter) registerHandlers(ctx context.Context, handlers sidegamehandlers.Handlers) {
	deps := handlerDeps{
		ctx:        ctx,
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
	}

	registerHandler(deps, sidegameevents.ScoreSubmitV1, handlers.HandleScoreSubmit)
	registerHandler(deps, sidegameevents.WolfChoiceSubmitV1, handlers.HandleWolfChoiceSubmit)
	registerHandler(deps, sidegameevents.ResultsRequestV1, handlers.HandleResultsRequest)
	registerHandler(deps, sidegameevents.RoundCompleteV1, handlers.HandleRoundComplete)

	r.logger.Info("Side game handlers registered",
		attr.String("stream", sidegameevents.StreamName),
	)
}

// registerHandler subscribes a typed handler and publishes each returned
// message to the topic carried in its metadata.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "sidegame." + topic
	wrapped := handlerwrapper.WrapTransformingTyped(
		handlerName,
		deps.logger,
		deps.tracer,
		deps.helper,
		nil,
		handler,
	)

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		nil,
		func(msg *message.Message) ([]*message.Message, error) {
			out, err := wrapped(msg)
			if err != nil {
				return nil, err
			}
			for _, m := range out {
				publishTopic := m.Metadata.Get("topic")
				if publishTopic == "" {
					deps.logger.ErrorContext(deps.ctx, "Dropping message without topic",
						attr.String("handler", handlerName),
						attr.String("msg_uuid", m.UUID),
					)
					continue
				}
				if err := deps.publisher.Publish(publishTopic, m); err != nil {
					return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
				}
			}
			return nil, nil
		},
	)
}

func (r *SideGameRouter) Close() error {
	return r.Router.Close()
}
