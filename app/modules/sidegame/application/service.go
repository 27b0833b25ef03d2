package sidegameservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application/parsers"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	sidegamemetrics "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "SideGameService"

// DefaultResultCacheSize bounds the memoized results when no size is configured.
const DefaultResultCacheSize = 512

// Options tunes the service.
type Options struct {
	ResultCacheSize int
	DefaultTimezone string
	Palette         ChartPalette
}

// SideGameService implements the Service interface.
type SideGameService struct {
	repo      sidegamedb.Repository
	logger    *slog.Logger
	metrics   sidegamemetrics.SideGameMetrics
	tracer    trace.Tracer
	db        *bun.DB
	cache     *lru.Cache[string, sidegamedomain.Results]
	parsers   parsers.ParserFactory
	teeTimes  *TeeTimeParser
	palette   ChartPalette
	scheduler RecomputeScheduler
}

// NewSideGameService creates a new SideGameService.
func NewSideGameService(
	repo sidegamedb.Repository,
	logger *slog.Logger,
	metrics sidegamemetrics.SideGameMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts Options,
) (*SideGameService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = sidegamemetrics.NewNoop()
	}
	size := opts.ResultCacheSize
	if size <= 0 {
		size = DefaultResultCacheSize
	}
	cache, err := lru.New[string, sidegamedomain.Results](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	teeTimes, err := NewTeeTimeParser(opts.DefaultTimezone, nil)
	if err != nil {
		return nil, err
	}
	palette := opts.Palette
	if palette == (ChartPalette{}) {
		palette = DefaultPalette
	}
	return &SideGameService{
		repo:     repo,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		cache:    cache,
		parsers:  parsers.NewFactory(),
		teeTimes: teeTimes,
		palette:  palette,
	}, nil
}

// UseScheduler sets the recompute scheduler notified after every mutation.
func (s *SideGameService) UseScheduler(scheduler RecomputeScheduler) {
	s.scheduler = scheduler
}

// scheduleRecompute is best effort; results are always recomputable on read.
func (s *SideGameService) scheduleRecompute(ctx context.Context, roundID string) {
	if s.scheduler == nil {
		return
	}
	id, err := parseUUID(roundID)
	if err != nil {
		return
	}
	if err := s.scheduler.ScheduleRecompute(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule results recompute",
			attr.ExtractCorrelationID(ctx),
			attr.String("round_id", roundID),
			attr.Error(err),
		)
	}
}

// unwrap converts an operation result into the (value, error) pair returned
// by the public API.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, fmt.Errorf("operation returned no result")
	}
	return *result.Success, nil
}

// failOrError returns a failure result for business errors and an
// infrastructure error otherwise.
func failOrError[S any](err error, msg string) (results.OperationResult[S, error], error) {
	if IsFailure(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, fmt.Errorf("%s: %w", msg, err)
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *SideGameService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *SideGameService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
