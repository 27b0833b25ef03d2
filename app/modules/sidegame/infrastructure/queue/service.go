package sidegamequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils"
	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
)

const serviceName = "river"

// Metrics is the operation metrics surface shared with the service layer.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// Config tunes the recompute queue.
type Config struct {
	DSN        string
	MaxWorkers int
	// Delay postpones each recompute so a burst of score entries lands in one job.
	Delay time.Duration
}

var _ sidegameservice.RecomputeScheduler = (*Service)(nil)

// Service schedules and runs results recomputes on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	db      *bun.DB
	logger  *slog.Logger
	metrics Metrics
	delay   time.Duration
}

// NewService migrates the River schema and builds a client with the
// recompute worker registered.
func NewService(
	ctx context.Context,
	cfg Config,
	db *bun.DB,
	logger *slog.Logger,
	metrics Metrics,
	computer ResultsComputer,
	publisher message.Publisher,
	helpers utils.Helpers,
) (*Service, error) {
	logger = logger.With(attr.String("component", "river_queue"))
	metrics.RecordOperationAttempt(ctx, "initialize_service", serviceName)

	fail := func(msg string, err error) (*Service, error) {
		logger.Error(msg, attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return fail("failed to parse DSN", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fail("failed to create pgx pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fail("failed to ping database", err)
	}

	driver := riverpgxv5.New(pool)
	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		pool.Close()
		return fail("failed to create river migrator", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		return fail("failed to migrate river schema", err)
	}

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRecomputeWorker(logger, computer, publisher, helpers))

	client, err := river.NewClient(driver, &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueName: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  logger,
	})
	if err != nil {
		pool.Close()
		return fail("failed to create River client", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", serviceName)
	logger.Info("Side game queue initialized", attr.Int("max_workers", maxWorkers))

	return &Service{
		client:  client,
		pool:    pool,
		db:      db,
		logger:  logger,
		metrics: metrics,
		delay:   cfg.Delay,
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Side game queue started")
	return nil
}

// Stop waits for running jobs and then releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("Side game queue stopped")
	return nil
}

// ScheduleRecompute enqueues a recompute for the round. A request is absorbed
// by a job for the same round that has not started yet.
func (s *Service) ScheduleRecompute(ctx context.Context, roundID uuid.UUID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_recompute", serviceName)

	opts := RecomputeRoundJob{}.InsertOpts()
	if s.delay > 0 {
		opts.ScheduledAt = start.Add(s.delay)
	}

	args := RecomputeRoundJob{RoundID: roundID.String()}
	res, err := s.client.Insert(ctx, args, &opts)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "schedule_recompute", serviceName)
		return fmt.Errorf("failed to schedule recompute: %w", err)
	}
	if next, ok := followUp(args, res); ok {
		res, err = s.client.Insert(ctx, next, &opts)
		if err != nil {
			s.metrics.RecordOperationFailure(ctx, "schedule_recompute", serviceName)
			return fmt.Errorf("failed to schedule follow-up recompute: %w", err)
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_recompute", serviceName)
	s.metrics.RecordOperationDuration(ctx, "schedule_recompute", serviceName, time.Since(start))
	s.logger.DebugContext(ctx, "Recompute scheduled",
		attr.String("round_id", roundID.String()),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}

// PendingJobs lists recompute jobs for a round that have not finished.
func (s *Service) PendingJobs(ctx context.Context, roundID uuid.UUID) ([]JobInfo, error) {
	type jobRow struct {
		ID          int64      `bun:"id"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		Attempt     int16      `bun:"attempt"`
	}

	var rows []jobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "state", "scheduled_at", "attempt").
		Where("kind = ?", RecomputeJobKind).
		Where("state IN (?)", bun.In([]string{"available", "scheduled", "running", "retryable"})).
		Where("args->>'round_id' = ?", roundID.String()).
		Order("id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query recompute jobs: %w", err)
	}

	out := make([]JobInfo, len(rows))
	for i, r := range rows {
		scheduledAt := ""
		if r.ScheduledAt != nil {
			scheduledAt = r.ScheduledAt.Format(time.RFC3339)
		}
		out[i] = JobInfo{
			ID:          r.ID,
			RoundID:     roundID.String(),
			State:       r.State,
			ScheduledAt: scheduledAt,
			Attempt:     int(r.Attempt),
		}
	}
	return out, nil
}

// HealthCheck verifies the job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	var count int
	if err := s.db.NewSelect().Table("river_job").ColumnExpr("COUNT(*)").Scan(ctx, &count); err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}
