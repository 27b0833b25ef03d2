package sidegamequeue

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

const (
	QueueName         = "sidegame"
	RecomputeJobKind  = "sidegame_recompute"
	recomputeAttempts = 5
)

// RecomputeRoundJob recomputes every game of a round and publishes the
// refreshed results.
type RecomputeRoundJob struct {
	RoundID string `json:"round_id"`
	// After is set on a follow-up queued behind a job that was already running
	// when the round changed.
	After int64 `json:"after,omitempty"`
}

func (RecomputeRoundJob) Kind() string { return RecomputeJobKind }

// uniqueStates are the states in which a recompute absorbs a new request.
// Completed, cancelled and discarded jobs never block a later edit. River
// requires running in the set, which followUp covers.
var uniqueStates = []rivertype.JobState{
	rivertype.JobStateAvailable,
	rivertype.JobStatePending,
	rivertype.JobStateRetryable,
	rivertype.JobStateRunning,
	rivertype.JobStateScheduled,
}

// InsertOpts collapses a burst of mutations on the same round into one job
// while it is still waiting to run.
func (RecomputeRoundJob) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueName,
		MaxAttempts: recomputeAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs:  true,
			ByState: uniqueStates,
		},
	}
}

// followUp returns the job to queue when an insert was absorbed by a job that
// had already started, since that run may have read the round before the edit.
func followUp(args RecomputeRoundJob, res *rivertype.JobInsertResult) (RecomputeRoundJob, bool) {
	if res == nil || !res.UniqueSkippedAsDuplicate || res.Job == nil {
		return RecomputeRoundJob{}, false
	}
	if res.Job.State != rivertype.JobStateRunning {
		return RecomputeRoundJob{}, false
	}
	return RecomputeRoundJob{RoundID: args.RoundID, After: res.Job.ID}, true
}

// JobInfo describes a queued recompute job.
type JobInfo struct {
	ID          int64  `json:"id"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	Attempt     int    `json:"attempt"`
}
