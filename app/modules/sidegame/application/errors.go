package sidegameservice

import (
	"errors"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
)

var (
	ErrRoundCompleted   = errors.New("round is completed and no longer accepts changes")
	ErrNotWolfGame      = errors.New("game is not a wolf game")
	ErrInvalidScorecard = errors.New("invalid scorecard")
	ErrInvalidTeeTime   = errors.New("could not understand tee time")
	ErrInvalidRequest   = errors.New("invalid request")
)

// failureErrors are business outcomes returned as failure results rather
// than infrastructure errors.
var failureErrors = []error{
	sidegamedb.ErrRoundNotFound,
	sidegamedb.ErrGameNotFound,
	ErrRoundCompleted,
	ErrNotWolfGame,
	ErrInvalidScorecard,
	ErrInvalidTeeTime,
	ErrInvalidRequest,
	sidegamedomain.ErrInvalidHole,
	sidegamedomain.ErrInvalidCourse,
	sidegamedomain.ErrNoPlayers,
	sidegamedomain.ErrDuplicatePlayer,
	sidegamedomain.ErrUnknownPlayer,
	sidegamedomain.ErrMissingFormat,
	sidegamedomain.ErrInvalidWolfChoice,
}

// IsFailure reports whether err is a business failure, such as a missing
// round or invalid input, as opposed to an infrastructure error.
func IsFailure(err error) bool {
	for _, target := range failureErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
