package sidegameservice

import (
	"context"
	"io"
	"log/slog"
	"testing"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamemetrics "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func courseHoles() []sidegamedomain.HoleInfo {
	holes := make([]sidegamedomain.HoleInfo, 0, sidegamedomain.HoleCount)
	for i := 1; i <= sidegamedomain.HoleCount; i++ {
		par := 4
		if i%6 == 0 {
			par = 3
		}
		holes = append(holes, sidegamedomain.HoleInfo{Number: i, Par: par})
	}
	return holes
}

func foursome() []sidegamedomain.Player {
	return []sidegamedomain.Player{
		{ID: "p1", Name: "Ann"},
		{ID: "p2", Name: "Bob"},
		{ID: "p3", Name: "Cat"},
		{ID: "p4", Name: "Dan"},
	}
}

func newTestService(t *testing.T, repo *FakeSideGameRepo) *SideGameService {
	t.Helper()
	svc, err := NewSideGameService(
		repo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		sidegamemetrics.NewNoop(),
		nil,
		nil,
		Options{ResultCacheSize: 16},
	)
	require.NoError(t, err)
	return svc
}

// seedRound creates an active foursome round through the service.
func seedRound(t *testing.T, svc *SideGameService) uuid.UUID {
	t.Helper()
	round, err := svc.CreateRound(context.Background(), CreateRoundRequest{
		CourseName: "Pebble Creek",
		Holes:      courseHoles(),
		Players:    foursome(),
	})
	require.NoError(t, err)
	return uuid.MustParse(round.ID)
}

func record(t *testing.T, svc *SideGameService, roundID uuid.UUID, player sidegamedomain.PlayerID, hole, strokes int) {
	t.Helper()
	_, err := svc.RecordScore(context.Background(), roundID, ScoreEntry{PlayerID: player, HoleNumber: hole, Strokes: intPtr(strokes)})
	require.NoError(t, err)
}
