package sidegameservice

import (
	"bytes"
	"context"
	"testing"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestGenerateGameChart_NoData(t *testing.T) {
	png, err := GenerateGameChart(GameResults{Name: "empty"}, DefaultPalette)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))
}

func TestChartFor(t *testing.T) {
	winner := sidegamedomain.PlayerID("p1")
	res := GameResults{
		Name: "skins",
		Results: sidegamedomain.Results{
			Skins: &sidegamedomain.SkinsResult{
				Players: map[sidegamedomain.PlayerID]sidegamedomain.SkinsPlayerTotal{"p1": {}, "p2": {}},
				Holes: []sidegamedomain.SkinsHole{
					{Hole: 1, PotValue: 1, Carried: true},
					{Hole: 2, PotValue: 2, Winner: &winner},
					{Hole: 3, PotValue: 1},
				},
			},
		},
	}

	spec := chartFor(res)
	require.Len(t, spec.lines, 2)
	assert.Equal(t, "p1", spec.lines[0].name)
	assert.Equal(t, []float64{2}, spec.lines[0].xs)
	assert.Equal(t, []float64{2}, spec.lines[0].ys)
	assert.Equal(t, []float64{0}, spec.lines[1].ys)

	xMin, xMax, yMin, yMax := spec.bounds()
	assert.Equal(t, 2.0, xMin)
	assert.Equal(t, 2.0, xMax)
	assert.Equal(t, 0.0, yMin)
	assert.Equal(t, 2.0, yMax)
}

func TestCumulativeLine(t *testing.T) {
	line := cumulativeLine("team", []*int{intPtr(4), nil, intPtr(3)})
	assert.Equal(t, []float64{1, 3}, line.xs)
	assert.Equal(t, []float64{4, 7}, line.ys)
}

func TestRenderGameChart(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)

	game, err := svc.AddGame(ctx, roundID, GameRequest{Format: sidegamedomain.FormatStableford})
	require.NoError(t, err)
	for hole := 1; hole <= 3; hole++ {
		record(t, svc, roundID, "p1", hole, 4)
		record(t, svc, roundID, "p2", hole, 5)
	}

	png, err := svc.RenderGameChart(ctx, roundID, uuid.MustParse(game.ID))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))
}
