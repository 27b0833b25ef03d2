package testutils

import (
	"time"

	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds rounds with plausible random content.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator seeds from the clock unless a seed is given.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s))}
}

// Holes returns an 18-hole layout with pars between 3 and 5.
func (g *TestDataGenerator) Holes() []sidegamedomain.HoleInfo {
	holes := make([]sidegamedomain.HoleInfo, sidegamedomain.HoleCount)
	for i := range holes {
		holes[i] = sidegamedomain.HoleInfo{Number: i + 1, Par: g.faker.Number(3, 5)}
	}
	return holes
}

// Players returns count players with ids p1..pN and random names.
func (g *TestDataGenerator) Players(count int) []sidegamedomain.Player {
	players := make([]sidegamedomain.Player, count)
	for i := range players {
		players[i] = sidegamedomain.Player{
			ID:   sidegamedomain.PlayerID("p" + string(rune('1'+i))),
			Name: g.faker.FirstName(),
		}
	}
	return players
}

// RoundRequest builds a create request for a foursome.
func (g *TestDataGenerator) RoundRequest() sidegameservice.CreateRoundRequest {
	return sidegameservice.CreateRoundRequest{
		CourseName: g.faker.City() + " Golf Club",
		Holes:      g.Holes(),
		Players:    g.Players(4),
	}
}

// Strokes returns a plausible score for a hole of the given par.
func (g *TestDataGenerator) Strokes(par int) int {
	return par + g.faker.Number(-1, 3)
}
