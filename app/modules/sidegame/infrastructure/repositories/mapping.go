package sidegamedb

import (
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
)

// ToDomainRound assembles a domain round from its row and score rows.
func ToDomainRound(r *Round, scores []Score) sidegamedomain.Round {
	out := sidegamedomain.Round{
		ID:         r.UUID.String(),
		CourseName: r.CourseName,
		Holes:      append([]sidegamedomain.HoleInfo(nil), r.Holes...),
		Players:    append([]sidegamedomain.Player(nil), r.Players...),
		Status:     r.Status,
		TeeTime:    r.TeeTime,
		Scores:     make([]sidegamedomain.Score, 0, len(scores)),
	}
	for _, s := range scores {
		strokes := s.Strokes
		out.Scores = append(out.Scores, sidegamedomain.Score{
			PlayerID:   s.PlayerID,
			HoleNumber: s.HoleNumber,
			Strokes:    &strokes,
		})
	}
	return out
}

// ToDomainGame converts a game row, resolving its typed settings.
func ToDomainGame(g *Game) sidegamedomain.Game {
	return sidegamedomain.Game{
		ID:          g.UUID.String(),
		Format:      g.Format,
		Name:        g.Name,
		PlayerIDs:   append([]sidegamedomain.PlayerID(nil), g.PlayerIDs...),
		Teams:       append([]sidegamedomain.Team(nil), g.Teams...),
		PointValue:  g.PointValue,
		Handicapped: g.Handicapped,
		Settings:    g.Settings.Settings(g.Format),
	}
}

// FromDomainGame builds a game row for roundUUID.
func FromDomainGame(roundUUID, gameUUID uuid.UUID, g sidegamedomain.Game) *Game {
	bag := sidegamedomain.BagFromGame(g)
	bag.PointValue = nil
	bag.Handicapped = nil
	return &Game{
		UUID:        gameUUID,
		RoundUUID:   roundUUID,
		Format:      g.Format,
		Name:        g.Name,
		PlayerIDs:   g.PlayerIDs,
		Teams:       g.Teams,
		Settings:    bag,
		PointValue:  g.PointValue,
		Handicapped: g.Handicapped,
	}
}
