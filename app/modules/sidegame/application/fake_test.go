package sidegameservice

import (
	"context"
	"sync"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Side Game Repo
// ------------------------

type FakeSideGameRepo struct {
	trace []string

	CreateRoundFunc        func(ctx context.Context, db bun.IDB, round *sidegamedb.Round) error
	GetRoundFunc           func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*sidegamedb.Round, error)
	GetRoundForUpdateFunc  func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*sidegamedb.Round, error)
	UpdateRoundStatusFunc  func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, status sidegamedomain.RoundStatus) error
	ListScoresFunc         func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]sidegamedb.Score, error)
	UpsertScoreFunc        func(ctx context.Context, db bun.IDB, score *sidegamedb.Score) error
	DeleteScoreFunc        func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, playerID sidegamedomain.PlayerID, hole int) error
	CreateGameFunc         func(ctx context.Context, db bun.IDB, game *sidegamedb.Game) error
	GetGameFunc            func(ctx context.Context, db bun.IDB, roundUUID, gameUUID uuid.UUID) (*sidegamedb.Game, error)
	ListGamesFunc          func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]sidegamedb.Game, error)
	UpdateGameSettingsFunc func(ctx context.Context, db bun.IDB, gameUUID uuid.UUID, settings sidegamedomain.SettingsBag) error
}

func NewFakeSideGameRepo() *FakeSideGameRepo {
	return &FakeSideGameRepo{
		trace: []string{},
	}
}

func (f *FakeSideGameRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeSideGameRepo) CreateRound(ctx context.Context, db bun.IDB, round *sidegamedb.Round) error {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, db, round)
	}
	return nil
}

func (f *FakeSideGameRepo) GetRound(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*sidegamedb.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, db, roundUUID)
	}
	return nil, sidegamedb.ErrRoundNotFound
}

func (f *FakeSideGameRepo) GetRoundForUpdate(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*sidegamedb.Round, error) {
	f.record("GetRoundForUpdate")
	if f.GetRoundForUpdateFunc != nil {
		return f.GetRoundForUpdateFunc(ctx, db, roundUUID)
	}
	return nil, sidegamedb.ErrRoundNotFound
}

func (f *FakeSideGameRepo) UpdateRoundStatus(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, status sidegamedomain.RoundStatus) error {
	f.record("UpdateRoundStatus")
	if f.UpdateRoundStatusFunc != nil {
		return f.UpdateRoundStatusFunc(ctx, db, roundUUID, status)
	}
	return nil
}

func (f *FakeSideGameRepo) ListScores(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]sidegamedb.Score, error) {
	f.record("ListScores")
	if f.ListScoresFunc != nil {
		return f.ListScoresFunc(ctx, db, roundUUID)
	}
	return nil, nil
}

func (f *FakeSideGameRepo) UpsertScore(ctx context.Context, db bun.IDB, score *sidegamedb.Score) error {
	f.record("UpsertScore")
	if f.UpsertScoreFunc != nil {
		return f.UpsertScoreFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeSideGameRepo) DeleteScore(ctx context.Context, db bun.IDB, roundUUID uuid.UUID, playerID sidegamedomain.PlayerID, hole int) error {
	f.record("DeleteScore")
	if f.DeleteScoreFunc != nil {
		return f.DeleteScoreFunc(ctx, db, roundUUID, playerID, hole)
	}
	return nil
}

func (f *FakeSideGameRepo) CreateGame(ctx context.Context, db bun.IDB, game *sidegamedb.Game) error {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, db, game)
	}
	return nil
}

func (f *FakeSideGameRepo) GetGame(ctx context.Context, db bun.IDB, roundUUID, gameUUID uuid.UUID) (*sidegamedb.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, roundUUID, gameUUID)
	}
	return nil, sidegamedb.ErrGameNotFound
}

func (f *FakeSideGameRepo) ListGames(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) ([]sidegamedb.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, db, roundUUID)
	}
	return nil, nil
}

func (f *FakeSideGameRepo) UpdateGameSettings(ctx context.Context, db bun.IDB, gameUUID uuid.UUID, settings sidegamedomain.SettingsBag) error {
	f.record("UpdateGameSettings")
	if f.UpdateGameSettingsFunc != nil {
		return f.UpdateGameSettingsFunc(ctx, db, gameUUID, settings)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeSideGameRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ sidegamedb.Repository = (*FakeSideGameRepo)(nil)

// ------------------------
// In-memory store wiring
// ------------------------

// memoryStore backs a FakeSideGameRepo with maps so multi-step service
// flows can be exercised end to end.
type memoryStore struct {
	mu     sync.Mutex
	rounds map[uuid.UUID]*sidegamedb.Round
	scores map[uuid.UUID]map[scoreKey]int
	games  map[uuid.UUID][]sidegamedb.Game
}

type scoreKey struct {
	player sidegamedomain.PlayerID
	hole   int
}

func newMemoryRepo() (*FakeSideGameRepo, *memoryStore) {
	m := &memoryStore{
		rounds: map[uuid.UUID]*sidegamedb.Round{},
		scores: map[uuid.UUID]map[scoreKey]int{},
		games:  map[uuid.UUID][]sidegamedb.Game{},
	}
	f := NewFakeSideGameRepo()

	getRound := func(ctx context.Context, db bun.IDB, id uuid.UUID) (*sidegamedb.Round, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		r, ok := m.rounds[id]
		if !ok {
			return nil, sidegamedb.ErrRoundNotFound
		}
		cp := *r
		return &cp, nil
	}
	f.GetRoundFunc = getRound
	f.GetRoundForUpdateFunc = getRound
	f.CreateRoundFunc = func(ctx context.Context, db bun.IDB, round *sidegamedb.Round) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		cp := *round
		m.rounds[round.UUID] = &cp
		return nil
	}
	f.UpdateRoundStatusFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID, status sidegamedomain.RoundStatus) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		r, ok := m.rounds[id]
		if !ok {
			return sidegamedb.ErrRoundNotFound
		}
		r.Status = status
		return nil
	}
	f.ListScoresFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) ([]sidegamedb.Score, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		var out []sidegamedb.Score
		for k, v := range m.scores[id] {
			out = append(out, sidegamedb.Score{RoundUUID: id, PlayerID: k.player, HoleNumber: k.hole, Strokes: v})
		}
		return out, nil
	}
	f.UpsertScoreFunc = func(ctx context.Context, db bun.IDB, s *sidegamedb.Score) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.scores[s.RoundUUID] == nil {
			m.scores[s.RoundUUID] = map[scoreKey]int{}
		}
		m.scores[s.RoundUUID][scoreKey{s.PlayerID, s.HoleNumber}] = s.Strokes
		return nil
	}
	f.DeleteScoreFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID, player sidegamedomain.PlayerID, hole int) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.scores[id], scoreKey{player, hole})
		return nil
	}
	f.CreateGameFunc = func(ctx context.Context, db bun.IDB, g *sidegamedb.Game) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.games[g.RoundUUID] = append(m.games[g.RoundUUID], *g)
		return nil
	}
	f.GetGameFunc = func(ctx context.Context, db bun.IDB, roundID, gameID uuid.UUID) (*sidegamedb.Game, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, g := range m.games[roundID] {
			if g.UUID == gameID {
				cp := g
				return &cp, nil
			}
		}
		return nil, sidegamedb.ErrGameNotFound
	}
	f.ListGamesFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) ([]sidegamedb.Game, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return append([]sidegamedb.Game(nil), m.games[id]...), nil
	}
	f.UpdateGameSettingsFunc = func(ctx context.Context, db bun.IDB, gameID uuid.UUID, bag sidegamedomain.SettingsBag) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for roundID, games := range m.games {
			for i := range games {
				if games[i].UUID == gameID {
					m.games[roundID][i].Settings = bag
					return nil
				}
			}
		}
		return sidegamedb.ErrGameNotFound
	}
	return f, m
}

func (m *memoryStore) strokes(roundID uuid.UUID, player sidegamedomain.PlayerID, hole int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.scores[roundID][scoreKey{player, hole}]
	return v, ok
}

// ------------------------
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	mu     sync.Mutex
	rounds []uuid.UUID
	Err    error
}

func (f *FakeScheduler) ScheduleRecompute(ctx context.Context, roundID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, roundID)
	return f.Err
}

func (f *FakeScheduler) Scheduled() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.rounds...)
}
