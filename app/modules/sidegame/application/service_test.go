package sidegameservice

import (
	"context"
	"errors"
	"testing"
	"time"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestCreateRound(t *testing.T) {
	tests := []struct {
		name        string
		req         CreateRoundRequest
		wantErr     bool
		wantErrType error
		wantTeeTime *time.Time
	}{
		{
			name: "happy path",
			req:  CreateRoundRequest{CourseName: "  Pebble Creek ", Holes: courseHoles(), Players: foursome()},
		},
		{
			name: "rfc3339 tee time",
			req: CreateRoundRequest{
				CourseName: "Pebble Creek",
				Holes:      courseHoles(),
				Players:    foursome(),
				TeeTime:    "2026-10-17T08:10:00-07:00",
			},
			wantTeeTime: func() *time.Time {
				tt := time.Date(2026, 10, 17, 15, 10, 0, 0, time.UTC)
				return &tt
			}(),
		},
		{
			name:        "missing course name",
			req:         CreateRoundRequest{Holes: courseHoles(), Players: foursome()},
			wantErr:     true,
			wantErrType: ErrInvalidRequest,
		},
		{
			name:        "short course",
			req:         CreateRoundRequest{CourseName: "Nine", Holes: courseHoles()[:9], Players: foursome()},
			wantErr:     true,
			wantErrType: sidegamedomain.ErrInvalidCourse,
		},
		{
			name:        "no players",
			req:         CreateRoundRequest{CourseName: "Pebble Creek", Holes: courseHoles()},
			wantErr:     true,
			wantErrType: sidegamedomain.ErrNoPlayers,
		},
		{
			name: "duplicate players",
			req: CreateRoundRequest{
				CourseName: "Pebble Creek",
				Holes:      courseHoles(),
				Players:    []sidegamedomain.Player{{ID: "p1"}, {ID: "p1"}},
			},
			wantErr:     true,
			wantErrType: sidegamedomain.ErrDuplicatePlayer,
		},
		{
			name: "unreadable tee time",
			req: CreateRoundRequest{
				CourseName: "Pebble Creek",
				Holes:      courseHoles(),
				Players:    foursome(),
				TeeTime:    "xyzzy",
			},
			wantErr:     true,
			wantErrType: ErrInvalidTeeTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newMemoryRepo()
			svc := newTestService(t, repo)

			round, err := svc.CreateRound(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.ErrorIs(t, err, tt.wantErrType)
				}
				assert.NotContains(t, repo.Trace(), "CreateRound")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Pebble Creek", round.CourseName)
			assert.Equal(t, sidegamedomain.RoundStatusActive, round.Status)
			assert.Len(t, round.Holes, sidegamedomain.HoleCount)
			assert.Equal(t, 1, round.Holes[0].Number)
			if tt.wantTeeTime == nil {
				assert.Nil(t, round.TeeTime)
			} else {
				require.NotNil(t, round.TeeTime)
				assert.True(t, tt.wantTeeTime.Equal(*round.TeeTime))
			}
			_, err = uuid.Parse(round.ID)
			assert.NoError(t, err)
		})
	}
}

func TestGetRound(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := newTestService(t, NewFakeSideGameRepo())
		_, err := svc.GetRound(context.Background(), uuid.New())
		assert.ErrorIs(t, err, sidegamedb.ErrRoundNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		repo := NewFakeSideGameRepo()
		repo.GetRoundFunc = func(ctx context.Context, db bun.IDB, roundUUID uuid.UUID) (*sidegamedb.Round, error) {
			return nil, errors.New("database connection failed")
		}
		svc := newTestService(t, repo)
		_, err := svc.GetRound(context.Background(), uuid.New())
		require.Error(t, err)
		assert.False(t, IsFailure(err))
	})

	t.Run("round with scores and games", func(t *testing.T) {
		repo, _ := newMemoryRepo()
		svc := newTestService(t, repo)
		roundID := seedRound(t, svc)
		record(t, svc, roundID, "p1", 1, 4)
		_, err := svc.AddGame(context.Background(), roundID, GameRequest{Format: sidegamedomain.FormatSkins})
		require.NoError(t, err)

		view, err := svc.GetRound(context.Background(), roundID)
		require.NoError(t, err)
		assert.Len(t, view.Round.Scores, 1)
		require.Len(t, view.Games, 1)
		assert.Equal(t, "skins", view.Games[0].Name)
	})
}

func TestRecordScore(t *testing.T) {
	tests := []struct {
		name         string
		completed    bool
		entry        ScoreEntry
		wantErrType  error
		wantStrokes  *int
		wantSchedule bool
	}{
		{
			name:         "records strokes",
			entry:        ScoreEntry{PlayerID: "p2", HoleNumber: 7, Strokes: intPtr(5)},
			wantStrokes:  intPtr(5),
			wantSchedule: true,
		},
		{
			name:         "clears score",
			entry:        ScoreEntry{PlayerID: "p1", HoleNumber: 1},
			wantSchedule: true,
		},
		{
			name:        "completed round",
			completed:   true,
			entry:       ScoreEntry{PlayerID: "p1", HoleNumber: 1, Strokes: intPtr(3)},
			wantErrType: ErrRoundCompleted,
		},
		{
			name:        "hole out of range",
			entry:       ScoreEntry{PlayerID: "p1", HoleNumber: 19, Strokes: intPtr(3)},
			wantErrType: sidegamedomain.ErrInvalidHole,
		},
		{
			name:        "player not in round",
			entry:       ScoreEntry{PlayerID: "ghost", HoleNumber: 1, Strokes: intPtr(3)},
			wantErrType: sidegamedomain.ErrUnknownPlayer,
		},
		{
			name:        "zero strokes",
			entry:       ScoreEntry{PlayerID: "p1", HoleNumber: 1, Strokes: intPtr(0)},
			wantErrType: ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, store := newMemoryRepo()
			svc := newTestService(t, repo)
			roundID := seedRound(t, svc)
			record(t, svc, roundID, "p1", 1, 4)
			if tt.completed {
				_, err := svc.CompleteRound(context.Background(), roundID)
				require.NoError(t, err)
			}
			scheduler := &FakeScheduler{}
			svc.UseScheduler(scheduler)

			got, err := svc.RecordScore(context.Background(), roundID, tt.entry)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.True(t, IsFailure(err))
				assert.Empty(t, scheduler.Scheduled())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.entry.Strokes == nil, got.Cleared)
			strokes, ok := store.strokes(roundID, tt.entry.PlayerID, tt.entry.HoleNumber)
			if tt.wantStrokes == nil {
				assert.False(t, ok)
			} else {
				assert.True(t, ok)
				assert.Equal(t, *tt.wantStrokes, strokes)
			}
			if tt.wantSchedule {
				assert.Equal(t, []uuid.UUID{roundID}, scheduler.Scheduled())
			}
		})
	}
}

func TestRecordScore_SchedulerErrorIsNotFatal(t *testing.T) {
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)
	svc.UseScheduler(&FakeScheduler{Err: errors.New("queue down")})

	_, err := svc.RecordScore(context.Background(), roundID, ScoreEntry{PlayerID: "p1", HoleNumber: 2, Strokes: intPtr(4)})
	assert.NoError(t, err)
}

func TestRecordScore_RepositoryError(t *testing.T) {
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)
	repo.UpsertScoreFunc = func(ctx context.Context, db bun.IDB, score *sidegamedb.Score) error {
		return errors.New("disk full")
	}

	_, err := svc.RecordScore(context.Background(), roundID, ScoreEntry{PlayerID: "p1", HoleNumber: 2, Strokes: intPtr(4)})
	require.Error(t, err)
	assert.False(t, IsFailure(err))
}

func TestCompleteRound(t *testing.T) {
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)

	view, err := svc.CompleteRound(context.Background(), roundID)
	require.NoError(t, err)
	assert.Equal(t, sidegamedomain.RoundStatusCompleted, view.Round.Status)

	view, err = svc.CompleteRound(context.Background(), roundID)
	require.NoError(t, err)
	assert.Equal(t, sidegamedomain.RoundStatusCompleted, view.Round.Status)

	updates := 0
	for _, step := range repo.Trace() {
		if step == "UpdateRoundStatus" {
			updates++
		}
	}
	assert.Equal(t, 1, updates)

	_, err = svc.AddGame(context.Background(), roundID, GameRequest{Format: sidegamedomain.FormatSkins})
	assert.ErrorIs(t, err, ErrRoundCompleted)
}

func TestAddGame(t *testing.T) {
	carry := false
	tests := []struct {
		name        string
		req         GameRequest
		wantErrType error
		check       func(t *testing.T, g *sidegamedomain.Game)
	}{
		{
			name: "skins with carryover off",
			req: GameRequest{
				Format:   sidegamedomain.FormatSkins,
				Name:     "Saturday skins",
				Settings: sidegamedomain.SettingsBag{Carryover: &carry, PointValue: func() *float64 { v := 2.5; return &v }()},
			},
			check: func(t *testing.T, g *sidegamedomain.Game) {
				assert.Equal(t, "Saturday skins", g.Name)
				assert.Equal(t, sidegamedomain.SkinsSettings{Carryover: false}, g.Settings)
				require.NotNil(t, g.PointValue)
				assert.Equal(t, 2.5, *g.PointValue)
			},
		},
		{
			name: "match play players",
			req: GameRequest{
				Format:   sidegamedomain.FormatMatchPlay,
				Settings: sidegamedomain.SettingsBag{MatchPlayPlayers: &sidegamedomain.MatchPlayPair{Player1: "p1", Player2: "p3"}},
			},
			check: func(t *testing.T, g *sidegamedomain.Game) {
				assert.Equal(t, sidegamedomain.MatchPlaySettings{Player1: "p1", Player2: "p3"}, g.Settings)
			},
		},
		{
			name: "unknown format is accepted",
			req:  GameRequest{Format: "bingoBangoBongo"},
			check: func(t *testing.T, g *sidegamedomain.Game) {
				assert.Nil(t, g.Settings)
			},
		},
		{
			name:        "missing format",
			req:         GameRequest{},
			wantErrType: sidegamedomain.ErrMissingFormat,
		},
		{
			name:        "participant outside the round",
			req:         GameRequest{Format: sidegamedomain.FormatSkins, PlayerIDs: []sidegamedomain.PlayerID{"p1", "ghost"}},
			wantErrType: sidegamedomain.ErrUnknownPlayer,
		},
		{
			name: "settings name a stranger",
			req: GameRequest{
				Format:   sidegamedomain.FormatWolf,
				Settings: sidegamedomain.SettingsBag{WolfOrderPlayerIDs: []sidegamedomain.PlayerID{"p1", "p2", "p3", "ghost"}},
			},
			wantErrType: sidegamedomain.ErrUnknownPlayer,
		},
		{
			name:        "participant named twice",
			req:         GameRequest{Format: sidegamedomain.FormatSkins, PlayerIDs: []sidegamedomain.PlayerID{"p1", "p1", "p2"}},
			wantErrType: sidegamedomain.ErrDuplicatePlayer,
		},
		{
			name: "player on both teams",
			req: GameRequest{
				Format: sidegamedomain.FormatBestBall,
				Teams: []sidegamedomain.Team{
					{ID: "a", PlayerIDs: []sidegamedomain.PlayerID{"p1", "p2"}},
					{ID: "b", PlayerIDs: []sidegamedomain.PlayerID{"p2", "p3"}},
				},
			},
			wantErrType: sidegamedomain.ErrDuplicatePlayer,
		},
		{
			name: "wolf order repeats a player",
			req: GameRequest{
				Format:   sidegamedomain.FormatWolf,
				Settings: sidegamedomain.SettingsBag{WolfOrderPlayerIDs: []sidegamedomain.PlayerID{"p1", "p2", "p3", "p1"}},
			},
			wantErrType: sidegamedomain.ErrDuplicatePlayer,
		},
		{
			name: "three-point pairing repeats a player",
			req: GameRequest{
				Format: sidegamedomain.FormatThreePoint,
				Settings: sidegamedomain.SettingsBag{ThreePointPairs: &sidegamedomain.ThreePointPairing{
					TeamAPlayer1: "p1", TeamAPlayer2: "p2", TeamBPlayer1: "p3", TeamBPlayer2: "p1",
				}},
			},
			wantErrType: sidegamedomain.ErrDuplicatePlayer,
		},
		{
			name: "malformed wolf choice",
			req: GameRequest{
				Format:   sidegamedomain.FormatWolf,
				Settings: sidegamedomain.SettingsBag{WolfHoleChoices: map[int]string{1: "solo"}},
			},
			wantErrType: sidegamedomain.ErrInvalidWolfChoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newMemoryRepo()
			svc := newTestService(t, repo)
			roundID := seedRound(t, svc)

			game, err := svc.AddGame(context.Background(), roundID, tt.req)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.NotContains(t, repo.Trace(), "CreateGame")
				return
			}
			require.NoError(t, err)
			_, err = uuid.Parse(game.ID)
			assert.NoError(t, err)
			tt.check(t, game)
		})
	}
}

func TestSetWolfChoice(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)

	wolf, err := svc.AddGame(ctx, roundID, GameRequest{Format: sidegamedomain.FormatWolf})
	require.NoError(t, err)
	skins, err := svc.AddGame(ctx, roundID, GameRequest{Format: sidegamedomain.FormatSkins})
	require.NoError(t, err)
	wolfID := uuid.MustParse(wolf.ID)

	lone := sidegamedomain.LoneWolf()
	game, err := svc.SetWolfChoice(ctx, roundID, wolfID, 1, &lone)
	require.NoError(t, err)
	assert.Equal(t, map[int]sidegamedomain.WolfChoice{1: lone}, game.Settings.(sidegamedomain.WolfSettings).Choices)

	partner := sidegamedomain.PartnerWith("p3")
	game, err = svc.SetWolfChoice(ctx, roundID, wolfID, 2, &partner)
	require.NoError(t, err)
	assert.Len(t, game.Settings.(sidegamedomain.WolfSettings).Choices, 2)

	game, err = svc.SetWolfChoice(ctx, roundID, wolfID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, map[int]sidegamedomain.WolfChoice{2: partner}, game.Settings.(sidegamedomain.WolfSettings).Choices)

	_, err = svc.SetWolfChoice(ctx, roundID, uuid.MustParse(skins.ID), 1, &lone)
	assert.ErrorIs(t, err, ErrNotWolfGame)

	_, err = svc.SetWolfChoice(ctx, roundID, wolfID, 0, &lone)
	assert.ErrorIs(t, err, sidegamedomain.ErrInvalidHole)

	stranger := sidegamedomain.PartnerWith("ghost")
	_, err = svc.SetWolfChoice(ctx, roundID, wolfID, 3, &stranger)
	assert.ErrorIs(t, err, sidegamedomain.ErrUnknownPlayer)

	_, err = svc.SetWolfChoice(ctx, roundID, uuid.New(), 1, &lone)
	assert.ErrorIs(t, err, sidegamedb.ErrGameNotFound)
}

func TestComputeGameResults(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)

	game, err := svc.AddGame(ctx, roundID, GameRequest{Format: sidegamedomain.FormatSkins})
	require.NoError(t, err)
	gameID := uuid.MustParse(game.ID)

	// p1 wins hole 1 outright; hole 2 ties and carries into hole 3 for p2.
	for _, s := range []struct {
		player  sidegamedomain.PlayerID
		hole    int
		strokes int
	}{
		{"p1", 1, 3}, {"p2", 1, 4}, {"p3", 1, 4}, {"p4", 1, 5},
		{"p1", 2, 4}, {"p2", 2, 4}, {"p3", 2, 5}, {"p4", 2, 5},
		{"p1", 3, 5}, {"p2", 3, 3}, {"p3", 3, 4}, {"p4", 3, 4},
	} {
		record(t, svc, roundID, s.player, s.hole, s.strokes)
	}

	res, err := svc.ComputeGameResults(ctx, roundID, gameID)
	require.NoError(t, err)
	assert.True(t, res.Supported)
	assert.NotEmpty(t, res.InputHash)
	require.NotNil(t, res.Results.Skins)
	assert.Equal(t, 1, res.Results.Skins.Players["p1"].Skins)
	assert.Equal(t, 2, res.Results.Skins.Players["p2"].Skins)
	assert.Equal(t, 1, svc.cache.Len())

	again, err := svc.ComputeGameResults(ctx, roundID, gameID)
	require.NoError(t, err)
	assert.Equal(t, res.InputHash, again.InputHash)
	assert.Equal(t, 1, svc.cache.Len())

	record(t, svc, roundID, "p1", 4, 3)
	changed, err := svc.ComputeGameResults(ctx, roundID, gameID)
	require.NoError(t, err)
	assert.NotEqual(t, res.InputHash, changed.InputHash)
	assert.Equal(t, 2, svc.cache.Len())

	_, err = svc.ComputeGameResults(ctx, roundID, uuid.New())
	assert.ErrorIs(t, err, sidegamedb.ErrGameNotFound)
}

func TestComputeRoundResults(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemoryRepo()
	svc := newTestService(t, repo)
	roundID := seedRound(t, svc)

	_, err := svc.AddGame(ctx, roundID, GameRequest{Format: sidegamedomain.FormatStableford})
	require.NoError(t, err)
	_, err = svc.AddGame(ctx, roundID, GameRequest{Format: "bingoBangoBongo", Name: "BBB"})
	require.NoError(t, err)
	record(t, svc, roundID, "p1", 1, 3)

	all, err := svc.ComputeRoundResults(ctx, roundID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.True(t, all[0].Supported)
	require.NotNil(t, all[0].Results.Stableford)

	assert.Equal(t, "BBB", all[1].Name)
	assert.False(t, all[1].Supported)
	assert.True(t, all[1].Results.Empty())

	_, err = svc.ComputeRoundResults(ctx, uuid.New())
	assert.ErrorIs(t, err, sidegamedb.ErrRoundNotFound)
}
