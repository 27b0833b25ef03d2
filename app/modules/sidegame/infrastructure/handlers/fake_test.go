package sidegamehandlers

import (
	"context"

	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake Side Game Service
// ------------------------

type FakeSideGameService struct {
	trace []string

	CreateRoundFunc         func(ctx context.Context, req sidegameservice.CreateRoundRequest) (*sidegamedomain.Round, error)
	GetRoundFunc            func(ctx context.Context, roundID uuid.UUID) (*sidegameservice.RoundView, error)
	CompleteRoundFunc       func(ctx context.Context, roundID uuid.UUID) (*sidegameservice.RoundView, error)
	RecordScoreFunc         func(ctx context.Context, roundID uuid.UUID, entry sidegameservice.ScoreEntry) (*sidegameservice.ScoreRecorded, error)
	ImportScorecardFunc     func(ctx context.Context, roundID uuid.UUID, filename string, data []byte) (*sidegameservice.ImportSummary, error)
	AddGameFunc             func(ctx context.Context, roundID uuid.UUID, req sidegameservice.GameRequest) (*sidegamedomain.Game, error)
	SetWolfChoiceFunc       func(ctx context.Context, roundID, gameID uuid.UUID, hole int, choice *sidegamedomain.WolfChoice) (*sidegamedomain.Game, error)
	ComputeGameResultsFunc  func(ctx context.Context, roundID, gameID uuid.UUID) (*sidegameservice.GameResults, error)
	ComputeRoundResultsFunc func(ctx context.Context, roundID uuid.UUID) ([]sidegameservice.GameResults, error)
	RenderGameChartFunc     func(ctx context.Context, roundID, gameID uuid.UUID) ([]byte, error)
}

func NewFakeSideGameService() *FakeSideGameService {
	return &FakeSideGameService{
		trace: []string{},
	}
}

func (f *FakeSideGameService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeSideGameService) CreateRound(ctx context.Context, req sidegameservice.CreateRoundRequest) (*sidegamedomain.Round, error) {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, req)
	}
	return &sidegamedomain.Round{}, nil
}

func (f *FakeSideGameService) GetRound(ctx context.Context, roundID uuid.UUID) (*sidegameservice.RoundView, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID)
	}
	return &sidegameservice.RoundView{}, nil
}

func (f *FakeSideGameService) CompleteRound(ctx context.Context, roundID uuid.UUID) (*sidegameservice.RoundView, error) {
	f.record("CompleteRound")
	if f.CompleteRoundFunc != nil {
		return f.CompleteRoundFunc(ctx, roundID)
	}
	return &sidegameservice.RoundView{}, nil
}

func (f *FakeSideGameService) RecordScore(ctx context.Context, roundID uuid.UUID, entry sidegameservice.ScoreEntry) (*sidegameservice.ScoreRecorded, error) {
	f.record("RecordScore")
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, roundID, entry)
	}
	return &sidegameservice.ScoreRecorded{RoundID: roundID.String(), Entry: entry, Cleared: entry.Strokes == nil}, nil
}

func (f *FakeSideGameService) ImportScorecard(ctx context.Context, roundID uuid.UUID, filename string, data []byte) (*sidegameservice.ImportSummary, error) {
	f.record("ImportScorecard")
	if f.ImportScorecardFunc != nil {
		return f.ImportScorecardFunc(ctx, roundID, filename, data)
	}
	return &sidegameservice.ImportSummary{RoundID: roundID.String()}, nil
}

func (f *FakeSideGameService) AddGame(ctx context.Context, roundID uuid.UUID, req sidegameservice.GameRequest) (*sidegamedomain.Game, error) {
	f.record("AddGame")
	if f.AddGameFunc != nil {
		return f.AddGameFunc(ctx, roundID, req)
	}
	return &sidegamedomain.Game{}, nil
}

func (f *FakeSideGameService) SetWolfChoice(ctx context.Context, roundID, gameID uuid.UUID, hole int, choice *sidegamedomain.WolfChoice) (*sidegamedomain.Game, error) {
	f.record("SetWolfChoice")
	if f.SetWolfChoiceFunc != nil {
		return f.SetWolfChoiceFunc(ctx, roundID, gameID, hole, choice)
	}
	return &sidegamedomain.Game{}, nil
}

func (f *FakeSideGameService) ComputeGameResults(ctx context.Context, roundID, gameID uuid.UUID) (*sidegameservice.GameResults, error) {
	f.record("ComputeGameResults")
	if f.ComputeGameResultsFunc != nil {
		return f.ComputeGameResultsFunc(ctx, roundID, gameID)
	}
	return &sidegameservice.GameResults{RoundID: roundID.String(), GameID: gameID.String()}, nil
}

func (f *FakeSideGameService) ComputeRoundResults(ctx context.Context, roundID uuid.UUID) ([]sidegameservice.GameResults, error) {
	f.record("ComputeRoundResults")
	if f.ComputeRoundResultsFunc != nil {
		return f.ComputeRoundResultsFunc(ctx, roundID)
	}
	return nil, nil
}

func (f *FakeSideGameService) RenderGameChart(ctx context.Context, roundID, gameID uuid.UUID) ([]byte, error) {
	f.record("RenderGameChart")
	if f.RenderGameChartFunc != nil {
		return f.RenderGameChartFunc(ctx, roundID, gameID)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

// --- Accessors for assertions ---

func (f *FakeSideGameService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ sidegameservice.Service = (*FakeSideGameService)(nil)
