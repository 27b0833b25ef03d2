package sidegamedomain

// TeamSeries is a team's per-hole best ball. Index i holds hole i+1; nil
// means no member has an entered score.
type TeamSeries struct {
	TeamID      TeamID `json:"teamId"`
	Name        string `json:"name"`
	Holes       []*int `json:"holes"`
	Total       int    `json:"total"`
	HolesPlayed int    `json:"holesPlayed"`
}

type BestBallResult struct {
	Teams        []TeamSeries `json:"teams"`
	WinnerTeamID *TeamID      `json:"winnerTeamId"`
}

// teamBestBall computes the per-hole minimum among a team's members.
func teamBestBall(idx ScoreIndex, team Team) TeamSeries {
	series := TeamSeries{TeamID: team.ID, Name: team.Name, Holes: make([]*int, HoleCount)}
	for hole := 1; hole <= HoleCount; hole++ {
		if v, ok := idx.best(team.PlayerIDs, hole); ok {
			series.Holes[hole-1] = intPtr(v)
			series.Total += v
			series.HolesPlayed++
		}
	}
	return series
}

// ComputeBestBall sums each team's best ball. A winner needs at least two
// teams with holes played and a unique lowest total.
func ComputeBestBall(idx ScoreIndex, teams []Team) BestBallResult {
	res := BestBallResult{Teams: make([]TeamSeries, 0, len(teams))}

	var (
		active  int
		best    int
		leaders []TeamID
	)
	for _, team := range teams {
		series := teamBestBall(idx, team)
		res.Teams = append(res.Teams, series)
		if series.HolesPlayed == 0 {
			continue
		}
		active++
		switch {
		case len(leaders) == 0 || series.Total < best:
			best = series.Total
			leaders = []TeamID{team.ID}
		case series.Total == best:
			leaders = append(leaders, team.ID)
		}
	}
	if active >= 2 && len(leaders) == 1 {
		winner := leaders[0]
		res.WinnerTeamID = &winner
	}
	return res
}
