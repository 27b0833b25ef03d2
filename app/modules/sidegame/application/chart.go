package sidegameservice

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"

	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colors rendered game charts. Series colors are cycled.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Series     [6]drawing.Color
}

// DefaultPalette is a dark theme with high-contrast lines.
var DefaultPalette = ChartPalette{
	Background: drawing.Color{R: 0x14, G: 0x22, B: 0x1b, A: 0xff},
	TextColor:  drawing.Color{R: 0xe8, G: 0xe6, B: 0xdf, A: 0xff},
	Series: [6]drawing.Color{
		{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff},
		{R: 0x42, G: 0xa5, B: 0xf5, A: 0xff},
		{R: 0xef, G: 0x53, B: 0x50, A: 0xff},
		{R: 0xab, G: 0x47, B: 0xbc, A: 0xff},
		{R: 0xff, G: 0xa7, B: 0x26, A: 0xff},
	},
}

type chartLine struct {
	name string
	xs   []float64
	ys   []float64
}

type chartSpec struct {
	title string
	xName string
	yName string
	lines []chartLine
}

// RenderGameChart draws a PNG progression chart of one game's results.
func (s *SideGameService) RenderGameChart(ctx context.Context, roundID, gameID uuid.UUID) ([]byte, error) {
	res, err := s.ComputeGameResults(ctx, roundID, gameID)
	if err != nil {
		return nil, err
	}
	png, err := GenerateGameChart(*res, s.palette)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return png, nil
}

// GenerateGameChart renders the chart for computed results. Games without
// data get a placeholder image.
func GenerateGameChart(res GameResults, palette ChartPalette) ([]byte, error) {
	spec := chartFor(res)
	if !spec.hasData() {
		return renderNoDataPlaceholder(palette, "No results yet")
	}

	series := make([]chart.Series, 0, len(spec.lines))
	for i, line := range spec.lines {
		if len(line.xs) == 0 {
			continue
		}
		color := palette.Series[i%len(palette.Series)]
		series = append(series, chart.ContinuousSeries{
			Name:    line.name,
			XValues: line.xs,
			YValues: line.ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    color,
			},
		})
	}

	xMin, xMax, yMin, yMax := spec.bounds()
	graph := chart.Chart{
		Title:  spec.title,
		Width:  800,
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:      spec.xName,
			NameStyle: chart.Style{FontColor: palette.TextColor},
			Style:     chart.Style{FontColor: palette.TextColor},
			Range:     &chart.ContinuousRange{Min: xMin - 0.5, Max: xMax + 0.5},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:      spec.yName,
			NameStyle: chart.Style{FontColor: palette.TextColor},
			Style:     chart.Style{FontColor: palette.TextColor},
			Range:     &chart.ContinuousRange{Min: yMin - 1, Max: yMax + 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (c chartSpec) hasData() bool {
	for _, l := range c.lines {
		if len(l.xs) > 0 {
			return true
		}
	}
	return false
}

func (c chartSpec) bounds() (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, l := range c.lines {
		for i := range l.xs {
			xMin = math.Min(xMin, l.xs[i])
			xMax = math.Max(xMax, l.xs[i])
			yMin = math.Min(yMin, l.ys[i])
			yMax = math.Max(yMax, l.ys[i])
		}
	}
	return xMin, xMax, yMin, yMax
}

func chartFor(res GameResults) chartSpec {
	r := res.Results
	spec := chartSpec{title: res.Name, xName: "Hole"}
	switch {
	case r.Skins != nil:
		spec.yName = "Skins won"
		spec.lines = skinsLines(*r.Skins)
	case r.BestBall != nil:
		spec.yName = "Strokes"
		for _, team := range r.BestBall.Teams {
			spec.lines = append(spec.lines, cumulativeLine(team.Name, team.Holes))
		}
	case r.Nassau != nil:
		spec.xName = "Front / Back / Overall"
		spec.yName = "Strokes"
		spec.lines = nassauLines(*r.Nassau)
	case r.ThreePoint != nil:
		spec.yName = "Points"
		spec.lines = []chartLine{
			runningLine("Team A", r.ThreePoint.TeamARunning),
			runningLine("Team B", r.ThreePoint.TeamBRunning),
		}
	case r.Stableford != nil:
		spec.yName = "Points"
		for _, p := range r.Stableford.Players {
			spec.lines = append(spec.lines, cumulativeLine(string(p.PlayerID), p.Points))
		}
	case r.MatchPlay != nil:
		spec.yName = "Holes up"
		line := chartLine{name: string(r.MatchPlay.Player1) + " vs " + string(r.MatchPlay.Player2)}
		for _, h := range r.MatchPlay.Holes {
			if h.Result == sidegamedomain.MatchHoleNoScore {
				continue
			}
			line.xs = append(line.xs, float64(h.Hole))
			line.ys = append(line.ys, float64(h.MatchDiffAfter))
		}
		spec.lines = []chartLine{line}
	case r.Wolf != nil:
		spec.yName = "Points"
		spec.lines = wolfLines(*r.Wolf)
	}
	return spec
}

func skinsLines(res sidegamedomain.SkinsResult) []chartLine {
	players := make([]sidegamedomain.PlayerID, 0, len(res.Players))
	for id := range res.Players {
		players = append(players, id)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	lines := make([]chartLine, 0, len(players))
	for _, id := range players {
		line := chartLine{name: string(id)}
		total := 0
		for _, h := range res.Holes {
			if h.Winner == nil {
				continue
			}
			if *h.Winner == id {
				total += h.PotValue
			}
			line.xs = append(line.xs, float64(h.Hole))
			line.ys = append(line.ys, float64(total))
		}
		lines = append(lines, line)
	}
	return lines
}

// cumulativeLine plots running totals over the holes that have a value.
func cumulativeLine(name string, holes []*int) chartLine {
	line := chartLine{name: name}
	total := 0
	for i, v := range holes {
		if v == nil {
			continue
		}
		total += *v
		line.xs = append(line.xs, float64(i+1))
		line.ys = append(line.ys, float64(total))
	}
	return line
}

func runningLine(name string, running []float64) chartLine {
	line := chartLine{name: name}
	for i, v := range running {
		line.xs = append(line.xs, float64(i+1))
		line.ys = append(line.ys, v)
	}
	return line
}

func nassauLines(res sidegamedomain.NassauResult) []chartLine {
	names := make(map[string]bool)
	for _, seg := range []sidegamedomain.NassauSegment{res.Front, res.Back, res.Overall} {
		for name := range seg.Totals {
			names[name] = true
		}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	lines := make([]chartLine, 0, len(sorted))
	for _, name := range sorted {
		line := chartLine{name: name}
		for i, seg := range []sidegamedomain.NassauSegment{res.Front, res.Back, res.Overall} {
			if seg.HolesPlayed[name] == 0 {
				continue
			}
			line.xs = append(line.xs, float64(i+1))
			line.ys = append(line.ys, float64(seg.Totals[name]))
		}
		lines = append(lines, line)
	}
	return lines
}

func wolfLines(res sidegamedomain.WolfResult) []chartLine {
	lines := make([]chartLine, 0, len(res.Order))
	for _, id := range res.Order {
		line := chartLine{name: string(id)}
		for _, h := range res.Holes {
			if !h.Resolved {
				continue
			}
			line.xs = append(line.xs, float64(h.Hole))
			line.ys = append(line.ys, float64(h.TotalsAfter[id]))
		}
		lines = append(lines, line)
	}
	return lines
}
