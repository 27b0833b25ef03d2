package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxHoles is the number of hole columns read from a scorecard row. Extra
// columns, usually totals, are ignored.
const MaxHoles = 18

var (
	ErrEmptyScorecard = errors.New("scorecard is empty")
	ErrNoParRow       = errors.New("no par row found")
	ErrNoPlayerRows   = errors.New("no player score rows found")
)

// Scorecard is a parsed file. Hole slices are indexed by hole number minus
// one; nil marks a blank or dashed cell.
type Scorecard struct {
	Par     []*int      `json:"par"`
	Players []PlayerRow `json:"players"`
}

type PlayerRow struct {
	Name  string `json:"name"`
	Holes []*int `json:"holes"`
}

var headerNames = map[string]bool{
	"hole":       true,
	"holes":      true,
	"#":          true,
	"name":       true,
	"player":     true,
	"players":    true,
	"playername": true,
}

func isParRow(cell string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(cell))
	return normalized == "PAR" || normalized == "PARS"
}

func isHeaderRow(cell string) bool {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	normalized = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(normalized)
	return headerNames[normalized]
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseCells converts up to MaxHoles cells, keeping positions for blanks.
func parseCells(cells []string) ([]*int, error) {
	if len(cells) > MaxHoles {
		cells = cells[:MaxHoles]
	}
	out := make([]*int, len(cells))
	for i, raw := range cells {
		val := strings.TrimSpace(raw)
		if val == "" || val == "-" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("hole %d: non-numeric value %q", i+1, val)
		}
		if n < 1 {
			return nil, fmt.Errorf("hole %d: value must be positive, got %d", i+1, n)
		}
		out[i] = &n
	}
	return out, nil
}

// parseRows turns raw rows into a scorecard. The first column holds "Par" or
// a player name; the following columns are holes 1..18.
func parseRows(rows [][]string) (*Scorecard, error) {
	card := &Scorecard{}
	seenPar := false
	nonEmpty := 0

	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		nonEmpty++
		label := strings.TrimSpace(row[0])

		switch {
		case isParRow(label):
			if seenPar {
				return nil, fmt.Errorf("line %d: duplicate par row", i+1)
			}
			par, err := parseCells(row[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid par row: %w", i+1, err)
			}
			card.Par = par
			seenPar = true
		case isHeaderRow(label), label == "":
			continue
		default:
			holes, err := parseCells(row[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid scores for %q: %w", i+1, label, err)
			}
			card.Players = append(card.Players, PlayerRow{Name: label, Holes: holes})
		}
	}

	if nonEmpty == 0 {
		return nil, ErrEmptyScorecard
	}
	if !seenPar {
		return nil, ErrNoParRow
	}
	if len(card.Players) == 0 {
		return nil, ErrNoPlayerRows
	}
	return card, nil
}
