package sidegameservice

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// Clock supplies the reference time for relative tee times.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var compactClock = regexp.MustCompile(`(\d{1,2})(\d{2})\s?(am|pm)`)

// TeeTimeParser turns user input such as "tomorrow 8:10am" or an RFC 3339
// timestamp into an absolute time.
type TeeTimeParser struct {
	timezoneMap map[string]string
	defaultLoc  *time.Location
	clock       Clock
	parser      *when.Parser
}

// NewTeeTimeParser creates a parser. defaultTZ is used when a request names
// no timezone; empty means UTC. A nil clock uses the system time.
func NewTeeTimeParser(defaultTZ string, clock Clock) (*TeeTimeParser, error) {
	if clock == nil {
		clock = systemClock{}
	}
	tp := &TeeTimeParser{
		timezoneMap: map[string]string{
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
			"UTC": "UTC",
		},
		defaultLoc: time.UTC,
		clock:      clock,
	}
	if defaultTZ != "" {
		loc, err := tp.Location(defaultTZ)
		if err != nil {
			return nil, err
		}
		tp.defaultLoc = loc
	}
	tp.parser = when.New(nil)
	tp.parser.Add(en.All...)
	return tp, nil
}

// Location resolves a US abbreviation or an IANA zone name.
func (tp *TeeTimeParser) Location(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return tp.defaultLoc, nil
	}
	if full, ok := tp.timezoneMap[strings.ToUpper(tz)]; ok {
		tz = full
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidTeeTime, tz)
	}
	return loc, nil
}

// Parse returns nil for empty input. The result is in UTC.
func (tp *TeeTimeParser) Parse(input, tz string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		utc := t.UTC()
		return &utc, nil
	}

	loc, err := tp.Location(tz)
	if err != nil {
		return nil, err
	}

	normalized := strings.ToLower(input)
	normalized = strings.ReplaceAll(normalized, "today ", "today at ")
	normalized = compactClock.ReplaceAllString(normalized, "$1:$2 $3")

	r, err := tp.parser.Parse(normalized, tp.clock.Now().In(loc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTeeTime, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTeeTime, input)
	}
	utc := r.Time.In(loc).Truncate(time.Minute).UTC()
	return &utc, nil
}
