package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses comma or tab separated scorecards.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads CSV data into a Scorecard.
func (p *CSVParser) Parse(data []byte) (*Scorecard, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return parseRows(rows)
}

// preprocessCSVData strips a UTF-8 BOM, normalizes line endings and picks
// tab or comma as the delimiter from the first lines.
func preprocessCSVData(data []byte) (string, rune, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ',', ErrEmptyScorecard
	}

	cleaned := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	lines := strings.SplitN(cleaned, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}
	commas, tabs := 0, 0
	for _, line := range lines {
		commas += strings.Count(line, ",")
		tabs += strings.Count(line, "\t")
	}
	if tabs > commas {
		return cleaned, '\t', nil
	}
	return cleaned, ',', nil
}
