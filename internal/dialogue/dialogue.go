// Package dialogue loads the known script of (speaker, line) pairs that
// transcribed utterances are matched against.
package dialogue

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"hamremix/internal/services"
)

// DefaultDelimiter separates columns in dialogue files.
const DefaultDelimiter = ';'

const component = "dialogue"

// Line is one scripted line of dialogue.
type Line struct {
	Speaker string
	Text    string
}

// Load parses the dialogue file at path.
func Load(path string, delimiter rune) ([]Line, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, component, "load", path, err)
	}
	defer file.Close()
	lines, err := Read(file, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// Read parses delimited dialogue with a header row naming at least the
// Speaker and Line columns. Row order is preserved; blank rows are skipped.
func Read(r io.Reader, delimiter rune) ([]Line, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrFormat, component, "read", "missing header row", nil)
		}
		return nil, services.Wrap(services.ErrFormat, component, "read", "header", err)
	}
	speakerCol, lineCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "speaker":
			if speakerCol < 0 {
				speakerCol = i
			}
		case "line":
			if lineCol < 0 {
				lineCol = i
			}
		}
	}
	if speakerCol < 0 || lineCol < 0 {
		return nil, services.Wrap(services.ErrFormat, component, "read",
			fmt.Sprintf("header %q must name Speaker and Line columns", strings.Join(header, string(delimiter))), nil)
	}
	need := max(speakerCol, lineCol) + 1

	var lines []Line
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrFormat, component, "read", fmt.Sprintf("record %d", row), err)
		}
		if blank(record) {
			continue
		}
		if len(record) < need {
			return nil, services.Wrap(services.ErrFormat, component, "read",
				fmt.Sprintf("record %d: expected at least %d fields, got %d", row, need, len(record)), nil)
		}
		lines = append(lines, Line{
			Speaker: strings.TrimSpace(record[speakerCol]),
			Text:    strings.TrimSpace(record[lineCol]),
		})
	}
	return lines, nil
}

// Speakers returns the distinct speakers in script order.
func Speakers(lines []Line) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range lines {
		if _, ok := seen[l.Speaker]; ok {
			continue
		}
		seen[l.Speaker] = struct{}{}
		out = append(out, l.Speaker)
	}
	return out
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
