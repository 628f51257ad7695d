package transcript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hamremix/internal/outputs"
	"hamremix/internal/services"
)

const component = "transcript"

// Column names of the transcript CSV.
const (
	ColumnStart   = "start"
	ColumnEnd     = "end"
	ColumnSpeaker = "speaker"
	ColumnText    = "text"
)

// Header is the header row written by Write.
var Header = []string{ColumnStart, ColumnEnd, ColumnSpeaker, ColumnText}

// Write encodes utterances as CSV with a header row. Utterances Read could
// not return unchanged are rejected before anything is written: carriage
// returns in text or speaker, and speakers with surrounding whitespace.
func Write(w io.Writer, utterances []Utterance) error {
	for i, u := range utterances {
		if err := checkWritable(u); err != nil {
			return services.Wrap(services.ErrValidation, component, "write", fmt.Sprintf("utterance %d: %s", i+1, err), nil)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return services.Wrap(services.ErrIO, component, "write", "header", err)
	}
	for _, u := range utterances {
		record := []string{formatSeconds(u.Start), formatSeconds(u.End), u.Speaker, u.Text}
		if err := cw.Write(record); err != nil {
			return services.Wrap(services.ErrIO, component, "write", "row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return services.Wrap(services.ErrIO, component, "write", "flush", err)
	}
	return nil
}

// Read decodes a transcript CSV. The start, end, and text columns are
// required; speaker is optional and left empty when absent. Columns are
// located by header name, so their order does not matter.
func Read(r io.Reader) ([]Utterance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrFormat, component, "read", "missing header row", nil)
		}
		return nil, services.Wrap(services.ErrFormat, component, "read", "header", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{ColumnStart, ColumnEnd, ColumnText} {
		if _, ok := cols[required]; !ok {
			return nil, services.Wrap(services.ErrFormat, component, "read", fmt.Sprintf("missing %q column", required), nil)
		}
	}
	speakerCol, hasSpeaker := cols[ColumnSpeaker]

	var utterances []Utterance
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrFormat, component, "read", fmt.Sprintf("record %d", row), err)
		}
		if isBlank(record) {
			continue
		}
		field := func(col int) (string, error) {
			if col >= len(record) {
				return "", services.Wrap(services.ErrFormat, component, "read", fmt.Sprintf("record %d: expected %d fields, got %d", row, len(header), len(record)), nil)
			}
			return record[col], nil
		}

		var u Utterance
		if u.Start, err = parseSeconds(field, cols[ColumnStart], row, ColumnStart); err != nil {
			return nil, err
		}
		if u.End, err = parseSeconds(field, cols[ColumnEnd], row, ColumnEnd); err != nil {
			return nil, err
		}
		if u.Text, err = field(cols[ColumnText]); err != nil {
			return nil, err
		}
		if textCol := cols[ColumnText]; textCol == len(header)-1 && len(record) > len(header) {
			// Unquoted commas in a trailing text column split it into extra fields.
			u.Text = strings.Join(record[textCol:], ",")
		}
		if hasSpeaker {
			speaker, err := field(speakerCol)
			if err != nil {
				return nil, err
			}
			u.Speaker = strings.TrimSpace(speaker)
		}
		utterances = append(utterances, u)
	}
	return utterances, nil
}

// Load reads a transcript CSV from path.
func Load(path string) ([]Utterance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, component, "load", path, err)
	}
	defer file.Close()
	utterances, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return utterances, nil
}

// Save writes utterances to the next free "<base>_NNN.csv" in dir and
// returns its path. The file only appears with complete contents.
func Save(dir, base string, utterances []Utterance) (string, error) {
	path, err := outputs.Allocator{Dir: dir}.Reserve(base, ".csv")
	if err != nil {
		return "", services.Wrap(services.ErrIO, component, "save", "allocate name", err)
	}
	if err := WriteFile(path, utterances); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// WriteFile atomically replaces path with the encoded transcript.
func WriteFile(path string, utterances []Utterance) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".transcript-*.csv")
	if err != nil {
		return services.Wrap(services.ErrIO, component, "save", path, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := Write(tmp, utterances); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return services.Wrap(services.ErrIO, component, "save", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return services.Wrap(services.ErrIO, component, "save", path, err)
	}
	return nil
}

func checkWritable(u Utterance) error {
	switch {
	case strings.ContainsRune(u.Text, '\r'):
		return errors.New("text contains a carriage return")
	case strings.ContainsRune(u.Speaker, '\r'):
		return errors.New("speaker contains a carriage return")
	case u.Speaker != strings.TrimSpace(u.Speaker):
		return fmt.Errorf("speaker %q has surrounding whitespace", u.Speaker)
	}
	return nil
}

func parseSeconds(field func(int) (string, error), col, row int, name string) (float64, error) {
	raw, err := field(col)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, services.Wrap(services.ErrFormat, component, "read", fmt.Sprintf("record %d: invalid %s %q", row, name, raw), nil)
	}
	return value, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
