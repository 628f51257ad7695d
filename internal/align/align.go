// Package align assigns speakers to transcribed utterances by matching their
// text against the known dialogue script.
package align

import (
	"fmt"
	"log/slog"
	"strings"

	"hamremix/internal/config"
	"hamremix/internal/dialogue"
	"hamremix/internal/logging"
	"hamremix/internal/services"
	"hamremix/internal/textutil"
	"hamremix/internal/transcript"
)

const component = "align"

// Scorer rates the similarity of two texts in [0, 100].
type Scorer func(a, b string) float64

// Match is the best dialogue line for one utterance.
type Match struct {
	Index int
	Line  dialogue.Line
	Score float64
}

// Aligner matches utterance text against dialogue lines.
type Aligner struct {
	Metric   string
	MinScore float64
	Logger   *slog.Logger
}

// New returns an aligner configured from cfg.
func New(cfg config.Alignment, logger *slog.Logger) *Aligner {
	return &Aligner{Metric: cfg.Metric, MinScore: cfg.MinScore, Logger: logger}
}

// ScorerFor resolves a metric name. An empty name selects token_sort.
func ScorerFor(metric string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(metric)) {
	case "", config.MetricTokenSort:
		return textutil.TokenSortRatio, nil
	case config.MetricCosine:
		return textutil.CosineScore, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, component, "metric",
			fmt.Sprintf("unknown similarity metric %q", metric), nil)
	}
}

// Match returns the line with the highest score for text. Ties keep the
// earliest line.
func (a *Aligner) Match(text string, lines []dialogue.Line) (Match, error) {
	if len(lines) == 0 {
		return Match{}, services.Wrap(services.ErrConfiguration, component, "match", "dialogue is empty", nil)
	}
	score, err := ScorerFor(a.Metric)
	if err != nil {
		return Match{}, err
	}
	return bestMatch(score, text, lines), nil
}

// Align returns a copy of utterances with each Speaker set to the speaker of
// its best matching dialogue line. Existing speakers are overwritten.
func (a *Aligner) Align(utterances []transcript.Utterance, lines []dialogue.Line) ([]transcript.Utterance, error) {
	if len(lines) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, component, "align", "dialogue is empty", nil)
	}
	score, err := ScorerFor(a.Metric)
	if err != nil {
		return nil, err
	}
	logger := a.logger()

	out := make([]transcript.Utterance, len(utterances))
	weak := 0
	for i, u := range utterances {
		m := bestMatch(score, u.Text, lines)
		u.Speaker = m.Line.Speaker
		out[i] = u
		if m.Score < a.MinScore {
			weak++
			logger.Warn("weak dialogue match",
				logging.Int("utterance", i),
				logging.String("text", u.Text),
				logging.String("line", m.Line.Text),
				logging.Float64("score", m.Score),
			)
			continue
		}
		logger.Debug("utterance matched",
			logging.Int("utterance", i),
			logging.String("speaker", m.Line.Speaker),
			logging.Float64("score", m.Score),
		)
	}
	logger.Info("transcript aligned",
		logging.Int("utterances", len(out)),
		logging.Int("lines", len(lines)),
		logging.Int("weak_matches", weak),
	)
	return out, nil
}

func bestMatch(score Scorer, text string, lines []dialogue.Line) Match {
	best := Match{Index: 0, Line: lines[0], Score: score(text, lines[0].Text)}
	for i := 1; i < len(lines); i++ {
		s := score(text, lines[i].Text)
		if s > best.Score {
			best = Match{Index: i, Line: lines[i], Score: s}
		}
	}
	return best
}

func (a *Aligner) logger() *slog.Logger {
	if a == nil || a.Logger == nil {
		return logging.NewNop()
	}
	return logging.NewComponentLogger(a.Logger, component)
}
