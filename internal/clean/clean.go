// Copyright ktanaka, 2026. All rights reserved.

// Package clean scrubs section text of tokenizer-protection debris left
// over from upstream preprocessing and enforces length bounds.
package clean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ktanaka/patentprep/pkg/types"
)

// Debris tokens are uppercase placeholder fragments. Order matters: the
// named patterns run before the generic uppercase-run catch-all.
var debrisPatterns = []*regexp.Regexp{
	regexp.MustCompile(`CHEMICAL\d+`),
	regexp.MustCompile(`LEGAL\d+`),
	regexp.MustCompile(`MIC[A-Z]*`),
	regexp.MustCompile(`CH{2,}`),
	regexp.MustCompile(`AL\d+`),
	regexp.MustCompile(`LE[A-Z]*`),
	regexp.MustCompile(`ECH[A-Z]*`),
	regexp.MustCompile(`[A-Z]{6,}`),
	regexp.MustCompile(`\d{5,}`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText applies the full scrubbing policy to one section text:
// debris removal, repeat squeezing, control-character stripping,
// NFKC width normalization, and whitespace collapsing.
func CleanText(text string) string {
	for _, p := range debrisPatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = squeezeRepeats(text)
	text = stripControl(text)
	text = norm.NFKC.String(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// squeezeRepeats reduces runs of three or more identical runes to two.
// Done by hand since RE2 has no backreferences.
func squeezeRepeats(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// LimitLength truncates text to at most max runes, preferring to cut at
// the last 。 sentence boundary inside the limit.
func LimitLength(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}

	window := string(runes[:max])
	if i := strings.LastIndex(window, "。"); i >= 0 {
		return window[:i+len("。")]
	}
	return window
}

// Stats counts cleaning outcomes over one input batch.
type Stats struct {
	Input   int `json:"input_records" yaml:"input_records"`
	Kept    int `json:"kept_records" yaml:"kept_records"`
	Dropped int `json:"dropped_records" yaml:"dropped_records"`
}

// Retention is the kept fraction, 0 for an empty batch.
func (s Stats) Retention() float64 {
	if s.Input == 0 {
		return 0
	}
	return float64(s.Kept) / float64(s.Input)
}

// Records cleans every section record, drops those that end up below the
// minimum length, and reports retention stats.
func Records(records []types.SectionRecord, cfg types.CleanConfig) ([]types.SectionRecord, Stats) {
	stats := Stats{Input: len(records)}
	kept := make([]types.SectionRecord, 0, len(records))

	for _, rec := range records {
		text := CleanText(rec.Text)
		text = LimitLength(text, cfg.MaxTextLength)
		if len([]rune(text)) < cfg.MinTextLength {
			stats.Dropped++
			continue
		}
		rec.Text = text
		kept = append(kept, rec)
	}

	stats.Kept = len(kept)
	return kept, stats
}

// Subset returns the first n records, or all of them when fewer exist.
func Subset(records []types.SectionRecord, n int) []types.SectionRecord {
	if n >= len(records) {
		return records
	}
	return records[:n]
}
