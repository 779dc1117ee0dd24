// Copyright ktanaka, 2026. All rights reserved.

// Package verify runs consistency checks over emitted datasets and
// repairs section records with missing patent IDs.
package verify

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ktanaka/patentprep/pkg/types"
)

// Issue is one finding from a verification pass.
type Issue struct {
	PatentID string `json:"patent_id,omitempty" yaml:"patent_id,omitempty"`
	Kind     string `json:"kind" yaml:"kind"`
	Detail   string `json:"detail" yaml:"detail"`
}

// Report collects the findings of one verification run.
type Report struct {
	Checked int     `json:"checked" yaml:"checked"`
	Issues  []Issue `json:"issues" yaml:"issues"`
}

// OK reports whether the run found no issues.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) add(patentID, kind, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		PatentID: patentID,
		Kind:     kind,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// Pairs checks a pairing result against the section records it was built
// from: the stats must account for every distinct patent ID exactly once,
// each pair must satisfy the configured minimum lengths, and no patent
// may contribute two pairs.
func Pairs(records []types.SectionRecord, result types.PairResult, cfg types.PairConfig, w io.Writer) Report {
	report := Report{Checked: len(result.Pairs)}

	// Records without a section name never form a document, so they must
	// not count toward the distinct-ID total either.
	distinct := make(map[string]bool)
	for _, rec := range records {
		if rec.Section == "" {
			continue
		}
		id := rec.PatentID
		if id == "" {
			id = "unknown"
		}
		distinct[id] = true
	}

	if got, want := result.Stats.Total(), len(distinct); got != want {
		report.add("", "stats_total",
			"stats sum to %d but input has %d distinct patent IDs", got, want)
	}
	if got, want := result.Stats.Success, len(result.Pairs); got != want {
		report.add("", "stats_success",
			"stats report %d successes but output has %d pairs", got, want)
	}

	seen := make(map[string]bool)
	for _, p := range result.Pairs {
		if seen[p.SourcePatentID] {
			report.add(p.SourcePatentID, "duplicate_source", "patent contributes more than one pair")
		}
		seen[p.SourcePatentID] = true

		if n := len([]rune(p.Instruction)); n < cfg.MinClaimsLength {
			report.add(p.SourcePatentID, "short_instruction",
				"instruction is %d runes, minimum is %d", n, cfg.MinClaimsLength)
		}
		if n := len([]rune(p.Response)); n < cfg.MinDescriptionLength {
			report.add(p.SourcePatentID, "short_response",
				"response is %d runes, minimum is %d", n, cfg.MinDescriptionLength)
		}
	}

	printReport(w, "pairs", report)
	return report
}

// Sections reports the per-patent section inventory and flags pairs of
// claims/description sections that share no 2-gram vocabulary, which
// usually indicates mismatched patent IDs.
func Sections(records []types.SectionRecord, w io.Writer) Report {
	var report Report

	byPatent := make(map[string]map[string]string)
	var order []string
	for _, rec := range records {
		if byPatent[rec.PatentID] == nil {
			byPatent[rec.PatentID] = make(map[string]string)
			order = append(order, rec.PatentID)
		}
		byPatent[rec.PatentID][rec.Section] = rec.Text
	}
	report.Checked = len(order)

	for _, id := range order {
		sections := byPatent[id]
		if id == "" {
			report.add("", "missing_patent_id", "%d sections have an empty patent ID", len(sections))
			continue
		}

		names := make([]string, 0, len(sections))
		for name := range sections {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "%s: %s\n", id, strings.Join(names, ", "))

		claims, hasClaims := sections[types.SectionClaims]
		desc, hasDesc := sections[types.SectionDetailedDescription]
		if hasClaims && hasDesc && !sharesVocabulary(claims, desc) {
			report.add(id, "vocabulary_mismatch",
				"claims and description share no vocabulary; sections may belong to different documents")
		}
	}

	printReport(w, "sections", report)
	return report
}

// sharesVocabulary reports whether two texts have at least one rune
// 2-gram in common. Works on CJK text where word splitting is unhelpful.
func sharesVocabulary(a, b string) bool {
	grams := make(map[string]bool)
	runes := []rune(a)
	for i := 0; i+1 < len(runes); i++ {
		grams[string(runes[i:i+2])] = true
	}

	runes = []rune(b)
	for i := 0; i+1 < len(runes); i++ {
		if grams[string(runes[i:i+2])] {
			return true
		}
	}
	return false
}

func printReport(w io.Writer, what string, report Report) {
	if report.OK() {
		fmt.Fprintf(w, "%s: %d checked, no issues\n", what, report.Checked)
		return
	}
	fmt.Fprintf(w, "%s: %d checked, %d issues\n", what, report.Checked, len(report.Issues))
	for _, issue := range report.Issues {
		if issue.PatentID != "" {
			fmt.Fprintf(w, "  %s [%s]: %s\n", issue.PatentID, issue.Kind, issue.Detail)
		} else {
			fmt.Fprintf(w, "  [%s]: %s\n", issue.Kind, issue.Detail)
		}
	}
}
