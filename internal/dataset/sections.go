// Copyright ktanaka, 2026. All rights reserved.

// Package dataset emits the training artifacts: section records, compact
// text datasets, ChatML conversations, and the paragraph-unit and
// multi-turn derivatives.
package dataset

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/ktanaka/patentprep/pkg/types"
)

// BuildSections flattens parsed publications into section records: the
// prose sections, one record per numbered claim, and a combined "claims"
// section in 【請求項N】 form for the pairing stage. Publications without
// a publication number get a deterministic content-derived fallback ID so
// downstream grouping still works.
func BuildSections(patents []types.Patent) []types.SectionRecord {
	var records []types.SectionRecord

	for _, p := range patents {
		id := p.PublicationNumber
		if strings.TrimSpace(id) == "" {
			id = FallbackID(p.SourceFile + p.Title + p.Abstract)
		}

		records = append(records,
			types.SectionRecord{PatentID: id, Section: types.SectionTitle, Text: p.Title},
			types.SectionRecord{PatentID: id, Section: types.SectionAbstract, Text: p.Abstract},
			types.SectionRecord{PatentID: id, Section: types.SectionTechnicalField, Text: p.TechnicalField},
			types.SectionRecord{PatentID: id, Section: types.SectionBackgroundArt, Text: p.BackgroundArt},
			types.SectionRecord{PatentID: id, Section: types.SectionDetailedDescription, Text: p.DetailedDescription},
		)

		for _, c := range p.Claims {
			records = append(records, types.SectionRecord{
				PatentID: id,
				Section:  "claim_" + c.Number,
				Text:     c.Text,
			})
		}

		if combined := CombineClaims(p.Claims); combined != "" {
			records = append(records, types.SectionRecord{
				PatentID: id,
				Section:  types.SectionClaims,
				Text:     combined,
			})
		}
	}

	return records
}

// CombineClaims renders all claims as one block, each prefixed with its
// 【請求項N】 marker. Claims without a number are kept bare.
func CombineClaims(claims []types.Claim) string {
	var lines []string
	for _, c := range claims {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		if c.Number != "" {
			lines = append(lines, "【請求項"+c.Number+"】"+text)
		} else {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// FallbackID derives a stable JP-prefixed pseudo identifier from content,
// used when a publication arrives without a number.
func FallbackID(content string) string {
	h := fnv.New32a()
	h.Write([]byte(content))
	return fmt.Sprintf("JP%06d", h.Sum32()%1000000)
}

// CompactRecord is the training_dataset.json shape: text-only fields for
// direct tokenizer consumption.
type CompactRecord struct {
	PatentID string   `json:"patent_id"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Claims   []string `json:"claims"`
}

// BuildCompact reduces publications to compact text records. Text is the
// prose sections joined in reading order followed by the claims.
func BuildCompact(patents []types.Patent) []CompactRecord {
	out := make([]CompactRecord, 0, len(patents))
	for _, p := range patents {
		claims := make([]string, 0, len(p.Claims))
		for _, c := range p.Claims {
			claims = append(claims, c.Text)
		}
		out = append(out, CompactRecord{
			PatentID: p.PublicationNumber,
			Title:    p.Title,
			Text:     CombinedText(p),
			Claims:   claims,
		})
	}
	return out
}

// CombinedText joins a publication's prose sections and claims with blank
// lines, skipping empty sections.
func CombinedText(p types.Patent) string {
	parts := make([]string, 0, 8)
	for _, s := range []string{p.Title, p.Abstract, p.TechnicalField, p.BackgroundArt, p.Summary, p.DetailedDescription} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	for _, c := range p.Claims {
		if strings.TrimSpace(c.Text) != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
