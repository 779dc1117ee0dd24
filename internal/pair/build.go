// Copyright ktanaka, 2026. All rights reserved.

package pair

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ktanaka/patentprep/pkg/types"
)

// Marker patterns of Japanese patent prose. Claims are delimited by
// 【請求項N】, embodiment paragraphs by four-digit 【dddd】 numbers, and
// named sections by non-numeric 【...】 headings.
var (
	claimMarkerPattern     = regexp.MustCompile(`【請求項\d+】`)
	paragraphMarkerPattern = regexp.MustCompile(`【\d{4}】`)
	sectionMarkerPattern   = regexp.MustCompile(`【[^】\d][^】]*】`)
	anyMarkerPattern       = regexp.MustCompile(`【[^】]*】`)
	whitespaceRun          = regexp.MustCompile(`\s+`)
)

// embodimentHeading starts the implementation section in JPO publications.
const embodimentHeading = "【発明を実施する形態】"

// BuildPairs reduces documents to at most one training pair each and
// accounts for every document in the statistics exactly once, under its
// first applicable outcome: no_claims when the claims fallback finds
// nothing, then no_implementation when the description fallback finds
// nothing, then too_short when either normalized text misses its minimum.
// A document with claims but no description text therefore always lands in
// no_implementation, never in too_short.
//
// The function is pure: identical inputs and configuration yield identical
// output.
func BuildPairs(docs []Document, cfg types.PairConfig) types.PairResult {
	claimsPriority := cfg.ClaimsPriority
	if len(claimsPriority) == 0 {
		claimsPriority = types.DefaultClaimsPriority
	}
	descPriority := cfg.DescriptionPriority
	if len(descPriority) == 0 {
		descPriority = types.DefaultDescriptionPriority
	}

	result := types.PairResult{Pairs: []types.TrainingPair{}}

	for _, doc := range docs {
		claims, ok := Select(doc.Sections, claimsPriority)
		if !ok {
			result.Stats.NoClaims++
			continue
		}

		desc, ok := Select(doc.Sections, descPriority)
		if !ok {
			result.Stats.NoImplementation++
			continue
		}

		instruction := NormalizeClaims(claims.Text, cfg.MaxClaimsLength)
		response := NormalizeDescription(desc.Text, cfg.MaxDescriptionLength)

		if runeLen(instruction) < cfg.MinClaimsLength || runeLen(response) < cfg.MinDescriptionLength {
			result.Stats.TooShort++
			continue
		}

		result.Pairs = append(result.Pairs, types.TrainingPair{
			Instruction:        instruction,
			Response:           response,
			SourcePatentID:     doc.PatentID,
			ClaimsSection:      claims.Section,
			DescriptionSection: desc.Section,
		})
		result.Stats.Success++
	}

	return result
}

// NormalizeClaims collapses whitespace and, when the text exceeds max runes,
// truncates at 【請求項N】 boundaries: whole claims are kept in order while
// they fit. Texts without claim markers fall back to generic 【...】 blocks,
// then to a hard cut. max <= 0 disables the length cap.
func NormalizeClaims(text string, max int) string {
	t := collapseWhitespace(text)
	if max <= 0 || runeLen(t) <= max {
		return t
	}

	if blocks := markerBlocks(t, claimMarkerPattern); len(blocks) > 0 {
		if out := accumulateBlocks(blocks, max); out != "" {
			return out
		}
	}
	if blocks := markerBlocks(t, anyMarkerPattern); len(blocks) > 0 {
		if out := firstFittingBlock(blocks, max); out != "" {
			return out
		}
	}
	return hardCut(t, max)
}

// NormalizeDescription collapses whitespace and, when the text exceeds max
// runes, keeps whole 【dddd】 paragraphs starting from the 【発明を実施する形態】
// heading when present. Texts without paragraph numbers fall back to named
// section blocks, then to a hard cut. max <= 0 disables the length cap.
func NormalizeDescription(text string, max int) string {
	t := collapseWhitespace(text)
	if max <= 0 || runeLen(t) <= max {
		return t
	}

	if i := strings.Index(t, embodimentHeading); i >= 0 {
		t = t[i:]
	}

	if blocks := markerBlocks(t, paragraphMarkerPattern); len(blocks) > 0 {
		if out := accumulateBlocks(blocks, max); out != "" {
			return out
		}
	}
	if blocks := markerBlocks(t, sectionMarkerPattern); len(blocks) > 0 {
		if out := firstFittingBlock(blocks, max); out != "" {
			return out
		}
	}
	return hardCut(t, max)
}

// collapseWhitespace squeezes all whitespace runs (including newlines left
// over from XML extraction) to single spaces and trims the ends.
func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// markerBlocks splits text into marker-prefixed blocks. Text before the
// first marker becomes a leading block of its own when non-blank. Returns
// nil when the pattern never matches.
func markerBlocks(text string, pattern *regexp.Regexp) []string {
	locs := pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var blocks []string
	if lead := strings.TrimSpace(text[:locs[0][0]]); lead != "" {
		blocks = append(blocks, lead)
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		marker := text[loc[0]:loc[1]]
		body := strings.TrimSpace(text[loc[1]:end])
		blocks = append(blocks, marker+body)
	}
	return blocks
}

// accumulateBlocks concatenates blocks in order while the running total
// stays within max runes. If even the first block does not fit it is
// hard-cut so the result is never empty for non-empty input.
func accumulateBlocks(blocks []string, max int) string {
	var b strings.Builder
	total := 0
	for _, blk := range blocks {
		n := runeLen(blk)
		if total+n > max {
			if total > 0 {
				break
			}
			return hardCut(blk, max)
		}
		b.WriteString(blk)
		total += n
	}
	return b.String()
}

// firstFittingBlock returns the first non-empty block, hard-cut if needed.
func firstFittingBlock(blocks []string, max int) string {
	for _, blk := range blocks {
		if blk == "" {
			continue
		}
		if runeLen(blk) <= max {
			return blk
		}
		return hardCut(blk, max)
	}
	return ""
}

// hardCut truncates s to max runes, replacing the tail with "...".
func hardCut(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
