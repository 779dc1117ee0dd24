// Copyright ktanaka, 2026. All rights reserved.

package pair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktanaka/patentprep/pkg/types"
)

func testConfig() types.PairConfig {
	cfg := types.DefaultPairConfig()
	cfg.MinClaimsLength = 10
	cfg.MinDescriptionLength = 20
	return cfg
}

func longText(n int) string {
	return strings.Repeat("あ", n)
}

func TestBuildPairsOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		sections  map[string]string
		wantStats types.PairStats
	}{
		{
			name: "claims and description pair up",
			sections: map[string]string{
				"claims":               longText(50),
				"detailed_description": longText(200),
			},
			wantStats: types.PairStats{Success: 1},
		},
		{
			name: "no claims section at all",
			sections: map[string]string{
				"detailed_description": longText(200),
			},
			wantStats: types.PairStats{NoClaims: 1},
		},
		{
			name: "claims present but no description",
			sections: map[string]string{
				"claims": longText(50),
			},
			wantStats: types.PairStats{NoImplementation: 1},
		},
		{
			name: "claims below minimum",
			sections: map[string]string{
				"claims":               "短い",
				"detailed_description": longText(200),
			},
			wantStats: types.PairStats{TooShort: 1},
		},
		{
			name: "description below minimum",
			sections: map[string]string{
				"claims":               longText(50),
				"detailed_description": "短い説明",
			},
			wantStats: types.PairStats{TooShort: 1},
		},
		{
			name: "empty claims text falls through to abstract",
			sections: map[string]string{
				"claims":                "   ",
				"abstract":              longText(50),
				"detailed_description": longText(200),
			},
			wantStats: types.PairStats{Success: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := []Document{{PatentID: "JP2023-000001", Sections: tt.sections}}
			result := BuildPairs(docs, testConfig())

			assert.Equal(t, tt.wantStats, result.Stats)
			assert.Len(t, result.Pairs, tt.wantStats.Success)
			assert.Equal(t, 1, result.Stats.Total())
		})
	}
}

// A document whose only usable claims text is the abstract and that has no
// description section is rejected as no_implementation, not too_short: the
// description fallback never found anything to measure.
func TestBuildPairsAbstractOnlyDocument(t *testing.T) {
	docs := []Document{
		{
			PatentID: "JP2023-000001",
			Sections: map[string]string{
				"claims":               longText(60),
				"detailed_description": longText(300),
			},
		},
		{
			PatentID: "JP2023-000002",
			Sections: map[string]string{
				"abstract": longText(60),
			},
		},
	}

	result := BuildPairs(docs, testConfig())

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "JP2023-000001", result.Pairs[0].SourcePatentID)
	assert.Equal(t, types.PairStats{Success: 1, NoImplementation: 1}, result.Stats)
	assert.Equal(t, 2, result.Stats.Total())
}

func TestBuildPairsRecordsSelectedSections(t *testing.T) {
	docs := []Document{{
		PatentID: "JP2023-000003",
		Sections: map[string]string{
			"abstract":       longText(60),
			"background_art": longText(300),
		},
	}}

	result := BuildPairs(docs, testConfig())

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "abstract", result.Pairs[0].ClaimsSection)
	assert.Equal(t, "background_art", result.Pairs[0].DescriptionSection)
}

func TestBuildPairsPriorityOverride(t *testing.T) {
	cfg := testConfig()
	cfg.ClaimsPriority = []string{"claim_1"}
	cfg.DescriptionPriority = []string{"summary"}

	docs := []Document{{
		PatentID: "JP2023-000004",
		Sections: map[string]string{
			"claims":  longText(60),
			"claim_1": longText(40),
			"summary": longText(200),
		},
	}}

	result := BuildPairs(docs, cfg)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "claim_1", result.Pairs[0].ClaimsSection)
	assert.Equal(t, "summary", result.Pairs[0].DescriptionSection)
}

func TestBuildPairsEmptyInput(t *testing.T) {
	result := BuildPairs(nil, testConfig())

	assert.NotNil(t, result.Pairs)
	assert.Empty(t, result.Pairs)
	assert.Equal(t, 0, result.Stats.Total())
}

func TestBuildPairsDeterministic(t *testing.T) {
	docs := []Document{
		{PatentID: "A", Sections: map[string]string{"claims": longText(60), "detailed_description": longText(300)}},
		{PatentID: "B", Sections: map[string]string{"claims": longText(40), "description": longText(250)}},
	}

	first := BuildPairs(docs, testConfig())
	second := BuildPairs(docs, testConfig())
	assert.Equal(t, first, second)
}

func TestNormalizeClaimsKeepsWholeClaimMarkers(t *testing.T) {
	// Two claims of ~105 runes each plus a third; max 250 keeps exactly two.
	claim := func(n int) string {
		return "【請求項" + string(rune('0'+n)) + "】" + longText(100)
	}
	text := claim(1) + claim(2) + claim(3)

	got := NormalizeClaims(text, 250)

	assert.True(t, strings.HasPrefix(got, "【請求項1】"))
	assert.Contains(t, got, "【請求項2】")
	assert.NotContains(t, got, "【請求項3】")
	assert.LessOrEqual(t, len([]rune(got)), 250)
}

func TestNormalizeClaimsHardCutWithoutMarkers(t *testing.T) {
	got := NormalizeClaims(longText(100), 50)

	assert.Equal(t, 50, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestNormalizeClaimsUnderLimitUntouched(t *testing.T) {
	text := "【請求項1】" + longText(20)
	assert.Equal(t, text, NormalizeClaims(text, 500))
}

func TestNormalizeClaimsCollapsesWhitespace(t *testing.T) {
	got := NormalizeClaims("【請求項1】\n  装置であって、\n\n  制御部を備える。  ", 0)
	assert.Equal(t, "【請求項1】 装置であって、 制御部を備える。", got)
}

func TestNormalizeDescriptionSeeksEmbodimentHeading(t *testing.T) {
	text := "【背景技術】" + longText(100) +
		"【発明を実施する形態】" +
		"【0001】" + longText(80) +
		"【0002】" + longText(80) +
		"【0003】" + longText(200)

	got := NormalizeDescription(text, 200)

	assert.True(t, strings.HasPrefix(got, "【発明を実施する形態】"))
	assert.Contains(t, got, "【0001】")
	assert.NotContains(t, got, "【0003】")
	assert.NotContains(t, got, "【背景技術】")
	assert.LessOrEqual(t, len([]rune(got)), 200)
}

func TestNormalizeDescriptionParagraphAccumulation(t *testing.T) {
	text := "【0001】" + longText(90) + "【0002】" + longText(90) + "【0003】" + longText(90)

	got := NormalizeDescription(text, 200)

	assert.Contains(t, got, "【0001】")
	assert.Contains(t, got, "【0002】")
	assert.NotContains(t, got, "【0003】")
}

func TestNormalizeDescriptionSectionFallback(t *testing.T) {
	// No paragraph numbers: fall back to the first named section block.
	text := "【課題】" + longText(60) + "【解決手段】" + longText(500)

	got := NormalizeDescription(text, 100)

	assert.True(t, strings.HasPrefix(got, "【課題】"))
	assert.LessOrEqual(t, len([]rune(got)), 100)
}

func TestNormalizeDescriptionHardCut(t *testing.T) {
	got := NormalizeDescription(longText(1000), 100)

	assert.Equal(t, 100, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestHardCutTinyMax(t *testing.T) {
	assert.Equal(t, longText(2), hardCut(longText(10), 2))
	assert.Equal(t, longText(3), hardCut(longText(3), 3))
}
