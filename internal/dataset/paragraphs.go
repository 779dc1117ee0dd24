// Copyright ktanaka, 2026. All rights reserved.

package dataset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ktanaka/patentprep/pkg/types"
)

// Paragraph is one 【dddd】-numbered block of embodiment text.
type Paragraph struct {
	Number  string
	Content string
}

var paragraphNumberPattern = regexp.MustCompile(`【(\d{4})】`)

// SplitParagraphs splits embodiment text at its 【dddd】 markers. Text
// before the first marker is dropped; a marker with no body yields no
// paragraph.
func SplitParagraphs(text string) []Paragraph {
	matches := paragraphNumberPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var paragraphs []Paragraph
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])
		if content == "" {
			continue
		}
		paragraphs = append(paragraphs, Paragraph{
			Number:  text[m[2]:m[3]],
			Content: content,
		})
	}
	return paragraphs
}

const paragraphSystemPrompt = "あなたは特許文書の専門家です。与えられた特許請求の範囲と文脈に基づいて、指定された段落番号の実施形態を生成してください。"

// contextPreviewRunes bounds how much of each prior paragraph the user
// turn carries as context.
const contextPreviewRunes = 100

// ParagraphRecords rewrites messages-form records into paragraph-unit
// samples: one sample per embodiment paragraph, with the preceding
// paragraphs summarized as context in the user turn.
func ParagraphRecords(records []types.ChatRecord) []types.ChatRecord {
	var out []types.ChatRecord

	for _, rec := range records {
		user, assistant := messagesByRole(rec)
		claims := claimsFromUser(user)
		paragraphs := SplitParagraphs(implementationFromAssistant(assistant))
		if claims == "" || len(paragraphs) == 0 {
			continue
		}

		for i, para := range paragraphs {
			context := paragraphContext(paragraphs[:i])
			userTurn := fmt.Sprintf("%s\n\n【請求項】\n%s\n\n上記に基づいて【%s】の段落を生成してください。",
				context, claims, para.Number)

			meta := rec.Metadata
			meta.ParagraphNumber = para.Number
			meta.ParagraphIndex = i
			meta.TotalParagraphs = len(paragraphs)
			meta.DatasetType = "paragraph_unit"

			out = append(out, types.ChatRecord{
				Messages: []types.ChatMessage{
					{Role: types.RoleSystem, Content: paragraphSystemPrompt},
					{Role: types.RoleUser, Content: userTurn},
					{Role: types.RoleAssistant, Content: fmt.Sprintf("【%s】\n%s", para.Number, para.Content)},
				},
				Metadata: meta,
			})
		}
	}

	return out
}

// paragraphContext renders prior paragraphs as a short preview block, or a
// fixed placeholder for the first paragraph.
func paragraphContext(prior []Paragraph) string {
	if len(prior) == 0 {
		return "【文脈】\nなし（最初の段落）"
	}

	var b strings.Builder
	b.WriteString("【文脈】")
	for _, p := range prior {
		preview := []rune(p.Content)
		if len(preview) > contextPreviewRunes {
			preview = preview[:contextPreviewRunes]
		}
		fmt.Fprintf(&b, "\n【%s】%s", p.Number, string(preview))
	}
	return b.String()
}
