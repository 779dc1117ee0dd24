// Copyright ktanaka, 2026. All rights reserved.

package dataset

import (
	"fmt"
	"strings"

	"github.com/ktanaka/patentprep/pkg/types"
)

// Prompt scaffolding for the claims→embodiment task. The user prefix and
// assistant heading are stable strings so derivative datasets can strip
// them again.
const (
	chatSystemPrompt = "あなたは特許文書の専門家です。与えられた特許請求の範囲に基づいて、その発明を実施するための具体的な形態を詳しく説明してください。"

	userPromptPrefix = "以下の特許請求の範囲に基づいて、発明を実施するための形態を説明してください：\n\n"

	assistantHeading = "【発明を実施するための形態】\n\n"
)

// ChatRecords builds messages-form ChatML samples from parsed publications:
// one sample per publication that has both claims and embodiment text.
// Claims are concatenated in 【請求項N】 form inside the user turn.
func ChatRecords(patents []types.Patent) []types.ChatRecord {
	var records []types.ChatRecord

	for _, p := range patents {
		if strings.TrimSpace(p.DetailedDescription) == "" || len(p.Claims) == 0 {
			continue
		}

		var claimsBlock strings.Builder
		for _, c := range p.Claims {
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			fmt.Fprintf(&claimsBlock, "【請求項%s】\n%s\n\n", c.Number, c.Text)
		}
		claims := strings.TrimSpace(claimsBlock.String())
		if claims == "" {
			continue
		}

		records = append(records, types.ChatRecord{
			Messages: []types.ChatMessage{
				{Role: types.RoleSystem, Content: chatSystemPrompt},
				{Role: types.RoleUser, Content: userPromptPrefix + claims},
				{Role: types.RoleAssistant, Content: assistantHeading + p.DetailedDescription},
			},
			Metadata: types.ChatMetadata{
				PatentID:    p.PublicationNumber,
				ClaimsCount: len(p.Claims),
			},
		})
	}

	return records
}

// ChatText renders one conversation in the TinySwallow chat template.
func ChatText(systemPrompt, user, assistant string) string {
	return fmt.Sprintf("<|im_start|>system\n%s<|im_end|>\n<|im_start|>user\n%s<|im_end|>\n<|im_start|>assistant\n%s<|im_end|>",
		systemPrompt, user, assistant)
}

// ChatTextRecords renders training pairs as pre-templated chat text, the
// shape consumed directly by the trainer's text field.
func ChatTextRecords(pairs []types.TrainingPair, systemPrompt string) []types.ChatTextRecord {
	if systemPrompt == "" {
		systemPrompt = types.DefaultSystemPrompt
	}

	out := make([]types.ChatTextRecord, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, types.ChatTextRecord{
			Text:               ChatText(systemPrompt, p.Instruction, p.Response),
			PatentID:           p.SourcePatentID,
			ClaimsSection:      p.ClaimsSection,
			DescriptionSection: p.DescriptionSection,
		})
	}
	return out
}

// claimsFromUser strips the fixed user prompt prefix, recovering the raw
// claims block from a ChatML record.
func claimsFromUser(content string) string {
	return strings.TrimSpace(strings.TrimPrefix(content, userPromptPrefix))
}

// implementationFromAssistant strips the fixed assistant heading.
func implementationFromAssistant(content string) string {
	return strings.TrimSpace(strings.TrimPrefix(content, assistantHeading))
}

// messagesByRole returns the first user and assistant turns of a record.
func messagesByRole(rec types.ChatRecord) (user, assistant string) {
	for _, m := range rec.Messages {
		switch m.Role {
		case types.RoleUser:
			if user == "" {
				user = m.Content
			}
		case types.RoleAssistant:
			if assistant == "" {
				assistant = m.Content
			}
		}
	}
	return user, assistant
}
