// Copyright ktanaka, 2026. All rights reserved.

package dataset

import (
	"fmt"

	"github.com/ktanaka/patentprep/pkg/types"
)

const conversationSystemPrompt = "あなたは特許文書の専門家です。ユーザーの請求項に基づいて、実施形態を段落ごとに対話形式で生成してください。ユーザーが「次へ」と言ったら次の段落を生成してください。"

const (
	conversationOpener = "以下の特許請求の範囲に基づいて、実施形態を段落ごとに生成してください：\n\n%s\n\n最初の段落からお願いします。"
	nextParagraphTurn  = "次の段落をお願いします。"
	lastParagraphTurn  = "最後の段落をお願いします。"
)

// ConversationRecords rewrites messages-form records into multi-turn
// conversations: the user asks for the embodiment paragraph by paragraph
// and the assistant replies one paragraph per turn. Publications with
// fewer than two paragraphs are skipped since they cannot sustain a
// dialogue.
func ConversationRecords(records []types.ChatRecord) []types.ChatRecord {
	var out []types.ChatRecord

	for _, rec := range records {
		user, assistant := messagesByRole(rec)
		claims := claimsFromUser(user)
		paragraphs := SplitParagraphs(implementationFromAssistant(assistant))
		if claims == "" || len(paragraphs) < 2 {
			continue
		}

		messages := make([]types.ChatMessage, 0, 1+2*len(paragraphs))
		messages = append(messages, types.ChatMessage{
			Role:    types.RoleSystem,
			Content: conversationSystemPrompt,
		})

		for i, para := range paragraphs {
			var turn string
			switch {
			case i == 0:
				turn = fmt.Sprintf(conversationOpener, claims)
			case i == len(paragraphs)-1:
				turn = lastParagraphTurn
			default:
				turn = nextParagraphTurn
			}
			messages = append(messages,
				types.ChatMessage{Role: types.RoleUser, Content: turn},
				types.ChatMessage{Role: types.RoleAssistant, Content: fmt.Sprintf("【%s】\n%s", para.Number, para.Content)},
			)
		}

		meta := rec.Metadata
		meta.TotalParagraphs = len(paragraphs)
		meta.ConversationTurns = len(paragraphs)
		meta.DatasetType = "conversation"

		out = append(out, types.ChatRecord{Messages: messages, Metadata: meta})
	}

	return out
}
