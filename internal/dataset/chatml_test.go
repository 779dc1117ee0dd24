// Copyright ktanaka, 2026. All rights reserved.

package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktanaka/patentprep/pkg/types"
)

func TestChatRecords(t *testing.T) {
	records := ChatRecords([]types.Patent{samplePatent()})

	require.Len(t, records, 1)
	rec := records[0]
	require.Len(t, rec.Messages, 3)

	assert.Equal(t, types.RoleSystem, rec.Messages[0].Role)
	assert.Equal(t, chatSystemPrompt, rec.Messages[0].Content)

	assert.Equal(t, types.RoleUser, rec.Messages[1].Role)
	assert.True(t, strings.HasPrefix(rec.Messages[1].Content, userPromptPrefix))
	assert.Contains(t, rec.Messages[1].Content, "【請求項1】")
	assert.Contains(t, rec.Messages[1].Content, "【請求項2】")

	assert.Equal(t, types.RoleAssistant, rec.Messages[2].Role)
	assert.True(t, strings.HasPrefix(rec.Messages[2].Content, assistantHeading))
	assert.Contains(t, rec.Messages[2].Content, "以下、実施形態を説明する。")

	assert.Equal(t, "JP2023-123456", rec.Metadata.PatentID)
	assert.Equal(t, 2, rec.Metadata.ClaimsCount)
}

func TestChatRecordsSkipsIncompletePatents(t *testing.T) {
	noClaims := samplePatent()
	noClaims.Claims = nil

	noDescription := samplePatent()
	noDescription.DetailedDescription = "   "

	records := ChatRecords([]types.Patent{noClaims, noDescription, samplePatent()})
	assert.Len(t, records, 1)
}

func TestChatText(t *testing.T) {
	got := ChatText("システム", "ユーザー", "アシスタント")
	want := "<|im_start|>system\nシステム<|im_end|>\n" +
		"<|im_start|>user\nユーザー<|im_end|>\n" +
		"<|im_start|>assistant\nアシスタント<|im_end|>"
	assert.Equal(t, want, got)
}

func TestChatTextRecords(t *testing.T) {
	pairs := []types.TrainingPair{{
		Instruction:        "【請求項1】装置。",
		Response:           "【0001】実施形態。",
		SourcePatentID:     "JP1",
		ClaimsSection:      "claims",
		DescriptionSection: "detailed_description",
	}}

	records := ChatTextRecords(pairs, "")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Contains(t, rec.Text, types.DefaultSystemPrompt)
	assert.Contains(t, rec.Text, "【請求項1】装置。")
	assert.Contains(t, rec.Text, "<|im_start|>assistant\n【0001】実施形態。<|im_end|>")
	assert.Equal(t, "JP1", rec.PatentID)
	assert.Equal(t, "detailed_description", rec.DescriptionSection)
}

func TestChatTextRecordsCustomPrompt(t *testing.T) {
	records := ChatTextRecords([]types.TrainingPair{{Instruction: "a", Response: "b"}}, "カスタム")
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Text, "<|im_start|>system\nカスタム<|im_end|>")
}
