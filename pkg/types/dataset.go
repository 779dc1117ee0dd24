// Copyright ktanaka, 2026. All rights reserved.

package types

// TrainingPair is one instruction/response example derived from a single
// document's claims and description.
type TrainingPair struct {
	// Instruction is the normalized claims text presented to the model.
	Instruction string `json:"instruction" yaml:"instruction"`

	// Response is the normalized embodiment text the model should produce.
	Response string `json:"response" yaml:"response"`

	// SourcePatentID links the pair back to its publication.
	SourcePatentID string `json:"source_patent_id" yaml:"source_patent_id"`

	// ClaimsSection and DescriptionSection record which section names the
	// priority fallback actually selected.
	ClaimsSection      string `json:"claims_section" yaml:"claims_section"`
	DescriptionSection string `json:"description_section" yaml:"description_section"`
}

// PairStats counts per-document pairing outcomes. Every input document is
// counted exactly once, under its first applicable rejection reason or
// under Success, so the four fields always sum to the document total.
type PairStats struct {
	Success          int `json:"success" yaml:"success"`
	NoClaims         int `json:"no_claims" yaml:"no_claims"`
	NoImplementation int `json:"no_implementation" yaml:"no_implementation"`
	TooShort         int `json:"too_short" yaml:"too_short"`
}

// Total returns the number of documents the stats account for.
func (s PairStats) Total() int {
	return s.Success + s.NoClaims + s.NoImplementation + s.TooShort
}

// PairResult is the pairing stage's output artifact.
type PairResult struct {
	Pairs []TrainingPair `json:"pairs" yaml:"pairs"`
	Stats PairStats      `json:"stats" yaml:"stats"`
}

// ChatMessage is one turn of a chat-format training record.
type ChatMessage struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Chat roles used across the dataset emitters.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMetadata carries provenance for one chat record.
type ChatMetadata struct {
	PatentID    string `json:"patent_id" yaml:"patent_id"`
	ClaimsCount int    `json:"claims_count,omitempty" yaml:"claims_count,omitempty"`

	// Paragraph-unit datasets record which paragraph the sample targets.
	ParagraphNumber string `json:"paragraph_number,omitempty" yaml:"paragraph_number,omitempty"`
	ParagraphIndex  int    `json:"paragraph_index,omitempty" yaml:"paragraph_index,omitempty"`
	TotalParagraphs int    `json:"total_paragraphs,omitempty" yaml:"total_paragraphs,omitempty"`

	// Conversation datasets record turn counts.
	ConversationTurns int `json:"conversation_turns,omitempty" yaml:"conversation_turns,omitempty"`

	// DatasetType distinguishes the emitters (e.g. "paragraph_unit").
	DatasetType string `json:"dataset_type,omitempty" yaml:"dataset_type,omitempty"`
}

// ChatRecord is a messages-form training sample.
type ChatRecord struct {
	Messages []ChatMessage `json:"messages" yaml:"messages"`
	Metadata ChatMetadata  `json:"metadata" yaml:"metadata"`
}

// ChatTextRecord is a pre-rendered chat-template training sample; Text
// embeds the full <|im_start|>...<|im_end|> conversation.
type ChatTextRecord struct {
	Text               string `json:"text" yaml:"text"`
	PatentID           string `json:"patent_id" yaml:"patent_id"`
	ClaimsSection      string `json:"claims_section" yaml:"claims_section"`
	DescriptionSection string `json:"implementation_section" yaml:"implementation_section"`
}

// DatasetManifest summarizes one parse run. Written as dataset_stats.json
// next to the emitted artifacts.
type DatasetManifest struct {
	RunID            string            `json:"run_id" yaml:"run_id"`
	CreatedAt        string            `json:"created_at" yaml:"created_at"`
	TotalPatents     int               `json:"total_patents" yaml:"total_patents"`
	TotalClaims      int               `json:"total_claims" yaml:"total_claims"`
	TotalSections    int               `json:"total_sections" yaml:"total_sections"`
	FileDescriptions map[string]string `json:"file_descriptions" yaml:"file_descriptions"`
}

// AlpacaRow is one instruction-tuning row from the fetched dataset.
type AlpacaRow struct {
	Instruction string `json:"instruction" yaml:"instruction"`
	Input       string `json:"input" yaml:"input"`
	Output      string `json:"output" yaml:"output"`
}
