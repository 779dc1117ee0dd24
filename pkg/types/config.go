// Copyright ktanaka, 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "patentprep/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ParseConfig holds settings for the ST96 XML parsing stage.
type ParseConfig struct {
	// DescriptionSources lists the embodiment source tags tried in order.
	// Default: EmbodimentDescription, DetailedDescription, BestMode, InventionMode.
	DescriptionSources []string `json:"description_sources" yaml:"description_sources"`

	// MaxDescriptionLength caps the extracted embodiment text in runes
	// (default 50000). Longer text is cut and suffixed with "...".
	MaxDescriptionLength int `json:"max_description_length" yaml:"max_description_length"`

	// DataDir is the base data directory (contains raw/, processed/, cleaned/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Workers bounds the number of XML files parsed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// CleanConfig holds settings for the section-record cleaning stage.
type CleanConfig struct {
	// MaxTextLength caps cleaned section text in runes (default 800).
	// Text is cut at sentence boundaries where possible.
	MaxTextLength int `json:"max_text_length" yaml:"max_text_length"`

	// MinTextLength drops records whose cleaned text falls below this
	// many runes (default 50).
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`

	// SmallSubset and MediumSubset are the record counts of the reduced
	// datasets written alongside the full cleaned output (defaults 50, 200).
	SmallSubset  int `json:"small_subset" yaml:"small_subset"`
	MediumSubset int `json:"medium_subset" yaml:"medium_subset"`
}

// PairConfig holds settings for the claims/description pairing stage.
// Priority lists and thresholds are explicit configuration passed into the
// pipeline call, never hidden package constants, so tests can override them.
type PairConfig struct {
	// ClaimsPriority lists section names tried in order when selecting
	// claims text. First non-empty match wins.
	// Default: claims, claim, abstract.
	ClaimsPriority []string `json:"claims_priority" yaml:"claims_priority"`

	// DescriptionPriority lists section names tried in order when selecting
	// embodiment text. Default: detailed_description, description,
	// embodiment, background_art.
	DescriptionPriority []string `json:"description_priority" yaml:"description_priority"`

	// MinClaimsLength is the minimum rune count of normalized claims
	// text (default 30).
	MinClaimsLength int `json:"min_claims_length" yaml:"min_claims_length"`

	// MinDescriptionLength is the minimum rune count of normalized
	// description text (default 100).
	MinDescriptionLength int `json:"min_description_length" yaml:"min_description_length"`

	// MaxClaimsLength caps normalized claims text in runes (default 500).
	// Over-long text is truncated at claim-marker boundaries.
	MaxClaimsLength int `json:"max_claims_length" yaml:"max_claims_length"`

	// MaxDescriptionLength caps normalized description text in runes
	// (default 800). Over-long text is truncated at paragraph boundaries.
	MaxDescriptionLength int `json:"max_description_length" yaml:"max_description_length"`

	// SystemPrompt is the system message embedded in chat-format output.
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt"`
}

// FetchConfig holds settings for the instruction-dataset download stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dataset is the Hugging Face dataset identifier (default "yahma/alpaca-cleaned").
	Dataset string `json:"dataset" yaml:"dataset"`

	// Config is the dataset configuration name (default "default").
	Config string `json:"config" yaml:"config"`

	// Split is the dataset split to download (default "train").
	Split string `json:"split" yaml:"split"`

	// MaxRows bounds the number of rows downloaded (0 = all).
	MaxRows int `json:"max_rows" yaml:"max_rows"`

	// PageSize is the rows-per-request page size (default 100, server max).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Token is an optional Hugging Face API token for gated datasets.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// RawDir is the output directory for downloaded data (default "data/raw").
	RawDir string `json:"raw_dir" yaml:"raw_dir"`
}

// IndexConfig holds settings for the SQLite inspection index.
type IndexConfig struct {
	// IndexDir is the directory holding the index database (default "data/index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parse ParseConfig `json:"parse" yaml:"parse"`
	Clean CleanConfig `json:"clean" yaml:"clean"`
	Pair  PairConfig  `json:"pair" yaml:"pair"`
	Fetch FetchConfig `json:"fetch" yaml:"fetch"`
	Index IndexConfig `json:"index" yaml:"index"`
}

// DefaultSystemPrompt is the system message used for chat-format training
// records unless the configuration overrides it.
const DefaultSystemPrompt = "あなたは特許の専門家です。請求項から具体的な実施形態を説明してください。"

// Fallback chains applied when the configuration leaves the lists empty.
var (
	DefaultClaimsPriority      = []string{"claims", "claim", "abstract"}
	DefaultDescriptionPriority = []string{"detailed_description", "description", "embodiment", "background_art"}
	DefaultDescriptionSources  = []string{"EmbodimentDescription", "DetailedDescription", "BestMode", "InventionMode"}
)

// DefaultPairConfig returns the pairing thresholds used when no
// configuration file overrides them.
func DefaultPairConfig() PairConfig {
	return PairConfig{
		ClaimsPriority:       append([]string(nil), DefaultClaimsPriority...),
		DescriptionPriority:  append([]string(nil), DefaultDescriptionPriority...),
		MinClaimsLength:      30,
		MinDescriptionLength: 100,
		MaxClaimsLength:      500,
		MaxDescriptionLength: 800,
		SystemPrompt:         DefaultSystemPrompt,
	}
}

// DefaultParseConfig returns the XML parsing defaults.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		DescriptionSources:   append([]string(nil), DefaultDescriptionSources...),
		MaxDescriptionLength: 50000,
		DataDir:              "data",
		Workers:              4,
	}
}

// DefaultCleanConfig returns the cleaning defaults.
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		MaxTextLength: 800,
		MinTextLength: 50,
		SmallSubset:   50,
		MediumSubset:  200,
	}
}
