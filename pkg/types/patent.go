// Copyright ktanaka, 2026. All rights reserved.

package types

// Claim is a single claim from the 特許請求の範囲 block of a publication.
type Claim struct {
	// Number is the claim number as printed (e.g. "1").
	Number string `json:"claim_number" yaml:"claim_number"`

	// Text is the cleaned claim text.
	Text string `json:"claim_text" yaml:"claim_text"`
}

// Patent holds the sections extracted from one ST96 XML publication.
type Patent struct {
	// PublicationNumber identifies the publication (e.g. "7654321").
	PublicationNumber string `json:"patent_id" yaml:"patent_id"`

	// Title is the 発明の名称.
	Title string `json:"title" yaml:"title"`

	// PublicationDate and FilingDate are kept as printed (YYYYMMDD or empty).
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	FilingDate      string `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`

	Abstract       string `json:"abstract" yaml:"abstract"`
	TechnicalField string `json:"technical_field" yaml:"technical_field"`
	BackgroundArt  string `json:"background_art" yaml:"background_art"`
	Summary        string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// DetailedDescription is the embodiment text selected from the first
	// available source tag, with 【dddd】 paragraph markers preserved.
	DetailedDescription string `json:"detailed_description" yaml:"detailed_description"`

	// DescriptionSource names the tag the description came from
	// (e.g. "EmbodimentDescription"), empty when none was found.
	DescriptionSource string `json:"description_source,omitempty" yaml:"description_source,omitempty"`

	Claims []Claim `json:"claims" yaml:"claims"`

	Inventors          []string `json:"inventors,omitempty" yaml:"inventors,omitempty"`
	Applicants         []string `json:"applicants,omitempty" yaml:"applicants,omitempty"`
	IPCClassifications []string `json:"ipc_classification,omitempty" yaml:"ipc_classification,omitempty"`
	Citations          []string `json:"citations,omitempty" yaml:"citations,omitempty"`

	// SourceFile is the XML file the record was parsed from.
	SourceFile string `json:"xml_file_path,omitempty" yaml:"xml_file_path,omitempty"`
}

// SectionRecord is one flat (document, section, text) triple. The sections
// dataset is a JSON array of these; the pairing stage consumes them.
type SectionRecord struct {
	PatentID string `json:"patent_id" yaml:"patent_id"`
	Section  string `json:"section" yaml:"section"`
	Text     string `json:"text" yaml:"text"`
}

// Well-known section names emitted by the parser. The pairing stage treats
// section names as opaque strings; unknown names pass through untouched.
const (
	SectionTitle               = "title"
	SectionAbstract            = "abstract"
	SectionTechnicalField      = "technical_field"
	SectionBackgroundArt       = "background_art"
	SectionDetailedDescription = "detailed_description"
	SectionClaims              = "claims"
)
