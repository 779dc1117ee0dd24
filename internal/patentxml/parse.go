// Copyright ktanaka, 2026. All rights reserved.

// Package patentxml parses Japan Patent Office ST96 XML publications into
// section-level records for dataset preparation.
package patentxml

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ktanaka/patentprep/pkg/types"
)

// ST96 namespace URIs (JPO national layer plus the WIPO common layer).
const (
	nsJPPat = "http://www.jpo.go.jp/standards/XMLSchema/ST96/JPPatent"
	nsJPCom = "http://www.jpo.go.jp/standards/XMLSchema/ST96/JPCommon"
	nsCom   = "http://www.wipo.int/standards/XMLSchema/ST96/Common"
	nsPat   = "http://www.wipo.int/standards/XMLSchema/ST96/Patent"
)

// descriptionSourceTags maps configuration names to the namespace and local
// name of the embodiment source element.
var descriptionSourceTags = map[string]xml.Name{
	"EmbodimentDescription": {Space: nsPat, Local: "EmbodimentDescription"},
	"DetailedDescription":   {Space: nsPat, Local: "DetailedDescription"},
	"BestMode":              {Space: nsPat, Local: "BestMode"},
	"InventionMode":         {Space: nsJPPat, Local: "InventionMode"},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// node is a generic XML tree. ST96 element structure varies between
// publication kinds, so the parser walks a tree instead of binding a
// rigid schema.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []node     `xml:",any"`
}

// ParseFile parses one ST96 XML publication. Extraction is best-effort:
// missing sections yield empty fields, never an error. Only unreadable or
// unparseable XML fails.
func ParseFile(path string, cfg types.ParseConfig) (types.Patent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Patent{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return types.Patent{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	p := types.Patent{
		PublicationNumber: elementText(&root, nsPat, "PublicationNumber"),
		PublicationDate:   elementText(&root, nsCom, "PublicationDate"),
		FilingDate:        elementText(&root, nsPat, "FilingDate"),
		Title:             elementText(&root, nsPat, "InventionTitle"),
		Abstract:          elementText(&root, nsPat, "Abstract"),
		TechnicalField:    elementText(&root, nsPat, "TechnicalField"),
		BackgroundArt:     elementText(&root, nsPat, "BackgroundArt"),
		Summary:           elementText(&root, nsPat, "Summary"),
		Claims:            extractClaims(&root),
		SourceFile:        path,
	}

	p.DetailedDescription, p.DescriptionSource = extractDescription(&root, cfg)

	for _, inv := range findAll(&root, nsJPPat, "Inventor") {
		if name := elementText(inv, nsCom, "EntityName"); name != "" {
			p.Inventors = append(p.Inventors, name)
		}
	}
	for _, app := range findAll(&root, nsJPPat, "Applicant") {
		if name := elementText(app, nsCom, "EntityName"); name != "" {
			p.Applicants = append(p.Applicants, name)
		}
	}
	for _, c := range findAll(&root, nsPat, "MainClassification") {
		if t := cleanText(flattenText(c)); t != "" {
			p.IPCClassifications = append(p.IPCClassifications, t)
		}
	}
	for _, c := range findAll(&root, nsCom, "PatentCitationText") {
		if t := cleanText(flattenText(c)); t != "" {
			p.Citations = append(p.Citations, t)
		}
	}

	return p, nil
}

// extractClaims collects 特許請求の範囲 entries in document order.
func extractClaims(root *node) []types.Claim {
	claimsElem := findFirst(root, nsPat, "Claims")
	if claimsElem == nil {
		return nil
	}

	var claims []types.Claim
	for _, claim := range findAll(claimsElem, nsPat, "Claim") {
		textElem := findFirst(claim, nsPat, "ClaimText")
		if textElem == nil {
			continue
		}
		claims = append(claims, types.Claim{
			Number: cleanText(flattenText(findFirst(claim, nsPat, "ClaimNumber"))),
			Text:   cleanText(flattenText(textElem)),
		})
	}
	return claims
}

// extractDescription tries the configured source tags in order and returns
// the first non-empty embodiment text with 【dddd】 paragraph markers
// preserved, capped at cfg.MaxDescriptionLength runes.
func extractDescription(root *node, cfg types.ParseConfig) (text, source string) {
	sources := cfg.DescriptionSources
	if len(sources) == 0 {
		sources = types.DefaultDescriptionSources
	}

	for _, name := range sources {
		tag, ok := descriptionSourceTags[name]
		if !ok {
			continue
		}
		elem := findFirst(root, tag.Space, tag.Local)
		if elem == nil {
			continue
		}
		t := textWithParagraphNumbers(elem)
		if t == "" {
			continue
		}
		if max := cfg.MaxDescriptionLength; max > 3 {
			if runes := []rune(t); len(runes) > max {
				t = string(runes[:max-3]) + "..."
			}
		}
		return t, name
	}
	return "", ""
}

// textWithParagraphNumbers extracts an element's text, prefixing each P
// child with its 【dddd】 paragraph number so downstream stages can split
// on paragraph boundaries. Non-P children are recursed into.
func textWithParagraphNumbers(n *node) string {
	if n == nil {
		return ""
	}

	var parts []string
	if t := strings.TrimSpace(n.Text); t != "" {
		parts = append(parts, t)
	}

	for i := range n.Nodes {
		child := &n.Nodes[i]
		if child.XMLName.Local == "P" {
			text := cleanText(flattenText(child))
			if text == "" {
				continue
			}
			if num := attrValue(child, "pNumber"); num != "" {
				parts = append(parts, "【"+num+"】\n"+text)
			} else {
				parts = append(parts, text)
			}
			continue
		}
		if t := textWithParagraphNumbers(child); t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, "\n\n")
}

// elementText finds the first matching element and returns its cleaned
// flattened text, or "" when absent.
func elementText(root *node, space, local string) string {
	return cleanText(flattenText(findFirst(root, space, local)))
}

// flattenText concatenates all character data under n, depth-first.
func flattenText(n *node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for i := range n.Nodes {
		b.WriteString(flattenText(&n.Nodes[i]))
	}
	return b.String()
}

// cleanText normalizes whitespace in text pulled out of XML.
func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// findFirst returns the first descendant (or n itself) matching the
// namespace and local name, depth-first.
func findFirst(n *node, space, local string) *node {
	if n == nil {
		return nil
	}
	if n.XMLName.Space == space && n.XMLName.Local == local {
		return n
	}
	for i := range n.Nodes {
		if found := findFirst(&n.Nodes[i], space, local); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every matching descendant in document order. Matching
// subtrees are not re-entered, so nested repeats count once.
func findAll(n *node, space, local string) []*node {
	if n == nil {
		return nil
	}
	if n.XMLName.Space == space && n.XMLName.Local == local {
		return []*node{n}
	}
	var out []*node
	for i := range n.Nodes {
		out = append(out, findAll(&n.Nodes[i], space, local)...)
	}
	return out
}

// attrValue returns the named attribute regardless of namespace prefix.
func attrValue(n *node, local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}
