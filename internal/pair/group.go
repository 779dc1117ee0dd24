// Copyright ktanaka, 2026. All rights reserved.

// Package pair turns flat section records into instruction/response
// training pairs: group by publication, select claims and embodiment text
// by priority fallback, normalize, enforce length thresholds, and account
// for every document in the rejection statistics.
package pair

import (
	"fmt"
	"io"

	"github.com/ktanaka/patentprep/pkg/types"
)

// unknownPatentID buckets records that arrive without a patent_id. They
// still form a document so the statistics account for them.
const unknownPatentID = "unknown"

// Document is one publication's sections, keyed by section name.
type Document struct {
	PatentID string
	Sections map[string]string
}

// Group folds section records into documents. Later records for the same
// (patent_id, section) overwrite earlier ones; unknown section names are
// retained verbatim. Document order follows first appearance in the input
// so repeated runs produce identical output. Records missing a section
// name are malformed: they are skipped with a warning and never abort the
// run.
func Group(records []types.SectionRecord, w io.Writer) []Document {
	byID := make(map[string]*Document)
	var docs []*Document

	for i, rec := range records {
		if rec.Section == "" {
			fmt.Fprintf(w, "warning: record %d has no section name, skipped\n", i)
			continue
		}

		id := rec.PatentID
		if id == "" {
			id = unknownPatentID
		}

		doc, ok := byID[id]
		if !ok {
			doc = &Document{PatentID: id, Sections: make(map[string]string)}
			byID[id] = doc
			docs = append(docs, doc)
		}
		doc.Sections[rec.Section] = rec.Text
	}

	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = *d
	}
	return out
}
