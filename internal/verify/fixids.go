// Copyright ktanaka, 2026. All rights reserved.

package verify

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/ktanaka/patentprep/pkg/types"
)

// FixIDs assigns deterministic IDs to section records with empty patent
// IDs. Consecutive empty-ID records are treated as one document; a title
// or abstract record starts a new document when one is already in
// progress, since those sections open a publication. The assigned ID is
// derived from the group's text content, so reruns produce the same IDs.
func FixIDs(records []types.SectionRecord, w io.Writer) ([]types.SectionRecord, int) {
	out := make([]types.SectionRecord, len(records))
	copy(out, records)

	fixed := 0
	var group []int
	flush := func() {
		if len(group) == 0 {
			return
		}
		id := contentID(out, group)
		for _, i := range group {
			out[i].PatentID = id
		}
		fmt.Fprintf(w, "assigned %s to %d sections\n", id, len(group))
		fixed += len(group)
		group = group[:0]
	}

	for i, rec := range out {
		if rec.PatentID != "" {
			flush()
			continue
		}
		if opensDocument(rec.Section) && len(group) > 0 {
			flush()
		}
		group = append(group, i)
	}
	flush()

	return out, fixed
}

func opensDocument(section string) bool {
	return section == types.SectionTitle || section == types.SectionAbstract
}

// contentID hashes the group's section names and text into a JP-prefixed
// six-digit ID.
func contentID(records []types.SectionRecord, group []int) string {
	h := fnv.New32a()
	for _, i := range group {
		h.Write([]byte(records[i].Section))
		h.Write([]byte{0})
		h.Write([]byte(records[i].Text))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("JP%06d", h.Sum32()%1000000)
}
