// Copyright ktanaka, 2026. All rights reserved.

package pair

import (
	"fmt"
	"io"

	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/pkg/types"
)

// Run executes the full pairing pass over flat section records: group,
// select, build. Progress and the outcome summary go to w; the returned
// result is ready for WriteResult.
func Run(records []types.SectionRecord, cfg types.PairConfig, w io.Writer) types.PairResult {
	docs := Group(records, w)
	fmt.Fprintf(w, "grouped %d records into %d documents\n", len(records), len(docs))

	result := BuildPairs(docs, cfg)

	fmt.Fprintf(w, "pairing summary: %d paired, %d no claims, %d no implementation, %d too short (total: %d)\n",
		result.Stats.Success, result.Stats.NoClaims, result.Stats.NoImplementation,
		result.Stats.TooShort, result.Stats.Total())
	return result
}

// ReadSections loads a flat JSON array of section records.
func ReadSections(path string) ([]types.SectionRecord, error) {
	var records []types.SectionRecord
	if err := jsonio.ReadFile(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteResult writes the pairs-and-stats artifact atomically.
func WriteResult(path string, result types.PairResult) error {
	return jsonio.WriteFile(path, result)
}
