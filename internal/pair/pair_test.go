// Copyright ktanaka, 2026. All rights reserved.

package pair

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktanaka/patentprep/pkg/types"
)

func TestRunEndToEnd(t *testing.T) {
	records := []types.SectionRecord{
		{PatentID: "JP1", Section: "claims", Text: longText(60)},
		{PatentID: "JP1", Section: "detailed_description", Text: longText(300)},
		{PatentID: "JP2", Section: "abstract", Text: longText(60)},
	}

	var log strings.Builder
	result := Run(records, testConfig(), &log)

	assert.Equal(t, types.PairStats{Success: 1, NoImplementation: 1}, result.Stats)
	assert.Contains(t, log.String(), "grouped 3 records into 2 documents")
	assert.Contains(t, log.String(), "pairing summary")
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	records := []types.SectionRecord{
		{PatentID: "JP1", Section: "claims", Text: longText(60)},
		{PatentID: "JP1", Section: "detailed_description", Text: longText(300)},
	}
	result := Run(records, testConfig(), io.Discard)

	out := filepath.Join(dir, "training_pairs.json")
	require.NoError(t, WriteResult(out, result))

	// The temp file must not survive a successful write.
	_, err := os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pairs"`)
	assert.Contains(t, string(data), `"stats"`)
	// Japanese text is written as-is, not \u-escaped.
	assert.Contains(t, string(data), "あ")
}

func TestRunIdempotent(t *testing.T) {
	records := []types.SectionRecord{
		{PatentID: "JP1", Section: "claims", Text: longText(60)},
		{PatentID: "JP1", Section: "detailed_description", Text: longText(300)},
	}

	first := Run(records, testConfig(), io.Discard)
	second := Run(records, testConfig(), io.Discard)
	assert.Equal(t, first, second)
}

func TestReadSectionsMissingFile(t *testing.T) {
	_, err := ReadSections(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
