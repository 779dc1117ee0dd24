// Copyright ktanaka, 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/pkg/types"
)

// Artifact file names emitted under the processed-data directory.
const (
	CompleteDatasetFile = "complete_dataset.json"
	TrainingDatasetFile = "training_dataset.json"
	SectionsDatasetFile = "sections_dataset.json"
	ChatMLTrainingFile  = "chatml_training.json"
	ManifestFile        = "dataset_stats.json"
)

// WriteArtifacts emits the parse stage's output files and returns the run
// manifest that was written alongside them.
func WriteArtifacts(patents []types.Patent, dir string, w io.Writer) (types.DatasetManifest, error) {
	sections := BuildSections(patents)
	compact := BuildCompact(patents)
	chat := ChatRecords(patents)

	files := map[string]any{
		CompleteDatasetFile: patents,
		TrainingDatasetFile: compact,
		SectionsDatasetFile: sections,
		ChatMLTrainingFile:  chat,
	}
	for name, payload := range files {
		path := filepath.Join(dir, name)
		if err := jsonio.WriteFile(path, payload); err != nil {
			return types.DatasetManifest{}, fmt.Errorf("writing %s: %w", name, err)
		}
	}

	totalClaims := 0
	for _, p := range patents {
		totalClaims += len(p.Claims)
	}

	manifest := types.DatasetManifest{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		TotalPatents:  len(patents),
		TotalClaims:   totalClaims,
		TotalSections: len(sections),
		FileDescriptions: map[string]string{
			CompleteDatasetFile: "all parsed publication fields",
			TrainingDatasetFile: "compact records for training pipelines",
			SectionsDatasetFile: "flat per-section records",
			ChatMLTrainingFile:  "messages-form claims-to-embodiment samples",
		},
	}
	if err := jsonio.WriteFile(filepath.Join(dir, ManifestFile), manifest); err != nil {
		return types.DatasetManifest{}, fmt.Errorf("writing %s: %w", ManifestFile, err)
	}

	fmt.Fprintf(w, "wrote %d publications, %d sections, %d chat records to %s\n",
		len(patents), len(sections), len(chat), dir)
	return manifest, nil
}
