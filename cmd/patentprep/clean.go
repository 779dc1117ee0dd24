// Copyright ktanaka, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ktanaka/patentprep/internal/clean"
	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [files...]",
	Short: "Clean section records and write reduced subsets",
	Long: `Clean scrubs section-record JSON files of placeholder debris, normalizes
character widths, enforces length bounds, and drops records that end up too
short. For each input it writes cleaned_<name>.json plus small and medium
subsets under data/cleaned/, and a cleaning_stats.json summary.

Without arguments it cleans data/processed/sections_dataset.json.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("out-dir", "data/cleaned", "output directory for cleaned files")
	cleanCmd.Flags().Int("max-text-length", 0, "text cap in runes (0 = default)")
	cleanCmd.Flags().Int("min-text-length", 0, "drop records below this many runes (0 = default)")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{filepath.Join("data", "processed", "sections_dataset.json")}
	}

	defaults := types.DefaultCleanConfig()
	cfg := types.CleanConfig{
		MaxTextLength: intSetting(cmd, "max-text-length", "clean.max_text_length", defaults.MaxTextLength),
		MinTextLength: intSetting(cmd, "min-text-length", "clean.min_text_length", defaults.MinTextLength),
		SmallSubset:   defaults.SmallSubset,
		MediumSubset:  defaults.MediumSubset,
	}
	outDir := stringSetting(cmd, "out-dir", "clean.out_dir", "data/cleaned")

	allStats := make(map[string]clean.Stats, len(args))
	for _, path := range args {
		var records []types.SectionRecord
		if err := jsonio.ReadFile(path, &records); err != nil {
			return err
		}

		cleaned, stats := clean.Records(records, cfg)
		allStats[filepath.Base(path)] = stats

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outputs := map[string][]types.SectionRecord{
			fmt.Sprintf("cleaned_%s.json", name):        cleaned,
			fmt.Sprintf("cleaned_%s_small.json", name):  clean.Subset(cleaned, cfg.SmallSubset),
			fmt.Sprintf("cleaned_%s_medium.json", name): clean.Subset(cleaned, cfg.MediumSubset),
		}
		for file, recs := range outputs {
			if err := jsonio.WriteFile(filepath.Join(outDir, file), recs); err != nil {
				return err
			}
		}

		fmt.Fprintf(os.Stdout, "%s: kept %d/%d records (%.1f%%)\n",
			path, stats.Kept, stats.Input, stats.Retention()*100)
	}

	return jsonio.WriteFile(filepath.Join(outDir, "cleaning_stats.json"), allStats)
}
