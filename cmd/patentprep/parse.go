// Copyright ktanaka, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ktanaka/patentprep/internal/dataset"
	"github.com/ktanaka/patentprep/internal/patentxml"
	"github.com/ktanaka/patentprep/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [xml-dir]",
	Short: "Parse ST96 patent XML into dataset artifacts",
	Long: `Parse discovers patent XML files under the given directory (recursively),
extracts bibliographic data, claims, and embodiment descriptions, and writes
the dataset artifacts under data/processed/: complete_dataset.json,
training_dataset.json, sections_dataset.json, chatml_training.json, and
dataset_stats.json. Malformed files are reported and skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("data-dir", "data", "base data directory for output")
	parseCmd.Flags().Int("workers", 0, "concurrent XML parsers (0 = default)")
	parseCmd.Flags().Int("max-description-length", 0, "embodiment text cap in runes (0 = default)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	xmlDir := "."
	if len(args) > 0 {
		xmlDir = args[0]
	}

	cfg := types.DefaultParseConfig()
	cfg.DataDir = stringSetting(cmd, "data-dir", "parse.data_dir", cfg.DataDir)
	cfg.Workers = intSetting(cmd, "workers", "parse.workers", cfg.Workers)
	cfg.MaxDescriptionLength = intSetting(cmd, "max-description-length", "parse.max_description_length", cfg.MaxDescriptionLength)

	results, err := patentxml.ParseDir(context.Background(), xmlDir, cfg, os.Stdout)
	if err != nil {
		return err
	}

	patents := patentxml.Patents(results)
	if len(patents) == 0 {
		return fmt.Errorf("no patent documents parsed from %s", xmlDir)
	}
	if skipped := patentxml.CountSkipped(results); skipped > 0 {
		fmt.Fprintf(os.Stdout, "skipped %d malformed file(s)\n", skipped)
	}

	outDir := filepath.Join(cfg.DataDir, "processed")
	if _, err := dataset.WriteArtifacts(patents, outDir, os.Stdout); err != nil {
		return err
	}
	return nil
}
