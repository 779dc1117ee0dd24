// Copyright ktanaka, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/internal/verify"
	"github.com/ktanaka/patentprep/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [sections.json] [pairs.json]",
	Short: "Check dataset consistency",
	Long: `Verify runs consistency checks over the emitted datasets: the pair
statistics must account for every input document, each pair must satisfy
the configured minimum lengths, no patent may contribute two pairs, and
claims/description sections of one patent must share vocabulary.

Defaults: data/processed/sections_dataset.json and training_pairs.json.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	sectionsPath := filepath.Join("data", "processed", "sections_dataset.json")
	pairsPath := filepath.Join("data", "processed", "training_pairs.json")
	if len(args) > 0 {
		sectionsPath = args[0]
	}
	if len(args) > 1 {
		pairsPath = args[1]
	}

	var records []types.SectionRecord
	if err := jsonio.ReadFile(sectionsPath, &records); err != nil {
		return err
	}

	sectionReport := verify.Sections(records, os.Stdout)

	var result types.PairResult
	pairErr := jsonio.ReadFile(pairsPath, &result)
	if pairErr != nil {
		fmt.Fprintf(os.Stdout, "skipping pair checks: %v\n", pairErr)
		if !sectionReport.OK() {
			return fmt.Errorf("%d consistency issue(s) found", len(sectionReport.Issues))
		}
		return nil
	}

	pairReport := verify.Pairs(records, result, types.DefaultPairConfig(), os.Stdout)

	issues := len(sectionReport.Issues) + len(pairReport.Issues)
	if issues > 0 {
		return fmt.Errorf("%d consistency issue(s) found", issues)
	}
	return nil
}
