// Copyright ktanaka, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ktanaka/patentprep/internal/dataset"
	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/internal/pair"
	"github.com/ktanaka/patentprep/pkg/types"
)

var pairCmd = &cobra.Command{
	Use:   "pair [input.json]",
	Short: "Build instruction/response pairs from section records",
	Long: `Pair groups section records by patent ID, selects claims and embodiment
text through configurable priority lists, normalizes and length-limits both,
and writes the resulting training pairs with per-document outcome statistics.
A pre-rendered chat-text dataset is written alongside.

Defaults: reads data/processed/sections_dataset.json, writes
data/processed/training_pairs.json and chat_text.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPair,
}

func init() {
	pairCmd.Flags().String("output", "", "output path for the pair dataset")
	pairCmd.Flags().Int("min-claims-length", 0, "minimum claims length in runes (0 = default)")
	pairCmd.Flags().Int("min-description-length", 0, "minimum description length in runes (0 = default)")
	pairCmd.Flags().Int("max-claims-length", 0, "claims cap in runes (0 = default)")
	pairCmd.Flags().Int("max-description-length", 0, "description cap in runes (0 = default)")
	pairCmd.Flags().Bool("fail-on-empty", false, "exit nonzero when no pairs are produced")

	rootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	input := filepath.Join("data", "processed", "sections_dataset.json")
	if len(args) > 0 {
		input = args[0]
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(input), "training_pairs.json")
	}

	cfg := pairConfigFromFlags(cmd)

	records, err := pair.ReadSections(input)
	if err != nil {
		return err
	}

	result := pair.Run(records, cfg, os.Stdout)
	if err := pair.WriteResult(output, result); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %d pairs to %s\n", len(result.Pairs), output)

	chatPath := filepath.Join(filepath.Dir(output), "chat_text.json")
	chatRecords := dataset.ChatTextRecords(result.Pairs, cfg.SystemPrompt)
	if err := jsonio.WriteFile(chatPath, chatRecords); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %d chat records to %s\n", len(chatRecords), chatPath)

	failOnEmpty, _ := cmd.Flags().GetBool("fail-on-empty")
	if failOnEmpty && len(result.Pairs) == 0 {
		return fmt.Errorf("no pairs produced from %d records", len(records))
	}
	return nil
}

// pairConfigFromFlags resolves the pairing thresholds from flags, config
// file, and defaults. Priority lists come from the config file only.
func pairConfigFromFlags(cmd *cobra.Command) types.PairConfig {
	cfg := types.DefaultPairConfig()

	cfg.MinClaimsLength = intSetting(cmd, "min-claims-length", "pair.min_claims_length", cfg.MinClaimsLength)
	cfg.MinDescriptionLength = intSetting(cmd, "min-description-length", "pair.min_description_length", cfg.MinDescriptionLength)
	cfg.MaxClaimsLength = intSetting(cmd, "max-claims-length", "pair.max_claims_length", cfg.MaxClaimsLength)
	cfg.MaxDescriptionLength = intSetting(cmd, "max-description-length", "pair.max_description_length", cfg.MaxDescriptionLength)
	if viper.IsSet("pair.system_prompt") {
		cfg.SystemPrompt = viper.GetString("pair.system_prompt")
	}

	if lists := viper.GetStringSlice("pair.claims_priority"); len(lists) > 0 {
		cfg.ClaimsPriority = lists
	}
	if lists := viper.GetStringSlice("pair.description_priority"); len(lists) > 0 {
		cfg.DescriptionPriority = lists
	}
	return cfg
}
