// Copyright ktanaka, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ktanaka/patentprep/internal/dataset"
	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/pkg/types"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Derive paragraph-unit and conversation datasets",
	Long: `Dataset rewrites the messages-form training records produced by parse
into alternative shapes: paragraph-unit samples (one sample per embodiment
paragraph with prior paragraphs as context) or multi-turn conversations
(the assistant produces one paragraph per turn).`,
}

var datasetParagraphsCmd = &cobra.Command{
	Use:   "paragraphs [chatml.json]",
	Short: "Build the paragraph-unit dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDataset(cmd, args, "paragraph_training.json", dataset.ParagraphRecords)
	},
}

var datasetConversationCmd = &cobra.Command{
	Use:   "conversation [chatml.json]",
	Short: "Build the multi-turn conversation dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDataset(cmd, args, "conversation_training.json", dataset.ConversationRecords)
	},
}

func init() {
	datasetCmd.PersistentFlags().String("output", "", "output path (default: alongside the input)")

	datasetCmd.AddCommand(datasetParagraphsCmd)
	datasetCmd.AddCommand(datasetConversationCmd)
	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, args []string, defaultName string, derive func([]types.ChatRecord) []types.ChatRecord) error {
	input := filepath.Join("data", "processed", dataset.ChatMLTrainingFile)
	if len(args) > 0 {
		input = args[0]
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(input), defaultName)
	}

	var records []types.ChatRecord
	if err := jsonio.ReadFile(input, &records); err != nil {
		return err
	}

	derived := derive(records)
	if err := jsonio.WriteFile(output, derived); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "derived %d records from %d inputs, wrote %s\n",
		len(derived), len(records), output)
	return nil
}
