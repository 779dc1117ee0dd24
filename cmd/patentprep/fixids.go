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

var fixidsCmd = &cobra.Command{
	Use:   "fixids [sections.json]",
	Short: "Repair section records with missing patent IDs",
	Long: `Fixids scans a sections file for records with empty patent IDs, infers
document boundaries (a title or abstract record starts a new document), and
assigns deterministic content-derived IDs. The repaired file is written in
place unless --output is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFixIDs,
}

func init() {
	fixidsCmd.Flags().String("output", "", "output path (default: overwrite the input)")

	rootCmd.AddCommand(fixidsCmd)
}

func runFixIDs(cmd *cobra.Command, args []string) error {
	input := filepath.Join("data", "processed", "sections_dataset.json")
	if len(args) > 0 {
		input = args[0]
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = input
	}

	var records []types.SectionRecord
	if err := jsonio.ReadFile(input, &records); err != nil {
		return err
	}

	fixed, count := verify.FixIDs(records, os.Stdout)
	if count == 0 {
		fmt.Fprintln(os.Stdout, "no records needed repair")
		return nil
	}

	if err := jsonio.WriteFile(output, fixed); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "repaired %d record(s), wrote %s\n", count, output)
	return nil
}
