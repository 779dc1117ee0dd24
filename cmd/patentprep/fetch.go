// Copyright ktanaka, 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ktanaka/patentprep/internal/fetch"
	"github.com/ktanaka/patentprep/internal/secrets"
	"github.com/ktanaka/patentprep/pkg/types"
)

const defaultUserAgent = "patentprep/0.1"

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the instruction dataset from Hugging Face",
	Long: `Fetch pages through the Hugging Face datasets server and writes the rows
to data/raw/alpaca_dataset.json. Rate-limited requests are retried with
backoff. A Hugging Face token from .secrets/hf-token or HF_TOKEN is sent
when available.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("dataset", "", "dataset identifier (default yahma/alpaca-cleaned)")
	fetchCmd.Flags().String("split", "", "dataset split (default train)")
	fetchCmd.Flags().Int("max-rows", 0, "maximum rows to download (0 = all)")
	fetchCmd.Flags().String("raw-dir", "", "output directory (default data/raw)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Dataset:  stringSetting(cmd, "dataset", "fetch.dataset", "yahma/alpaca-cleaned"),
		Config:   "default",
		Split:    stringSetting(cmd, "split", "fetch.split", "train"),
		MaxRows:  intSetting(cmd, "max-rows", "fetch.max_rows", 0),
		PageSize: 100,
		Token:    secrets.Get(loadedSecrets, secrets.HFToken, "HF_TOKEN"),
		RawDir:   stringSetting(cmd, "raw-dir", "fetch.raw_dir", "data/raw"),
	}

	_, err := fetch.Download(context.Background(), cfg, os.Stdout)
	return err
}
