// Copyright ktanaka, 2026. All rights reserved.

// Package fetch downloads instruction-tuning rows from the Hugging Face
// datasets server and stores them under the raw-data directory.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/ktanaka/patentprep/internal/httputil"
	"github.com/ktanaka/patentprep/internal/jsonio"
	"github.com/ktanaka/patentprep/pkg/types"
)

// datasetsServerBase is the Hugging Face datasets-server rows endpoint.
// Declared as a var so tests can substitute an httptest server.
var datasetsServerBase = "https://datasets-server.huggingface.co/rows"

// RawDatasetFile is the file name rows are written to under the raw
// directory.
const RawDatasetFile = "alpaca_dataset.json"

// rowsResponse mirrors the datasets-server /rows payload.
type rowsResponse struct {
	Rows []struct {
		RowIdx int             `json:"row_idx"`
		Row    json.RawMessage `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Rows pages through the datasets-server rows endpoint until maxRows rows
// are collected or the dataset is exhausted. maxRows <= 0 means all rows.
// Requests that hit the rate limit are retried with backoff.
func Rows(ctx context.Context, client *http.Client, cfg types.FetchConfig, w io.Writer) ([]types.AlpacaRow, error) {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var rows []types.AlpacaRow
	for offset := 0; ; offset += pageSize {
		if cfg.MaxRows > 0 && len(rows) >= cfg.MaxRows {
			break
		}

		page, total, err := fetchPage(ctx, client, cfg, offset, pageSize, w)
		if err != nil {
			return nil, fmt.Errorf("fetching rows at offset %d: %w", offset, err)
		}
		rows = append(rows, page...)

		fmt.Fprintf(w, "fetched %d/%d rows\n", len(rows), total)
		if len(page) == 0 || offset+pageSize >= total {
			break
		}
	}

	if cfg.MaxRows > 0 && len(rows) > cfg.MaxRows {
		rows = rows[:cfg.MaxRows]
	}
	return rows, nil
}

// fetchPage requests one page of rows and decodes them.
func fetchPage(ctx context.Context, client *http.Client, cfg types.FetchConfig, offset, length int, w io.Writer) ([]types.AlpacaRow, int, error) {
	params := url.Values{
		"dataset": {cfg.Dataset},
		"config":  {cfg.Config},
		"split":   {cfg.Split},
		"offset":  {strconv.Itoa(offset)},
		"length":  {strconv.Itoa(length)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, datasetsServerBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0, w)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("datasets server returned HTTP %d", resp.StatusCode)
	}

	var rr rowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, 0, fmt.Errorf("parsing rows response: %w", err)
	}

	rows := make([]types.AlpacaRow, 0, len(rr.Rows))
	for _, r := range rr.Rows {
		var row types.AlpacaRow
		if err := json.Unmarshal(r.Row, &row); err != nil {
			return nil, 0, fmt.Errorf("parsing row %d: %w", r.RowIdx, err)
		}
		rows = append(rows, row)
	}
	return rows, rr.NumRowsTotal, nil
}

// Download fetches the configured dataset and writes it to the raw data
// directory, returning the output path.
func Download(ctx context.Context, cfg types.FetchConfig, w io.Writer) (string, error) {
	client := httputil.NewClient(cfg.HTTPConfig)

	rows, err := Rows(ctx, client, cfg, w)
	if err != nil {
		return "", err
	}

	path := filepath.Join(cfg.RawDir, RawDatasetFile)
	if err := jsonio.WriteFile(path, rows); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(w, "wrote %d rows to %s\n", len(rows), path)
	return path, nil
}
