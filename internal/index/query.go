// Copyright ktanaka, 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Section filters by section name (e.g. "claims").
	Section string

	// PatentID filters by publication.
	PatentID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Section == "" && q.PatentID == ""
}

// QueryResult is one matched section with its document title.
type QueryResult struct {
	PatentID string `json:"patent_id" yaml:"patent_id"`
	Section  string `json:"section" yaml:"section"`
	Text     string `json:"text" yaml:"text"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Retrieve queries the index with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by patent ID and section.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT sec.patent_id, sec.section, sec.text, d.title
			FROM sections_fts
			JOIN sections sec ON sec.rowid = sections_fts.rowid
			LEFT JOIN documents d ON sec.patent_id = d.id
			WHERE sections_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT sec.patent_id, sec.section, sec.text, d.title
			FROM sections sec
			LEFT JOIN documents d ON sec.patent_id = d.id
			WHERE 1=1`)
	}

	if opts.Section != "" {
		qb.WriteString(` AND sec.section = ?`)
		args = append(args, opts.Section)
	}
	if opts.PatentID != "" {
		qb.WriteString(` AND sec.patent_id = ?`)
		args = append(args, opts.PatentID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY sections_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY sec.patent_id, sec.section`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr    QueryResult
			title sql.NullString
		)
		if err := rows.Scan(&qr.PatentID, &qr.Section, &qr.Text, &title); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if title.Valid {
			qr.Title = title.String
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
