// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/edunex/study-engine/pkg/types"
)

const cacheDBFile = "library.db"

// Cache persists the last good resource list in a local SQLite database,
// with an FTS5 index over titles and content for offline search.
type Cache struct {
	db         *sql.DB
	maxResults int
}

// OpenCache opens or creates the cache database at cacheDir/library.db,
// creating the schema if it does not exist.
func OpenCache(cfg types.LibraryConfig) (*Cache, error) {
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CacheDir, cacheDBFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	c := &Cache{db: db, maxResults: maxResults}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resources (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			primary_url TEXT,
			display_content TEXT,
			tags TEXT,
			uploader TEXT,
			uploaded_at TEXT,
			rating REAL,
			position INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resources_position ON resources(position)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := c.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='resources_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE resources_fts USING fts5(title, display_content, content=resources, content_rowid=rowid)`,
			`CREATE TRIGGER resources_ai AFTER INSERT ON resources BEGIN
				INSERT INTO resources_fts(rowid, title, display_content) VALUES (new.rowid, new.title, new.display_content);
			END`,
			`CREATE TRIGGER resources_ad AFTER DELETE ON resources BEGIN
				INSERT INTO resources_fts(resources_fts, rowid, title, display_content) VALUES('delete', old.rowid, old.title, old.display_content);
			END`,
			`CREATE TRIGGER resources_au AFTER UPDATE ON resources BEGIN
				INSERT INTO resources_fts(resources_fts, rowid, title, display_content) VALUES('delete', old.rowid, old.title, old.display_content);
				INSERT INTO resources_fts(rowid, title, display_content) VALUES (new.rowid, new.title, new.display_content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := c.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// ReplaceAll swaps the cached list wholesale for the given one, preserving
// order. The cache mirrors the last authoritative fetch; there is no
// incremental patching.
func (c *Cache) ReplaceAll(ctx context.Context, resources []types.Resource) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resources`); err != nil {
		return fmt.Errorf("clearing cached resources: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO resources
		(id, title, category, primary_url, display_content, tags, uploader, uploaded_at, rating, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range resources {
		tags, err := json.Marshal(r.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags for %s: %w", r.ID, err)
		}
		var uploadedAt string
		if !r.UploadedAt.IsZero() {
			uploadedAt = r.UploadedAt.Format(time.RFC3339Nano)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Title, string(r.Category), r.PrimaryURL, r.DisplayContent,
			string(tags), r.Uploader, uploadedAt, r.Rating, i,
		); err != nil {
			return fmt.Errorf("inserting resource %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Resources returns the cached list in its original order.
func (c *Cache) Resources(ctx context.Context) ([]types.Resource, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, title, category, primary_url,
		display_content, tags, uploader, uploaded_at, rating
		FROM resources ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying cached resources: %w", err)
	}
	defer rows.Close()

	return scanResources(rows)
}

// Delete removes one cached resource by id. Deleting an id that is not
// cached is not an error.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting cached resource %s: %w", id, err)
	}
	return nil
}

// Search runs a full-text query over cached titles and content, ranked by
// relevance. max limits results; zero uses the cache default.
func (c *Cache) Search(ctx context.Context, query string, max int) ([]types.Resource, error) {
	if max <= 0 {
		max = c.maxResults
	}

	rows, err := c.db.QueryContext(ctx, `SELECT r.id, r.title, r.category, r.primary_url,
		r.display_content, r.tags, r.uploader, r.uploaded_at, r.rating
		FROM resources_fts
		JOIN resources r ON r.rowid = resources_fts.rowid
		WHERE resources_fts MATCH ?
		ORDER BY resources_fts.rank
		LIMIT ?`, ftsQuote(query), max)
	if err != nil {
		return nil, fmt.Errorf("searching cache: %w", err)
	}
	defer rows.Close()

	return scanResources(rows)
}

// ftsQuote wraps the user's query in FTS5 phrase quotes so punctuation in
// it is not parsed as query syntax.
func ftsQuote(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}

func scanResources(rows *sql.Rows) ([]types.Resource, error) {
	var out []types.Resource
	for rows.Next() {
		var (
			r          types.Resource
			category   string
			tagsJSON   string
			uploadedAt string
		)
		if err := rows.Scan(&r.ID, &r.Title, &category, &r.PrimaryURL,
			&r.DisplayContent, &tagsJSON, &r.Uploader, &uploadedAt, &r.Rating); err != nil {
			return nil, fmt.Errorf("scanning resource row: %w", err)
		}
		r.Category = types.Category(category)

		r.Tags = []string{}
		if tagsJSON != "" {
			if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
				return nil, fmt.Errorf("decoding tags for %s: %w", r.ID, err)
			}
			if r.Tags == nil {
				r.Tags = []string{}
			}
		}
		if uploadedAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, uploadedAt); err == nil {
				r.UploadedAt = t
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
