package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/glyphforge/internal/ir"
)

// Build is one recorded build.
type Build struct {
	Seq           int64    `json:"seq"`
	BuildID       string   `json:"build_id"`
	Fingerprint   string   `json:"fingerprint"`
	FontName      string   `json:"font_name"`
	Icons         int      `json:"icons"`
	Categories    int      `json:"categories"`
	Uncategorized int      `json:"uncategorized"`
	Artifacts     []string `json:"artifacts"`
	ToolVersion   string   `json:"tool_version"`
	SchemaVersion string   `json:"schema_version"`
}

// RecordBuild appends b to the history and returns its seq and whether a
// new record was inserted.
//
// Uses ON CONFLICT(build_id) DO NOTHING for idempotency. If the build was
// already recorded, returns the existing seq and inserted=false. b.Seq is
// ignored.
func (s *Store) RecordBuild(ctx context.Context, b Build) (seq int64, inserted bool, err error) {
	artifacts, err := ir.MarshalCanonical(ir.StringArray(b.Artifacts))
	if err != nil {
		return 0, false, fmt.Errorf("record build: %w", err)
	}

	// Use a transaction to ensure atomicity of insert-or-select
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("record build: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO builds
		(build_id, fingerprint, font_name, icons, categories, uncategorized, artifacts, tool_version, schema_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(build_id) DO NOTHING
	`,
		b.BuildID,
		b.Fingerprint,
		b.FontName,
		b.Icons,
		b.Categories,
		b.Uncategorized,
		string(artifacts),
		b.ToolVersion,
		b.SchemaVersion,
	)
	if err != nil {
		return 0, false, fmt.Errorf("record build: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("record build: rows affected: %w", err)
	}

	if affected > 0 {
		seq, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("record build: last insert id: %w", err)
		}
		inserted = true
	} else {
		err = tx.QueryRowContext(ctx, `SELECT seq FROM builds WHERE build_id = ?`, b.BuildID).Scan(&seq)
		if err != nil {
			return 0, false, fmt.Errorf("record build: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("record build: commit: %w", err)
	}
	return seq, inserted, nil
}

// LatestBuild returns the most recently recorded build, if any.
func (s *Store) LatestBuild(ctx context.Context) (Build, bool, error) {
	row := s.db.QueryRowContext(ctx, selectBuild+` ORDER BY seq DESC LIMIT 1`)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, false, nil
	}
	if err != nil {
		return Build{}, false, fmt.Errorf("latest build: %w", err)
	}
	return b, true, nil
}

// ListBuilds returns recorded builds, newest first. limit <= 0 returns all.
//
// Returns an empty slice (not nil) if nothing was recorded.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]Build, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, selectBuild+` ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	builds := []Build{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}

const selectBuild = `
	SELECT seq, build_id, fingerprint, font_name, icons, categories, uncategorized, artifacts, tool_version, schema_version
	FROM builds`

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (Build, error) {
	var (
		b         Build
		artifacts string
	)
	err := row.Scan(
		&b.Seq,
		&b.BuildID,
		&b.Fingerprint,
		&b.FontName,
		&b.Icons,
		&b.Categories,
		&b.Uncategorized,
		&artifacts,
		&b.ToolVersion,
		&b.SchemaVersion,
	)
	if err != nil {
		return Build{}, err
	}
	if err := json.Unmarshal([]byte(artifacts), &b.Artifacts); err != nil {
		return Build{}, fmt.Errorf("decode artifacts of build %s: %w", b.BuildID, err)
	}
	if b.Artifacts == nil {
		b.Artifacts = []string{}
	}
	return b, nil
}
