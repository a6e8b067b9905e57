//
// Copyright (c) 2026 The webwrap Authors
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package history keeps a record of past conversions in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Entry is one finished conversion.
type Entry struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	AppName      string    `json:"app_name,omitempty"`
	ProjectDir   string    `json:"project_dir,omitempty"`
	ArtifactPath string    `json:"artifact_path,omitempty"`
	State        string    `json:"state"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at filename and applies
// migrations.
func Open(ctx context.Context, filename string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, errors.Trace(err)
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s", filename)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, errors.Annotatef(err, "configuring %s", filename)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, errors.Trace(err)
	}
	glog.V(1).Infof("history database: %s", filename)
	return s, nil
}

// migrate runs the embedded migrations in file name order. Every migration
// must be safe to apply more than once.
func (s *Store) migrate(ctx context.Context) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return errors.Trace(err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		raw, err := migrationFS.ReadFile(path.Join("migrations", e.Name()))
		if err != nil {
			return errors.Trace(err)
		}
		if _, err := s.db.ExecContext(ctx, string(raw)); err != nil {
			return errors.Annotatef(err, "migration %s", e.Name())
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record saves e, replacing an earlier entry with the same ID.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO conversions(
			id, url, app_name, project_dir, artifact_path, state,
			error_kind, error_message, started_at, finished_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.URL, e.AppName, e.ProjectDir, e.ArtifactPath, e.State,
		e.ErrorKind, e.ErrorMessage, e.StartedAt.UnixMilli(), e.FinishedAt.UnixMilli())
	if err != nil {
		return errors.Annotatef(err, "recording conversion %s", e.ID)
	}
	return nil
}

// List returns up to limit most recent entries, newest first. A limit of
// zero or less means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, app_name, project_dir, artifact_path, state,
			error_kind, error_message, started_at, finished_at
		FROM conversions
		ORDER BY started_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		if err := rows.Scan(&e.ID, &e.URL, &e.AppName, &e.ProjectDir, &e.ArtifactPath, &e.State,
			&e.ErrorKind, &e.ErrorMessage, &started, &finished); err != nil {
			return nil, errors.Trace(err)
		}
		e.StartedAt = time.UnixMilli(started)
		e.FinishedAt = time.UnixMilli(finished)
		res = append(res, e)
	}
	return res, errors.Trace(rows.Err())
}
