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

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordList(t *testing.T) {
	ctx := context.Background()
	fn := filepath.Join(t.TempDir(), "sub", "history.db")
	s, err := Open(ctx, fn)
	require.NoError(t, err)
	defer s.Close()

	t0 := time.Unix(1700000000, 0)
	ok := Entry{
		ID:           uuid.NewString(),
		URL:          "https://example.com",
		AppName:      "example-com",
		ProjectDir:   "/tmp/example-com-app",
		ArtifactPath: "/tmp/example-com-app/x.msi",
		State:        "Succeeded",
		StartedAt:    t0,
		FinishedAt:   t0.Add(time.Minute),
	}
	failed := Entry{
		ID:           uuid.NewString(),
		URL:          "ftp://example.com",
		State:        "Failed",
		ErrorKind:    "InvalidUrl",
		ErrorMessage: "unsupported scheme",
		StartedAt:    t0.Add(time.Hour),
		FinishedAt:   t0.Add(time.Hour),
	}
	require.NoError(t, s.Record(ctx, ok))
	require.NoError(t, s.Record(ctx, failed))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, failed.ID, entries[0].ID)
	assert.Equal(t, "InvalidUrl", entries[0].ErrorKind)
	assert.Equal(t, ok.ID, entries[1].ID)
	assert.Equal(t, ok.ArtifactPath, entries[1].ArtifactPath)
	assert.True(t, ok.StartedAt.Equal(entries[1].StartedAt))

	entries, err = s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, failed.ID, entries[0].ID)

	// Recording the same ID again replaces the entry.
	ok.State = "Failed"
	require.NoError(t, s.Record(ctx, ok))
	entries, err = s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Failed", entries[1].State)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	fn := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(ctx, fn)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, Entry{ID: "a", URL: "https://a.com", State: "Succeeded"}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, fn)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}
