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

package ourio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileIfDifferent(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sub", "config.yml")

	changed, err := WriteFileIfDifferent(fn, []byte("a: 1\n"), 0644)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = WriteFileIfDifferent(fn, []byte("a: 1\n"), 0644)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = WriteYAMLFileIfDifferent(fn, map[string]int{"a": 2}, 0644)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(data))
}

func TestReplaceDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "example-com-app")

	removed, err := ReplaceDir(dir, 0755)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stale", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale", "deep", "f"), []byte("x"), 0644))

	removed, err = ReplaceDir(dir, 0755)
	require.NoError(t, err)
	assert.True(t, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
