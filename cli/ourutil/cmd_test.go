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

package ourutil

import (
	"context"
	"runtime"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

func TestRunCmdCapture(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()

	res, err := RunCmdCapture(context.Background(), dir, "sh", "-c", "pwd; echo oops >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, string(res.Stdout), dir)
	assert.Equal(t, "oops\n", string(res.Stderr))
}

func TestRunCmdCaptureSpawnFailure(t *testing.T) {
	_, err := RunCmdCapture(context.Background(), "", "/nonexistent/webwrap-toolchain")
	require.Error(t, err)
	_, ok := errors.Cause(err).(*ErrSpawn)
	assert.True(t, ok, "%T", errors.Cause(err))

	_, err = RunCmdCapture(context.Background(), "")
	require.Error(t, err)
}

func TestGetCommandOutput(t *testing.T) {
	skipOnWindows(t)

	out, err := GetCommandOutput(context.Background(), "sh", "-c", "echo tauri-cli 1.5.11")
	require.NoError(t, err)
	assert.Equal(t, "tauri-cli 1.5.11\n", out)

	_, err = GetCommandOutput(context.Background(), "sh", "-c", "echo bad >&2; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}
