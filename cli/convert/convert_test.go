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

package convert

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webwrap/webwrap/cli/bundle"
	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/history"
	"github.com/webwrap/webwrap/cli/scaffold"
	"github.com/webwrap/webwrap/cli/window"
	"github.com/webwrap/webwrap/common/keylock"
)

type fakeRuntime struct {
	mu    sync.Mutex
	specs []window.Spec
	err   error
}

func (r *fakeRuntime) Open(s window.Spec) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.specs = append(r.specs, s)
	return s.Label, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []history.Entry
}

func (r *fakeRecorder) Record(ctx context.Context, e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

type testEnv struct {
	base     string
	rt       *fakeRuntime
	recorder *fakeRecorder
	mu       sync.Mutex
	states   []State
	events   []Event
	c        *Converter
}

func newTestEnv(t *testing.T, toolchain string) *testEnv {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	env := &testEnv{
		base:     t.TempDir(),
		rt:       &fakeRuntime{},
		recorder: &fakeRecorder{},
	}
	env.c = New(Options{
		Scaffold:  scaffold.Options{BaseDir: env.base},
		Presenter: &window.Presenter{Runtime: env.rt, Options: window.Options{TitleTemplate: "{host} (Preview)"}},
		Builder: &bundle.Builder{
			Command: []string{"sh", "-c", toolchain},
			Version: "0.1.0",
			Target:  "msi",
		},
		Locks:   keylock.New(env.base),
		History: env.recorder,
	})
	env.c.Subscribe(func(ev Event) {
		env.mu.Lock()
		defer env.mu.Unlock()
		env.states = append(env.states, ev.State)
		env.events = append(env.events, ev)
	})
	return env
}

func TestConvertSuccess(t *testing.T) {
	env := newTestEnv(t, "echo building")

	res, err := env.c.Convert(context.Background(), Request{URL: "https://example.com/page", Origin: "main"})
	require.NoError(t, err)

	assert.Equal(t, "example-com", res.AppName)
	assert.Equal(t, filepath.Join(env.base, "example-com-app"), res.ProjectDir)
	assert.True(t, strings.HasSuffix(res.ArtifactPath, "example-com-app_0.1.0_x64_en-US.msi"), res.ArtifactPath)
	assert.Equal(t, "App created successfully! You can find the installer at: "+res.ArtifactPath, res.Message)
	assert.Equal(t, "web-window-main", res.WindowLabel)

	assert.Equal(t, []State{Validating, Scaffolding, Presenting, Building, Succeeded}, env.states)
	for _, ev := range env.events {
		assert.Equal(t, res.ID, ev.ID)
	}

	require.Len(t, env.rt.specs, 1)
	assert.Equal(t, "https://example.com/page", env.rt.specs[0].URL)
	assert.Equal(t, "example.com (Preview)", env.rt.specs[0].Title)

	_, err = os.Stat(filepath.Join(res.ProjectDir, "src-tauri", "tauri.conf.json"))
	assert.NoError(t, err)

	require.Len(t, env.recorder.entries, 1)
	assert.Equal(t, "Succeeded", env.recorder.entries[0].State)
	assert.Equal(t, res.ID, env.recorder.entries[0].ID)
}

func TestConvertInvalidURL(t *testing.T) {
	env := newTestEnv(t, "true")

	for _, u := range []string{"ftp://example.com", "not a url", ""} {
		env.states = nil
		_, err := env.c.Convert(context.Background(), Request{URL: u})
		require.Error(t, err, u)
		assert.Equal(t, errkind.InvalidURL, errkind.KindOf(err), u)
		assert.Equal(t, []State{Validating, Failed}, env.states, u)
	}
	entries, err := os.ReadDir(env.base)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, env.rt.specs)
}

func TestConvertWindowError(t *testing.T) {
	env := newTestEnv(t, "touch built")
	env.rt.err = errors.New("display unavailable")

	_, err := env.c.Convert(context.Background(), Request{URL: "https://example.com"})
	require.Error(t, err)
	assert.Equal(t, errkind.WindowError, errkind.KindOf(err))
	assert.Equal(t, []State{Validating, Scaffolding, Presenting, Failed}, env.states)

	// The build never ran.
	_, err = os.Stat(filepath.Join(env.base, "example-com-app", "src-tauri", "built"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertBuildError(t *testing.T) {
	env := newTestEnv(t, "echo 'linker `link.exe` not found' >&2; exit 1")

	_, err := env.c.Convert(context.Background(), Request{URL: "https://example.com"})
	require.Error(t, err)
	assert.Equal(t, errkind.BuildError, errkind.KindOf(err))
	assert.Contains(t, err.Error(), "linker `link.exe` not found")
	assert.Equal(t, []State{Validating, Scaffolding, Presenting, Building, Failed}, env.states)

	last := env.events[len(env.events)-1]
	assert.Equal(t, "BuildError", last.ErrorKind)

	require.Len(t, env.recorder.entries, 1)
	assert.Equal(t, "Failed", env.recorder.entries[0].State)
	assert.Equal(t, "BuildError", env.recorder.entries[0].ErrorKind)
	assert.Empty(t, env.recorder.entries[0].ArtifactPath)
}

func TestConvertWithoutPreviewAndBuild(t *testing.T) {
	base := t.TempDir()
	var states []State
	c := New(Options{Scaffold: scaffold.Options{BaseDir: base}})
	c.Subscribe(func(ev Event) { states = append(states, ev.State) })

	res, err := c.Convert(context.Background(), Request{URL: "http://localhost:8080/"})
	require.NoError(t, err)
	assert.Equal(t, "localhost", res.AppName)
	assert.Empty(t, res.ArtifactPath)
	assert.Equal(t, []State{Validating, Scaffolding, Succeeded}, states)
}

func TestConvertSiteIcon(t *testing.T) {
	base := t.TempDir()
	called := false
	c := New(Options{
		Scaffold: scaffold.Options{BaseDir: base},
		FindIcon: func(ctx context.Context, pageURL string) (image.Image, error) {
			called = true
			assert.Equal(t, "https://example.com", pageURL)
			return nil, errors.NotFoundf("icon")
		},
	})
	_, err := c.Convert(context.Background(), Request{URL: "https://example.com"})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestHandle(t *testing.T) {
	env := newTestEnv(t, "true")

	msg, err := env.c.Handle(context.Background(), []byte(`{"url": "https://example.com/page"}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "App created successfully! You can find the installer at: "), msg)
	assert.True(t, strings.HasSuffix(msg, "example-com-app_0.1.0_x64_en-US.msi"), msg)

	_, err = env.c.Handle(context.Background(), []byte(`{"url": "file:///etc/passwd"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidUrl")

	_, err = env.c.Handle(context.Background(), []byte(`{`))
	assert.Error(t, err)
}

func TestConcurrentSameApp(t *testing.T) {
	env := newTestEnv(t, "true")

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.c.Convert(context.Background(), Request{URL: "https://example.com"})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
	_, err := os.Stat(filepath.Join(env.base, "example-com-app", "src-tauri", "Cargo.toml"))
	assert.NoError(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Presenting", Presenting.String())
	assert.True(t, Failed.Terminal())
	assert.False(t, Building.Terminal())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestStateText(t *testing.T) {
	data, err := Building.MarshalText()
	require.NoError(t, err)
	var s State
	require.NoError(t, s.UnmarshalText(data))
	assert.Equal(t, Building, s)
	assert.Error(t, s.UnmarshalText([]byte("Sleeping")))
}
