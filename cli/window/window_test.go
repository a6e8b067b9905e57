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

package window

import (
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/weburl"
)

type fakeRuntime struct {
	specs []Spec
	err   error
}

func (r *fakeRuntime) Open(s Spec) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.specs = append(r.specs, s)
	return s.Label, nil
}

func TestNewSpec(t *testing.T) {
	s := NewSpec(weburl.MustParse("https://Example.com/page"), "main", Options{TitleTemplate: "{host} (Preview)"})
	assert.Equal(t, Spec{
		Label:     "web-window-main",
		Title:     "example.com (Preview)",
		URL:       "https://Example.com/page",
		Width:     1024,
		Height:    768,
		Resizable: true,
	}, s)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "example.com", Title("", "example.com"))
	assert.Equal(t, "example.com App", Title("App", "example.com"))
	assert.Equal(t, "Preview of example.com", Title("Preview of {host}", "example.com"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "web-window-main", Label(""))
	assert.Equal(t, "web-window-settings", Label("settings"))
}

func TestPresent(t *testing.T) {
	rt := &fakeRuntime{}
	p := &Presenter{Runtime: rt, Options: Options{Width: 800, Height: 600}}

	s, err := p.Present(weburl.MustParse("https://example.com"), "main")
	require.NoError(t, err)
	require.Len(t, rt.specs, 1)
	assert.Equal(t, s, rt.specs[0])
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
}

func TestPresentFailure(t *testing.T) {
	p := &Presenter{Runtime: &fakeRuntime{err: errors.New("no display")}}
	_, err := p.Present(weburl.MustParse("https://example.com"), "main")
	require.Error(t, err)
	assert.Equal(t, errkind.WindowError, errkind.KindOf(err))
	assert.Contains(t, err.Error(), "no display")

	p = &Presenter{}
	_, err = p.Present(weburl.MustParse("https://example.com"), "main")
	assert.Equal(t, errkind.WindowError, errkind.KindOf(err))
}

func TestBrowserRuntime(t *testing.T) {
	var opened []string
	r := &BrowserRuntime{Opener: func(url string) error {
		opened = append(opened, url)
		return nil
	}}
	label, err := r.Open(Spec{Label: "web-window-main", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "web-window-main", label)
	assert.Equal(t, []string{"https://example.com"}, opened)
}

func TestProcessRuntimeLabels(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	// The preview arguments end up as positional parameters of the script.
	r := &ProcessRuntime{
		Executable:  "sh",
		Args:        []string{"-c", "echo " + ReadyLine + "; sleep 1", "sh"},
		GracePeriod: 10 * time.Millisecond,
	}
	s := Spec{Label: "web-window-main", Title: "t", URL: "https://example.com", Width: 10, Height: 10}

	l1, err := r.Open(s)
	require.NoError(t, err)
	l2, err := r.Open(s)
	require.NoError(t, err)
	l3, err := r.Open(s)
	require.NoError(t, err)

	labels := r.OpenLabels()
	sort.Strings(labels)
	assert.Equal(t, []string{"web-window-main", "web-window-main-2", "web-window-main-3"}, labels)
	assert.Equal(t, "web-window-main", l1)
	assert.Equal(t, "web-window-main-2", l2)
	assert.Equal(t, "web-window-main-3", l3)

	assert.Eventually(t, func() bool { return len(r.OpenLabels()) == 0 }, 5*time.Second, 20*time.Millisecond)

	l4, err := r.Open(s)
	require.NoError(t, err)
	assert.Equal(t, "web-window-main", l4)
}

func TestProcessRuntimeSpawnFailure(t *testing.T) {
	r := &ProcessRuntime{Executable: "/nonexistent/webwrap"}
	_, err := r.Open(Spec{Label: "web-window-main"})
	assert.Error(t, err)
	assert.Empty(t, r.OpenLabels())
}

func TestProcessRuntimeWindowFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	for _, script := range []string{
		// Fails before showing anything.
		"echo 'cannot open display' >&2; exit 1",
		// Fails while creating the window.
		"echo " + ReadyLine + "; echo 'cannot open display' >&2; exit 1",
	} {
		r := &ProcessRuntime{Executable: "sh", Args: []string{"-c", script, "sh"}, GracePeriod: 2 * time.Second}
		p := &Presenter{Runtime: r}

		_, err := p.Present(weburl.MustParse("https://example.com"), "main")
		require.Error(t, err, script)
		assert.Equal(t, errkind.WindowError, errkind.KindOf(err), script)
		assert.Contains(t, err.Error(), "cannot open display", script)
		assert.Empty(t, r.OpenLabels(), script)
	}
}

func TestProcessRuntimeExitWithoutWindow(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	r := &ProcessRuntime{Executable: "sh", Args: []string{"-c", "true", "sh"}}
	_, err := r.Open(Spec{Label: "web-window-main"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited before showing the window")
}

func TestProcessRuntimeReadyTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	r := &ProcessRuntime{Executable: "sh", Args: []string{"-c", "exec sleep 5", "sh"}, ReadyTimeout: 50 * time.Millisecond}
	_, err := r.Open(Spec{Label: "web-window-main"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not start")
	assert.Eventually(t, func() bool { return len(r.OpenLabels()) == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestPreviewArgs(t *testing.T) {
	s := Spec{Title: "example.com (Preview)", URL: "https://example.com", Width: 1024, Height: 768}
	assert.Equal(t, []string{
		"preview", "--label", "web-window-main-2", "--title", "example.com (Preview)",
		"--window-width", "1024", "--window-height", "768", "https://example.com",
	}, PreviewArgs(s, "web-window-main-2"))
}
