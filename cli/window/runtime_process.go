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
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
	"github.com/kardianos/osext"
)

// ReadyLine is printed on stdout by the preview process right before it
// shows its window.
const ReadyLine = "webwrap-preview-ready"

const (
	defaultReadyTimeout = 30 * time.Second
	defaultGracePeriod  = 500 * time.Millisecond
)

// ProcessRuntime shows every window in its own child process running
// "<executable> preview". A webview owns the thread it runs on, so one
// process per window keeps the windows independent of each other and of
// the caller.
type ProcessRuntime struct {
	// Executable defaults to the running binary.
	Executable string
	// Args are inserted before the preview command line.
	Args []string
	// ReadyTimeout is how long to wait for ReadyLine.
	ReadyTimeout time.Duration
	// GracePeriod is how long after ReadyLine a failing exit still counts
	// as a failure to show the window.
	GracePeriod time.Duration

	mu   sync.Mutex
	open map[string]*exec.Cmd
}

// Open starts the child process and waits until it reports that the window
// is being shown. If a window with the same label is still open, the label
// gets a numeric suffix.
func (r *ProcessRuntime) Open(s Spec) (string, error) {
	exe := r.Executable
	if exe == "" {
		var err error
		if exe, err = osext.Executable(); err != nil {
			return "", errors.Trace(err)
		}
	}
	readyTimeout := r.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = defaultReadyTimeout
	}
	grace := r.GracePeriod
	if grace <= 0 {
		grace = defaultGracePeriod
	}

	label, cmd := r.reserve(exe, s)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.release(label)
		return "", errors.Trace(err)
	}
	if err := cmd.Start(); err != nil {
		r.release(label)
		return "", errors.Annotatef(err, "starting %s", exe)
	}
	glog.V(1).Infof("window %s: pid %d", label, cmd.Process.Pid)

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(stdout)
		signaled := false
		for sc.Scan() {
			if !signaled && strings.TrimSpace(sc.Text()) == ReadyLine {
				signaled = true
				close(ready)
			}
		}
		// All output is read, Wait may close the pipe now.
		err := cmd.Wait()
		glog.V(1).Infof("window %s closed: %v", label, err)
		r.release(label)
		done <- err
	}()

	failure := func(err error) error {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = fmt.Sprintf("%v", err)
		}
		return errors.Errorf("window %s: preview process failed: %s", label, msg)
	}

	select {
	case <-ready:
	case err := <-done:
		if err == nil {
			err = errors.New("exited before showing the window")
		}
		return "", failure(err)
	case <-time.After(readyTimeout):
		cmd.Process.Kill()
		return "", errors.Errorf("window %s: preview process did not start within %s", label, readyTimeout)
	}

	select {
	case err := <-done:
		if err != nil {
			return "", failure(err)
		}
		// Closed right away, but shown.
	case <-time.After(grace):
	}
	return label, nil
}

// reserve picks a free label for s and registers the command under it.
func (r *ProcessRuntime) reserve(exe string, s Spec) (string, *exec.Cmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open == nil {
		r.open = map[string]*exec.Cmd{}
	}
	label := s.Label
	for i := 2; r.open[label] != nil; i++ {
		label = fmt.Sprintf("%s-%d", s.Label, i)
	}
	args := append(append([]string{}, r.Args...), PreviewArgs(s, label)...)
	cmd := exec.Command(exe, args...)
	r.open[label] = cmd
	return label, cmd
}

func (r *ProcessRuntime) release(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, label)
}

// OpenLabels returns the labels of windows whose process is still running.
func (r *ProcessRuntime) OpenLabels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []string
	for l := range r.open {
		res = append(res, l)
	}
	return res
}

// PreviewArgs is the "preview" command line that shows s.
func PreviewArgs(s Spec, label string) []string {
	return []string{
		"preview",
		"--label", label,
		"--title", s.Title,
		"--window-width", strconv.Itoa(s.Width),
		"--window-height", strconv.Itoa(s.Height),
		s.URL,
	}
}
