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

// Package bundle runs the native toolchain over a scaffolded project and
// locates the installer it produces.
package bundle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/ourutil"
	"github.com/webwrap/webwrap/cli/scaffold"
)

// Builder invokes the toolchain build command.
type Builder struct {
	// Command is the toolchain command line, e.g. cargo tauri build.
	Command []string
	Version string
	Target  string
	// VerifyArtifact makes Build fail with ArtifactMissing when the
	// installer is not found after a successful build. Off by default:
	// the path is computed by convention.
	VerifyArtifact bool
}

type Result struct {
	ArtifactPath string
	ExitCode     int
	Stdout       []byte
	Stderr       []byte
	Duration     time.Duration
}

// Build runs the toolchain in the project's src-tauri directory and waits
// for it to finish. Output is captured, not streamed, and saved to the
// project's build log.
func (b *Builder) Build(ctx context.Context, projectDir, appName string) (*Result, error) {
	if len(b.Command) == 0 {
		return nil, errkind.Errorf(errkind.IoError, "toolchain command is not set")
	}
	artifact, err := ArtifactPath(projectDir, appName, b.Version, b.Target)
	if err != nil {
		// Nothing was built, the builder is misconfigured.
		return nil, errkind.New(errkind.IoError, "unknown bundle target", err)
	}

	start := time.Now()
	cr, err := ourutil.RunCmdCapture(ctx, scaffold.GetTauriDir(projectDir), b.Command...)
	if err != nil {
		if se, ok := errors.Cause(err).(*ourutil.ErrSpawn); ok {
			return nil, errkind.New(errkind.IoError, "failed to spawn "+b.Command[0], se.Err)
		}
		return nil, errkind.New(errkind.IoError, "running "+b.Command[0], err)
	}
	res := &Result{
		ExitCode: cr.ExitCode,
		Stdout:   cr.Stdout,
		Stderr:   cr.Stderr,
		Duration: time.Since(start),
	}

	if err := writeBuildLog(projectDir, b.Command, res); err != nil {
		glog.Errorf("failed to write build log: %s", err)
	}

	if res.ExitCode != 0 {
		return res, errkind.Errorf(errkind.BuildError, "%s", string(res.Stderr))
	}

	if b.VerifyArtifact {
		if _, err := os.Stat(artifact); err != nil {
			return res, errkind.New(errkind.ArtifactMissing, artifact, err)
		}
	}
	res.ArtifactPath = artifact
	glog.Infof("built %s in %s", artifact, res.Duration)
	return res, nil
}

func writeBuildLog(projectDir string, command []string, res *Result) error {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "$ %s\n", strings.Join(command, " "))
	fmt.Fprintf(buf, "exit code: %d, duration: %s\n", res.ExitCode, res.Duration)
	fmt.Fprintf(buf, "\n--- stdout ---\n%s", res.Stdout)
	fmt.Fprintf(buf, "\n--- stderr ---\n%s", res.Stderr)
	fn := scaffold.GetBuildLogFilePath(projectDir)
	if err := os.WriteFile(fn, buf.Bytes(), 0644); err != nil {
		return errors.Trace(err)
	}
	return nil
}
