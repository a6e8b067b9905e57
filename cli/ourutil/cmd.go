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
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

// CmdResult is the captured outcome of a finished command.
type CmdResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ErrSpawn wraps errors that prevented the command from starting at all.
type ErrSpawn struct {
	Err error
}

func (e *ErrSpawn) Error() string {
	return e.Err.Error()
}

// RunCmdCapture runs args[0] with the rest of args in dir, waits for it to
// exit and returns its stdout and stderr. Output is not echoed.
//
// A command that started and exited non-zero is not an error: check
// CmdResult.ExitCode. Failing to start returns an *ErrSpawn.
func RunCmdCapture(ctx context.Context, dir string, args ...string) (*CmdResult, error) {
	if len(args) == 0 {
		return nil, errors.Trace(&ErrSpawn{Err: errors.New("empty command")})
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Trace(err)
	}

	glog.Infof("Running %s in %s", strings.Join(args, " "), dir)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	var so, se bytes.Buffer
	cmd.Stdout = &so
	cmd.Stderr = &se

	if err := cmd.Start(); err != nil {
		return nil, errors.Trace(&ErrSpawn{Err: err})
	}

	res := &CmdResult{}
	err := cmd.Wait()
	res.Stdout = so.Bytes()
	res.Stderr = se.Bytes()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			res.ExitCode = ee.ExitCode()
			if res.ExitCode < 0 {
				// Killed by a signal.
				res.ExitCode = 1
			}
			glog.Infof("%s exited with %d", args[0], res.ExitCode)
			return res, nil
		}
		return nil, errors.Trace(err)
	}

	return res, nil
}

// GetCommandOutput runs the command and returns its stdout.
func GetCommandOutput(ctx context.Context, command string, args ...string) (string, error) {
	res, err := RunCmdCapture(ctx, "", append([]string{command}, args...)...)
	if err != nil {
		return "", errors.Annotatef(err, "failed to run %s %s", command, args)
	}
	if res.ExitCode != 0 {
		return "", errors.Errorf("%s %s exited with %d: %s",
			command, strings.Join(args, " "), res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return string(res.Stdout), nil
}
