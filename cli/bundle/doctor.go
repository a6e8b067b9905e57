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

package bundle

import (
	"context"
	"os/exec"
	"regexp"

	"github.com/golang/glog"
	"github.com/juju/errors"
	goversion "github.com/mcuadros/go-version"

	"github.com/webwrap/webwrap/cli/ourutil"
	"github.com/webwrap/webwrap/common/multierror"
)

// MinToolchainVersion is the oldest tauri-cli that understands the
// generated tauri.conf.json.
const MinToolchainVersion = "2.0.0"

var versionRegexp = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Check is the outcome of a single Doctor check.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Doctor checks that the toolchain is installed and recent enough. The
// version is queried by replacing the last argument of the build command
// with --version ("cargo tauri build" -> "cargo tauri --version").
func (b *Builder) Doctor(ctx context.Context) ([]Check, error) {
	if len(b.Command) == 0 {
		return nil, errors.New("toolchain command is not set")
	}

	var checks []Check
	var errs error

	path, err := exec.LookPath(b.Command[0])
	if err != nil {
		checks = append(checks, Check{Name: b.Command[0], Detail: err.Error()})
		return checks, multierror.Append(errs, errors.NotFoundf("%s", b.Command[0]))
	}
	checks = append(checks, Check{Name: b.Command[0], OK: true, Detail: path})

	args := versionArgs(b.Command)
	out, err := ourutil.GetCommandOutput(ctx, args[0], args[1:]...)
	if err != nil {
		checks = append(checks, Check{Name: "version", Detail: err.Error()})
		return checks, multierror.Append(errs, errors.Trace(err))
	}
	v := ParseToolchainVersion(out)
	glog.V(1).Infof("toolchain version: %q -> %q", out, v)
	switch {
	case v == "":
		checks = append(checks, Check{Name: "version", Detail: "unrecognized version output"})
		errs = multierror.Append(errs, errors.Errorf("could not parse toolchain version from %q", out))
	case !VersionAtLeast(v, MinToolchainVersion):
		checks = append(checks, Check{Name: "version", Detail: v})
		errs = multierror.Append(errs, errors.Errorf("toolchain version %s is older than %s", v, MinToolchainVersion))
	default:
		checks = append(checks, Check{Name: "version", OK: true, Detail: v})
	}

	return checks, errs
}

func versionArgs(command []string) []string {
	if len(command) == 1 {
		return []string{command[0], "--version"}
	}
	return append(append([]string{}, command[:len(command)-1]...), "--version")
}

// ParseToolchainVersion extracts the first x.y.z version from the output of
// "--version", or returns an empty string.
func ParseToolchainVersion(out string) string {
	return versionRegexp.FindString(out)
}

func VersionAtLeast(v, min string) bool {
	return goversion.Compare(goversion.Normalize(v), goversion.Normalize(min), ">=")
}
