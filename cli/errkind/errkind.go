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

// Package errkind classifies workflow failures so the caller can tell a
// user mistake from an environment problem.
package errkind

import (
	"fmt"

	"github.com/juju/errors"
)

type Kind int

const (
	Unknown Kind = iota
	// InvalidURL: malformed URL or a scheme other than http/https.
	InvalidURL
	// IoError: filesystem failure or the toolchain could not be spawned.
	IoError
	// WindowError: the GUI runtime refused to create or show a window.
	WindowError
	// BuildError: the toolchain exited with a non-zero status.
	BuildError
	// ArtifactMissing: the toolchain succeeded but the installer is not
	// where it is expected to be.
	ArtifactMissing
)

var kindNames = map[Kind]string{
	Unknown:         "Unknown",
	InvalidURL:      "InvalidUrl",
	IoError:         "IoError",
	WindowError:     "WindowError",
	BuildError:      "BuildError",
	ArtifactMissing: "ArtifactMissing",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified failure. Reason is a short human readable
// explanation, Err the underlying error (may be nil).
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Reason != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a traced classified error.
func New(kind Kind, reason string, err error) error {
	return errors.Trace(&Error{Kind: kind, Reason: reason, Err: err})
}

// Errorf is like New but without an underlying error.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return errors.Trace(&Error{Kind: kind, Reason: fmt.Sprintf(format, args...)})
}

// As returns the classified error at the root of err's trace, if any.
func As(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := errors.Cause(err).(*Error)
	return e, ok
}

// KindOf returns the kind of err, or Unknown.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
