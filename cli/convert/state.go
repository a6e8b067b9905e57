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
	"time"

	"github.com/juju/errors"
)

// State is a step of the conversion workflow. A conversion only moves
// forward: Idle, Validating, Scaffolding, Presenting, Building, then
// Succeeded or Failed.
type State int

const (
	Idle State = iota
	Validating
	Scaffolding
	Presenting
	Building
	Succeeded
	Failed
)

var stateNames = []string{
	"Idle", "Validating", "Scaffolding", "Presenting", "Building", "Succeeded", "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for i, n := range stateNames {
		if n == string(text) {
			*s = State(i)
			return nil
		}
	}
	return errors.Errorf("unknown state %q", text)
}

// Event reports that a conversion entered State.
type Event struct {
	ID    string    `json:"id"`
	URL   string    `json:"url"`
	State State     `json:"state"`
	Time  time.Time `json:"time"`
	// Set for Succeeded.
	Message string `json:"message,omitempty"`
	// Set for Failed.
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Observer func(Event)
