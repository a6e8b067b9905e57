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

// Package ourglob matches slash-separated relative paths against ordered
// lists of glob patterns.
package ourglob

import (
	"path"
	"strings"

	"github.com/juju/errors"
)

type Matcher interface {
	Match(p string) (bool, error)
}

// Pat checks patterns in order and returns the Match value of the first
// pattern that matches. A pattern also matches everything below a matching
// directory: "a/*" matches "a/b/c". If no pattern matches, the result is
// false.
type Pat struct {
	Items PatItems
}

type PatItems []Item

type Item struct {
	Pattern string
	Match   bool
}

func (m *Pat) Match(p string) (bool, error) {
	return m.Items.Match(p)
}

func (items PatItems) Match(p string) (bool, error) {
	parts := strings.Split(p, "/")
	for _, item := range items {
		// path.Match only matches whole strings and has no "**", so cut the
		// path to as many components as the pattern has.
		n := strings.Count(item.Pattern, "/") + 1
		s := p
		if len(parts) > n {
			s = strings.Join(parts[:n], "/")
		}

		matched, err := path.Match(item.Pattern, s)
		if err != nil {
			return false, errors.Annotatef(err, "pattern %q", item.Pattern)
		}
		if matched {
			return item.Match, nil
		}
	}
	return false, nil
}
