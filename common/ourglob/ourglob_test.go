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

package ourglob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	for _, c := range []struct {
		m    Matcher
		p    string
		want bool
	}{
		{PatItems{{"foo/bar", true}, {"foo/*", false}}, "foo/a1", false},
		{PatItems{{"foo/bar", true}, {"foo/*", false}}, "foo/a1/a2", false},
		{PatItems{{"foo/bar", true}, {"foo/*", false}}, "foo/bar", true},
		{PatItems{{"foo/bar", true}, {"foo/*", false}}, "foo/bar/hey", true},
		{PatItems{{"foo/bar", true}, {"foo/*", false}}, "hey", false},
		{&Pat{Items: PatItems{{"foo/bar", true}, {"foo/*", false}, {"*", true}}}, "hey", true},
		{&Pat{Items: PatItems{{"foo/bar", true}, {"foo/*", false}, {"*", true}}}, "foo/a2", false},
		// A later, shorter pattern still sees the whole path.
		{PatItems{{"a/b/c", false}, {"a/*/d", true}}, "a/x/d", true},
		{PatItems{{"*.log", true}}, "build.log", true},
		{PatItems{{"*.log", true}}, "dir/build.log", false},
	} {
		got, err := c.m.Match(c.p)
		assert.NoError(t, err, c.p)
		assert.Equal(t, c.want, got, "%v %q", c.m, c.p)
	}
}

func TestMatchBadPattern(t *testing.T) {
	_, err := PatItems{{"[", true}}.Match("x")
	assert.Error(t, err)
}
