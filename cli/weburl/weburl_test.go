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

package weburl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webwrap/webwrap/cli/errkind"
)

func TestParseRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"   ",
		"example.com",
		"/just/a/path",
		"://missing-scheme",
		"http://[::1",
		"ftp://x.com",
		"file:///etc/passwd",
		"javascript:alert(1)",
		"mailto:someone@example.com",
		"http:opaque",
	} {
		u, err := Parse(s)
		assert.Nilf(t, u, "case %q", s)
		if assert.Errorf(t, err, "case %q", s) {
			assert.Equalf(t, errkind.InvalidURL, errkind.KindOf(err), "case %q: %s", s, err)
		}
	}
}

func TestParseSchemeReason(t *testing.T) {
	_, err := Parse("ftp://x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")

	_, err = Parse("not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}

func TestParseAccepts(t *testing.T) {
	for _, c := range []struct {
		in, scheme, host, str string
	}{
		{"https://example.com/page", "https", "example.com", "https://example.com/page"},
		{"  http://example.com  ", "http", "example.com", "http://example.com"},
		{"HTTPS://Example.com:8443/a?b=c#d", "https", "Example.com", "https://Example.com:8443/a?b=c#d"},
		{"http://[::1]:8080/", "http", "::1", "http://[::1]:8080/"},
	} {
		u, err := Parse(c.in)
		require.NoErrorf(t, err, "case %q", c.in)
		assert.Equal(t, c.scheme, u.Scheme())
		assert.Equal(t, c.host, u.Host())
		assert.Equal(t, c.str, u.String())
	}
}

func TestURLCopyIsIndependent(t *testing.T) {
	u := MustParse("https://example.com/page")
	c := u.URL()
	c.Path = "/other"
	assert.Equal(t, "https://example.com/page", u.String())
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "example.com", MustParse("https://Example.COM:8443/x").Domain())
	assert.Equal(t, "unknown", MustParse("https:///path-only").Domain())
}
