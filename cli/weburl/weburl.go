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

// Package weburl validates the page address a conversion starts from.
package weburl

import (
	"net/url"
	"strings"

	"github.com/webwrap/webwrap/cli/errkind"
)

const (
	reasonParse  = "parse error"
	reasonScheme = "unsupported scheme"
)

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// URL is a parsed absolute http(s) URL. It is never modified after Parse.
type URL struct {
	u *url.URL
}

// Parse parses raw as an absolute URL and accepts only http and https.
func Parse(raw string) (*URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errkind.Errorf(errkind.InvalidURL, "%s: empty URL", reasonParse)
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, errkind.New(errkind.InvalidURL, reasonParse, err)
	}
	if !u.IsAbs() {
		return nil, errkind.Errorf(errkind.InvalidURL, "%s: %q is not an absolute URL", reasonParse, s)
	}
	if !allowedSchemes[u.Scheme] {
		return nil, errkind.Errorf(errkind.InvalidURL, "%s: %q, expected http or https", reasonScheme, u.Scheme)
	}
	// "http:foo" parses as an opaque absolute URL, which can't be loaded.
	if u.Opaque != "" {
		return nil, errkind.Errorf(errkind.InvalidURL, "%s: %q has no authority", reasonParse, s)
	}

	return &URL{u: u}, nil
}

// MustParse is like Parse but panics on error. Intended for tests.
func MustParse(raw string) *URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func (v *URL) Scheme() string {
	return v.u.Scheme
}

// Host returns the host name without port, or an empty string.
func (v *URL) Host() string {
	return v.u.Hostname()
}

// Domain returns the lower-cased host name, or "unknown" if the URL has
// no host.
func (v *URL) Domain() string {
	if h := v.u.Hostname(); h != "" {
		return strings.ToLower(h)
	}
	return "unknown"
}

func (v *URL) String() string {
	return v.u.String()
}

// URL returns a copy of the underlying net/url value.
func (v *URL) URL() *url.URL {
	c := *v.u
	return &c
}
