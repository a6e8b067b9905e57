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

// Package window opens preview windows that show a web page.
package window

import (
	"strings"

	"github.com/golang/glog"

	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/weburl"
)

const (
	LabelPrefix   = "web-window-"
	DefaultOrigin = "main"

	hostPlaceholder = "{host}"
)

// Spec describes a top-level window. The rest of the chrome is fixed:
// windows are decorated, placed by the window system, never fullscreen and
// never kept on top.
type Spec struct {
	Label     string
	Title     string
	URL       string
	Width     int
	Height    int
	Resizable bool
}

type Options struct {
	Width  int
	Height int
	// TitleTemplate is the window title; "{host}" is replaced with the page
	// host. A template without the placeholder is appended to the host.
	TitleTemplate string
}

// Runtime is the GUI application windows are opened in.
type Runtime interface {
	// Open creates and shows the window. It returns the label the window
	// was actually registered under.
	Open(s Spec) (string, error)
}

// Label returns the label of the preview window opened on behalf of the
// window labelled origin.
func Label(origin string) string {
	if origin == "" {
		origin = DefaultOrigin
	}
	return LabelPrefix + origin
}

func Title(tmpl, host string) string {
	switch {
	case tmpl == "":
		return host
	case strings.Contains(tmpl, hostPlaceholder):
		return strings.Replace(tmpl, hostPlaceholder, host, -1)
	default:
		return host + " " + tmpl
	}
}

// NewSpec returns the resizable preview window for u.
func NewSpec(u *weburl.URL, origin string, opts Options) Spec {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 768
	}
	return Spec{
		Label:     Label(origin),
		Title:     Title(opts.TitleTemplate, u.Domain()),
		URL:       u.String(),
		Width:     w,
		Height:    h,
		Resizable: true,
	}
}

// Presenter opens preview windows in a Runtime.
type Presenter struct {
	Runtime Runtime
	Options Options
}

// Present opens a preview window for u. Failures are reported as
// WindowError and not retried.
func (p *Presenter) Present(u *weburl.URL, origin string) (Spec, error) {
	s := NewSpec(u, origin, p.Options)
	if p.Runtime == nil {
		return s, errkind.Errorf(errkind.WindowError, "no GUI runtime")
	}
	label, err := p.Runtime.Open(s)
	if err != nil {
		return s, errkind.New(errkind.WindowError, "opening window "+s.Label, err)
	}
	s.Label = label
	glog.Infof("opened window %s (%q) at %s", s.Label, s.Title, s.URL)
	return s, nil
}
