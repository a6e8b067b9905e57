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

// Package scaffold generates the project directory of a desktop app that
// wraps a web page.
package scaffold

import (
	"image"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/weburl"
	"github.com/webwrap/webwrap/common/ourio"
)

// Options control what gets generated. Zero values are replaced with
// defaults by Render.
type Options struct {
	// BaseDir is where the "<app>-app" directory is created.
	BaseDir      string
	Version      string
	BundleTarget string
	WindowWidth  int
	WindowHeight int
	// Icon replaces the generated letter icon when set.
	Icon image.Image
}

func (o Options) withDefaults() Options {
	if o.Version == "" {
		o.Version = "0.1.0"
	}
	if o.BundleTarget == "" {
		o.BundleTarget = "msi"
	}
	if o.WindowWidth <= 0 {
		o.WindowWidth = 1024
	}
	if o.WindowHeight <= 0 {
		o.WindowHeight = 768
	}
	return o
}

type File struct {
	// Path is slash-separated, relative to the project directory.
	Path string
	Data []byte
}

// Project is a rendered scaffold that may or may not be on disk yet.
type Project struct {
	Name    string
	Host    string
	URL     string
	Version string
	Dir     string
	Files   []File
}

// File returns the file with the given relative path, or nil.
func (p *Project) File(path string) *File {
	for i := range p.Files {
		if p.Files[i].Path == path {
			return &p.Files[i]
		}
	}
	return nil
}

// Render generates the project files in memory. It does not touch the
// filesystem, and the same input always renders the same bytes.
func Render(u *weburl.URL, opts Options) (*Project, error) {
	opts = opts.withDefaults()
	host := HostOf(u)
	name := AppName(u)

	p := &Project{
		Name:    name,
		Host:    host,
		URL:     u.String(),
		Version: opts.Version,
		Dir:     GetProjectDir(opts.BaseDir, name),
	}

	cargo, err := newCargoManifest(name, host, opts.Version).encode()
	if err != nil {
		return nil, errors.Trace(err)
	}
	conf, err := newTauriConfig(name, host, p.URL, &opts).encode()
	if err != nil {
		return nil, errors.Trace(err)
	}
	index, err := renderIndexHTML(productName(host))
	if err != nil {
		return nil, errors.Trace(err)
	}
	icon := opts.Icon
	if icon == nil {
		icon = GenerateIcon(IconLetter(host))
	}
	iconData, err := EncodeIcon(icon)
	if err != nil {
		return nil, errors.Trace(err)
	}

	p.Files = []File{
		{CargoManifest, cargo},
		{MainRs, []byte(mainRsContent)},
		{BuildRs, []byte(buildRsContent)},
		{TauriConf, conf},
		{DesktopSchema, []byte(desktopSchemaContent)},
		{BuildUtilsJs, []byte(buildUtilsContent)},
		{IconPng, iconData},
		{IndexHTML, index},
	}
	return p, nil
}

// Write replaces whatever is at p.Dir with the rendered files. Nothing is
// cleaned up on failure; the next Write removes the leftovers.
func Write(p *Project) error {
	removed, err := ourio.ReplaceDir(p.Dir, 0755)
	if err != nil {
		return errkind.New(errkind.IoError, "preparing "+p.Dir, errors.Cause(err))
	}
	if removed {
		glog.Infof("removed previous project at %s", p.Dir)
	}

	for _, f := range p.Files {
		fn := filepath.Join(p.Dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
			return errkind.New(errkind.IoError, "creating "+filepath.Dir(fn), err)
		}
		if err := os.WriteFile(fn, f.Data, 0644); err != nil {
			return errkind.New(errkind.IoError, "writing "+fn, err)
		}
		glog.V(1).Infof("wrote %s (%d bytes)", fn, len(f.Data))
	}
	return nil
}

// Scaffold renders the project for u and writes it under opts.BaseDir.
func Scaffold(u *weburl.URL, opts Options) (*Project, error) {
	p, err := Render(u, opts)
	if err != nil {
		return nil, errkind.New(errkind.IoError, "rendering project", err)
	}
	if err := Write(p); err != nil {
		return nil, errors.Trace(err)
	}
	return p, nil
}
