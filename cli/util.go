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

package main

import (
	"context"
	"image"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/webwrap/webwrap/cli/bundle"
	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/cli/convert"
	"github.com/webwrap/webwrap/cli/history"
	"github.com/webwrap/webwrap/cli/ourutil"
	"github.com/webwrap/webwrap/cli/scaffold"
	"github.com/webwrap/webwrap/cli/siteicon"
	"github.com/webwrap/webwrap/cli/weburl"
	"github.com/webwrap/webwrap/cli/window"
	"github.com/webwrap/webwrap/common/keylock"
)

const iconFetchTimeout = 15 * time.Second

func reportf(f string, args ...interface{}) {
	ourutil.Reportf(f, args...)
}

// urlArg returns the URL given after the command name.
func urlArg() (*weburl.URL, error) {
	if flag.NArg() < 2 {
		return nil, errors.Errorf("URL is required, e.g. %s https://example.com", flag.Arg(0))
	}
	return weburl.Parse(flag.Arg(1))
}

func scaffoldOptions(cfg *config.Config) scaffold.Options {
	return scaffold.Options{
		BaseDir:      cfg.BaseOutputDir,
		Version:      cfg.AppVersion,
		BundleTarget: cfg.BundleTarget,
		WindowWidth:  cfg.Window.Width,
		WindowHeight: cfg.Window.Height,
	}
}

func newBuilder(cfg *config.Config) (*bundle.Builder, error) {
	args, err := cfg.ToolchainArgs()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &bundle.Builder{
		Command:        args,
		Version:        cfg.AppVersion,
		Target:         cfg.BundleTarget,
		VerifyArtifact: cfg.VerifyArtifact,
	}, nil
}

// newRuntime returns the GUI runtime preview windows are opened in.
func newRuntime() window.Runtime {
	if window.WebviewAvailable {
		return &window.ProcessRuntime{}
	}
	return &window.BrowserRuntime{}
}

func newPresenter(cfg *config.Config) *window.Presenter {
	return &window.Presenter{
		Runtime: newRuntime(),
		Options: window.Options{
			Width:         cfg.Window.Width,
			Height:        cfg.Window.Height,
			TitleTemplate: cfg.PreviewTitle,
		},
	}
}

func openHistory(ctx context.Context, cfg *config.Config) *history.Store {
	if cfg.HistoryDB == "" {
		return nil
	}
	s, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		glog.Warningf("history disabled: %s", err)
		return nil
	}
	return s
}

func iconFinder() convert.IconFinder {
	client := &http.Client{Timeout: iconFetchTimeout}
	return func(ctx context.Context, pageURL string) (image.Image, error) {
		img, iconURL, err := siteicon.Find(ctx, client, pageURL)
		if err != nil {
			return nil, errors.Trace(err)
		}
		reportf("Using site icon %s", iconURL)
		return img, nil
	}
}

type converterOpts struct {
	preview bool
	build   bool
}

// newConverter wires the workflow from the configuration. hs may be nil.
func newConverter(cfg *config.Config, co converterOpts, hs *history.Store) (*convert.Converter, error) {
	opts := convert.Options{
		Scaffold: scaffoldOptions(cfg),
		Locks:    keylock.New(cfg.BaseOutputDir),
	}
	if co.preview {
		opts.Presenter = newPresenter(cfg)
	}
	if co.build {
		b, err := newBuilder(cfg)
		if err != nil {
			return nil, errors.Trace(err)
		}
		opts.Builder = b
	}
	if cfg.FetchIcon {
		opts.FindIcon = iconFinder()
	}
	if hs != nil {
		opts.History = hs
	}
	return convert.New(opts), nil
}
