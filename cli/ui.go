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
	"fmt"
	"net"

	"github.com/golang/glog"
	"github.com/juju/errors"
	"github.com/skratchdot/open-golang/open"

	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/cli/ui"
	"github.com/webwrap/webwrap/cli/window"
)

const mainWindowLabel = "main"

// showInBrowser opens url with opener. A failure is only logged: the server
// keeps running and the address is printed anyway.
func showInBrowser(url string, opener func(string) error) bool {
	r := &window.BrowserRuntime{Opener: opener}
	if _, err := r.Open(window.Spec{Label: mainWindowLabel, URL: url}); err != nil {
		glog.Warningf("failed to open browser: %s", err)
		return false
	}
	return true
}

func uiCmd(ctx context.Context, cfg *config.Config) error {
	var hl ui.HistoryLister
	hs := openHistory(ctx, cfg)
	if hs != nil {
		defer hs.Close()
		hl = hs
	}
	c, err := newConverter(cfg, converterOpts{preview: !*noPreview, build: true}, hs)
	if err != nil {
		return errors.Trace(err)
	}
	srv := ui.NewServer(c, hl)

	ln, err := net.Listen("tcp", cfg.UIAddr)
	if err != nil {
		return errors.Annotatef(err, "listening on %s", cfg.UIAddr)
	}
	url := fmt.Sprintf("http://%s", ln.Addr())

	if !window.WebviewAvailable {
		fmt.Printf("Web UI started. Point your browser at %s\n", url)
		showInBrowser(url, open.Start)
		return errors.Trace(srv.Serve(ctx, ln))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ctx, ln)
	}()

	// The main window lives on the main goroutine; closing it stops the
	// server.
	err = window.Show(window.Spec{
		Label:     mainWindowLabel,
		Title:     "webwrap",
		URL:       url,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
	})
	if err != nil {
		return errors.Trace(err)
	}
	glog.Infof("main window closed")
	cancel()
	return errors.Trace(<-errCh)
}
