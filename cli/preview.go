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
	"runtime"

	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/cli/window"
)

func init() {
	// Webview windows must be created and run on the main thread.
	runtime.LockOSThread()
}

// previewCmd shows the page in a window and returns when it is closed.
// ProcessRuntime starts one of these per preview window.
func previewCmd(ctx context.Context, cfg *config.Config) error {
	u, err := urlArg()
	if err != nil {
		return errors.Trace(err)
	}
	s := window.NewSpec(u, *origin, window.Options{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		TitleTemplate: cfg.PreviewTitle,
	})
	if *label != "" {
		s.Label = *label
	}
	if *title != "" {
		s.Title = *title
	}
	// Lets ProcessRuntime in the parent know the window is coming up.
	fmt.Println(window.ReadyLine)
	return errors.Trace(window.Show(s))
}
