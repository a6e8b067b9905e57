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

//go:build cgo && (darwin || windows)

package window

import (
	"github.com/juju/errors"
	zwebview "github.com/zserge/webview"
)

// WebviewAvailable is false where Show falls back to the browser.
const WebviewAvailable = true

// Show displays s in a webview window and blocks until it is closed. It
// must be called from the main goroutine.
func Show(s Spec) error {
	if err := zwebview.Open(s.Title, s.URL, s.Width, s.Height, s.Resizable); err != nil {
		return errors.Annotatef(err, "showing %s", s.Label)
	}
	return nil
}
