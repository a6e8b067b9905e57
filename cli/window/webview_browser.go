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

//go:build !cgo || !(darwin || windows)

package window

import (
	"github.com/golang/glog"
	"github.com/juju/errors"
	"github.com/skratchdot/open-golang/open"
)

const WebviewAvailable = false

// Show opens s.URL in the system browser. Webview windows need cgo and
// are only built for macOS and Windows.
func Show(s Spec) error {
	glog.Warningf("built without webview support, opening %s in the browser", s.URL)
	if err := open.Run(s.URL); err != nil {
		return errors.Trace(err)
	}
	return nil
}
