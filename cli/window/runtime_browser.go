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

package window

import (
	"github.com/juju/errors"
	"github.com/skratchdot/open-golang/open"
)

// BrowserRuntime shows pages in the system browser. Window chrome settings
// are up to the browser.
type BrowserRuntime struct {
	// Opener defaults to open.Start.
	Opener func(url string) error
}

func (r *BrowserRuntime) Open(s Spec) (string, error) {
	opener := r.Opener
	if opener == nil {
		opener = open.Start
	}
	if err := opener(s.URL); err != nil {
		return "", errors.Annotatef(err, "opening %s in browser", s.URL)
	}
	return s.Label, nil
}
