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

package ourio

import (
	"os"

	"github.com/juju/errors"
)

// ReplaceDir removes dir with everything in it, if it exists, and creates
// it again empty. Returns true if something was removed.
func ReplaceDir(dir string, perm os.FileMode) (bool, error) {
	removed := false
	if _, err := os.Lstat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return false, errors.Annotatef(err, "removing %s", dir)
		}
		removed = true
	} else if !os.IsNotExist(err) {
		return false, errors.Trace(err)
	}

	if err := os.MkdirAll(dir, perm); err != nil {
		return removed, errors.Annotatef(err, "creating %s", dir)
	}
	return removed, nil
}
