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

package multierror

import (
	"bytes"
	"fmt"
)

// Error collects the problems found while validating a set of inputs, so
// that all of them can be reported at once.
type Error struct {
	errs []error
}

func (e *Error) Error() string {
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	buf := bytes.NewBuffer(nil)
	fmt.Fprintf(buf, "%d problems found:", len(e.errs))
	for _, err := range e.errs {
		fmt.Fprintf(buf, "\n  - %s", err)
	}
	return buf.String()
}

// Errors returns the collected errors in the order they were added.
func (e *Error) Errors() []error {
	return e.errs
}

// Append adds errs to err. err may be nil, a plain error or an *Error;
// nil entries in errs are skipped. The result is nil only if there is
// nothing to report.
func Append(err error, errs ...error) error {
	var me *Error
	switch err := err.(type) {
	case nil:
		me = &Error{}
	case *Error:
		me = err
	default:
		me = &Error{errs: []error{err}}
	}
	for _, e := range errs {
		if e != nil {
			me.errs = append(me.errs, e)
		}
	}
	if len(me.errs) == 0 {
		return nil
	}
	return me
}
