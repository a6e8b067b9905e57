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

package scaffold

import (
	"strings"

	"github.com/webwrap/webwrap/cli/weburl"
)

var appNameReplacer = strings.NewReplacer(".", "-", ":", "-")

// HostOf returns the URL host, or "unknown" if it has none.
func HostOf(u *weburl.URL) string {
	return u.Domain()
}

// AppName derives the application name from the URL host: dots (and the
// colons of IPv6 literals) become dashes, so "example.com" is
// "example-com".
func AppName(u *weburl.URL) string {
	return appNameReplacer.Replace(HostOf(u))
}
