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
	"os"

	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/cli/ourutil"
	"github.com/webwrap/webwrap/cli/scaffold"
)

// checkCmd shows what scaffolding the URL again would change.
func checkCmd(ctx context.Context, cfg *config.Config) error {
	u, err := urlArg()
	if err != nil {
		return errors.Trace(err)
	}
	p, err := scaffold.Render(u, scaffoldOptions(cfg))
	if err != nil {
		return errors.Trace(err)
	}
	diffs, err := scaffold.Diff(p)
	if err != nil {
		return errors.Trace(err)
	}
	if len(diffs) == 0 {
		printSuccess("%s is up to date", p.Dir)
		return nil
	}
	for _, d := range diffs {
		ourutil.Freportf(os.Stdout, "%s: %s", d.Path, d.Status)
		if d.Text != "" && *verbose {
			ourutil.Freportf(os.Stdout, "%s", d.Text)
		}
	}
	return errors.Errorf("%d file(s) in %s differ from a fresh scaffold", len(diffs), p.Dir)
}
