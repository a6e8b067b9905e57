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

	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/config"
)

func configInitCmd(ctx context.Context, cfg *config.Config) error {
	fn, err := config.NormalizePath(cfgFlags.ConfigFile)
	if err != nil {
		return errors.Trace(err)
	}
	changed, err := cfg.WriteFile(fn)
	if err != nil {
		return errors.Trace(err)
	}
	if changed {
		printSuccess("Wrote %s", fn)
	} else {
		reportf("%s is up to date", fn)
	}
	return nil
}
