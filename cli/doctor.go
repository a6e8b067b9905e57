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

	"github.com/fatih/color"
	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/bundle"
	"github.com/webwrap/webwrap/cli/config"
)

func doctorCmd(ctx context.Context, cfg *config.Config) error {
	b, err := newBuilder(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	checks, err := b.Doctor(ctx)
	for _, c := range checks {
		if c.OK {
			color.New(color.FgGreen).Fprintf(os.Stdout, "  ok    %s: %s\n", c.Name, c.Detail)
		} else {
			color.New(color.FgRed).Fprintf(os.Stdout, "  FAIL  %s: %s\n", c.Name, c.Detail)
		}
	}
	if err != nil {
		return errors.Annotatef(err, "toolchain %q (need tauri-cli %s or newer)", cfg.Toolchain, bundle.MinToolchainVersion)
	}
	printSuccess("Toolchain is ready")
	return nil
}
