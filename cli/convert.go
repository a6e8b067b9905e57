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
	flag "github.com/spf13/pflag"

	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/cli/convert"
)

func reportEvent(ev convert.Event) {
	switch ev.State {
	case convert.Succeeded, convert.Failed:
		// Reported by the caller.
	default:
		reportf("%s...", ev.State)
	}
}

func convertCmd(ctx context.Context, cfg *config.Config) error {
	return runConversion(ctx, cfg, converterOpts{preview: !*noPreview, build: true})
}

func scaffoldCmd(ctx context.Context, cfg *config.Config) error {
	return runConversion(ctx, cfg, converterOpts{})
}

func runConversion(ctx context.Context, cfg *config.Config, co converterOpts) error {
	if flag.NArg() < 2 {
		return errors.Errorf("URL is required, e.g. %s https://example.com", flag.Arg(0))
	}
	hs := openHistory(ctx, cfg)
	if hs != nil {
		defer hs.Close()
	}
	c, err := newConverter(cfg, co, hs)
	if err != nil {
		return errors.Trace(err)
	}
	c.Subscribe(reportEvent)

	res, err := c.Convert(ctx, convert.Request{URL: flag.Arg(1), Origin: *origin})
	if err != nil {
		return errors.Trace(err)
	}
	if *verbose {
		reportf("Conversion %s, project at %s", res.ID, res.ProjectDir)
	}
	printSuccess("%s", res.Message)
	return nil
}
