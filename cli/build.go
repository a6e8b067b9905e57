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
	"github.com/webwrap/webwrap/cli/convert"
	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/scaffold"
	"github.com/webwrap/webwrap/common/keylock"
)

// buildCmd builds an app project that is already on disk, e.g. after it
// was edited by hand.
func buildCmd(ctx context.Context, cfg *config.Config) error {
	u, err := urlArg()
	if err != nil {
		return errors.Trace(err)
	}
	appName := scaffold.AppName(u)
	projectDir := scaffold.GetProjectDir(cfg.BaseOutputDir, appName)
	if _, err := os.Stat(scaffold.GetTauriDir(projectDir)); err != nil {
		return errkind.New(errkind.IoError, "no project for "+u.String()+", run scaffold first", err)
	}

	b, err := newBuilder(cfg)
	if err != nil {
		return errors.Trace(err)
	}

	unlock, err := keylock.New(cfg.BaseOutputDir).Lock(ctx, scaffold.GetProjectDirName(appName))
	if err != nil {
		return errors.Trace(err)
	}
	defer unlock()

	reportf("Building %s in %s...", appName, projectDir)
	res, err := b.Build(ctx, projectDir, appName)
	if err != nil {
		if res != nil {
			reportf("Build log: %s", scaffold.GetBuildLogFilePath(projectDir))
		}
		return errors.Trace(err)
	}
	printSuccess("%s", convert.SuccessMessage(res.ArtifactPath))
	return nil
}
