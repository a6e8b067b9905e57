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

package bundle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/scaffold"
)

// Installer file name suffixes, per bundle target.
var artifactSuffixes = map[string]string{
	"msi":      "_x64_en-US.msi",
	"nsis":     "_x64-setup.exe",
	"deb":      "_amd64.deb",
	"appimage": "_amd64.AppImage",
	"dmg":      "_x64.dmg",
}

// Targets returns the supported bundle targets.
func Targets() []string {
	return []string{"msi", "nsis", "deb", "appimage", "dmg"}
}

// ArtifactName returns the installer file name the toolchain produces for
// the app. The name derives from the project directory name and version.
func ArtifactName(appName, version, target string) (string, error) {
	suffix, ok := artifactSuffixes[strings.ToLower(target)]
	if !ok {
		return "", errors.NotSupportedf("bundle target %q", target)
	}
	return fmt.Sprintf("%s_%s%s", scaffold.GetProjectDirName(appName), version, suffix), nil
}

// ArtifactPath returns where the installer is expected after a successful
// build.
func ArtifactPath(projectDir, appName, version, target string) (string, error) {
	name, err := ArtifactName(appName, version, target)
	if err != nil {
		return "", errors.Trace(err)
	}
	return filepath.Join(scaffold.GetBundleDir(projectDir, strings.ToLower(target)), name), nil
}
