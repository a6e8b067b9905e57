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
	"path/filepath"
)

// Paths inside a generated project, relative to the project directory.
const (
	TauriDirName  = "src-tauri"
	DistDirName   = "dist"
	CargoManifest = "src-tauri/Cargo.toml"
	MainRs        = "src-tauri/src/main.rs"
	BuildRs       = "src-tauri/build.rs"
	TauriConf     = "src-tauri/tauri.conf.json"
	DesktopSchema = "src-tauri/schemas/desktop-schema.json"
	BuildUtilsJs  = "src-tauri/build-utils/main.js"
	IconPng       = "src-tauri/icons/icon.png"
	IndexHTML     = "dist/index.html"
	BuildLog      = "build.log"
)

// GetProjectDir returns the directory the project for appName is created in.
func GetProjectDir(baseDir, appName string) string {
	return filepath.Join(baseDir, GetProjectDirName(appName))
}

func GetProjectDirName(appName string) string {
	return appName + "-app"
}

// GetTauriDir returns the directory holding the build manifest; the
// toolchain runs there.
func GetTauriDir(projectDir string) string {
	return filepath.Join(projectDir, TauriDirName)
}

func GetBuildLogFilePath(projectDir string) string {
	return filepath.Join(projectDir, BuildLog)
}

// GetBundleDir returns where the toolchain leaves installers of the given
// format.
func GetBundleDir(projectDir, target string) string {
	return filepath.Join(GetTauriDir(projectDir), "target", "release", "bundle", target)
}
