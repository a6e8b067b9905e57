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
	"fmt"

	"github.com/juju/errors"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	tauriVersion = "1.5.0"
	cargoEdition = "2021"
)

type cargoManifest struct {
	Package           cargoPackage        `toml:"package"`
	BuildDependencies cargoBuildDeps      `toml:"build-dependencies"`
	Dependencies      cargoDeps           `toml:"dependencies"`
	Features          map[string][]string `toml:"features"`
}

type cargoPackage struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Edition     string `toml:"edition"`
}

type cargoDependency struct {
	Version  string   `toml:"version"`
	Features []string `toml:"features"`
}

type cargoBuildDeps struct {
	TauriBuild cargoDependency `toml:"tauri-build,inline"`
}

type cargoDeps struct {
	SerdeJSON string          `toml:"serde_json"`
	Serde     cargoDependency `toml:"serde,inline"`
	Tauri     cargoDependency `toml:"tauri,inline"`
}

func newCargoManifest(appName, host, version string) *cargoManifest {
	return &cargoManifest{
		Package: cargoPackage{
			Name:        GetProjectDirName(appName),
			Version:     version,
			Description: fmt.Sprintf("Generated app for %s", host),
			Edition:     cargoEdition,
		},
		BuildDependencies: cargoBuildDeps{
			TauriBuild: cargoDependency{Version: tauriVersion, Features: []string{}},
		},
		Dependencies: cargoDeps{
			SerdeJSON: "1.0",
			Serde:     cargoDependency{Version: "1.0", Features: []string{"derive"}},
			Tauri: cargoDependency{
				Version:  tauriVersion,
				Features: []string{"window-maximize", "window-minimize", "window-close"},
			},
		},
		Features: map[string][]string{
			"custom-protocol": {"tauri/custom-protocol"},
		},
	}
}

func (m *cargoManifest) encode() ([]byte, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, errors.Annotatef(err, "encoding Cargo.toml")
	}
	return data, nil
}
