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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/juju/errors"
)

// TauriConfig is the window-configuration document, tauri.conf.json.
type TauriConfig struct {
	Identifier  string      `json:"identifier"`
	ProductName string      `json:"productName"`
	Version     string      `json:"version"`
	Build       TauriBuild  `json:"build"`
	App         TauriApp    `json:"app"`
	Bundle      TauriBundle `json:"bundle"`
}

type TauriBuild struct {
	BeforeBuildCommand string `json:"beforeBuildCommand"`
	FrontendDist       string `json:"frontendDist"`
}

type TauriApp struct {
	Windows []TauriWindow `json:"windows"`
}

type TauriWindow struct {
	Fullscreen  bool   `json:"fullscreen"`
	Height      int    `json:"height"`
	Width       int    `json:"width"`
	Resizable   bool   `json:"resizable"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Decorations bool   `json:"decorations"`
	Center      bool   `json:"center"`
}

type TauriBundle struct {
	Active  bool     `json:"active"`
	Targets []string `json:"targets"`
	Icon    []string `json:"icon"`
}

func productName(host string) string {
	return fmt.Sprintf("%s App", host)
}

func newTauriConfig(appName, host, url string, opts *Options) *TauriConfig {
	return &TauriConfig{
		Identifier:  fmt.Sprintf("com.%s.app", appName),
		ProductName: productName(host),
		Version:     opts.Version,
		Build: TauriBuild{
			BeforeBuildCommand: "",
			FrontendDist:       "../" + DistDirName,
		},
		App: TauriApp{
			Windows: []TauriWindow{{
				Fullscreen:  false,
				Height:      opts.WindowHeight,
				Width:       opts.WindowWidth,
				Resizable:   true,
				Title:       productName(host),
				URL:         url,
				Decorations: true,
				Center:      true,
			}},
		},
		Bundle: TauriBundle{
			Active:  true,
			Targets: []string{opts.BundleTarget},
			Icon:    []string{"icons/icon.png"},
		},
	}
}

func (c *TauriConfig) encode() ([]byte, error) {
	// The window URL is written as given, without \u0026-style escapes.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, errors.Annotatef(err, "encoding tauri.conf.json")
	}
	return buf.Bytes(), nil
}

// ParseTauriConfig decodes a tauri.conf.json document.
func ParseTauriConfig(data []byte) (*TauriConfig, error) {
	c := &TauriConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Annotatef(err, "decoding tauri.conf.json")
	}
	return c, nil
}
