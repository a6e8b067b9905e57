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

// Package config holds the settings of a webwrap run and loads them from
// defaults, an optional YAML file, the environment and flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/juju/errors"
	shellwords "github.com/mattn/go-shellwords"
	flag "github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"

	"github.com/webwrap/webwrap/common/multierror"
	"github.com/webwrap/webwrap/common/ourio"
)

const (
	DefaultToolchain    = "cargo tauri build"
	DefaultAppVersion   = "0.1.0"
	DefaultBundleTarget = "msi"
	DefaultPreviewTitle = "{host} (Preview)"
	DefaultUIAddr       = "127.0.0.1:1992"

	DefaultConfigFile = "~/.webwrap/config.yml"
)

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Config struct {
	// BaseOutputDir is where "<app>-app" project directories are created.
	BaseOutputDir string `yaml:"base_output_dir"`
	// Toolchain is the build command, run in the project's src-tauri dir.
	Toolchain      string `yaml:"toolchain"`
	AppVersion     string `yaml:"app_version"`
	BundleTarget   string `yaml:"bundle_target"`
	Window         Window `yaml:"window"`
	PreviewTitle   string `yaml:"preview_title"`
	VerifyArtifact bool   `yaml:"verify_artifact"`
	FetchIcon      bool   `yaml:"fetch_icon"`
	HistoryDB      string `yaml:"history_db"`
	UIAddr         string `yaml:"ui_addr"`
}

func Default() *Config {
	return &Config{
		BaseOutputDir: "~/webwrap-apps",
		Toolchain:     DefaultToolchain,
		AppVersion:    DefaultAppVersion,
		BundleTarget:  DefaultBundleTarget,
		Window:        Window{Width: 1024, Height: 768},
		PreviewTitle:  DefaultPreviewTitle,
		HistoryDB:     "~/.webwrap/history.db",
		UIAddr:        DefaultUIAddr,
	}
}

// Flags are the command line overrides for Config. Only flags that were
// set (on the command line or through the environment) are applied.
type Flags struct {
	fs *flag.FlagSet

	ConfigFile     string
	BaseOutputDir  string
	Toolchain      string
	AppVersion     string
	BundleTarget   string
	WindowWidth    int
	WindowHeight   int
	PreviewTitle   string
	VerifyArtifact bool
	FetchIcon      bool
	HistoryDB      string
	UIAddr         string
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigFile, "config", DefaultConfigFile, "Config file; missing file is not an error")
	fs.StringVar(&f.BaseOutputDir, "base-output-dir", d.BaseOutputDir, "Directory to create app projects in")
	fs.StringVar(&f.Toolchain, "toolchain", d.Toolchain, "Command that builds the project, run in its src-tauri directory")
	fs.StringVar(&f.AppVersion, "app-version", d.AppVersion, "Version of the generated app")
	fs.StringVar(&f.BundleTarget, "bundle-target", d.BundleTarget, "Installer format: msi, nsis, deb, appimage or dmg")
	fs.IntVar(&f.WindowWidth, "window-width", d.Window.Width, "Window width")
	fs.IntVar(&f.WindowHeight, "window-height", d.Window.Height, "Window height")
	fs.StringVar(&f.PreviewTitle, "preview-title", d.PreviewTitle, "Preview window title; {host} is replaced with the page host")
	fs.BoolVar(&f.VerifyArtifact, "verify-artifact", d.VerifyArtifact, "Fail if the installer is not found after a successful build")
	fs.BoolVar(&f.FetchIcon, "fetch-icon", d.FetchIcon, "Use the site's own icon for the app if one can be found")
	fs.StringVar(&f.HistoryDB, "history-db", d.HistoryDB, "Conversion history database; empty disables history")
	fs.StringVar(&f.UIAddr, "ui-addr", d.UIAddr, "Address for the local UI server")
	return f
}

// Load builds the effective config: defaults, then the config file, then
// every flag that was explicitly set.
func (f *Flags) Load() (*Config, error) {
	cfg := Default()

	fn, err := NormalizePath(f.ConfigFile)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err := cfg.ReadFile(fn); err != nil {
		if !os.IsNotExist(errors.Cause(err)) || f.changed("config") {
			return nil, errors.Trace(err)
		}
		glog.V(1).Infof("no config file at %s", fn)
	}

	f.apply(cfg)

	if err := cfg.Normalize(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

func (f *Flags) changed(name string) bool {
	fl := f.fs.Lookup(name)
	return fl != nil && fl.Changed
}

func (f *Flags) apply(cfg *Config) {
	if f.changed("base-output-dir") {
		cfg.BaseOutputDir = f.BaseOutputDir
	}
	if f.changed("toolchain") {
		cfg.Toolchain = f.Toolchain
	}
	if f.changed("app-version") {
		cfg.AppVersion = f.AppVersion
	}
	if f.changed("bundle-target") {
		cfg.BundleTarget = f.BundleTarget
	}
	if f.changed("window-width") {
		cfg.Window.Width = f.WindowWidth
	}
	if f.changed("window-height") {
		cfg.Window.Height = f.WindowHeight
	}
	if f.changed("preview-title") {
		cfg.PreviewTitle = f.PreviewTitle
	}
	if f.changed("verify-artifact") {
		cfg.VerifyArtifact = f.VerifyArtifact
	}
	if f.changed("fetch-icon") {
		cfg.FetchIcon = f.FetchIcon
	}
	if f.changed("history-db") {
		cfg.HistoryDB = f.HistoryDB
	}
	if f.changed("ui-addr") {
		cfg.UIAddr = f.UIAddr
	}
}

// ReadFile merges the YAML file into cfg. Keys absent from the file keep
// their current values.
func (cfg *Config) ReadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Trace(err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return errors.Annotatef(err, "parsing %s", filename)
	}
	glog.V(1).Infof("loaded config from %s", filename)
	return nil
}

// WriteFile saves cfg as YAML. Returns true if the file changed.
func (cfg *Config) WriteFile(filename string) (bool, error) {
	return ourio.WriteYAMLFileIfDifferent(filename, cfg, 0644)
}

// Normalize expands ~ in paths and makes them absolute.
func (cfg *Config) Normalize() error {
	var err error
	if cfg.BaseOutputDir, err = NormalizePath(cfg.BaseOutputDir); err != nil {
		return errors.Trace(err)
	}
	if cfg.HistoryDB, err = NormalizePath(cfg.HistoryDB); err != nil {
		return errors.Trace(err)
	}
	cfg.BundleTarget = strings.ToLower(strings.TrimSpace(cfg.BundleTarget))
	return nil
}

var knownBundleTargets = map[string]bool{
	"msi": true, "nsis": true, "deb": true, "appimage": true, "dmg": true,
}

// Validate reports every problem with cfg at once.
func (cfg *Config) Validate() error {
	var errs error
	if cfg.BaseOutputDir == "" {
		errs = multierror.Append(errs, errors.New("base output dir is not set"))
	}
	if _, err := cfg.ToolchainArgs(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if cfg.AppVersion == "" {
		errs = multierror.Append(errs, errors.New("app version is not set"))
	}
	if !knownBundleTargets[cfg.BundleTarget] {
		errs = multierror.Append(errs, errors.Errorf("unknown bundle target %q", cfg.BundleTarget))
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		errs = multierror.Append(errs, errors.Errorf("invalid window size %dx%d", cfg.Window.Width, cfg.Window.Height))
	}
	return errs
}

// ToolchainArgs splits the toolchain command line into arguments.
func (cfg *Config) ToolchainArgs() ([]string, error) {
	args, err := shellwords.Parse(cfg.Toolchain)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid toolchain command %q", cfg.Toolchain)
	}
	if len(args) == 0 {
		return nil, errors.New("toolchain command is empty")
	}
	return args, nil
}

// NormalizePath replaces a leading ~ with the home directory and makes p
// absolute. An empty path stays empty.
func NormalizePath(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	if p[0] == '~' {
		// user.Current() doesn't play nicely with static builds, so take the
		// home directory from the environment.
		homeEnvName := "HOME"
		if runtime.GOOS == "windows" {
			homeEnvName = "USERPROFILE"
		}
		p = os.Getenv(homeEnvName) + p[1:]
	}

	p, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Trace(err)
	}
	return p, nil
}
