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
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/common/pflagenv"
	"github.com/webwrap/webwrap/version"
)

const (
	envPrefix = "WEBWRAP_"
)

// Flags shared by several commands. Config-related flags are registered by
// the config package.
var (
	cfgFlags = config.RegisterFlags(flag.CommandLine)

	origin    = flag.String("origin", "main", "Label of the window a conversion is requested from")
	noPreview = flag.Bool("no-preview", false, "Do not show the preview window")
	label     = flag.String("label", "", "Window label")
	title     = flag.String("title", "", "Window title")
	limit     = flag.Int("limit", 20, "Maximum number of entries to show")
	verbose   = flag.Bool("verbose", false, "Verbose output")

	versionFlag = flag.Bool("version", false, "Print version and exit")
	helpFull    = flag.Bool("helpfull", false, "Show full help, including advanced flags")
)

var (
	// put all commands here
	commands = []command{
		{"convert", convertCmd, `Convert a web page into a desktop app: scaffold, preview and build the installer`, nil, []string{"origin", "no-preview", "base-output-dir", "bundle-target", "fetch-icon"}, false},
		{"scaffold", scaffoldCmd, `Generate the app project without building it`, nil, []string{"base-output-dir", "fetch-icon"}, false},
		{"build", buildCmd, `Build the installer of a previously scaffolded app`, nil, []string{"base-output-dir", "toolchain", "bundle-target", "verify-artifact"}, false},
		{"check", checkCmd, `Show how an existing app project differs from a fresh scaffold`, nil, []string{"base-output-dir"}, false},
		{"preview", previewCmd, `Show a web page in a preview window`, nil, []string{"label", "title", "window-width", "window-height"}, false},
		{"ui", uiCmd, `Start the local web UI`, nil, []string{"ui-addr"}, false},
		{"doctor", doctorCmd, `Check that the build toolchain is installed`, nil, []string{"toolchain"}, false},
		{"history", historyCmd, `Show past conversions`, nil, []string{"limit", "history-db"}, false},
		{"config-init", configInitCmd, `Write the effective configuration to the config file`, nil, []string{"config"}, true},
		{"version", versionCmd, `Print version`, nil, nil, true},
	}
)

type command struct {
	name     string
	handler  handler
	short    string
	required []string
	optional []string
	extended bool
}

type handler func(ctx context.Context, cfg *config.Config) error

func run(ctx context.Context) error {
	for _, c := range commands {
		if c.name == flag.Arg(0) {
			// check required flags
			if err := checkFlags(c.required); err != nil {
				return errors.Trace(err)
			}
			cfg, err := cfgFlags.Load()
			if err != nil {
				return errors.Annotatef(err, "invalid configuration")
			}
			// run the handler
			if err := c.handler(ctx, cfg); err != nil {
				return errors.Trace(err)
			}
			return nil
		}
	}
	// not found
	usage()
	return nil
}

func main() {
	initFlags()
	// Values already in the environment take precedence over .env.
	if err := pflagenv.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	flag.Parse()
	if err := pflagenv.Parse(envPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer glog.Flush()

	if *helpFull {
		unhideFlags()
		usage()
		return
	} else if *versionFlag {
		fmt.Println(version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		glog.Infof("Error: %+v", err)
		printError(err)
		glog.Flush()
		os.Exit(1)
	}
}
