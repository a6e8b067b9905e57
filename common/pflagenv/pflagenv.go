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

package pflagenv

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
)

// ParseFlagSet iterates through all non-set flags in the given FlagSet,
// checks if there is an environment variable with the uppercased flag name
// prepended with the given envPrefix, and if so, sets flag value to the
// environment variable value. Flags set this way are marked as Changed.
//
// It should be called after Parse is called for the given FlagSet.
func ParseFlagSet(fs *pflag.FlagSet, envPrefix string) error {
	// pflag can't tell a flag set to its default value from a flag that was
	// not set at all, so collect everything and drop what was set.
	nonset := make(map[string]*pflag.Flag)

	fs.VisitAll(func(f *pflag.Flag) {
		nonset[f.Name] = f
	})
	fs.Visit(func(f *pflag.Flag) {
		delete(nonset, f.Name)
	})

	return setFromEnv(nonset, envPrefix)
}

// Parse is the same as ParseFlagSet, but operates on pflag.CommandLine.
func Parse(envPrefix string) error {
	return ParseFlagSet(pflag.CommandLine, envPrefix)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables that are already set are left alone, and missing
// files are ignored.
func LoadDotEnv(filenames ...string) error {
	for _, fn := range filenames {
		if _, err := os.Stat(fn); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(fn); err != nil {
			return errors.Annotatef(err, "loading %s", fn)
		}
	}
	return nil
}

func setFromEnv(nonset map[string]*pflag.Flag, envPrefix string) error {
	for name, f := range nonset {
		envName := EnvName(name, envPrefix)
		envVar := os.Getenv(envName)
		if envVar == "" {
			continue
		}
		if err := f.Value.Set(envVar); err != nil {
			return errors.Annotatef(err, "invalid value %q for %s", envVar, envName)
		}
		f.Changed = true
	}
	return nil
}

// EnvName returns the environment variable consulted for flagName.
func EnvName(flagName, envPrefix string) string {
	flagName = strings.ToUpper(flagName)
	flagName = strings.Replace(flagName, "-", "_", -1)
	return fmt.Sprint(envPrefix, flagName)
}
