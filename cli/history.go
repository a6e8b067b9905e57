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
	"text/tabwriter"

	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/config"
	"github.com/webwrap/webwrap/cli/history"
)

func historyCmd(ctx context.Context, cfg *config.Config) error {
	if cfg.HistoryDB == "" {
		return errors.New("history is disabled (--history-db is empty)")
	}
	s, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		return errors.Trace(err)
	}
	defer s.Close()

	entries, err := s.List(ctx, *limit)
	if err != nil {
		return errors.Trace(err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STARTED\tSTATE\tURL\tRESULT\n")
	for _, e := range entries {
		result := e.ArtifactPath
		if e.ErrorKind != "" {
			result = e.ErrorKind
			if *verbose {
				result += ": " + e.ErrorMessage
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.StartedAt.Format("2006-01-02 15:04:05"), e.State, e.URL, result)
	}
	return errors.Trace(w.Flush())
}
