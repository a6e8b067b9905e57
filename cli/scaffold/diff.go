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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/juju/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/webwrap/webwrap/common/ourglob"
)

type DiffStatus string

const (
	DiffAdded   DiffStatus = "added"
	DiffRemoved DiffStatus = "removed"
	DiffChanged DiffStatus = "changed"
)

// FileDiff describes one file whose on-disk state differs from the
// rendered project. Text is a human readable diff for text files.
type FileDiff struct {
	Path   string
	Status DiffStatus
	Text   string
}

// Files the toolchain and the build produce in a project.
var toolchainOutputs = ourglob.PatItems{
	{Pattern: TauriDirName + "/target", Match: true},
	{Pattern: TauriDirName + "/gen", Match: true},
	{Pattern: TauriDirName + "/Cargo.lock", Match: true},
	{Pattern: BuildLog, Match: true},
}

// Diff compares p against its directory on disk. Files the scaffold does
// not generate, except toolchain outputs, are reported as removed. An
// empty result means Write would not change anything.
func Diff(p *Project) ([]FileDiff, error) {
	onDisk := map[string][]byte{}
	err := filepath.WalkDir(p.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p.Dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		ignored, err := toolchainOutputs.Match(rel)
		if err != nil {
			return err
		}
		switch {
		case ignored && d.IsDir():
			return filepath.SkipDir
		case ignored || d.IsDir():
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		onDisk[rel] = data
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Trace(err)
	}

	var res []FileDiff
	dmp := diffmatchpatch.New()
	for _, f := range p.Files {
		old, ok := onDisk[f.Path]
		delete(onDisk, f.Path)
		switch {
		case !ok:
			res = append(res, FileDiff{Path: f.Path, Status: DiffAdded})
		case !bytes.Equal(old, f.Data):
			fd := FileDiff{Path: f.Path, Status: DiffChanged}
			if utf8.Valid(old) && utf8.Valid(f.Data) {
				diffs := dmp.DiffMain(string(old), string(f.Data), false)
				fd.Text = dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
			} else {
				fd.Text = "binary files differ"
			}
			res = append(res, fd)
		}
	}
	for path := range onDisk {
		res = append(res, FileDiff{Path: path, Status: DiffRemoved})
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Path < res[j].Path })
	return res, nil
}
