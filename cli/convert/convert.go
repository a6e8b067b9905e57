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

// Package convert runs the webpage to desktop app workflow: validate the
// URL, scaffold the project, show a preview window and build the
// installer.
package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/juju/errors"

	"github.com/webwrap/webwrap/cli/bundle"
	"github.com/webwrap/webwrap/cli/errkind"
	"github.com/webwrap/webwrap/cli/history"
	"github.com/webwrap/webwrap/cli/scaffold"
	"github.com/webwrap/webwrap/cli/weburl"
	"github.com/webwrap/webwrap/cli/window"
	"github.com/webwrap/webwrap/common/keylock"
)

const successFormat = "App created successfully! You can find the installer at: %s"

// Request is what the front-end sends: {"url": "..."}.
type Request struct {
	URL string `json:"url"`
	// Origin is the label of the window the request came from.
	Origin string `json:"origin,omitempty"`
}

type Result struct {
	ID           string `json:"id"`
	AppName      string `json:"app_name"`
	ProjectDir   string `json:"project_dir"`
	ArtifactPath string `json:"artifact_path,omitempty"`
	WindowLabel  string `json:"window_label,omitempty"`
	Message      string `json:"message"`
}

// Recorder stores finished conversions.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// IconFinder returns the icon of the page at pageURL.
type IconFinder func(ctx context.Context, pageURL string) (image.Image, error)

type Options struct {
	Scaffold scaffold.Options
	// Presenter shows the preview window. Nil skips the preview.
	Presenter *window.Presenter
	// Builder builds the installer. Nil stops after scaffolding.
	Builder *bundle.Builder
	// Locks serializes conversions of the same app. Nil means no locking.
	Locks *keylock.Locks
	// History is optional.
	History Recorder
	// FindIcon is optional; a failure falls back to the generated icon.
	FindIcon IconFinder
}

type Converter struct {
	opts Options

	mu        sync.Mutex
	observers map[int]Observer
	nextObsID int
}

func New(opts Options) *Converter {
	return &Converter{opts: opts, observers: map[int]Observer{}}
}

// Subscribe registers o to receive events of every conversion. Observers
// are called synchronously from the converting goroutine.
func (c *Converter) Subscribe(o Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = o
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Converter) emit(ev Event) {
	ev.Time = time.Now()
	c.mu.Lock()
	obs := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		obs = append(obs, o)
	}
	c.mu.Unlock()
	for _, o := range obs {
		o(ev)
	}
}

// conversion is the state of one Convert call.
type conversion struct {
	c     *Converter
	id    string
	req   Request
	state State
	start time.Time
	res   *Result
}

func (cv *conversion) enter(s State) {
	cv.state = s
	glog.V(1).Infof("conversion %s: %s", cv.id, s)
	cv.c.emit(Event{ID: cv.id, URL: cv.req.URL, State: s})
}

// Convert runs the workflow for req. Every failure is terminal and
// classified with an errkind.Kind.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	cv := &conversion{
		c:     c,
		id:    uuid.NewString(),
		req:   req,
		state: Idle,
		start: time.Now(),
		res:   &Result{},
	}
	cv.res.ID = cv.id

	err := cv.run(ctx)
	if err != nil {
		cv.state = Failed
		kind := errkind.KindOf(err)
		glog.Errorf("conversion %s of %q failed: %s", cv.id, req.URL, err)
		c.emit(Event{ID: cv.id, URL: req.URL, State: Failed, ErrorKind: kind.String(), Error: err.Error()})
		c.record(ctx, cv, err)
		return nil, errors.Trace(err)
	}

	cv.state = Succeeded
	c.emit(Event{ID: cv.id, URL: req.URL, State: Succeeded, Message: cv.res.Message})
	c.record(ctx, cv, nil)
	return cv.res, nil
}

func (cv *conversion) run(ctx context.Context) error {
	c := cv.c

	cv.enter(Validating)
	u, err := weburl.Parse(cv.req.URL)
	if err != nil {
		return errors.Trace(err)
	}

	appName := scaffold.AppName(u)
	cv.res.AppName = appName

	if c.opts.Locks != nil {
		unlock, err := c.opts.Locks.Lock(ctx, scaffold.GetProjectDirName(appName))
		if err != nil {
			return errkind.New(errkind.IoError, "waiting for "+appName, err)
		}
		defer unlock()
	}

	cv.enter(Scaffolding)
	sopts := c.opts.Scaffold
	if c.opts.FindIcon != nil && sopts.Icon == nil {
		if icon, err := c.opts.FindIcon(ctx, u.String()); err == nil {
			sopts.Icon = icon
		} else {
			glog.Warningf("no site icon for %s, using the generated one: %s", u, err)
		}
	}
	p, err := scaffold.Scaffold(u, sopts)
	if err != nil {
		return errors.Trace(err)
	}
	cv.res.ProjectDir = p.Dir

	if c.opts.Presenter != nil {
		cv.enter(Presenting)
		s, err := c.opts.Presenter.Present(u, cv.req.Origin)
		if err != nil {
			return errors.Trace(err)
		}
		cv.res.WindowLabel = s.Label
	}

	if c.opts.Builder == nil {
		cv.res.Message = "App project created at: " + p.Dir
		return nil
	}

	cv.enter(Building)
	br, err := c.opts.Builder.Build(ctx, p.Dir, appName)
	if err != nil {
		return errors.Trace(err)
	}
	cv.res.ArtifactPath = br.ArtifactPath
	cv.res.Message = SuccessMessage(br.ArtifactPath)
	return nil
}

func (c *Converter) record(ctx context.Context, cv *conversion, err error) {
	if c.opts.History == nil {
		return
	}
	e := history.Entry{
		ID:           cv.id,
		URL:          cv.req.URL,
		AppName:      cv.res.AppName,
		ProjectDir:   cv.res.ProjectDir,
		ArtifactPath: cv.res.ArtifactPath,
		State:        cv.state.String(),
		StartedAt:    cv.start,
		FinishedAt:   time.Now(),
	}
	if err != nil {
		e.ErrorKind = errkind.KindOf(err).String()
		e.ErrorMessage = err.Error()
	}
	// History is best effort; it never fails a conversion.
	if rerr := c.opts.History.Record(ctx, e); rerr != nil {
		glog.Errorf("failed to record conversion %s: %s", cv.id, rerr)
	}
}

func SuccessMessage(artifactPath string) string {
	return fmt.Sprintf(successFormat, artifactPath)
}

// Handle is the request-response boundary for front-ends: body is a JSON
// Request, the result is the success message. Every failure is returned
// as an error whose text describes the problem.
func (c *Converter) Handle(ctx context.Context, body []byte) (string, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return "", errors.Errorf("invalid request: %s", err)
	}
	res, err := c.Convert(ctx, req)
	if err != nil {
		return "", errors.New(err.Error())
	}
	return res.Message, nil
}
