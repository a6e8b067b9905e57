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

// Package ui is the local web front-end: a form that submits a URL to the
// conversion workflow, plus live progress and history.
package ui

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
	goji "goji.io"
	"goji.io/pat"
	"golang.org/x/net/websocket"

	"github.com/webwrap/webwrap/cli/convert"
	"github.com/webwrap/webwrap/cli/history"
	"github.com/webwrap/webwrap/version"
)

//go:embed web_root
var webRoot embed.FS

const maxRequestSize = 64 * 1024

// HistoryLister is the read side of the conversion history.
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

type Server struct {
	conv    *convert.Converter
	history HistoryLister
	hub     *hub
}

// NewServer returns a server for c. hl may be nil if history is disabled.
func NewServer(c *convert.Converter, hl HistoryLister) *Server {
	s := &Server{conv: c, history: hl, hub: newHub()}
	c.Subscribe(func(ev convert.Event) {
		s.hub.broadcast(wsMessage{Cmd: "event", Data: ev})
	})
	return s
}

func (s *Server) Handler() http.Handler {
	rRoot := goji.NewMux()
	rRoot.Use(makeLogger())

	rRoot.Handle(pat.New("/ws"), websocket.Server{
		Handler:   s.hub.handle,
		Handshake: checkWebsocketOrigin,
	})

	rAPI := goji.SubMux()
	rAPI.Use(makeOriginCheck())
	rRoot.Handle(pat.New("/api/*"), rAPI)
	rAPI.HandleFunc(pat.Post("/convert"), s.handleConvert)
	rAPI.HandleFunc(pat.Get("/history"), s.handleHistory)
	rAPI.HandleFunc(pat.Get("/version"), s.handleVersion)

	sub, err := fs.Sub(webRoot, "web_root")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	rRoot.Handle(pat.Get("/*"), http.FileServer(http.FS(sub)))

	return rRoot
}

// checkWebsocketOrigin accepts only handshakes made by pages of this server.
func checkWebsocketOrigin(cfg *websocket.Config, r *http.Request) error {
	if r.Header.Get("Origin") == "" || !sameOrigin(r) {
		return errors.Errorf("origin %q is not allowed", r.Header.Get("Origin"))
	}
	origin, err := websocket.Origin(cfg, r)
	if err != nil {
		return errors.Trace(err)
	}
	cfg.Origin = origin
	return nil
}

type errMessage struct {
	Error string `json:"error"`
}

func httpError(w http.ResponseWriter, status int, err error) {
	msg, _ := json.Marshal(errMessage{err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(msg)
}

func httpReply(w http.ResponseWriter, result interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	var msg []byte
	status := http.StatusOK
	if err != nil {
		msg, _ = json.Marshal(errMessage{err.Error()})
		status = http.StatusInternalServerError
	} else {
		msg, err = json.Marshal(map[string]interface{}{"result": result})
		if err != nil {
			msg, _ = json.Marshal(errMessage{err.Error()})
			status = http.StatusInternalServerError
		}
	}
	w.WriteHeader(status)
	w.Write(msg)
}

// handleConvert runs a whole conversion for the request; the response is
// sent when it is finished. Progress goes to websocket clients.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		httpError(w, http.StatusUnsupportedMediaType, errors.New("request body must be application/json"))
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		httpReply(w, nil, errors.Trace(err))
		return
	}
	res, err := s.conv.Handle(r.Context(), body)
	httpReply(w, res, err)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		httpReply(w, []history.Entry{}, nil)
		return
	}
	limit := 50
	if l := r.FormValue("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			httpReply(w, nil, errors.Errorf("invalid limit %q", l))
			return
		}
		limit = n
	}
	entries, err := s.history.List(r.Context(), limit)
	if entries == nil {
		entries = []history.Entry{}
	}
	httpReply(w, entries, err)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httpReply(w, map[string]string{
		"version":  version.GetVersion(),
		"build_id": version.BuildId,
	}, nil)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hs.Shutdown(sctx)
	}()
	glog.Infof("Listening at %s ...", ln.Addr())
	if err := hs.Serve(ln); err != nil && err != http.ErrServerClosed {
		return errors.Trace(err)
	}
	return nil
}
