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

package ui

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// makeLogger returns a goji middleware that logs every request with its
// status and latency.
func makeLogger() func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		mw := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path += "?" + r.URL.RawQuery
			}

			clientIP := r.RemoteAddr
			if ips, ok := r.Header["X-Real-Ip"]; ok && len(ips) > 0 {
				clientIP = ips[0]
			}

			glog.V(1).Infof("START | %s | %-7s %s", clientIP, r.Method, path)

			// Websocket upgrades need the original writer (http.Hijacker).
			if r.URL.Path == "/ws" {
				inner.ServeHTTP(w, r)
				return
			}

			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			inner.ServeHTTP(sr, r)

			glog.Infof("END %13v | %d | %s | %-7s %s",
				time.Since(start), sr.status, clientIP, r.Method, path)
		}
		return http.HandlerFunc(mw)
	}
}

// sameOrigin reports whether the Origin header of r, if any, names the host
// the request was sent to. Browsers always send it on cross-site requests.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// makeOriginCheck returns a goji middleware that refuses requests coming
// from pages served by other origins.
func makeOriginCheck() func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		mw := func(w http.ResponseWriter, r *http.Request) {
			if !sameOrigin(r) {
				glog.Warningf("refusing %s %s from origin %q", r.Method, r.URL.Path, r.Header.Get("Origin"))
				httpError(w, http.StatusForbidden, errors.Errorf("origin %q is not allowed", r.Header.Get("Origin")))
				return
			}
			inner.ServeHTTP(w, r)
		}
		return http.HandlerFunc(mw)
	}
}
