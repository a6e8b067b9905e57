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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/webwrap/webwrap/cli/convert"
	"github.com/webwrap/webwrap/cli/history"
	"github.com/webwrap/webwrap/cli/scaffold"
)

type fakeHistory struct {
	entries []history.Entry
	limit   int
}

func (h *fakeHistory) List(ctx context.Context, limit int) ([]history.Entry, error) {
	h.limit = limit
	return h.entries, nil
}

type reply struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func newTestServer(t *testing.T, hl HistoryLister) (*Server, *httptest.Server) {
	return newTestServerAt(t, t.TempDir(), hl)
}

func newTestServerAt(t *testing.T, baseDir string, hl HistoryLister) (*Server, *httptest.Server) {
	c := convert.New(convert.Options{Scaffold: scaffold.Options{BaseDir: baseDir}})
	s := NewServer(c, hl)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doRequest(t *testing.T, method, url, body string) (int, reply) {
	return doRequestWithHeaders(t, method, url, body, nil)
}

func doRequestWithHeaders(t *testing.T, method, url, body string, headers map[string]string) (int, reply) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if method == "POST" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var r reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return resp.StatusCode, r
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `/api/convert`)
}

func TestConvert(t *testing.T) {
	_, ts := newTestServer(t, nil)

	status, r := doRequest(t, "POST", ts.URL+"/api/convert", `{"url": "https://example.com"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, r.Error)
	var msg string
	require.NoError(t, json.Unmarshal(r.Result, &msg))
	assert.Contains(t, msg, "example-com-app")

	status, r = doRequest(t, "POST", ts.URL+"/api/convert", `{"url": "ftp://example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, r.Error, "InvalidUrl")
	assert.Contains(t, r.Error, "unsupported scheme")
}

func TestConvertRequiresJSON(t *testing.T) {
	baseDir := t.TempDir()
	_, ts := newTestServerAt(t, baseDir, nil)

	for _, ct := range []string{"text/plain", "application/x-www-form-urlencoded", ""} {
		status, r := doRequestWithHeaders(t, "POST", ts.URL+"/api/convert", `{"url": "https://example.com"}`,
			map[string]string{"Content-Type": ct})
		assert.Equal(t, http.StatusUnsupportedMediaType, status, ct)
		assert.Contains(t, r.Error, "application/json", ct)
	}

	status, _ := doRequestWithHeaders(t, "POST", ts.URL+"/api/convert", `{"url": "https://example.com"}`,
		map[string]string{"Content-Type": "application/json; charset=utf-8"})
	assert.Equal(t, http.StatusOK, status)
}

func TestForeignOrigin(t *testing.T) {
	baseDir := t.TempDir()
	_, ts := newTestServerAt(t, baseDir, nil)

	for _, ct := range []string{"text/plain", "application/json"} {
		status, r := doRequestWithHeaders(t, "POST", ts.URL+"/api/convert", `{"url": "https://example.com"}`,
			map[string]string{"Origin": "https://evil.example", "Content-Type": ct})
		assert.Equal(t, http.StatusForbidden, status, ct)
		assert.Contains(t, r.Error, "evil.example", ct)
	}
	status, _ := doRequestWithHeaders(t, "GET", ts.URL+"/api/history", "",
		map[string]string{"Origin": "null"})
	assert.Equal(t, http.StatusForbidden, status)

	entries, err := os.ReadDir(baseDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	status, _ = doRequestWithHeaders(t, "POST", ts.URL+"/api/convert", `{"url": "https://example.com"}`,
		map[string]string{"Origin": ts.URL})
	assert.Equal(t, http.StatusOK, status)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, err = websocket.Dial(wsURL, "", "https://evil.example")
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	hl := &fakeHistory{entries: []history.Entry{{ID: "1", URL: "https://example.com", State: "Succeeded"}}}
	_, ts := newTestServer(t, hl)

	status, r := doRequest(t, "GET", ts.URL+"/api/history?limit=5", "")
	assert.Equal(t, http.StatusOK, status)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal(r.Result, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com", entries[0].URL)
	assert.Equal(t, 5, hl.limit)

	status, _ = doRequest(t, "GET", ts.URL+"/api/history?limit=x", "")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestHistoryDisabled(t *testing.T) {
	_, ts := newTestServer(t, nil)
	_, r := doRequest(t, "GET", ts.URL+"/api/history", "")
	assert.Equal(t, "[]", string(r.Result))
}

func TestVersion(t *testing.T) {
	_, ts := newTestServer(t, nil)
	_, r := doRequest(t, "GET", ts.URL+"/api/version", "")
	var v map[string]string
	require.NoError(t, json.Unmarshal(r.Result, &v))
	assert.NotEmpty(t, v["version"])
}

func TestEvents(t *testing.T) {
	s, ts := newTestServer(t, nil)

	ws, err := websocket.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", "", ts.URL)
	require.NoError(t, err)
	defer ws.Close()
	assert.Eventually(t, func() bool { return s.hub.count() == 1 }, 5*time.Second, 10*time.Millisecond)

	status, _ := doRequest(t, "POST", ts.URL+"/api/convert", `{"url": "https://example.org"}`)
	require.Equal(t, http.StatusOK, status)

	var states []string
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for len(states) == 0 || states[len(states)-1] != "Succeeded" {
		var m struct {
			Cmd  string        `json:"cmd"`
			Data convert.Event `json:"data"`
		}
		require.NoError(t, websocket.JSON.Receive(ws, &m))
		assert.Equal(t, "event", m.Cmd)
		assert.Equal(t, "https://example.org", m.Data.URL)
		states = append(states, m.Data.State.String())
	}
	assert.Equal(t, []string{"Validating", "Scaffolding", "Succeeded"}, states)
}
