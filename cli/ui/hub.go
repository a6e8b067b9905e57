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
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

type wsMessage struct {
	Cmd  string      `json:"cmd"`
	Data interface{} `json:"data"`
}

const defaultWriteTimeout = 5 * time.Second

// hub tracks connected websocket clients.
type hub struct {
	// writeTimeout bounds each send; a client that does not keep up is
	// dropped.
	writeTimeout time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{writeTimeout: defaultWriteTimeout, clients: map[*websocket.Conn]bool{}}
}

func (h *hub) add(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ws] = true
}

func (h *hub) remove(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ws)
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	res := make([]*websocket.Conn, 0, len(h.clients))
	for ws := range h.clients {
		res = append(res, ws)
	}
	return res
}

// broadcast sends m to every client. The lock is not held while sending.
func (h *hub) broadcast(m wsMessage) {
	for _, ws := range h.snapshot() {
		ws.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := websocket.JSON.Send(ws, m); err != nil {
			glog.V(1).Infof("websocket send error: %v, dropping client", err)
			h.remove(ws)
			ws.Close()
		}
	}
}

// handle serves one websocket connection. Clients only listen; anything
// they send is discarded.
func (h *hub) handle(ws *websocket.Conn) {
	h.add(ws)
	defer func() {
		h.remove(ws)
		ws.Close()
	}()

	for {
		var text string
		if err := websocket.Message.Receive(ws, &text); err != nil {
			glog.V(1).Infof("websocket recv error: %v, closing connection", err)
			return
		}
	}
}
