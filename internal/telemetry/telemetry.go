// Package telemetry implements an optional live-progress broadcaster
// for the rewire loop: a small websocket server (github.com/gorilla/
// websocket) that pushes one JSON frame per iteration to every
// connected viewer. A rewire run with no Broadcaster attached pays
// nothing beyond a nil check; this is an observability add-on, never a
// required part of the rewiring algorithm itself.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Stat is one progress frame: the rewire loop's current best cost/level
// after an iteration, tagged with the run that produced it.
type Stat struct {
	RunID     string `json:"run_id"`
	Iteration int    `json:"iteration"`
	Cost      int    `json:"cost"`
	Level     int    `json:"level"`
	Improved  bool   `json:"improved"`
}

// Broadcaster fans out Stat frames to every currently connected
// websocket viewer, dropping frames for viewers whose write buffer is
// behind rather than blocking the rewire loop on a slow reader.
type Broadcaster struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	conns    map[*websocket.Conn]chan Stat
}

// NewBroadcaster returns a Broadcaster with no connected viewers yet.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]chan Stat),
	}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// progress viewer until the connection closes or errors.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ch := make(chan Stat, 32)
	b.mu.Lock()
	b.conns[conn] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.conns, conn)
		b.mu.Unlock()
		conn.Close()
	}()

	for stat := range ch {
		data, err := json.Marshal(stat)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// Publish sends stat to every connected viewer, dropping it for any
// viewer whose channel is currently full instead of blocking the
// caller (the rewire loop must never stall on a slow websocket peer).
func (b *Broadcaster) Publish(stat Stat) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.conns {
		select {
		case ch <- stat:
		default:
		}
	}
}

// Close disconnects every viewer and releases their channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn, ch := range b.conns {
		close(ch)
		conn.Close()
		delete(b.conns, conn)
	}
}
