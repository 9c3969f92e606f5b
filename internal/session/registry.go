// Package session tracks the transport sessions currently connected to the
// MCP server.
package session

import (
	"sort"
	"sync/atomic"
	"time"
)

// Transport kinds.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Info describes one connected session.
type Info struct {
	ID          string    `json:"id"`
	Transport   string    `json:"transport"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Registry maps session ids to session info.
//
// Concurrency model: a single internal event loop (goroutine) owns the map.
// Public methods communicate with this loop through channels, so no mutexes
// are required.
type Registry struct {
	registerCh   chan Info
	unregisterCh chan string
	snapshotCh   chan chan []Info

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewRegistry creates a registry and starts its event loop.
func NewRegistry() *Registry {
	r := &Registry{
		registerCh:   make(chan Info),
		unregisterCh: make(chan string),
		snapshotCh:   make(chan chan []Info),
		stopCh:       make(chan struct{}),
		stopped:      make(chan struct{}),
	}

	go r.run()
	return r
}

func (r *Registry) run() {
	defer close(r.stopped)

	sessions := make(map[string]Info)

	for {
		select {
		case <-r.stopCh:
			return

		case info := <-r.registerCh:
			if info.ConnectedAt.IsZero() {
				info.ConnectedAt = time.Now()
			}
			sessions[info.ID] = info

		case id := <-r.unregisterCh:
			delete(sessions, id)

		case resp := <-r.snapshotCh:
			out := make([]Info, 0, len(sessions))
			for _, info := range sessions {
				out = append(out, info)
			}
			sort.Slice(out, func(i, j int) bool {
				if out[i].ConnectedAt.Equal(out[j].ConnectedAt) {
					return out[i].ID < out[j].ID
				}
				return out[i].ConnectedAt.Before(out[j].ConnectedAt)
			})
			resp <- out
		}
	}
}

// Close stops the event loop. Later calls on the registry are no-ops.
func (r *Registry) Close() {
	if r.closed.CompareAndSwap(false, true) {
		close(r.stopCh)
	}
	<-r.stopped
}

// Register records a connected session. Registering an existing id replaces it.
func (r *Registry) Register(info Info) {
	if r.closed.Load() || info.ID == "" {
		return
	}
	select {
	case r.registerCh <- info:
	case <-r.stopped:
	}
}

// Unregister removes a session. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	if r.closed.Load() {
		return
	}
	select {
	case r.unregisterCh <- id:
	case <-r.stopped:
	}
}

// Snapshot returns the connected sessions ordered by connection time.
func (r *Registry) Snapshot() []Info {
	if r.closed.Load() {
		return []Info{}
	}

	resp := make(chan []Info, 1)
	select {
	case r.snapshotCh <- resp:
	case <-r.stopped:
		return []Info{}
	}

	select {
	case out := <-resp:
		return out
	case <-r.stopped:
		return []Info{}
	}
}

// Count returns the number of connected sessions.
func (r *Registry) Count() int {
	return len(r.Snapshot())
}
