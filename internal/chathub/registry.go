package chathub

import (
	"log"
	"sync"
)

// Registry is the in-memory map from user id to live connection handle.
// It owns connect/disconnect/lookup and is the only shared mutable state
// between connection goroutines. One mutex guards the maps; every
// operation completes without suspending, so coarse locking is fine at
// this scale.
//
// Callers are expected to pass canonical ids (see models.CanonicalID).
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
	peers   map[string]string // user id -> counterpart fixed at connect time
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
		peers:   make(map[string]string),
	}
}

// Connect binds userID to the given handle, recording peerID as the
// user's current counterpart. If the user already has a live handle it is
// closed first, so a reconnect after a network flap never leaves a zombie
// connection behind: at most one handle per user at any instant.
func (r *Registry) Connect(userID, peerID string, c Client) {
	r.mu.Lock()
	prior := r.clients[userID]
	r.clients[userID] = c
	r.peers[userID] = peerID
	online := len(r.clients)
	r.mu.Unlock()

	// Close outside the lock: a wedged prior handle must not stall every
	// other registry operation for the write deadline.
	if prior != nil {
		if err := prior.Close(); err != nil {
			log.Printf("Error closing prior connection for %s: %v", userID, err)
		}
	}
	log.Printf("User %s connected to chat with %s (%d online)", userID, peerID, online)
}

// Disconnect removes the user's entry and counterpart state. Disconnecting
// an unregistered user is a no-op, not an error.
func (r *Registry) Disconnect(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[userID]; !ok {
		return
	}
	delete(r.clients, userID)
	delete(r.peers, userID)
	log.Printf("User %s disconnected (%d online)", userID, len(r.clients))
}

// DisconnectClient removes the user's entry only if it is still bound to
// c. A connection torn down after being replaced by a reconnect must not
// remove its successor, so transport teardown goes through here rather
// than Disconnect. Reports whether an entry was removed.
func (r *Registry) DisconnectClient(userID string, c Client) bool {
	return r.removeIfCurrent(userID, c)
}

// Lookup returns the live handle for userID, if any.
func (r *Registry) Lookup(userID string) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[userID]
	return c, ok
}

// PeerOf returns the counterpart fixed when userID connected.
func (r *Registry) PeerOf(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peer, ok := r.peers[userID]
	return peer, ok
}

// ListOnline returns a snapshot of the currently connected user ids.
func (r *Registry) ListOnline() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.clients))
	for id := range r.clients {
		users = append(users, id)
	}
	return users
}

// SendTo writes one frame to the user's handle. When the user has no
// entry it returns false with no side effect. When the write fails the
// connection is treated as dead: the entry is removed (if still bound to
// the same handle) and false is returned.
func (r *Registry) SendTo(userID string, frame any) bool {
	r.mu.RLock()
	c, ok := r.clients[userID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	if err := c.Send(frame); err != nil {
		log.Printf("Error sending to user %s: %v", userID, err)
		r.removeIfCurrent(userID, c)
		return false
	}
	return true
}

// removeIfCurrent prunes the entry only when it still maps to the given
// handle, so a concurrent reconnect is never torn down by a stale write
// error or a late teardown.
func (r *Registry) removeIfCurrent(userID string, c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[userID]
	if !ok || current != c {
		return false
	}
	delete(r.clients, userID)
	delete(r.peers, userID)
	_ = c.Close()
	log.Printf("User %s disconnected (%d online)", userID, len(r.clients))
	return true
}
