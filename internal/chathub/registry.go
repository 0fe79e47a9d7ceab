package chathub

import (
	"errors"
	"sync"

	"relaychat/backend/internal/models"
)

var (
	// ErrIdentityRebound is returned when SetIdentity is called twice with
	// different identities for the same connection.
	ErrIdentityRebound = errors.New("chathub: connection identity already bound")
	// ErrNotRegistered is returned when an identity is set on a connection
	// the registry does not hold.
	ErrNotRegistered = errors.New("chathub: connection not registered")
)

type identity struct {
	userID   string
	username string
}

func (id identity) set() bool { return id.userID != "" }

// Registry is the process-wide set of live connections and the single
// authority for "who is online". One instance lives for the whole server
// process. Every operation is safe for concurrent use from independent
// connection goroutines, and none of them touches the network: pushing
// frames to a connection happens outside the lock.
type Registry struct {
	mu      sync.RWMutex
	members map[Client]identity
}

func NewRegistry() *Registry {
	return &Registry{members: make(map[Client]identity)}
}

// Add registers a connection, initially without identity.
func (r *Registry) Add(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[c]; !ok {
		r.members[c] = identity{}
	}
}

// Remove deregisters a connection and reports whether it was present, so a
// teardown racing a liveness timeout cleans up exactly once.
func (r *Registry) Remove(c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[c]; !ok {
		return false
	}
	delete(r.members, c)
	return true
}

// SetIdentity binds a verified (userID, username) pair to a connection.
// Repeating the same pair is a no-op; a different pair is an error. Both
// fields are set together, so a member either has a full identity or none.
func (r *Registry) SetIdentity(c Client, userID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.members[c]
	if !ok {
		return ErrNotRegistered
	}
	if cur.set() {
		if cur.userID == userID && cur.username == username {
			return nil
		}
		return ErrIdentityRebound
	}
	r.members[c] = identity{userID: userID, username: username}
	return nil
}

// Identity returns the identity bound to a connection, ok=false while the
// connection is still anonymous or already removed.
func (r *Registry) Identity(c Client) (userID, username string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, member := r.members[c]
	if !member || !id.set() {
		return "", "", false
	}
	return id.userID, id.username, true
}

// ForEach visits a snapshot of the current membership. The visitor runs
// without the lock held, so it may safely push frames to connections.
func (r *Registry) ForEach(visit func(Client)) {
	r.mu.RLock()
	snapshot := make([]Client, 0, len(r.members))
	for c := range r.members {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		visit(c)
	}
}

// FindByUserID returns every connection bound to the given user: zero, one,
// or several when the user is connected from multiple devices.
func (r *Registry) FindByUserID(userID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found []Client
	for c, id := range r.members {
		if id.set() && id.userID == userID {
			found = append(found, c)
		}
	}
	return found
}

// Roster returns an entry for every member with a bound identity. It is
// recomputed on every call, never cached.
func (r *Registry) Roster() []models.RosterEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roster := make([]models.RosterEntry, 0, len(r.members))
	for _, id := range r.members {
		if id.set() {
			roster = append(roster, models.RosterEntry{UserID: id.userID, Username: id.username})
		}
	}
	return roster
}

// Len reports the number of registered connections, identified or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
