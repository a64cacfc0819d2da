package client

import "sync"

// IdentityService is the slice of the identity provider the session watcher
// consumes. *Client implements it over the REST API; tests substitute fakes.
type IdentityService interface {
	CurrentSession() (*Session, error)
	OnSessionChange(fn func(*Session)) (unsubscribe func())
	SignOut() error
}

// ProfileResolver turns a session subject into an application profile.
type ProfileResolver interface {
	ResolveProfile(subject string) (*User, error)
}

// Snapshot is the watcher's observable state. IsLoading is true during the
// initial resolution and during every re-resolution triggered by a session
// change.
type Snapshot struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
}

// Watcher mirrors the identity provider's session into an application user
// profile. It is an explicit object with Start/Close lifecycle rather than a
// process-wide singleton, and it serializes state transitions so observers
// never see a stale profile win over a newer one: every resolution takes a
// generation token and only the latest generation may publish.
type Watcher struct {
	identity IdentityService
	resolver ProfileResolver

	mu          sync.Mutex
	snapshot    Snapshot
	generation  uint64
	unsubscribe func()
	started     bool
	closed      bool
	subscribers map[int]chan struct{}
	nextSub     int
}

func NewWatcher(identity IdentityService, resolver ProfileResolver) *Watcher {
	return &Watcher{
		identity:    identity,
		resolver:    resolver,
		snapshot:    Snapshot{IsLoading: true},
		subscribers: map[int]chan struct{}{},
	}
}

// Start subscribes to session changes and kicks off the initial session
// check. Safe to call once; the subscription lives until Close.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started || w.closed {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	// Subscribe before the initial check so a change landing in between is
	// never lost; the generation token sorts out any overlap.
	unsub := w.identity.OnSessionChange(func(session *Session) {
		w.resolve(session)
	})

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		unsub()
		return
	}
	w.unsubscribe = unsub
	w.mu.Unlock()

	go func() {
		session, err := w.identity.CurrentSession()
		if err != nil {
			session = nil
		}
		w.resolve(session)
	}()
}

// resolve maps a session to a profile and publishes the outcome, unless a
// newer resolution started in the meantime. A failed or empty profile lookup
// collapses to unauthenticated.
func (w *Watcher) resolve(session *Session) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.generation++
	gen := w.generation
	w.snapshot.IsLoading = true
	w.notifyLocked()
	w.mu.Unlock()

	var user *User
	if session != nil {
		if resolved, err := w.resolver.ResolveProfile(session.Subject); err == nil {
			user = resolved
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || gen != w.generation {
		return
	}
	w.snapshot = Snapshot{
		User:            user,
		IsAuthenticated: user != nil,
		IsLoading:       false,
	}
	w.notifyLocked()
}

// Snapshot returns the current state.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot
}

// Subscribe returns a coalescing change signal and its unsubscribe function.
// After a signal, read Snapshot() for the current state; intermediate states
// may be skipped but the latest is always observable.
func (w *Watcher) Subscribe() (<-chan struct{}, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan struct{}, 1)
	id := w.nextSub
	w.nextSub++
	w.subscribers[id] = ch

	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subscribers, id)
	}
}

func (w *Watcher) notifyLocked() {
	for _, ch := range w.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SignOut clears the local state before asking the identity provider to end
// the session, so no observer ever sees IsAuthenticated true after SignOut
// returns. The bumped generation also discards any in-flight resolution.
func (w *Watcher) SignOut() error {
	w.mu.Lock()
	w.generation++
	w.snapshot = Snapshot{}
	w.notifyLocked()
	w.mu.Unlock()

	return w.identity.SignOut()
}

// Close unsubscribes from the identity provider and stops publishing. The
// watcher cannot be restarted.
func (w *Watcher) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	unsub := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
