package authwatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"
	"time"
)

var ErrLoginFailed = errors.New("authwatch: login failed")

// Identity is the payload of a successful auth check.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Watcher tracks whether the current client session is authenticated.
// It holds a cookie jar (the token cookie lives there), re-checks on
// every auth-changed emission, and guarantees that only the most
// recently started check may change the observed state: results of
// superseded in-flight checks are discarded.
type Watcher struct {
	base    string
	client  *http.Client
	changed *Signal

	seq atomic.Uint64 // generation of the newest started check

	mu       sync.Mutex
	authed   bool
	identity *Identity
	next     int
	subs     map[int]chan bool
}

func New(baseURL string) (*Watcher, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("authwatch: cookie jar: %w", err)
	}

	return &Watcher{
		base: baseURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		changed: NewSignal(),
		subs:    make(map[int]chan bool),
	}, nil
}

// Changed exposes the auth-changed signal so UI code can publish its
// own triggers (e.g. page navigation).
func (w *Watcher) Changed() *Signal {
	return w.changed
}

// Authenticated reports the last settled state.
func (w *Watcher) Authenticated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.authed
}

// Identity returns the last known identity, nil when unauthenticated.
func (w *Watcher) Identity() *Identity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.identity
}

// Subscribe delivers state transitions. Only changes are delivered,
// not every check.
func (w *Watcher) Subscribe() (<-chan bool, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.next
	w.next++

	ch := make(chan bool, 4)
	w.subs[id] = ch

	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Run re-checks once immediately and then on every auth-changed
// emission, until ctx is cancelled. Mirrors the page hook: check on
// mount, re-check on each authChange event.
func (w *Watcher) Run(ctx context.Context) {
	notify, cancel := w.changed.Subscribe()
	defer cancel()

	w.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-notify:
			w.Check(ctx)
		}
	}
}

// Check calls the auth check endpoint once. Any failure, transport or
// HTTP, means unauthenticated; nothing is retried. Returns the settled
// state, or the previous state when this check was superseded by a
// newer one before completing.
func (w *Watcher) Check(ctx context.Context) bool {
	gen := w.seq.Add(1)

	identity, ok := w.fetch(ctx)
	return w.settle(gen, ok, identity)
}

func (w *Watcher) fetch(ctx context.Context) (*Identity, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.base+"/api/auth/check", nil)
	if err != nil {
		return nil, false
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, false
	}
	return &identity, true
}

// settle applies a check result unless a newer check has started since.
func (w *Watcher) settle(gen uint64, ok bool, identity *Identity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.seq.Load() {
		// superseded; the newer check owns the state
		return w.authed
	}

	if w.authed != ok {
		for _, ch := range w.subs {
			select {
			case ch <- ok:
			default:
			}
		}
	}

	w.authed = ok
	if ok {
		w.identity = identity
	} else {
		w.identity = nil
	}
	return w.authed
}

// Login posts credentials. On success the token cookie lands in the
// jar and the auth-changed signal fires immediately, so gated UI does
// not wait for the next natural re-check.
func (w *Watcher) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.base+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrLoginFailed
	}

	w.changed.Emit()
	return nil
}

// Logout clears the cookie server-side and fires the signal. The
// request failing does not keep the client logged in: the signal fires
// regardless and the follow-up check settles the real state.
func (w *Watcher) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.base+"/api/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		w.changed.Emit()
		return err
	}
	defer resp.Body.Close()

	w.changed.Emit()
	return nil
}
