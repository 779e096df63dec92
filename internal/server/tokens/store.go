// Package tokens implements the in-memory bearer-token store: the sole
// source of truth for "who is this token". Tokens are opaque 16 random
// bytes, transmitted as standard base64 text, and expire a fixed TTL
// after issuance.
package tokens

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/vaultkeep/vaultkeep/internal/cryptox"
	"github.com/vaultkeep/vaultkeep/internal/logging"
)

// TokenLength is the decoded token size in bytes. Callers validate the
// decoded length before lookups so a malformed token is distinguishable
// from an unknown one.
const TokenLength = 16

// Grant is the result of issuing a token.
type Grant struct {
	Token     string
	ExpiresAt time.Time
}

type entry struct {
	username  string
	expiresAt time.Time
}

// Store holds live tokens for authenticated users. At most one live
// token exists per username: issuing a new one replaces the old.
//
// The primary map (token -> entry) and the reverse index
// (username -> token) are only ever mutated together under mu, so a
// reader can never observe one side updated and the other stale.
type Store struct {
	mu      sync.RWMutex
	byToken map[string]entry
	byUser  map[string]string

	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time

	done chan struct{}
}

// NewStore creates an empty store and, if sweepInterval is positive,
// starts the background sweeper. Close must be called at shutdown to
// stop it.
func NewStore(ttl, sweepInterval time.Duration, logger logging.Logger) *Store {
	s := &Store{
		byToken: make(map[string]entry),
		byUser:  make(map[string]string),
		ttl:     ttl,
		logger:  logger.With("module", "token_store"),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.runSweeper(sweepInterval)
	}
	return s
}

// Issue generates a fresh token for the username, replacing any token
// the username already holds. The returned expiry is absolute.
func (s *Store) Issue(username string) (Grant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token string
	for {
		b, err := cryptox.GenRandomBytes(TokenLength)
		if err != nil {
			return Grant{}, err
		}
		token = base64.StdEncoding.EncodeToString(b)
		// A collision among live tokens is astronomically unlikely but
		// handled rather than assumed away.
		if _, exists := s.byToken[token]; !exists {
			break
		}
	}

	if old, ok := s.byUser[username]; ok {
		delete(s.byToken, old)
	}

	expiresAt := s.now().Add(s.ttl)
	s.byToken[token] = entry{username: username, expiresAt: expiresAt}
	s.byUser[username] = token

	return Grant{Token: token, ExpiresAt: expiresAt}, nil
}

// IsValid reports whether the token is present and not yet expired.
// Expired entries are left in place for the sweeper (lazy expiry).
func (s *Store) IsValid(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byToken[token]
	return ok && e.expiresAt.After(s.now())
}

// Identity resolves a live token to its username. The validity check
// and the resolution happen under one lock acquisition, so the result
// cannot go stale between the two.
func (s *Store) Identity(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byToken[token]
	if !ok || !e.expiresAt.After(s.now()) {
		return "", false
	}
	return e.username, true
}

// ExpiresAt returns the absolute expiry of a token, live or not.
func (s *Store) ExpiresAt(token string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byToken[token]
	return e.expiresAt, ok
}

// Revoke removes the username's live token, if any, from both maps in
// one step. Revoking a username with no token is a no-op.
func (s *Store) Revoke(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byUser[username]
	if !ok {
		return
	}
	if _, ok := s.byToken[token]; !ok {
		// Both maps are mutated under one lock, so this cannot happen
		// unless the store itself is broken.
		panic("tokens: reverse index references unknown token")
	}
	delete(s.byToken, token)
	delete(s.byUser, username)
}

// Sweep physically removes every entry expired at the given instant and
// returns how many were dropped. Validity checks never depend on it; it
// only reclaims space.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, e := range s.byToken {
		if e.expiresAt.Before(now) {
			delete(s.byToken, token)
			delete(s.byUser, e.username)
			removed++
		}
	}
	return removed
}

// Close stops the background sweeper. The store remains usable, it just
// no longer reclaims expired entries on its own.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) runSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.logger.Debug(context.Background(), "swept expired tokens", "count", n)
			}
		}
	}
}
