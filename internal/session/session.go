// Package session gives every user interaction an explicit owner for its
// inventory. A Session is created seeded, mutated one interaction at a time,
// and discarded when it ends.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Makepad-fr/stock/internal/inventory"
	"github.com/rs/xid"
)

// ErrUnknown is returned for IDs that never existed, ended or expired.
var ErrUnknown = errors.New("unknown session")

// Session owns one Inventory for its lifetime.
type Session struct {
	ID        string
	StartedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	inv      *inventory.Inventory
	flash    Flash
	ended    bool
}

// Flash is a one-shot message shown on the next render.
type Flash struct {
	Text string
	Err  bool
}

// New starts a session holding a fresh copy of seed.
func New(seed []string) *Session {
	return newAt(seed, time.Now())
}

func newAt(seed []string, now time.Time) *Session {
	return &Session{
		ID:        xid.New().String(),
		StartedAt: now,
		lastSeen:  now,
		inv:       inventory.New(seed...),
	}
}

// Do runs fn with exclusive access to the inventory. One call is one
// interaction: a mutation followed by whatever reads the caller renders.
func (s *Session) Do(fn func(inv *inventory.Inventory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrUnknown
	}
	return fn(s.inv)
}

// Inventory exposes the inventory to single-threaded front ends.
func (s *Session) Inventory() *inventory.Inventory { return s.inv }

// SetFlash stores a message for the next render.
func (s *Session) SetFlash(text string, isErr bool) {
	s.mu.Lock()
	s.flash = Flash{Text: text, Err: isErr}
	s.mu.Unlock()
}

// TakeFlash returns the pending message and clears it.
func (s *Session) TakeFlash() Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = Flash{}
	return f
}

// End discards the inventory. Further Do calls fail with ErrUnknown.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	s.inv.Clear()
	s.flash = Flash{}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
