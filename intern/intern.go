// Package intern implements the StringInterner contract Vellum's
// literal and identifier payloads depend on. The core treats interning
// as a pure function from bytes to a stable id; if a host shares one
// interner across compilation units running on separate goroutines,
// the interner — not the lexer or parser — is responsible for making
// that safe, which is why Pool is internally synchronized.
package intern

import "sync"

// StringID is a stable handle for an interned byte string.
type StringID uint32

const (
	// Empty is reserved for the empty string; Intern("") always
	// returns it without adding an entry.
	Empty StringID = 0
	// Invalid is never returned by Intern.
	Invalid StringID = ^StringID(0)
)

// Interner maps lexeme bytes to a stable id and back. Intern must be
// idempotent and collision-free: the same bytes always yield the same
// id, and distinct byte strings never share one.
type Interner interface {
	Intern(s []byte) StringID
	Lookup(id StringID) ([]byte, bool)
}

// Pool is a reference Interner implementation, grounded on a
// read-mostly string pool design: a fast read-locked lookup path for
// strings already interned, falling back to a write-locked slow path
// that double-checks before allocating a new id.
type Pool struct {
	mu      sync.RWMutex
	strings [][]byte
	lookup  map[string]StringID
}

// New creates an empty interning pool.
func New() *Pool {
	return &Pool{
		strings: [][]byte{Empty: []byte{}},
		lookup:  map[string]StringID{"": Empty},
	}
}

// Intern returns the stable id for s, allocating one on first sight.
// The returned id is valid for the lifetime of the Pool.
func (p *Pool) Intern(s []byte) StringID {
	if len(s) == 0 {
		return Empty
	}

	key := string(s) // one copy; required so the map key outlives s's backing array

	p.mu.RLock()
	if id, ok := p.lookup[key]; ok {
		p.mu.RUnlock()
		return id
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.lookup[key]; ok {
		return id
	}

	id := StringID(len(p.strings))
	stored := make([]byte, len(s))
	copy(stored, s)
	p.strings = append(p.strings, stored)
	p.lookup[key] = id
	return id
}

// Lookup recovers the bytes behind a previously interned id.
func (p *Pool) Lookup(id StringID) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(p.strings) {
		return nil, false
	}
	return p.strings[id], true
}

// Len reports how many distinct non-empty strings have been interned.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.strings) - 1
}
