package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator produces deterministic identifiers for tests.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator constructs a generator that yields identifiers with
// the given prefix. When prefix is empty, "id" is used.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%d", g.prefix, g.counter)
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// KeySequence yields a fixed cycle of registration keys, letting tests
// assert on the exact key a placeholder receives.
type KeySequence struct {
	mu   sync.Mutex
	keys []string
	next int
}

// NewKeySequence builds a sequence over the provided keys. An empty
// sequence yields SAL-TEST-0001 forever.
func NewKeySequence(keys ...string) *KeySequence {
	if len(keys) == 0 {
		keys = []string{"SAL-TEST-0001"}
	}
	return &KeySequence{keys: keys}
}

// Next returns the next key in the cycle.
func (s *KeySequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.keys[s.next%len(s.keys)]
	s.next++
	return key
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (s *KeySequence) NextFunc() func() string {
	if s == nil {
		return func() string { return "" }
	}
	return s.Next
}
