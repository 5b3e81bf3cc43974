package morph

import (
	"errors"
	"sync"

	"github.com/npillmayer/glrnl"
)

// Lazy is an Analyzer which creates its underlying analyzer on first use.
// Loading an analyzer may be expensive, so Lazy allows declaring analyzers
// as package level variables. Lazy is safe for concurrent use.
type Lazy struct {
	mu     sync.RWMutex
	create func() (Analyzer, error)
	a      Analyzer
	err    error
}

var _ Analyzer = (*Lazy)(nil)

// NewLazy creates a lazy analyzer, calling create on first use.
func NewLazy(create func() (Analyzer, error)) *Lazy {
	return &Lazy{create: create}
}

// Analyzer returns the underlying analyzer, creating it if necessary.
// If creation fails, the error is returned on every call.
func (l *Lazy) Analyzer() (Analyzer, error) {
	l.mu.RLock()
	a, err := l.a, l.err
	l.mu.RUnlock()
	if a != nil || err != nil {
		return a, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.a == nil && l.err == nil {
		l.a, l.err = l.create()
		if l.a == nil && l.err == nil {
			l.err = errors.New("morphological analyzer missing")
		}
		if l.err != nil {
			tracer().Errorf("cannot create morphological analyzer: %v", l.err)
		}
	}
	return l.a, l.err
}

// Set replaces the underlying analyzer.
func (l *Lazy) Set(a Analyzer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a, l.err = a, nil
}

// Normalize is part of interface Analyzer. If no analyzer is available,
// the folded word is returned.
func (l *Lazy) Normalize(word string) string {
	a, err := l.Analyzer()
	if err != nil {
		return Fold(word)
	}
	return a.Normalize(word)
}

// Tag is part of interface Analyzer.
func (l *Lazy) Tag(word string) *glrnl.Tag {
	a, err := l.Analyzer()
	if err != nil {
		return nil
	}
	return a.Tag(word)
}
