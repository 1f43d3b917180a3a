package simplex

import (
	"log/slog"
	"sync"

	"github.com/ardnew/fieldvar/fem"
)

// Pool is a slice-backed [fem.FieldPool]. Handles stay valid until their
// slot is invalidated or replaced.
type Pool struct {
	mu    sync.RWMutex
	slots []slot
}

type slot struct {
	field fem.Field
	gen   uint64
	live  bool
}

// Add stores f and returns its handle.
func (p *Pool) Add(f fem.Field) fem.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.slots = append(p.slots, slot{field: f, gen: 1, live: true})

	return fem.Handle{Index: len(p.slots), Generation: 1}
}

// Lookup returns the field referred to by h.
func (p *Pool) Lookup(h fem.Handle) (fem.Field, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.slot(h)
	if err != nil {
		return nil, err
	}

	return s.field, nil
}

// Invalidate marks the field referred to by h as gone. Lookups of h fail
// afterwards.
func (p *Pool) Invalidate(h fem.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.slot(h)
	if err != nil {
		return err
	}

	s.live = false
	s.gen++

	return nil
}

// Replace stores f in the slot of h and returns the new handle. The old
// handle becomes stale.
func (p *Pool) Replace(h fem.Handle, f fem.Field) (fem.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.slot(h)
	if err != nil {
		return fem.NoHandle, err
	}

	s.gen++
	s.field = f

	return fem.Handle{Index: h.Index, Generation: s.gen}, nil
}

// Len returns the number of slots, live or not.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.slots)
}

func (p *Pool) slot(h fem.Handle) (*slot, error) {
	stale := func() error {
		return fem.ErrStaleField.With(
			slog.Int("index", h.Index),
			slog.Uint64("generation", h.Generation),
		)
	}

	if h.Index < 1 || h.Index > len(p.slots) {
		return nil, stale()
	}

	s := &p.slots[h.Index-1]
	if !s.live || s.gen != h.Generation {
		return nil, stale()
	}

	return s, nil
}
