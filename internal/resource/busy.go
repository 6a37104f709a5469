package resource

import (
	"errors"
	"fmt"
	"sync"
)

// Op is the kind of request a busy key tracks.
type Op string

const (
	OpLoad   Op = "load"
	OpSearch Op = "search"
	OpAction Op = "action"
)

// NoID is the id used for busy keys not tied to a single record.
const NoID = 0

// ErrInFlight is returned by TryBegin when the same key is already busy.
var ErrInFlight = errors.New("request already in flight")

// Key identifies an in-flight operation, optionally scoped to one record.
type Key struct {
	Op Op
	ID int
}

func (k Key) String() string {
	if k.ID == NoID {
		return string(k.Op)
	}
	return fmt.Sprintf("%s:%d", k.Op, k.ID)
}

// Busy tracks in-flight requests by key. The zero value is not usable;
// call NewBusy.
type Busy struct {
	mu       sync.Mutex
	inflight map[Key]int
	total    int
	onChange func(busy bool)
}

// NewBusy returns an empty tracker. onChange, if non-nil, is called
// whenever the tracker flips between idle and busy. It runs with no
// locks held.
func NewBusy(onChange func(busy bool)) *Busy {
	return &Busy{
		inflight: make(map[Key]int),
		onChange: onChange,
	}
}

// Begin marks key as in flight and returns the func that ends it.
// The returned func is safe to call more than once; only the first call
// counts. Callers defer it so the flag is cleared on every path.
func (b *Busy) Begin(key Key) (end func()) {
	b.mu.Lock()
	b.inflight[key]++
	b.total++
	flipped := b.total == 1
	b.mu.Unlock()

	if flipped && b.onChange != nil {
		b.onChange(true)
	}
	return b.ender(key)
}

// TryBegin is Begin, but refuses with ErrInFlight if key is already busy.
func (b *Busy) TryBegin(key Key) (end func(), err error) {
	b.mu.Lock()
	if b.inflight[key] > 0 {
		b.mu.Unlock()
		return func() {}, fmt.Errorf("%s: %w", key, ErrInFlight)
	}
	b.inflight[key]++
	b.total++
	flipped := b.total == 1
	b.mu.Unlock()

	if flipped && b.onChange != nil {
		b.onChange(true)
	}
	return b.ender(key), nil
}

func (b *Busy) ender(key Key) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.inflight[key]--
			if b.inflight[key] <= 0 {
				delete(b.inflight, key)
			}
			b.total--
			flipped := b.total == 0
			b.mu.Unlock()

			if flipped && b.onChange != nil {
				b.onChange(false)
			}
		})
	}
}

// Any reports whether any request is in flight.
func (b *Busy) Any() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total > 0
}

// Active reports whether any request of the given kind is in flight.
func (b *Busy) Active(op Op) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.inflight {
		if k.Op == op {
			return true
		}
	}
	return false
}

// InFlight reports whether key is in flight.
func (b *Busy) InFlight(key Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight[key] > 0
}
