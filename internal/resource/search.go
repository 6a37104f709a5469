package resource

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/romdo/go-debounce"
)

// DefaultSearchDelay is how long Query waits for typing to settle.
const DefaultSearchDelay = 500 * time.Millisecond

// ErrStale is returned by Search when a newer search was issued before
// this one's response arrived.
var ErrStale = errors.New("superseded by a newer search")

// SearchFunc runs a query on the server.
type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// SearchResult is one delivered search response.
type SearchResult[T any] struct {
	Query string
	Seq   uint64
	Items []T
	Err   error
}

// SearchOptions configures a Searcher.
type SearchOptions struct {
	// Delay is the debounce window for Query. Zero means DefaultSearchDelay.
	Delay time.Duration
	// CacheSize enables an LRU of recent results when positive.
	CacheSize int
	// CacheTTL bounds how long a cached result is reused.
	CacheTTL time.Duration
	// Busy, if set, tracks requests under OpSearch.
	Busy *Busy
}

// Searcher issues server-side searches. Every issued request gets an
// increasing sequence number and only the response to the latest one is
// delivered; older responses are dropped whatever order they arrive in.
type Searcher[T any] struct {
	ctx     context.Context
	stop    context.CancelFunc
	fetch   SearchFunc[T]
	deliver func(SearchResult[T])
	busy    *Busy
	cache   *expirable.LRU[string, []T]

	issued    atomic.Uint64
	deliverMu sync.Mutex

	mu      sync.Mutex
	pending string

	debounced func()
	cancel    func()
}

// NewSearcher returns a Searcher that calls fetch and hands fresh results
// to deliver. Requests run under ctx until Close.
func NewSearcher[T any](ctx context.Context, fetch SearchFunc[T], deliver func(SearchResult[T]), opts SearchOptions) *Searcher[T] {
	if opts.Delay <= 0 {
		opts.Delay = DefaultSearchDelay
	}
	if opts.Busy == nil {
		opts.Busy = NewBusy(nil)
	}
	if deliver == nil {
		deliver = func(SearchResult[T]) {}
	}

	ctx, stop := context.WithCancel(ctx)
	s := &Searcher[T]{
		ctx:     ctx,
		stop:    stop,
		fetch:   fetch,
		deliver: deliver,
		busy:    opts.Busy,
	}
	if opts.CacheSize > 0 {
		s.cache = expirable.NewLRU[string, []T](opts.CacheSize, nil, opts.CacheTTL)
	}
	s.debounced, s.cancel = debounce.New(opts.Delay, s.fire)
	return s
}

// Query records q and schedules a search once no further Query call has
// arrived for the debounce delay. Only the last query of a burst is sent.
func (s *Searcher[T]) Query(q string) {
	s.mu.Lock()
	s.pending = q
	s.mu.Unlock()
	s.debounced()
}

func (s *Searcher[T]) fire() {
	s.mu.Lock()
	q := s.pending
	s.mu.Unlock()
	_, _ = s.run(s.ctx, q)
}

// Search issues q immediately. It returns ErrStale if another search was
// issued before this one completed.
func (s *Searcher[T]) Search(ctx context.Context, q string) ([]T, error) {
	return s.run(ctx, q)
}

func (s *Searcher[T]) run(ctx context.Context, q string) ([]T, error) {
	seq := s.issued.Add(1)
	key := strings.ToLower(strings.TrimSpace(q))

	var (
		items []T
		err   error
	)
	cached := false
	if s.cache != nil {
		items, cached = s.cache.Get(key)
	}
	if !cached {
		end := s.busy.Begin(Key{Op: OpSearch})
		items, err = s.fetch(ctx, q)
		end()
		if err == nil && s.cache != nil {
			s.cache.Add(key, items)
		}
	}

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if seq != s.issued.Load() {
		return nil, ErrStale
	}
	s.deliver(SearchResult[T]{Query: q, Seq: seq, Items: items, Err: err})
	return items, err
}

// Latest returns the sequence number of the most recently issued search.
func (s *Searcher[T]) Latest() uint64 {
	return s.issued.Load()
}

// Close cancels any scheduled search and in-flight requests.
func (s *Searcher[T]) Close() {
	s.cancel()
	s.stop()
}

// Searcher returns a Searcher whose fresh results replace this screen's
// collection, the same way a load does. onResult, if non-nil, runs after
// each delivered result.
func (s *Screen[T]) Searcher(ctx context.Context, fetch SearchFunc[T], opts SearchOptions, onResult func(SearchResult[T])) *Searcher[T] {
	if opts.Busy == nil {
		opts.Busy = s.busy
	}
	return NewSearcher(ctx, fetch, func(r SearchResult[T]) {
		if r.Err != nil {
			s.notify.Failure("search "+s.name, r.Err)
		} else {
			s.replace(r.Items)
		}
		if onResult != nil {
			onResult(r)
		}
	}, opts)
}
