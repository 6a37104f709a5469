// Package resource implements the list/filter/mutate loop shared by every
// dashboard screen.
//
// A Screen owns one canonical Collection. The collection is replaced
// wholesale only by a load (or a server-side search, which is a load with
// a query), and changed per record only after a mutation succeeds. The
// displayed list is always derived from (collection, query, predicate)
// and never stored.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrEmpty is returned by Unwrap for an empty singleton response.
var ErrEmpty = errors.New("empty response")

// ErrMismatchedID is returned by Update when the server answers with a
// record other than the one that was changed.
var ErrMismatchedID = errors.New("response is for a different record")

// Options configures a Screen. Zero fields get no-op defaults, except
// Confirm which defaults to DeclineAll so deletes never run unconfirmed.
type Options struct {
	Busy    *Busy
	Confirm Confirmer
	Notify  Notifier
}

// Screen is the state behind one entity view.
type Screen[T Identifiable] struct {
	name    string
	busy    *Busy
	confirm Confirmer
	notify  Notifier
	pred    Predicate[T]

	mu     sync.RWMutex
	coll   *Collection[T]
	query  string
	loaded bool
}

// NewScreen returns an empty screen for records called name (used in
// notifications), matched locally by pred.
func NewScreen[T Identifiable](name string, pred Predicate[T], opts Options) *Screen[T] {
	if opts.Busy == nil {
		opts.Busy = NewBusy(nil)
	}
	if opts.Confirm == nil {
		opts.Confirm = DeclineAll
	}
	if opts.Notify == nil {
		opts.Notify = Discard
	}
	return &Screen[T]{
		name:    name,
		busy:    opts.Busy,
		confirm: opts.Confirm,
		notify:  opts.Notify,
		pred:    pred,
		coll:    &Collection[T]{},
	}
}

// Name returns the record kind this screen holds.
func (s *Screen[T]) Name() string { return s.name }

// Busy returns the screen's in-flight tracker.
func (s *Screen[T]) Busy() *Busy { return s.busy }

// Load fetches the collection and replaces the current one. On failure the
// previous records are kept and the error is returned; nothing is retried.
func (s *Screen[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	end := s.busy.Begin(Key{Op: OpLoad})
	defer end()

	items, err := fetch(ctx)
	if err != nil {
		s.notify.Failure("load "+s.name, err)
		return fmt.Errorf("load %s: %w", s.name, err)
	}
	s.replace(items)
	return nil
}

// LoadOne is Load for singleton endpoints. The collection ends up holding
// exactly the fetched record.
func (s *Screen[T]) LoadOne(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	end := s.busy.Begin(Key{Op: OpLoad})
	defer end()

	item, err := fetch(ctx)
	if err != nil {
		var zero T
		s.notify.Failure("load "+s.name, err)
		return zero, fmt.Errorf("load %s: %w", s.name, err)
	}
	s.replace([]T{item})
	return item, nil
}

func (s *Screen[T]) replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll.Replace(items)
	s.loaded = true
}

// Loaded reports whether a load has succeeded at least once.
func (s *Screen[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Items returns the canonical records.
func (s *Screen[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Items()
}

// Get returns the record with the given id.
func (s *Screen[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Get(id)
}

// Len returns the number of canonical records.
func (s *Screen[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Len()
}

// SetQuery sets the local filter query.
func (s *Screen[T]) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Query returns the local filter query.
func (s *Screen[T]) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// View returns the records matching the current query.
func (s *Screen[T]) View() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.coll.Items(), s.query, s.pred)
}

// Create validates input and, if it passes, calls send. Validation
// failures return *ValidationError and send is never called. The created
// record is appended to the collection.
func (s *Screen[T]) Create(ctx context.Context, input any, send func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := validateInput(input); err != nil {
		return zero, err
	}

	end := s.busy.Begin(Key{Op: OpAction})
	defer end()

	item, err := send(ctx)
	if err != nil {
		s.notify.Failure("create "+s.name, err)
		return zero, fmt.Errorf("create %s: %w", s.name, err)
	}

	s.mu.Lock()
	s.coll.Append(item)
	s.mu.Unlock()

	s.notify.Success(fmt.Sprintf("%s %d created", s.name, item.ResourceID()))
	return item, nil
}

// Update validates input (if non-nil), then calls send and replaces the
// record with the returned one. A reply for a different id is
// ErrMismatchedID and leaves the screen unchanged. A second mutation of
// the same record while one is in flight fails with ErrInFlight.
func (s *Screen[T]) Update(ctx context.Context, id int, input any, send func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := validateInput(input); err != nil {
		return zero, err
	}

	end, err := s.busy.TryBegin(Key{Op: OpAction, ID: id})
	if err != nil {
		return zero, err
	}
	defer end()

	item, err := send(ctx)
	if err == nil && item.ResourceID() != id {
		err = fmt.Errorf("%w: got id %d", ErrMismatchedID, item.ResourceID())
	}
	if err != nil {
		s.notify.Failure(fmt.Sprintf("update %s %d", s.name, id), err)
		return zero, fmt.Errorf("update %s %d: %w", s.name, id, err)
	}

	s.mu.Lock()
	s.coll.ReplaceByID(item)
	s.mu.Unlock()

	s.notify.Success(fmt.Sprintf("%s %d updated", s.name, id))
	return item, nil
}

// Delete asks for confirmation, then calls send and removes the record.
// If the prompt is declined it returns ErrDeclined and send is never
// called.
func (s *Screen[T]) Delete(ctx context.Context, id int, prompt Prompt, send func(context.Context) error) error {
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ErrDeclined
	}

	end, err := s.busy.TryBegin(Key{Op: OpAction, ID: id})
	if err != nil {
		return err
	}
	defer end()

	if err := send(ctx); err != nil {
		s.notify.Failure(fmt.Sprintf("delete %s %d", s.name, id), err)
		return fmt.Errorf("delete %s %d: %w", s.name, id, err)
	}

	s.mu.Lock()
	s.coll.RemoveByID(id)
	s.mu.Unlock()

	s.notify.Success(fmt.Sprintf("%s %d deleted", s.name, id))
	return nil
}

// Reconcile records a server-confirmed version of one record, inserting
// it if absent. Composite screens use it when a mutation on one screen
// changes a record held by another.
func (s *Screen[T]) Reconcile(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll.Append(item)
}

// Unwrap returns the only record of a singleton-shaped response.
func Unwrap[T any](items []T) (T, error) {
	if len(items) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return items[0], nil
}
