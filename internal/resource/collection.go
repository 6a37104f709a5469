package resource

// Identifiable is implemented by every record a Screen can hold.
type Identifiable interface {
	ResourceID() int
}

// Collection is an ordered list of records, unique by id.
// Order follows the server response; reconciliation keeps positions stable.
// Collection is not safe for concurrent use; Screen guards it.
type Collection[T Identifiable] struct {
	items []T
}

// NewCollection returns a collection holding items, dropping later
// duplicates of an id already seen.
func NewCollection[T Identifiable](items []T) *Collection[T] {
	c := &Collection[T]{}
	c.Replace(items)
	return c
}

// Replace swaps the whole collection for items.
func (c *Collection[T]) Replace(items []T) {
	seen := make(map[int]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		id := item.ResourceID()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	c.items = out
}

// Items returns a copy of the records in order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id int) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// ReplaceByID swaps the record sharing item's id in place.
// Returns false if no such record exists.
func (c *Collection[T]) ReplaceByID(item T) bool {
	i := c.index(item.ResourceID())
	if i < 0 {
		return false
	}
	c.items[i] = item
	return true
}

// Append adds item at the end, or replaces it in place if its id is
// already present.
func (c *Collection[T]) Append(item T) {
	if c.ReplaceByID(item) {
		return
	}
	c.items = append(c.items, item)
}

// RemoveByID drops the record with the given id, keeping the order of
// the rest. Returns false if it was not present.
func (c *Collection[T]) RemoveByID(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	out := make([]T, 0, len(c.items)-1)
	out = append(out, c.items[:i]...)
	out = append(out, c.items[i+1:]...)
	c.items = out
	return true
}

func (c *Collection[T]) index(id int) int {
	for i, item := range c.items {
		if item.ResourceID() == id {
			return i
		}
	}
	return -1
}
