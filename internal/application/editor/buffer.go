package editor

import (
	"github.com/google/uuid"
)

// List is the working copy of one identified item list (projects,
// experiences, education, courses). Items are addressed by their synthetic
// id, never by position, so edits stay stable under reordering. An id used
// once in a buffer's lifetime is never handed out again, even after the
// item was removed.
type List[T any] struct {
	items []T
	getID func(T) string
	setID func(*T, string)
	used  map[string]struct{}
}

func NewList[T any](getID func(T) string, setID func(*T, string)) *List[T] {
	return &List[T]{
		getID: getID,
		setID: setID,
		used:  make(map[string]struct{}),
	}
}

// Load seeds the buffer from a freshly loaded section, claiming every
// existing id.
func (l *List[T]) Load(items []T) {
	l.items = append(l.items[:0], items...)
	for _, it := range items {
		if id := l.getID(it); id != "" {
			l.used[id] = struct{}{}
		}
	}
}

// Add appends the template with a freshly generated id and returns the
// stored item.
func (l *List[T]) Add(template T) T {
	id := l.freshID()
	l.setID(&template, id)
	l.items = append(l.items, template)
	return template
}

func (l *List[T]) freshID() string {
	for {
		id := uuid.NewString()
		if _, taken := l.used[id]; !taken {
			l.used[id] = struct{}{}
			return id
		}
	}
}

// Remove deletes the item with the given id; false if no item matches.
// The id stays claimed.
func (l *List[T]) Remove(id string) bool {
	for i, it := range l.items {
		if l.getID(it) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies mutate to the item with the given id; no-op when the id is
// unknown.
func (l *List[T]) Update(id string, mutate func(*T)) bool {
	for i := range l.items {
		if l.getID(l.items[i]) == id {
			mutate(&l.items[i])
			return true
		}
	}
	return false
}

// Get returns the item with the given id.
func (l *List[T]) Get(id string) (T, bool) {
	for _, it := range l.items {
		if l.getID(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns the buffer content in order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// EnsureIDs assigns fresh ids to items that arrived without one and rejects
// nothing: duplicate detection is the caller's concern via HasDuplicateIDs.
func (l *List[T]) EnsureIDs() {
	for i := range l.items {
		if l.getID(l.items[i]) == "" {
			l.setID(&l.items[i], l.freshID())
		}
	}
}

// HasDuplicateIDs reports an id collision inside the buffer.
func (l *List[T]) HasDuplicateIDs() bool {
	seen := make(map[string]struct{}, len(l.items))
	for _, it := range l.items {
		id := l.getID(it)
		if _, dup := seen[id]; dup {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// IndexList is the buffer for id-free sections (services): items carry no
// identity across sessions, so positional addressing is fine.
type IndexList[T any] struct {
	items []T
}

func NewIndexList[T any](items []T) *IndexList[T] {
	l := &IndexList[T]{}
	l.items = append(l.items, items...)
	return l
}

func (l *IndexList[T]) Add(item T) {
	l.items = append(l.items, item)
}

func (l *IndexList[T]) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *IndexList[T]) UpdateAt(i int, mutate func(*T)) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	mutate(&l.items[i])
	return true
}

func (l *IndexList[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}
