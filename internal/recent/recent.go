// Package recent keeps the short most-recent-first list of searched cities.
package recent

import "context"

// MaxItems is the capacity of a List
const MaxItems = 5

// StorageKey names the persisted list
const StorageKey = "weatherAppRecentSearches"

// Persister loads and saves the list between sessions
type Persister interface {
	LoadRecent(ctx context.Context) ([]string, error)
	SaveRecent(ctx context.Context, cities []string) error
}

// List is a bounded, duplicate-free list of city names, most recent first.
// Cities compare by exact, case-sensitive match. A List is not safe for
// concurrent use.
type List struct {
	items []string
}

// NewList creates a list from previously persisted items, dropping
// duplicates and anything past MaxItems
func NewList(items []string) *List {
	l := &List{}
	for i := len(items) - 1; i >= 0; i-- {
		l.Add(items[i])
	}
	return l
}

// Add moves city to the front, evicting the oldest entry beyond MaxItems
func (l *List) Add(city string) {
	for i, c := range l.items {
		if c == city {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}

	l.items = append([]string{city}, l.items...)

	if len(l.items) > MaxItems {
		l.items = l.items[:MaxItems]
	}
}

// Items returns a copy of the list
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries
func (l *List) Len() int {
	return len(l.items)
}
