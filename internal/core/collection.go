package core

import (
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Collection is the in-memory cache of persisted contacts. It is created by
// the caller and injected into the Importer, which mutates it only through
// Append once per import.
type Collection struct {
	mu       sync.RWMutex
	contacts []Contact
}

// NewCollection returns a collection seeded with initial.
func NewCollection(initial ...Contact) *Collection {
	return &Collection{contacts: append([]Contact(nil), initial...)}
}

// Append adds records after the existing contacts, keeping their order.
func (c *Collection) Append(records []Contact) {
	if len(records) == 0 {
		return
	}
	c.mu.Lock()
	c.contacts = append(c.contacts, records...)
	c.mu.Unlock()
}

// All returns a copy of every contact in insertion order.
func (c *Collection) All() []Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Contact(nil), c.contacts...)
}

// Len returns the number of contacts.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.contacts)
}

// Search returns contacts whose name, email or company fuzzy-match query,
// best match first. An empty query returns contacts in insertion order.
// A limit of zero or less returns every match.
func (c *Collection) Search(query string, limit int) []Contact {
	snapshot := c.All()
	query = strings.TrimSpace(query)

	if query == "" {
		if limit > 0 && len(snapshot) > limit {
			snapshot = snapshot[:limit]
		}
		return snapshot
	}

	matches := fuzzy.FindFrom(query, searchSource(snapshot))
	out := make([]Contact, 0, len(matches))
	for _, m := range matches {
		out = append(out, snapshot[m.Index])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// searchSource adapts contacts to fuzzy.Source.
type searchSource []Contact

func (s searchSource) String(i int) string {
	c := s[i]
	return c.Name + " " + c.Email + " " + c.Company
}

func (s searchSource) Len() int {
	return len(s)
}
