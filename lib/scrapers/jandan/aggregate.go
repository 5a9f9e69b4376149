package jandan

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Aggregate is the set of entries collected by a crawl, keyed by id.
//
// Iteration follows the order in which each id was first seen. Putting an id
// that is already present replaces its entry but keeps its position.
type Aggregate struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

func NewAggregate() *Aggregate {
	return &Aggregate{entries: orderedmap.New[string, Entry]()}
}

// Put stores the entry under its id, it reports whether an earlier entry
// with the same id was overwritten.
func (a *Aggregate) Put(entry Entry) (replaced bool) {
	_, replaced = a.entries.Set(entry.ID, entry)
	return replaced
}

func (a *Aggregate) Get(id string) (Entry, bool) {
	return a.entries.Get(id)
}

func (a *Aggregate) Len() int {
	return a.entries.Len()
}

// Entries returns a copy of the entries in iteration order.
func (a *Aggregate) Entries() []Entry {
	out := make([]Entry, 0, a.entries.Len())
	for pair := a.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// IDs returns the ids in iteration order.
func (a *Aggregate) IDs() []string {
	out := make([]string, 0, a.entries.Len())
	for pair := a.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
