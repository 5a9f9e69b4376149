package jandan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateLastWriteWins(t *testing.T) {
	agg := NewAggregate()
	require.False(t, agg.Put(Entry{ID: "1", Author: "a", Text: "first"}))
	require.False(t, agg.Put(Entry{ID: "2", Author: "b", Text: "second"}))
	require.True(t, agg.Put(Entry{ID: "1", Author: "a", Text: "updated"}))

	require.Equal(t, 2, agg.Len())
	require.Equal(t, []string{"1", "2"}, agg.IDs())

	entry, ok := agg.Get("1")
	require.True(t, ok)
	require.Equal(t, "updated", entry.Text)

	_, ok = agg.Get("3")
	require.False(t, ok)
}

func TestAggregateEntriesIsACopy(t *testing.T) {
	agg := NewAggregate()
	agg.Put(Entry{ID: "1", Text: "x"})

	entries := agg.Entries()
	entries[0].Text = "mutated"

	entry, _ := agg.Get("1")
	require.Equal(t, "x", entry.Text)
}

func TestEmptyAggregate(t *testing.T) {
	agg := NewAggregate()
	require.Equal(t, 0, agg.Len())
	require.Empty(t, agg.Entries())
	require.Empty(t, agg.IDs())
}
