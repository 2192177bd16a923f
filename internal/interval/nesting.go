// Package interval provides containment queries over closed integer
// intervals.
package interval

import (
	"iter"

	"github.com/tidwall/btree"
)

// Entry is an interval stored in a Nesting, together with its value.
type Entry[V any] struct {
	Start, End int
	Value      V

	// seq is the insertion order, used to break ties between equal spans.
	seq int
}

// Len returns the number of points covered by the entry.
func (e *Entry[V]) Len() int {
	return e.End - e.Start + 1
}

// Contains reports whether the entry covers [start, end].
func (e *Entry[V]) Contains(start, end int) bool {
	return e.Start <= start && end <= e.End
}

// Nesting is a collection of closed intervals [start, end] partitioned into
// layers of pairwise disjoint intervals. Each layer is a btree keyed by
// interval end, so a containment query costs one seek per layer.
//
// Inserting outer intervals before inner ones keeps the number of layers
// close to the maximum nesting depth.
type Nesting[V any] struct {
	layers []*btree.Map[int, *Entry[V]]
	count  int
}

// Len returns the number of intervals in the collection.
func (n *Nesting[V]) Len() int {
	return n.count
}

// Insert adds [start, end] to the collection. Empty intervals (end < start)
// are ignored.
func (n *Nesting[V]) Insert(start, end int, value V) {
	if end < start {
		return
	}

	var found *btree.Map[int, *Entry[V]]
	for _, layer := range n.layers {
		// The first interval ending at or after start is the only one that
		// can intersect [start, end] in a disjoint layer.
		iter := layer.Iter()
		if iter.Seek(start) && iter.Value().Start <= end {
			continue
		}

		found = layer
		break
	}

	if found == nil {
		found = new(btree.Map[int, *Entry[V]])
		n.layers = append(n.layers, found)
	}

	found.Set(end, &Entry[V]{Start: start, End: end, Value: value, seq: n.count})
	n.count++
}

// Containing yields every interval covering [start, end], in no particular
// order.
func (n *Nesting[V]) Containing(start, end int) iter.Seq[*Entry[V]] {
	return func(yield func(*Entry[V]) bool) {
		for _, layer := range n.layers {
			iter := layer.Iter()
			if !iter.Seek(end) || !iter.Value().Contains(start, end) {
				continue
			}
			if !yield(iter.Value()) {
				return
			}
		}
	}
}

// Innermost returns the shortest interval covering [start, end] that
// satisfies keep (which may be nil). Among equal-length candidates the most
// recently inserted wins.
func (n *Nesting[V]) Innermost(start, end int, keep func(*Entry[V]) bool) (*Entry[V], bool) {
	var best *Entry[V]
	for entry := range n.Containing(start, end) {
		if keep != nil && !keep(entry) {
			continue
		}
		if best == nil || entry.Len() < best.Len() ||
			(entry.Len() == best.Len() && entry.seq > best.seq) {
			best = entry
		}
	}
	return best, best != nil
}

// HasContaining reports whether any interval covers [start, end].
func (n *Nesting[V]) HasContaining(start, end int, keep func(*Entry[V]) bool) bool {
	for entry := range n.Containing(start, end) {
		if keep == nil || keep(entry) {
			return true
		}
	}
	return false
}

// All yields every interval, layer by layer in ascending end order.
func (n *Nesting[V]) All() iter.Seq[*Entry[V]] {
	return func(yield func(*Entry[V]) bool) {
		for _, layer := range n.layers {
			cont := true
			layer.Scan(func(_ int, entry *Entry[V]) bool {
				cont = yield(entry)
				return cont
			})
			if !cont {
				return
			}
		}
	}
}
