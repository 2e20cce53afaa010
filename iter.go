package art

// Iterator yields every stored route exactly once, depth-first in
// heap-index order per table, skipping allotted copies of a route that
// live at indices other than its own canonical bindex. Grounded on
// original_source/src/art.rs's ArtIter: it holds the current table and
// index, descending into child tables and ascending via the parent
// back-pointer when a table is exhausted.
//
// An Iterator does not tolerate mutation of the Root while in use (spec
// §5: "iterator captures live pointers to tables that may be replaced
// beneath it").
type Iterator[V any] struct {
	at *table[V]
	i  int
}

// Iter returns an Iterator positioned before the first route.
func (r *Root[V]) Iter() *Iterator[V] {
	return &Iterator[V]{at: r.root, i: 1}
}

// Next advances the iterator and reports the next route node, or
// (nil, false) once every route has been yielded.
func (it *Iterator[V]) Next() (*routeNode[V], bool) {
	for it.at != nil {
		for it.i < 2*it.at.minFringe {
			e := it.at.get(it.i)
			switch {
			case e.isNode():
				i, ok := bindex(it.at.offset, it.at.bitsWidth, e.node.prefix.Octets(), e.node.prefix.PrefixLen())
				it.i++
				if ok && i == it.i-1 {
					return e.node, true
				}
			case e.isTable():
				it.at = e.child
				it.i = 1
			default: // Empty
				it.i++
			}
		}
		if it.at.parent == nil {
			it.at = nil
			break
		}
		it.i = it.at.index + 1
		it.at = it.at.parent
	}
	return nil, false
}

// All returns a range-over-func iterator (Go 1.23+) over every stored
// route node, for use as `for n := range root.All() { ... }`.
func (r *Root[V]) All() func(yield func(*routeNode[V]) bool) {
	return func(yield func(*routeNode[V]) bool) {
		it := r.Iter()
		for {
			n, ok := it.Next()
			if !ok {
				return
			}
			if !yield(n) {
				return
			}
		}
	}
}
