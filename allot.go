package art

// allot propagates the replacement of `old` with `new` through the
// fringe subtree rooted at heap index k within t, gated by pointer
// identity: a slot is overwritten only if it still holds exactly `old`
// (or is Empty), never if a strictly longer prefix already claimed it.
//
// When k lands on a child table, only that table's default slot is
// examined and possibly updated; the recursion does not descend into
// the child's own array; the child table's insert/delete path owns
// propagation within itself.
func (t *table[V]) allot(k int, old, new entry[V]) {
	e := t.get(k)
	switch {
	case e.isTable():
		if e.child.defaultEntry() == old {
			e.child.setDefault(new)
		}
	case e.isNode():
		if e == old {
			t.set(k, new)
		}
	default: // Empty
		t.set(k, new)
	}

	if k >= t.minFringe {
		return
	}
	t.allot(k<<1, old, new)
	t.allot(k<<1+1, old, new)
}
