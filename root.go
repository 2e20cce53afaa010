package art

import "fmt"

// rootConfig declares the shape of a forest of tables: the number of
// strides, the bit width consumed at each stride, and the total address
// length. The sum of bits must equal alen.
type rootConfig struct {
	levels int
	bits   []int
	alen   int
}

// Root is an in-memory longest-prefix-match lookup structure over
// prefixes of up to `alen` bits, parameterized over an opaque payload V.
// It is not safe for concurrent use; callers must synchronize externally
// (see spec §5).
type Root[V any] struct {
	cfg   rootConfig
	root  *table[V]
	count int
}

// New constructs a Root with the given stride configuration. It panics
// if the strides do not sum to alen, matching the teacher's and
// original_source's assert-on-construction contract — this is a
// programming error, not a runtime input error, so it is not reported
// via the error return used by Insert/Delete.
func New[V any](levels int, bits []int, alen int) *Root[V] {
	sum := 0
	for _, b := range bits {
		sum += b
	}
	if sum != alen || len(bits) < levels {
		panic(fmt.Sprintf("art: stride widths %v (levels=%d) do not sum to alen=%d", bits, levels, alen))
	}
	cfg := rootConfig{levels: levels, bits: bits, alen: alen}
	r := &Root[V]{cfg: cfg}
	r.root = newTable[V](cfg, nil, 0)
	return r
}

// NewIPv4 constructs a Root shaped for 32-bit IPv4 addresses, with the
// classic ART byte-then-nibble stride layout.
func NewIPv4[V any]() *Root[V] {
	return New[V](7, []int{8, 4, 4, 4, 4, 4, 4}, 32)
}

// NewIPv6 constructs a Root shaped for 128-bit IPv6 addresses, striding
// one nibble at a time.
func NewIPv6[V any]() *Root[V] {
	bits := make([]int, 32)
	for i := range bits {
		bits[i] = 4
	}
	return New[V](32, bits, 128)
}

// Len reports the number of distinct routes currently stored. Maintained
// incrementally; cheaper than iterating to count, since tables are never
// reclaimed on delete (spec.md §9.1) and so hold no usable size hint of
// their own.
func (r *Root[V]) Len() int {
	return r.count
}

// Insert adds prefix -> data to the table. Inserting the same prefix
// again overwrites the payload (see spec §4.4, §9.3: duplicate detection
// is by pointer identity of the stored node, not prefix+payload value, so
// calling Insert twice with equal-looking prefixes always creates a new
// node and replaces the old one — it is not a no-op in the value sense).
//
// A prefix longer than the root's address width is rejected; Insert
// returns ErrPrefixLenExceedsWidth in that case (logged at Warn) rather
// than panicking, since it is caller input, not a programming error.
func (r *Root[V]) Insert(p Prefix, data V) error {
	plen := p.PrefixLen()
	if plen > r.cfg.alen {
		Logger.Warn().Int("plen", plen).Int("alen", r.cfg.alen).Msg("art: insert rejected, prefix length exceeds address width")
		return fmt.Errorf("art: insert %d/%d: %w", plen, r.cfg.alen, ErrPrefixLenExceedsWidth)
	}

	an := &routeNode[V]{prefix: p, data: data}
	addr := p.Octets()

	if plen == 0 {
		if !isExactMatch(r.root.defaultEntry(), 0) {
			r.count++
		}
		r.root.setDefault(entry[V]{node: an})
		return nil
	}

	at := r.root
	for plen > at.offset+at.bitsWidth {
		j := findex(at.offset, at.bitsWidth, addr)
		e := at.get(j)
		switch {
		case e.isTable():
			at = e.child
		case e.isNode():
			child := newTable[V](r.cfg, at, j)
			child.setDefault(e)
			at.set(j, entry[V]{child: child})
			at = child
		default: // Empty
			child := newTable[V](r.cfg, at, j)
			at.set(j, entry[V]{child: child})
			at = child
		}
	}

	i, _ := bindex(at.offset, at.bitsWidth, addr, plen)
	prev := at.get(i)
	newE := entry[V]{node: an}
	if prev.isNode() && prev.node == an {
		return nil // idempotent: exact same node pointer already here
	}

	if i < at.minFringe {
		allotOld := prev
		if prev.isTable() {
			allotOld = prev.child.defaultEntry()
		}
		if !isExactMatch(allotOld, plen) {
			r.count++
		}
		at.allot(i, allotOld, newE)
		return nil
	}

	if prev.isTable() {
		if !isExactMatch(prev.child.defaultEntry(), plen) {
			r.count++
		}
		prev.child.setDefault(newE)
	} else {
		if !isExactMatch(prev, plen) {
			r.count++
		}
		at.set(i, newE)
	}
	return nil
}

// isExactMatch reports whether e is a route node whose prefix length is
// exactly plen — i.e. whether e represents the canonical, explicitly
// inserted route at this position rather than a shorter prefix's
// allotted shadow copy. Len() bookkeeping uses this to tell "overwriting
// the same route" apart from "claiming a slot previously only covered by
// inheritance", which a plain isNode() check cannot distinguish.
func isExactMatch[V any](e entry[V], plen int) bool {
	return e.isNode() && e.node.prefix.PrefixLen() == plen
}

// Delete removes the route for the exact prefix, if present. If the
// prefix is not stored, Len() is unchanged and a Debug line is logged;
// the tables are left as they were, except that when the prefix maps to
// a fringe slot holding a shorter route's allotted copy, that copy is
// cleared (see the fringe branch below). Deleting does not reclaim the
// tables descent passed through (spec.md §1 Non-goals, §9.1).
func (r *Root[V]) Delete(p Prefix) error {
	plen := p.PrefixLen()
	if plen > r.cfg.alen {
		return fmt.Errorf("art: delete %d/%d: %w", plen, r.cfg.alen, ErrPrefixLenExceedsWidth)
	}
	addr := p.Octets()

	at := r.root
	if plen == 0 {
		if !at.defaultEntry().isNode() {
			Logger.Debug().Msg("art: delete of absent default route")
			return nil
		}
		r.count--
		at.setDefault(entry[V]{})
		return nil
	}

	for plen > at.offset+at.bitsWidth {
		j := findex(at.offset, at.bitsWidth, addr)
		e := at.get(j)
		if !e.isTable() {
			Logger.Debug().Int("plen", plen).Msg("art: delete of absent prefix")
			return nil // route absent: descent requires a table here
		}
		at = e.child
	}

	i, _ := bindex(at.offset, at.bitsWidth, addr, plen)
	prev := at.get(i)

	next := entry[V]{}
	if i>>1 > 1 {
		next = at.get(i >> 1)
	}

	if i < at.minFringe {
		allotOld := prev
		if prev.isTable() {
			allotOld = prev.child.defaultEntry()
		}
		if isExactMatch(allotOld, plen) {
			r.count--
		} else {
			Logger.Debug().Int("plen", plen).Msg("art: delete of absent prefix")
		}
		// Run unconditionally, matching spec §4.5: when the exact prefix
		// was never inserted, allotOld already equals `next` by the
		// allotment invariant, so this is a no-op write.
		at.allot(i, allotOld, next)
		return nil
	}

	// Fringe slots are cleared without a length check here, mirroring
	// spec §4.5 step 6 exactly (and original_source's art_allot call
	// site). One edge case carries over from the original:
	// clearing a fringe slot that currently holds an
	// allotted shadow copy of a *shorter* covering route (rather than an
	// explicit route of this exact length) clears that single slot's
	// copy too. Len() is unaffected in that case since the shorter
	// route's own canonical slot is untouched.
	switch {
	case prev.isTable():
		if isExactMatch(prev.child.defaultEntry(), plen) {
			r.count--
			prev.child.setDefault(entry[V]{})
		} else if prev.child.hasDefaultNode() {
			prev.child.setDefault(entry[V]{})
		} else {
			Logger.Debug().Int("plen", plen).Msg("art: delete of absent prefix")
		}
	case prev.isNode():
		if isExactMatch(prev, plen) {
			r.count--
		} else {
			Logger.Debug().Int("plen", plen).Msg("art: delete of absent prefix")
		}
		at.set(i, entry[V]{})
	default:
		Logger.Debug().Int("plen", plen).Msg("art: delete of absent prefix")
	}
	return nil
}

// Lookup returns the longest-prefix match for p (p's own length is used
// as the query length, so passing a host address with PrefixLen()==alen
// performs a host lookup).
func (r *Root[V]) Lookup(p Prefix) (*routeNode[V], bool) {
	plen := p.PrefixLen()
	addr := p.Octets()

	at := r.root
	best := at.defaultEntry()

	for plen > at.offset+at.bitsWidth {
		j := findex(at.offset, at.bitsWidth, addr)
		e := at.get(j)
		switch {
		case e.isTable():
			at = e.child
			if at.hasDefaultNode() {
				best = at.defaultEntry()
			}
		case e.isNode():
			return e.node, true
		default:
			if best.isNode() {
				return best.node, true
			}
			return nil, false
		}
	}

	i, _ := bindex(at.offset, at.bitsWidth, addr, plen)
	e := at.get(i)
	switch {
	case e.isNode():
		return e.node, true
	case e.isTable():
		if d := e.child.defaultEntry(); d.isNode() {
			return d.node, true
		}
	}
	if best.isNode() {
		return best.node, true
	}
	return nil, false
}

// LookupExact returns the route stored for exactly this prefix, not a
// shorter covering prefix. A fringe slot that holds a strictly shorter
// prefix (allotted down from an ancestor) does not count as a match.
func (r *Root[V]) LookupExact(p Prefix) (*routeNode[V], bool) {
	plen := p.PrefixLen()
	addr := p.Octets()

	at := r.root
	for plen > at.offset+at.bitsWidth {
		j := findex(at.offset, at.bitsWidth, addr)
		e := at.get(j)
		if !e.isTable() {
			return nil, false
		}
		at = e.child
	}

	i, _ := bindex(at.offset, at.bitsWidth, addr, plen)
	e := at.get(i)
	switch {
	case e.isNode():
		if e.node.prefix.PrefixLen() == plen {
			return e.node, true
		}
	case e.isTable():
		if d := e.child.defaultEntry(); d.isNode() && d.node.prefix.PrefixLen() == plen {
			return d.node, true
		}
	}
	return nil, false
}
