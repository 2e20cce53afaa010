package art

import "net/netip"

// Prefix is the contract the core requires of an address-family-specific
// prefix type: its length in bits, and its address as a big-endian byte
// sequence of exactly alen/8 octets with unused tail bits zero. Parsing
// a prefix from text, or any other address-family-specific concern, is
// the caller's responsibility (spec §1 Non-goals: "address-family
// parsing... out of scope").
type Prefix interface {
	PrefixLen() int
	Octets() []byte
}

// netipPrefix adapts net/netip.Prefix to the Prefix contract. This is the
// "thin public wrapper" spec.md §1 carves out of the core: every other
// bart-family repo in the retrieval pack (gaissmai/bart, metacubex/bart,
// admpub/bart) standardizes on net/netip for exactly this job.
type netipPrefix struct {
	netip.Prefix
}

func (p netipPrefix) PrefixLen() int {
	return p.Bits()
}

func (p netipPrefix) Octets() []byte {
	addr := p.Addr()
	if addr.Is4() {
		b := addr.As4()
		return b[:]
	}
	b := addr.As16()
	return b[:]
}

// FromNetipPrefix wraps a net/netip.Prefix so it satisfies Prefix. The
// prefix is normalized with Masked() first so trailing address bits
// beyond PrefixLen are zero, matching the Prefix contract.
func FromNetipPrefix(p netip.Prefix) Prefix {
	return netipPrefix{p.Masked()}
}

// InsertPrefix is a convenience wrapper around Insert for callers working
// with net/netip.Prefix directly.
func (r *Root[V]) InsertPrefix(p netip.Prefix, data V) error {
	return r.Insert(FromNetipPrefix(p), data)
}

// DeletePrefix is a convenience wrapper around Delete for net/netip.Prefix.
func (r *Root[V]) DeletePrefix(p netip.Prefix) error {
	return r.Delete(FromNetipPrefix(p))
}

// LookupAddr performs a host lookup (longest prefix covering addr) using
// a net/netip.Addr directly, without requiring the caller to build a /32
// or /128 netip.Prefix first.
func (r *Root[V]) LookupAddr(addr netip.Addr) (*routeNode[V], bool) {
	bits := 32
	if addr.Is6() {
		bits = 128
	}
	return r.Lookup(FromNetipPrefix(netip.PrefixFrom(addr, bits)))
}

// LookupPrefix is a convenience wrapper around Lookup for net/netip.Prefix.
func (r *Root[V]) LookupPrefix(p netip.Prefix) (*routeNode[V], bool) {
	return r.Lookup(FromNetipPrefix(p))
}

// LookupExactPrefix is a convenience wrapper around LookupExact for
// net/netip.Prefix.
func (r *Root[V]) LookupExactPrefix(p netip.Prefix) (*routeNode[V], bool) {
	return r.LookupExact(FromNetipPrefix(p))
}
