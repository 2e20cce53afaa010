package art

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrefix(t *testing.T, s string) Prefix {
	t.Helper()
	return FromNetipPrefix(netip.MustParsePrefix(s))
}

// TestLPMHierarchy covers spec.md §8 scenario 1: a chain of nested
// prefixes must each win over their covering ancestors for addresses
// that fall only within the more specific one.
func TestLPMHierarchy(t *testing.T) {
	r := NewIPv4[string]()
	require.NoError(t, r.Insert(mustPrefix(t, "10.0.0.0/8"), "ten"))
	require.NoError(t, r.Insert(mustPrefix(t, "10.1.0.0/16"), "ten-one"))
	require.NoError(t, r.Insert(mustPrefix(t, "10.1.2.0/24"), "ten-one-two"))

	n, ok := r.Lookup(mustPrefix(t, "10.1.2.5/32"))
	require.True(t, ok)
	assert.Equal(t, "ten-one-two", n.Data())

	n, ok = r.Lookup(mustPrefix(t, "10.1.3.5/32"))
	require.True(t, ok)
	assert.Equal(t, "ten-one", n.Data())

	n, ok = r.Lookup(mustPrefix(t, "10.2.0.0/32"))
	require.True(t, ok)
	assert.Equal(t, "ten", n.Data())

	_, ok = r.Lookup(mustPrefix(t, "192.168.0.1/32"))
	assert.False(t, ok)
}

// TestDefaultRoute covers spec.md §8 scenario 2: 0.0.0.0/0 backstops
// every lookup that no other route covers.
func TestDefaultRoute(t *testing.T) {
	r := NewIPv4[string]()
	require.NoError(t, r.Insert(mustPrefix(t, "0.0.0.0/0"), "default"))
	require.NoError(t, r.Insert(mustPrefix(t, "10.0.0.0/8"), "ten"))

	n, ok := r.Lookup(mustPrefix(t, "8.8.8.8/32"))
	require.True(t, ok)
	assert.Equal(t, "default", n.Data())

	n, ok = r.Lookup(mustPrefix(t, "10.5.5.5/32"))
	require.True(t, ok)
	assert.Equal(t, "ten", n.Data())
}

// TestOverwriteSemantics covers spec.md §8 scenario 3 and §4.4: inserting
// the same prefix twice replaces the payload without changing Len().
func TestOverwriteSemantics(t *testing.T) {
	r := NewIPv4[string]()
	p := mustPrefix(t, "172.16.0.0/12")
	require.NoError(t, r.Insert(p, "v1"))
	require.NoError(t, r.Insert(p, "v2"))
	assert.Equal(t, 1, r.Len())

	n, ok := r.LookupExact(p)
	require.True(t, ok)
	assert.Equal(t, "v2", n.Data())
}

// TestDeleteRestoresShadowing covers spec.md §8 scenario 4: deleting a
// more specific route must uncover the shorter route it had shadowed.
func TestDeleteRestoresShadowing(t *testing.T) {
	r := NewIPv4[string]()
	require.NoError(t, r.Insert(mustPrefix(t, "10.0.0.0/8"), "ten"))
	require.NoError(t, r.Insert(mustPrefix(t, "10.1.2.0/24"), "inner"))

	n, ok := r.Lookup(mustPrefix(t, "10.1.2.5/32"))
	require.True(t, ok)
	assert.Equal(t, "inner", n.Data())

	require.NoError(t, r.Delete(mustPrefix(t, "10.1.2.0/24")))
	assert.Equal(t, 1, r.Len())

	n, ok = r.Lookup(mustPrefix(t, "10.1.2.5/32"))
	require.True(t, ok)
	assert.Equal(t, "ten", n.Data(), "deleting the inner route must uncover the shadowed /8")

	_, ok = r.LookupExact(mustPrefix(t, "10.1.2.0/24"))
	assert.False(t, ok)
}

// TestFringeVsInternal covers spec.md §8 scenario 5: a route whose base
// index lands below the fringe boundary (an "internal" index) must
// propagate to every fringe slot it covers, and a more specific route
// inserted afterwards must only override the slots it actually owns.
func TestFringeVsInternal(t *testing.T) {
	r := NewIPv4[string]()
	require.NoError(t, r.Insert(mustPrefix(t, "192.168.0.0/22"), "block")) // internal index within stride 2

	for _, addr := range []string{"192.168.0.1/32", "192.168.1.1/32", "192.168.2.1/32", "192.168.3.1/32"} {
		n, ok := r.Lookup(mustPrefix(t, addr))
		require.True(t, ok, addr)
		assert.Equal(t, "block", n.Data(), addr)
	}

	require.NoError(t, r.Insert(mustPrefix(t, "192.168.2.0/24"), "narrower"))
	n, ok := r.Lookup(mustPrefix(t, "192.168.2.1/32"))
	require.True(t, ok)
	assert.Equal(t, "narrower", n.Data())

	n, ok = r.Lookup(mustPrefix(t, "192.168.0.1/32"))
	require.True(t, ok)
	assert.Equal(t, "block", n.Data(), "sibling fringe slots must be unaffected")
}

// TestInsertDeleteIdempotence covers spec.md §8 invariant 5: deleting an
// absent prefix is a no-op, and re-deleting an already-deleted prefix is
// a no-op too.
func TestInsertDeleteIdempotence(t *testing.T) {
	r := NewIPv4[string]()
	require.NoError(t, r.Insert(mustPrefix(t, "10.0.0.0/8"), "ten"))

	require.NoError(t, r.Delete(mustPrefix(t, "192.168.0.0/16"))) // never inserted
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Delete(mustPrefix(t, "10.0.0.0/8")))
	assert.Equal(t, 0, r.Len())

	require.NoError(t, r.Delete(mustPrefix(t, "10.0.0.0/8"))) // already gone
	assert.Equal(t, 0, r.Len())
}

// TestInsertLookupRoundTrip covers spec.md §8 invariant 1: every inserted
// prefix is exactly retrievable, and Len() tracks the distinct count.
func TestInsertLookupRoundTrip(t *testing.T) {
	r := NewIPv4[string]()
	prefixes := []string{
		"1.0.0.0/8", "2.0.0.0/7", "4.0.0.0/6", "8.0.0.0/5",
		"16.0.0.0/4", "32.0.0.0/3", "64.0.0.0/2", "128.0.0.0/1",
		"1.2.0.0/16", "1.2.3.0/24", "1.2.3.4/32",
	}
	for _, s := range prefixes {
		require.NoError(t, r.Insert(mustPrefix(t, s), s))
	}
	assert.Equal(t, len(prefixes), r.Len())

	for _, s := range prefixes {
		n, ok := r.LookupExact(mustPrefix(t, s))
		require.True(t, ok, s)
		assert.Equal(t, s, n.Data())
	}
}

// TestIterationCompletenessAndUniqueness covers spec.md §8 invariant 3:
// iterating All() visits every inserted route exactly once.
func TestIterationCompletenessAndUniqueness(t *testing.T) {
	r := NewIPv4[string]()
	prefixes := []string{
		"0.0.0.0/0", "10.0.0.0/8", "10.1.0.0/16", "10.1.2.0/24",
		"192.168.0.0/22", "192.168.2.0/24", "255.255.255.255/32",
	}
	for _, s := range prefixes {
		require.NoError(t, r.Insert(mustPrefix(t, s), s))
	}

	got := make(map[string]int)
	for n := range r.All() {
		got[n.Data()]++
	}
	assert.Len(t, got, len(prefixes))
	for _, s := range prefixes {
		assert.Equal(t, 1, got[s], s)
	}
}

// TestInsertDeleteRoundTrip covers spec.md §8 invariant 4: inserting a
// batch and then deleting every member empties the table.
func TestInsertDeleteRoundTrip(t *testing.T) {
	r := NewIPv4[string]()
	prefixes := []string{
		"1.0.0.0/8", "1.1.0.0/16", "1.1.1.0/24", "1.1.1.1/32",
		"9.0.0.0/8", "9.9.0.0/16",
	}
	for _, s := range prefixes {
		require.NoError(t, r.Insert(mustPrefix(t, s), s))
	}
	assert.Equal(t, len(prefixes), r.Len())

	for _, s := range prefixes {
		require.NoError(t, r.Delete(mustPrefix(t, s)))
	}
	assert.Equal(t, 0, r.Len())

	count := 0
	for range r.All() {
		count++
	}
	assert.Equal(t, 0, count)
}

// TestDefaultPrefixInvariant covers spec.md §8 invariant 6: the all-zero,
// zero-length prefix behaves like any other route for overwrite, delete
// and exact lookup, despite needing no descent through any table.
func TestDefaultPrefixInvariant(t *testing.T) {
	r := NewIPv4[string]()
	p := mustPrefix(t, "0.0.0.0/0")

	_, ok := r.LookupExact(p)
	assert.False(t, ok)

	require.NoError(t, r.Insert(p, "v1"))
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Insert(p, "v2"))
	assert.Equal(t, 1, r.Len())
	n, ok := r.LookupExact(p)
	require.True(t, ok)
	assert.Equal(t, "v2", n.Data())

	require.NoError(t, r.Delete(p))
	assert.Equal(t, 0, r.Len())
	_, ok = r.Lookup(mustPrefix(t, "1.2.3.4/32"))
	assert.False(t, ok)
}

func TestInsertRejectsOversizedPrefixLength(t *testing.T) {
	r := NewIPv4[string]()
	bogus := fakePrefix{plen: 33, octets: []byte{1, 2, 3, 4}}
	err := r.Insert(bogus, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrefixLenExceedsWidth)
}

type fakePrefix struct {
	plen   int
	octets []byte
}

func (f fakePrefix) PrefixLen() int { return f.plen }
func (f fakePrefix) Octets() []byte { return f.octets }
