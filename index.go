package art

// extractField reads the `width`-bit field beginning at bit offset
// `offset` from a big-endian byte slice and returns it right-aligned
// (i.e. in [0, 2^width)). It is the byte-straddling primitive bindex is
// built on: a field crosses a byte boundary whenever offset%8 + width
// exceeds 8 (e.g. offset 6, width 4). The IPv4 and IPv6 presets use
// nibble-aligned strides that never straddle, but other stride layouts
// passed to New can.
//
// boff = offset%8 is the bit position within the first byte touched;
// bend = boff+width is where the field ends relative to that byte. The
// loop below collects every byte from offset/8 up to the one containing
// bend, then shifts the excess low bits off and masks to `width` bits.
func extractField(addr []byte, offset, width int) uint32 {
	if width == 0 {
		return 0
	}
	startByte := offset / 8
	boff := offset % 8
	bend := boff + width
	endByte := startByte + (bend+7)/8

	var v uint32
	for i := startByte; i < endByte; i++ {
		v = v<<8 | uint32(addr[i])
	}
	totalBits := (endByte - startByte) * 8
	shift := totalBits - boff - width
	v >>= uint(shift)
	return v & (1<<uint(width) - 1)
}

// bindex returns the base index inside a table of the given offset/width
// for a prefix of length plen, and whether plen falls within the table's
// range (offset <= plen <= offset+width). The index lives in the
// complete binary heap of depth `width` rooted at slot 1: plen==offset
// maps to 1 (the default slot), plen==offset+width maps to a fringe slot
// in [2^width, 2^(width+1)).
func bindex(offset, width int, addr []byte, plen int) (int, bool) {
	if plen < offset || plen > offset+width {
		return 0, false
	}
	pl := plen - offset
	k := extractField(addr, offset, width)
	return int(k>>uint(width-pl)) + (1 << uint(pl)), true
}

// findex is bindex specialized to plen = offset+width: it always lands
// on a fringe slot, used to descend through a table during insert,
// delete and lookup.
func findex(offset, width int, addr []byte) int {
	i, _ := bindex(offset, width, addr, offset+width)
	return i
}
