// Package seq implements RFC 1982 style serial number arithmetic over
// 32-bit sequence numbers. Every comparison between PGM sequence numbers
// must go through this package; raw operator comparisons on the
// underlying uint32 are not permitted outside of it, since sequence
// space wraps.
package seq

// Value is a 32-bit serial number. The zero value is a valid sequence.
type Value uint32

// signedDiff returns a - b interpreted as a signed 32-bit difference, the
// basis for every ordering relation in this package.
func signedDiff(a, b Value) int32 {
	return int32(a - b)
}

// LT reports whether a precedes b in serial order.
func (a Value) LT(b Value) bool {
	return signedDiff(a, b) < 0
}

// LTE reports whether a precedes or equals b in serial order.
func (a Value) LTE(b Value) bool {
	return signedDiff(a, b) <= 0
}

// GT reports whether a follows b in serial order.
func (a Value) GT(b Value) bool {
	return signedDiff(a, b) > 0
}

// GTE reports whether a follows or equals b in serial order.
func (a Value) GTE(b Value) bool {
	return signedDiff(a, b) >= 0
}

// Equal reports value equality; serial arithmetic has no effect on it.
func (a Value) Equal(b Value) bool {
	return a == b
}

// Add returns a advanced by delta sequences.
func (a Value) Add(delta uint32) Value {
	return a + Value(delta)
}

// Sub returns a stepped back by delta sequences.
func (a Value) Sub(delta uint32) Value {
	return a - Value(delta)
}

// Distance returns the number of sequences from a (inclusive) up to b
// (exclusive), i.e. b - a, under serial arithmetic. The caller must
// already know a <= b in serial order; the legal ordering span is half
// the 32-bit range, so distances beyond that are meaningless.
func (a Value) Distance(b Value) uint32 {
	return uint32(b - a)
}

// InRange reports whether v lies in the closed interval [lo, hi] under
// serial order.
func (v Value) InRange(lo, hi Value) bool {
	return v.GTE(lo) && v.LTE(hi)
}

// Min returns whichever of a, b precedes the other in serial order.
func Min(a, b Value) Value {
	if a.LT(b) {
		return a
	}
	return b
}

// Max returns whichever of a, b follows the other in serial order.
func Max(a, b Value) Value {
	if a.GT(b) {
		return a
	}
	return b
}
