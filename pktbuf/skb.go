// Package pktbuf defines the packet-buffer (skb) type the receive
// window admits, installs into its ring, and eventually hands to the
// application or frees. It is modelled on the teacher's buffer.View /
// buffer.VectorisedView payload types (buffer/view.go), generalised
// with the PGM-specific header fields and per-slot control block
// spec.md §3 describes, and on fail-fast allocation idioms throughout
// the corpus (the window never tolerates an allocation failure by
// degrading; it terminates, matching spec.md §5 and §6).
package pktbuf

import (
	"time"

	"github.com/SunilProgramer/openpgm/ilist"
	"github.com/SunilProgramer/openpgm/seq"
)

// TSI is the 8-byte opaque transport session identifier. The window
// holds it but never interprets its structure.
type TSI [8]byte

// NullTSI is the all-zero sentinel the wire format assumptions never
// legally produce, reserved for window-allocated placeholders.
func NullTSI() TSI {
	return TSI{}
}

// IsNull reports whether t is the null TSI.
func (t TSI) IsNull() bool {
	return t == TSI{}
}

// Option bits carried on a data or parity packet header, per spec.md
// §6 "Wire assumptions".
type Option uint8

const (
	OptParity Option = 1 << iota
	OptVarPktlen
	OptPresent
	OptFragment
)

func (o Option) has(bit Option) bool { return o&bit != 0 }

// FragmentHeader carries OPT_FRAGMENT's two fields. All fragments of
// one APDU share both values.
type FragmentHeader struct {
	ApduFirstSqn seq.Value
	ApduLen      uint32
}

// SKB is one transport PDU: a received datagram (data or parity) or a
// window-allocated placeholder, plus everything the window's state
// machine needs attached to it. An SKB installed in a ring slot is also
// linked on exactly one retransmit queue while its State is
// BackOff/WaitNCF/WaitData, and on none otherwise; the embedded Elem is
// unused while State is HaveData/HaveParity/Commit/LostData.
type SKB struct {
	ilist.Elem[SKB]

	Sequence    seq.Value
	Tstamp      time.Time
	TSI         TSI
	Payload     View
	Options     Option
	Fragment    FragmentHeader
	ZeroPadded  bool
	IsPlaceholder bool

	// TGSqnShift and RSK/RSN are not stored per packet; geometry lives
	// on the window. A packet only ever needs to know its own sequence
	// to compute tg_sqn against that geometry.

	CB ControlBlock

	refCnt int32
}

// Alloc allocates a new SKB sized for a payload of at most maxTPDU
// bytes. Fail-fast: like the rest of this module's allocation path, an
// out-of-memory condition is left to the Go runtime, which already
// terminates the process rather than returning a recoverable error —
// the same fail-fast contract spec.md §6 specifies for pgm_malloc.
func Alloc(maxTPDU int) *SKB {
	s := &SKB{
		Payload: make(View, 0, maxTPDU),
		refCnt:  1,
	}
	return s
}

// NewPlaceholder builds a zero-length, null-TSI SKB for sequence at
// the given window-allocated moment, per spec.md §4.3 AddPlaceholder.
func NewPlaceholder(sequence seq.Value, now time.Time, nakRbExpiry time.Time) *SKB {
	s := &SKB{
		Sequence:      sequence,
		Tstamp:        now,
		TSI:           NullTSI(),
		IsPlaceholder: true,
		refCnt:        1,
	}
	s.CB.NakRbExpiry = nakRbExpiry
	return s
}

// Reserve grows the payload's capacity to at least n bytes without
// changing its length.
func (s *SKB) Reserve(n int) {
	if cap(s.Payload) >= n {
		return
	}
	grown := make(View, len(s.Payload), n)
	copy(grown, s.Payload)
	s.Payload = grown
}

// Put extends the payload's visible length by n bytes, returning the
// newly exposed region for the caller to fill.
func (s *SKB) Put(n int) View {
	l := len(s.Payload)
	s.Reserve(l + n)
	s.Payload = s.Payload[:l+n]
	return s.Payload[l : l+n]
}

// Len returns the payload length in bytes.
func (s *SKB) Len() int {
	return len(s.Payload)
}

// Take increments the reference count, used when a slot's ownership is
// shared with the application at Readv time.
func (s *SKB) Take() {
	s.refCnt++
}

// Release decrements the reference count. The window calls this when a
// slot is unlinked; the application calls it through the session facade
// once a committed message has been consumed.
func (s *SKB) Release() {
	s.refCnt--
	if s.refCnt < 0 {
		panic("pktbuf: SKB refcount underflow")
	}
}

// RefCount reports the current reference count, for tests and
// diagnostics.
func (s *SKB) RefCount() int32 {
	return s.refCnt
}

// HasFragmentOption reports whether OPT_FRAGMENT is set.
func (s *SKB) HasFragmentOption() bool {
	return s.Options.has(OptFragment)
}

// IsParity reports whether this SKB carries FEC parity rather than data.
func (s *SKB) IsParity() bool {
	return s.Options.has(OptParity)
}

// HasVarPktlen reports whether OPT_VAR_PKTLEN is set.
func (s *SKB) HasVarPktlen() bool {
	return s.Options.has(OptVarPktlen)
}
