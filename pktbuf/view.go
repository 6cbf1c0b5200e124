package pktbuf

// View is a slice of a packet payload with convenience methods, the
// receive-window analogue of the teacher's buffer.View: a thin wrapper
// offering front-trimming, length-capping and copying helpers. The
// window itself reslices payloads directly and does not call them.
type View []byte

// NewView allocates a zeroed buffer of the given size.
func NewView(size int) View {
	return make(View, size)
}

// TrimFront removes the first count bytes of the visible section.
func (v *View) TrimFront(count int) {
	*v = (*v)[count:]
}

// CapLength irreversibly shortens the visible section to length bytes,
// also capping capacity so a caller cannot grow the view back over data
// it has already logically discarded.
func (v *View) CapLength(length int) {
	*v = (*v)[:length:length]
}

// Clone returns a freshly allocated copy of v's bytes.
func (v View) Clone() View {
	c := make(View, len(v))
	copy(c, v)
	return c
}
