package pktbuf

import "time"

// State is the per-slot state machine variant from spec.md §4.5. Every
// live slot in the window is in exactly one of these; ERROR is a
// momentary value used while an SKB is being swapped between slots and
// must never be observed outside the window's transition routine.
type State int

const (
	// ErrorState is the zero value deliberately: an SKB that has not
	// yet been installed into a slot, or is mid-swap, reads as
	// ErrorState rather than as some other state guessed by omission.
	ErrorState State = iota
	BackOff
	WaitNCF
	WaitData
	HaveData
	HaveParity
	Commit
	LostData
)

func (s State) String() string {
	switch s {
	case BackOff:
		return "BACK-OFF"
	case WaitNCF:
		return "WAIT-NCF"
	case WaitData:
		return "WAIT-DATA"
	case HaveData:
		return "HAVE-DATA"
	case HaveParity:
		return "HAVE-PARITY"
	case Commit:
		return "COMMIT-DATA"
	case LostData:
		return "LOST-DATA"
	default:
		return "ERROR"
	}
}

// Queued reports whether a slot in State s belongs on one of the three
// retransmit queues.
func (s State) Queued() bool {
	return s == BackOff || s == WaitNCF || s == WaitData
}

// ControlBlock is the per-packet state record from spec.md §3 ("cb
// reinterpret"): everything the window needs to know about a slot that
// isn't the payload itself. It is copied, not recreated, when a
// placeholder is replaced by real data (spec.md §4.4 Insert), so
// nak_transmit_count and the expiry clocks survive the swap.
type ControlBlock struct {
	State             State
	NakRbExpiry       time.Time
	NakRdataExpiry    time.Time
	NakTransmitCount  uint8
	IsContiguous      bool
}
