// Package rxw implements the receive window: the sliding-window data
// structure, per-packet state machine, admission logic, fragment
// reassembly, and Reed-Solomon-backed parity recovery for one PGM
// source session. It never sends NAKs, never touches a socket, and
// never runs a timer; callers hand it timestamps and classifications
// and all of the window's own accounting is purely data-driven,
// mirroring the teacher's tcp.receiver/tcp.sender split between
// protocol state and the NIC/timer machinery around it
// (transport/tcp/rcv.go, transport/tcp/snd.go).
package rxw

import (
	"time"

	"github.com/SunilProgramer/openpgm/ilist"
	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/rs"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/status"
)

// TraceFunc receives one line per state transition when tracing is
// enabled. The window never logs on its own; observe.Logger supplies
// this hook so rxw stays importable without pulling in logrus.
type TraceFunc func(sequence seq.Value, from, to pktbuf.State)

// Config builds a Window. Capacity is given either as a raw sequence
// count (Sqns) or as a (Seconds, MaxRate) product divided by MaxTPDU;
// the two modes are mutually exclusive, per spec.md §3 "Lifecycle".
type Config struct {
	MaxTPDU int

	Sqns uint32

	Seconds uint32
	MaxRate uint32

	IsFECEnabled bool
	RSK          int
	RSN          int
	TGSqnShift   uint

	Trace TraceFunc
}

func (c Config) capacity() uint32 {
	if c.Sqns != 0 {
		return c.Sqns
	}
	bytesPerSecond := uint64(c.Seconds) * uint64(c.MaxRate)
	return uint32(bytesPerSecond / uint64(c.MaxTPDU))
}

// Window is a single session's receive window. It is not internally
// synchronised: spec.md §5 requires the owning session to serialise
// every call itself.
type Window struct {
	maxTPDU int
	alloc   uint32

	pdata map[uint32]*pktbuf.SKB

	trail      seq.Value
	commitLead seq.Value
	lead       seq.Value

	rxwTrail     seq.Value
	rxwTrailInit seq.Value

	isDefined     bool
	isConstrained bool

	isFECAvailable bool
	rsK, rsN       int
	tgSize         uint32
	tgSqnShift     uint
	decoder        *rs.Decoder

	backoffQueue  ilist.List[pktbuf.SKB]
	waitNCFQueue  ilist.List[pktbuf.SKB]
	waitDataQueue ilist.List[pktbuf.SKB]

	fragmentCount  int
	parityCount    int
	committedCount int
	lostCount      int

	cumulativeLosses    uint64
	minFillTime         time.Duration
	maxFillTime         time.Duration
	minNakTransmitCount uint8
	maxNakTransmitCount uint8
	haveFillSample      bool
	haveNakSample       bool

	isWaiting bool

	trace TraceFunc
}

// New builds an undefined window; the first call to Add defines it.
func New(cfg Config) *Window {
	alloc := cfg.capacity()
	if alloc == 0 {
		status.Violationf("rxw.New", "computed zero capacity from config %+v", cfg)
	}
	w := &Window{
		maxTPDU:        cfg.MaxTPDU,
		alloc:          alloc,
		pdata:          make(map[uint32]*pktbuf.SKB, alloc),
		isFECAvailable: cfg.IsFECEnabled,
		rsK:            cfg.RSK,
		rsN:            cfg.RSN,
		tgSqnShift:     cfg.TGSqnShift,
		trace:          cfg.Trace,
	}
	if cfg.TGSqnShift > 0 {
		w.tgSize = 1 << cfg.TGSqnShift
	}
	if cfg.IsFECEnabled {
		dec, err := rs.NewDecoder(cfg.RSK, cfg.RSN)
		if err != nil {
			status.Violationf("rxw.New", "bad FEC geometry: %v", err)
		}
		w.decoder = dec
	}
	return w
}

// index maps a sequence onto its ring slot key. The ring is modelled
// as a map keyed by sequence mod alloc rather than the teacher's flat
// slice-of-pointers (stack/nic.go's routing tables use a similar
// keyed-lookup shape); this keeps slot identity tied to the sequence
// itself instead of relying on wraparound-safe slice indexing math
// scattered across call sites.
func (w *Window) index(s seq.Value) uint32 {
	return uint32(s) % w.alloc
}

// tgSqn returns the transmission-group-aligned sequence containing s.
func (w *Window) tgSqn(s seq.Value) seq.Value {
	if w.tgSize == 0 {
		return s
	}
	return seq.Value(uint32(s) &^ (w.tgSize - 1))
}

func (w *Window) isLastOfTG(s seq.Value) bool {
	if w.tgSize == 0 {
		return true
	}
	return uint32(s)&(w.tgSize-1) == w.tgSize-1
}

func (w *Window) isFirstOfTG(s seq.Value) bool {
	if w.tgSize == 0 {
		return true
	}
	return uint32(s)&(w.tgSize-1) == 0
}

// IsDefined reports whether the first packet has arrived.
func (w *Window) IsDefined() bool { return w.isDefined }

// IsEmpty reports whether the incoming window [commitLead, lead] holds
// no slots.
func (w *Window) IsEmpty() bool {
	return w.isDefined && w.commitLead.GT(w.lead)
}

// IsFull reports whether the window has reached capacity.
func (w *Window) IsFull() bool {
	return w.isDefined && w.trail.Distance(w.lead)+1 >= w.alloc
}

// Trail, CommitLead and Lead expose the three pointers for tests and
// for the session façade's Shutdown walk.
func (w *Window) Trail() seq.Value      { return w.trail }
func (w *Window) CommitLead() seq.Value { return w.commitLead }
func (w *Window) Lead() seq.Value       { return w.lead }

// IsWaiting reports the edge-triggered signal set on any transition
// into LOST-DATA, per spec.md §5. The transport clears it after
// servicing via ClearWaiting.
func (w *Window) IsWaiting() bool { return w.isWaiting }

// ClearWaiting clears the is_waiting signal.
func (w *Window) ClearWaiting() { w.isWaiting = false }

func (w *Window) get(s seq.Value) *pktbuf.SKB {
	return w.pdata[w.index(s)]
}

func (w *Window) set(s seq.Value, skb *pktbuf.SKB) {
	if skb == nil {
		delete(w.pdata, w.index(s))
		return
	}
	w.pdata[w.index(s)] = skb
}

// Peek returns the slot installed at sequence, or nil.
func (w *Window) Peek(sequence seq.Value) *pktbuf.SKB {
	return w.get(sequence)
}
