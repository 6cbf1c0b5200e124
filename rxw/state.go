package rxw

import (
	"time"

	"github.com/SunilProgramer/openpgm/ilist"
	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/status"
)

// queueFor returns the retransmit queue a slot in state s belongs on,
// or nil if s is not a queued state. This is the single place that
// maps BACK-OFF/WAIT-NCF/WAIT-DATA to their queue, per spec.md §4.5's
// requirement that queue membership and state agree everywhere.
func (w *Window) queueFor(s pktbuf.State) *ilist.List[pktbuf.SKB] {
	switch s {
	case pktbuf.BackOff:
		return &w.backoffQueue
	case pktbuf.WaitNCF:
		return &w.waitNCFQueue
	case pktbuf.WaitData:
		return &w.waitDataQueue
	default:
		return nil
	}
}

// transition is the single routine through which every slot state
// change flows, per spec.md §4.5 and §9 ("model as a tagged variant
// with a single transition function"). It unlinks skb from its
// current queue (if any), relinks it onto the destination queue (if
// any), and keeps the four non-queued counters in lockstep.
func (w *Window) transition(skb *pktbuf.SKB, to pktbuf.State) {
	from := skb.CB.State
	if from == to {
		return
	}

	if q := w.queueFor(from); q != nil {
		q.Remove(skb)
	} else {
		w.decrementCounter(from)
	}

	skb.CB.State = to

	if q := w.queueFor(to); q != nil {
		q.PushBack(skb)
	} else {
		w.incrementCounter(to)
	}

	if to == pktbuf.LostData {
		w.cumulativeLosses++
		w.isWaiting = true
	}

	if w.trace != nil {
		w.trace(skb.Sequence, from, to)
	}
}

func (w *Window) incrementCounter(s pktbuf.State) {
	switch s {
	case pktbuf.HaveData:
		w.fragmentCount++
	case pktbuf.HaveParity:
		w.parityCount++
	case pktbuf.Commit:
		w.committedCount++
	case pktbuf.LostData:
		w.lostCount++
	case pktbuf.ErrorState:
		// momentary, never counted
	default:
		status.Violationf("rxw.transition", "unreachable destination state %s", s)
	}
}

func (w *Window) decrementCounter(s pktbuf.State) {
	switch s {
	case pktbuf.HaveData:
		w.fragmentCount--
	case pktbuf.HaveParity:
		w.parityCount--
	case pktbuf.Commit:
		w.committedCount--
	case pktbuf.LostData:
		w.lostCount--
	case pktbuf.ErrorState:
	default:
		status.Violationf("rxw.transition", "unreachable source state %s", s)
	}
	if w.fragmentCount < 0 || w.parityCount < 0 || w.committedCount < 0 || w.lostCount < 0 {
		status.Violationf("rxw.transition", "counter underflow leaving state %s", s)
	}
}

// recordFillTime folds one Insert's fill time into the session-long
// min/max statistics, per spec.md §3's min_fill_time/max_fill_time.
func (w *Window) recordFillTime(d time.Duration) {
	if !w.haveFillSample {
		w.minFillTime, w.maxFillTime = d, d
		w.haveFillSample = true
		return
	}
	if d < w.minFillTime {
		w.minFillTime = d
	}
	if d > w.maxFillTime {
		w.maxFillTime = d
	}
}

func (w *Window) recordNakTransmitCount(c uint8) {
	if !w.haveNakSample {
		w.minNakTransmitCount, w.maxNakTransmitCount = c, c
		w.haveNakSample = true
		return
	}
	if c < w.minNakTransmitCount {
		w.minNakTransmitCount = c
	}
	if c > w.maxNakTransmitCount {
		w.maxNakTransmitCount = c
	}
}
