package rxw

import (
	"time"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/status"
)

// Readv pulls contiguous complete APDUs into msgVector, per spec.md
// §4.6. It returns the total bytes committed, or -1 if nothing could
// be delivered this call.
func (w *Window) Readv(msgVector []*pktbuf.SKB) (int, status.Code) {
	if w.IsEmpty() {
		return -1, status.OK
	}

	head := w.get(w.commitLead)
	switch {
	case head == nil:
		status.Violationf("rxw.Readv", "commit_lead %d has no slot but window is non-empty", w.commitLead)
	case head.CB.State == pktbuf.LostData:
		w.RemoveTrail()
		return -1, status.OK
	case head.CB.State == pktbuf.HaveData:
		// fall through to commit loop
	case head.CB.State == pktbuf.BackOff, head.CB.State == pktbuf.WaitNCF,
		head.CB.State == pktbuf.WaitData, head.CB.State == pktbuf.HaveParity:
		return -1, status.OK
	default:
		status.Violationf("rxw.Readv", "commit_lead in unreachable state %s", head.CB.State)
	}

	total := 0
	n := 0
	for !w.IsEmpty() && n < len(msgVector) {
		firstSeq := w.commitLead
		if first := w.get(firstSeq); first != nil && first.HasFragmentOption() {
			firstSeq = first.Fragment.ApduFirstSqn
		}
		if !w.IsApduComplete(firstSeq, len(msgVector)-n) {
			break
		}

		apduBytes := 0
		for {
			skb := w.get(w.commitLead)
			if skb == nil {
				status.Violationf("rxw.Readv", "commit loop hit nil slot at %d", w.commitLead)
			}
			w.transition(skb, pktbuf.Commit)
			msgVector[n] = skb
			n++
			total += skb.Len()
			apduBytes += skb.Len()

			apduDone := !skb.HasFragmentOption() ||
				skb.Fragment.ApduFirstSqn.Equal(firstSeq) && apduBytes >= int(skb.Fragment.ApduLen)

			if w.isLastOfTG(w.commitLead) {
				w.releaseTrailingLostInTG(w.tgSqn(w.commitLead))
			}
			w.commitLead = w.commitLead.Add(1)

			if apduDone || w.commitLead.GT(w.lead) {
				break
			}
			next := w.get(w.commitLead)
			if next == nil || next.CB.State != pktbuf.Commit && next.CB.State != pktbuf.HaveData {
				break
			}
		}
	}

	if n == 0 {
		return -1, status.OK
	}
	return total, status.OK
}

// releaseTrailingLostInTG advances trail across any LOST-DATA slots
// left behind once commit_lead crosses a transmission-group boundary,
// per spec.md §4.6's Readv commit loop.
func (w *Window) releaseTrailingLostInTG(tg seq.Value) {
	limit := w.tgSize
	if limit == 0 {
		limit = 1
	}
	for w.trail.LTE(tg.Add(limit-1)) && w.trail.LT(w.commitLead) {
		skb := w.get(w.trail)
		if skb == nil || skb.CB.State != pktbuf.LostData {
			return
		}
		skb.Release()
		w.set(w.trail, nil)
		w.trail = w.trail.Add(1)
	}
}

// Confirm records an NCF for sequence, per spec.md §4.6.
func (w *Window) Confirm(sequence seq.Value, nakRdataExpiry, nakRbExpiry time.Time) status.Code {
	if !w.isDefined {
		return status.OK
	}
	if sequence.LTE(w.commitLead) {
		return status.OK
	}
	if sequence.LTE(w.lead) {
		skb := w.get(sequence)
		if skb == nil {
			status.Violationf("rxw.Confirm", "in-window sequence %d has no slot", sequence)
		}
		switch skb.CB.State {
		case pktbuf.BackOff, pktbuf.WaitNCF:
			skb.CB.NakRdataExpiry = nakRdataExpiry
			w.transition(skb, pktbuf.WaitData)
			return status.UPDATED
		case pktbuf.HaveData, pktbuf.HaveParity, pktbuf.Commit, pktbuf.LostData:
			return status.DUPLICATE
		default:
			status.Violationf("rxw.Confirm", "slot %d in unreachable state %s", sequence, skb.CB.State)
		}
	}
	if sequence.Equal(w.lead.Add(1)) {
		ph := w.AddPlaceholder(nakRbExpiry)
		ph.CB.NakRdataExpiry = nakRdataExpiry
		w.transition(ph, pktbuf.WaitData)
		return status.UPDATED
	}
	if _, degraded := w.AddPlaceholderRange(sequence.Sub(1), nakRbExpiry); degraded {
		return status.SLOW_CONSUMER
	}
	ph := w.AddPlaceholder(nakRbExpiry)
	ph.CB.NakRdataExpiry = nakRdataExpiry
	w.transition(ph, pktbuf.WaitData)
	return status.UPDATED
}

// Lost marks sequence LOST-DATA after its retransmission phases time
// out, per spec.md §4.6.
func (w *Window) Lost(sequence seq.Value) {
	skb := w.get(sequence)
	if skb == nil {
		status.Violationf("rxw.Lost", "sequence %d has no slot", sequence)
	}
	switch skb.CB.State {
	case pktbuf.BackOff, pktbuf.WaitNCF, pktbuf.WaitData:
		w.transition(skb, pktbuf.LostData)
	default:
		status.Violationf("rxw.Lost", "slot %d not in a queued state (%s)", sequence, skb.CB.State)
	}
}

// RemoveTrail purges every LOST APDU at the trail, per spec.md §4.6.
// Preconditions: the commit window is empty and the incoming window
// is non-empty.
func (w *Window) RemoveTrail() int {
	if w.trail.LT(w.commitLead) {
		status.Violationf("rxw.RemoveTrail", "commit window non-empty (trail=%d commit_lead=%d)", w.trail, w.commitLead)
	}
	if w.IsEmpty() {
		status.Violationf("rxw.RemoveTrail", "incoming window empty")
	}

	count := 0
	for {
		skb := w.get(w.trail)
		if skb == nil {
			break
		}
		firstSeq := w.trail
		if skb.HasFragmentOption() {
			firstSeq = skb.Fragment.ApduFirstSqn
		}
		if !w.IsApduLost(firstSeq) {
			break
		}
		w.Unlink(skb)
		w.trail = w.trail.Add(1)
		if w.commitLead.LT(w.trail) {
			w.commitLead = w.trail
		}
		count++
		if w.trail.GT(w.lead) {
			break
		}
	}
	w.cumulativeLosses += uint64(count)
	return count
}

// Unlink detaches skb from whatever queue or ring slot currently holds
// it and releases the window's reference, per spec.md §6.
func (w *Window) Unlink(skb *pktbuf.SKB) {
	if q := w.queueFor(skb.CB.State); q != nil {
		q.Remove(skb)
	} else if skb.CB.State != pktbuf.ErrorState {
		w.decrementCounter(skb.CB.State)
	}
	w.set(skb.Sequence, nil)
	skb.CB.State = pktbuf.ErrorState
	skb.Release()
}
