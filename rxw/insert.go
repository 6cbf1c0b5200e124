package rxw

import (
	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/status"
)

// Insert installs a data or parity packet into a slot already inside
// [commitLead, lead], per spec.md §4.4.
func (w *Window) Insert(skb *pktbuf.SKB) status.Code {
	var target seq.Value
	var placeholder *pktbuf.SKB

	if skb.IsParity() {
		missing, ok := w.findMissing(w.tgSqn(skb.Sequence))
		if !ok {
			return status.DUPLICATE
		}
		target = missing
		placeholder = w.get(missing)
	} else {
		target = skb.Sequence
		placeholder = w.get(target)
		if placeholder != nil && placeholder.CB.State == pktbuf.HaveData {
			return status.DUPLICATE
		}
	}

	if placeholder == nil {
		return status.DUPLICATE
	}

	firstOfTG := w.get(w.tgSqn(target))
	isFirst := w.isFirstOfTG(target)
	if pktbuf.IsInvalidVarPktlen(w.isFECAvailable, skb, isFirst, firstOfTG) ||
		pktbuf.IsInvalidPayloadOp(w.isFECAvailable, skb, isFirst, firstOfTG) {
		return status.MALFORMED
	}

	if skb.HasFragmentOption() && w.IsApduLost(skb.Fragment.ApduFirstSqn) {
		w.transition(placeholder, pktbuf.LostData)
		return status.BOUNDS
	}

	if placeholder.CB.State == pktbuf.HaveParity {
		w.shuffleParity(placeholder, target)
		// shuffleParity may have had nowhere to relocate the
		// displaced parity packet (the TG was down to its last
		// missing slot) and dropped it, leaving target empty; skb
		// is about to occupy it fresh either way.
		placeholder = w.get(target)
	}

	if placeholder != nil {
		w.recordFillTime(skb.Tstamp.Sub(placeholder.Tstamp))
		w.recordNakTransmitCount(placeholder.CB.NakTransmitCount)

		// The queue node lives inside the placeholder object itself,
		// not the incoming skb, so it must be unlinked before the
		// placeholder is discarded; transition() below would
		// otherwise try to remove the wrong object from the queue.
		w.retire(placeholder)
		skb.CB = placeholder.CB
		skb.CB.State = pktbuf.ErrorState
		placeholder.Release()
	} else {
		skb.CB = pktbuf.ControlBlock{}
	}
	w.set(target, skb)

	newState := pktbuf.HaveData
	if skb.IsParity() {
		newState = pktbuf.HaveParity
	}
	w.transition(skb, newState)
	return status.INSERTED
}

// retire detaches skb from whichever retransmit queue it is on, or
// decrements its state counter if it was not queued. Used when an
// object is being discarded rather than transitioned to a new state
// itself (its replacement is transitioned instead).
func (w *Window) retire(skb *pktbuf.SKB) {
	if q := w.queueFor(skb.CB.State); q != nil {
		q.Remove(skb)
	} else if skb.CB.State != pktbuf.ErrorState {
		w.decrementCounter(skb.CB.State)
	}
}

// findMissing locates the first slot in the transmission group opening
// at tg that is not HAVE-DATA, per spec.md §4.4's parity Insert path.
func (w *Window) findMissing(tg seq.Value) (seq.Value, bool) {
	limit := w.tgSize
	if limit == 0 {
		limit = 1
	}
	for i := uint32(0); i < limit; i++ {
		s := tg.Add(i)
		if s.GT(w.lead) {
			break
		}
		slot := w.get(s)
		if slot == nil || slot.CB.State != pktbuf.HaveData {
			return s, true
		}
	}
	return seq.Value(0), false
}

// shuffleParity relocates the parity skb currently occupying victim to
// another still-missing slot s in its transmission group, swapping in
// whatever placeholder was sitting at s, so the incoming data packet
// can take victim's place. Ring slots in this implementation are a
// map keyed by sequence, not a literal array, so the swap also
// rewrites each object's own Sequence field to match its new map key
// — the two must always agree, per the window's slot invariants.
func (w *Window) shuffleParity(parity *pktbuf.SKB, victim seq.Value) {
	tg := w.tgSqn(victim)
	limit := w.tgSize
	if limit == 0 {
		limit = 1
	}
	for i := uint32(0); i < limit; i++ {
		s := tg.Add(i)
		if s.Equal(victim) || s.GT(w.lead) {
			continue
		}
		slot := w.get(s)
		if slot != nil && slot.CB.State == pktbuf.HaveData {
			continue
		}
		w.set(s, parity)
		parity.Sequence = s
		if slot != nil {
			w.set(victim, slot)
			slot.Sequence = victim
		} else {
			w.set(victim, nil)
		}
		return
	}
	// No other slot in the TG can take the parity packet; it is
	// dropped. This only happens when the TG is down to its last
	// missing slot, which the caller is about to fill with data
	// anyway.
	w.retire(parity)
	w.set(victim, nil)
	parity.Release()
}

// Append installs a packet at the window's current leading edge,
// advancing lead by exactly one slot, per spec.md §4.4. Matching
// rxwi.c's pgm_rxw_append, lead is incremented first and the target
// ring slot is the new lead; for data this must equal skb.Sequence,
// for parity the slot represents the next member of the transmission
// group regardless of the parity packet's own wire sequence.
func (w *Window) Append(skb *pktbuf.SKB) status.Code {
	target := w.lead.Add(1)
	if !skb.IsParity() && !skb.Sequence.Equal(target) {
		status.Violationf("rxw.Append", "data sequence %d != next lead %d", skb.Sequence, target)
	}

	firstOfTG := w.get(w.tgSqn(target))
	isFirst := w.isFirstOfTG(target)
	if pktbuf.IsInvalidVarPktlen(w.isFECAvailable, skb, isFirst, firstOfTG) ||
		pktbuf.IsInvalidPayloadOp(w.isFECAvailable, skb, isFirst, firstOfTG) {
		return status.MALFORMED
	}

	if w.IsFull() {
		w.RemoveTrail()
	}

	w.lead = target

	// A first fragment opens its own APDU; its slot is not installed
	// yet, so IsApduLost would see it empty.
	if skb.HasFragmentOption() && !skb.Fragment.ApduFirstSqn.Equal(skb.Sequence) &&
		w.IsApduLost(skb.Fragment.ApduFirstSqn) {
		ph := pktbuf.NewPlaceholder(target, skb.Tstamp, skb.CB.NakRbExpiry)
		w.set(target, ph)
		w.transition(ph, pktbuf.LostData)
		return status.BOUNDS
	}

	w.set(target, skb)
	newState := pktbuf.HaveData
	if skb.IsParity() {
		newState = pktbuf.HaveParity
	}
	w.transition(skb, newState)
	return status.APPENDED
}
