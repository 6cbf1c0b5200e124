package rxw

import (
	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
)

const maxFragments = 256

// IsApduLost reports whether the APDU opening at firstSequence cannot
// be completed, per spec.md §4.6: the first-fragment slot lies outside
// [trail, lead], is empty, or is LOST. It does not look at the slot of
// any later fragment.
func (w *Window) IsApduLost(firstSequence seq.Value) bool {
	if !firstSequence.InRange(w.trail, w.lead) {
		return true
	}
	skb := w.get(firstSequence)
	if skb == nil {
		return true
	}
	return skb.CB.State == pktbuf.LostData
}

// IsApduComplete walks the slots of the APDU opening at firstSequence,
// per spec.md §4.6. maxLen bounds how many fragments may be consumed
// (the caller's remaining message-vector slots).
func (w *Window) IsApduComplete(firstSequence seq.Value, maxLen int) bool {
	first := w.get(firstSequence)
	if first == nil {
		return false
	}
	apduLen := uint32(first.Len())
	if first.HasFragmentOption() {
		apduLen = first.Fragment.ApduLen
	}

	contiguousSize := uint32(0)
	fragments := 0
	checkParity := false
	sequence := firstSequence

	for {
		skb := w.get(sequence)
		if skb == nil {
			if checkParity {
				break
			}
			return false
		}

		if skb.HasFragmentOption() {
			if !skb.Fragment.ApduFirstSqn.Equal(firstSequence) || skb.Fragment.ApduLen != apduLen {
				w.lost(firstSequence)
				return false
			}
		} else if !sequence.Equal(firstSequence) {
			w.lost(firstSequence)
			return false
		}

		fragments++
		if fragments > maxFragments {
			w.lost(firstSequence)
			return false
		}

		switch skb.CB.State {
		case pktbuf.HaveData:
			contiguousSize += uint32(skb.Len())
			if contiguousSize == apduLen {
				return true
			}
			if contiguousSize > apduLen {
				w.lost(firstSequence)
				return false
			}

		default:
			tg := w.tgSqn(sequence)
			if w.isFECAvailable && !w.isTGLost(tg) {
				checkParity = true
				if w.countTGPresent(tg) >= int(w.tgSize) {
					if err := w.Reconstruct(tg); err != nil {
						w.markTGLost(tg)
						return false
					}
					return w.IsApduComplete(firstSequence, maxLen)
				}
				break
			}
			return false
		}

		if fragments >= maxLen {
			return false
		}
		sequence = sequence.Add(1)
		if sequence.GT(w.lead) {
			return false
		}
	}

	return false
}

func (w *Window) lost(firstSequence seq.Value) {
	if skb := w.get(firstSequence); skb != nil && skb.CB.State != pktbuf.LostData {
		w.transition(skb, pktbuf.LostData)
	}
}

// isTGLost is a pure bounds check, matching rxwi.c's
// pgm_rxw_is_tg_sqn_lost: a transmission group is lost only once it has
// fallen entirely behind the trail (or the window holds nothing at
// all), never merely because one of its member slots is individually
// LOST-DATA — that case is exactly what Reconstruct exists to recover
// from.
func (w *Window) isTGLost(tg seq.Value) bool {
	return w.IsEmpty() || tg.LT(w.trail)
}

func (w *Window) markTGLost(tg seq.Value) {
	limit := w.tgSize
	if limit == 0 {
		limit = 1
	}
	for i := uint32(0); i < limit; i++ {
		s := tg.Add(i)
		skb := w.get(s)
		if skb != nil && skb.CB.State != pktbuf.HaveData {
			w.transition(skb, pktbuf.LostData)
		}
	}
}

func (w *Window) countTGPresent(tg seq.Value) int {
	limit := w.tgSize
	if limit == 0 {
		limit = 1
	}
	n := 0
	for i := uint32(0); i < limit; i++ {
		skb := w.get(tg.Add(i))
		if skb != nil && (skb.CB.State == pktbuf.HaveData || skb.CB.State == pktbuf.HaveParity) {
			n++
		}
	}
	return n
}
