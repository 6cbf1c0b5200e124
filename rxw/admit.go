package rxw

import (
	"time"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/status"
)

// Add is the single admission entry point for every received data or
// parity packet, per spec.md §4.2.
func (w *Window) Add(skb *pktbuf.SKB, nakRbExpiry time.Time) status.Code {
	if err := validateHeader(skb); err != nil {
		return status.MALFORMED
	}

	sequence := skb.Sequence

	if !w.isDefined {
		w.Define(sequence)
	} else if skb.HasFragmentOption() {
		w.UpdateTrail(skb.Fragment.ApduFirstSqn)
	}

	if skb.IsParity() {
		return w.addParity(skb, nakRbExpiry)
	}
	return w.addData(skb, nakRbExpiry)
}

// validateHeader enforces spec.md §4.2's OPT_FRAGMENT preconditions.
// A single-fragment APDU (apdu_len == len) must have the option
// cleared by the caller before reaching Add; the admission path
// re-normalises it here as defence at the boundary (Open Question a).
func validateHeader(skb *pktbuf.SKB) error {
	if !skb.HasFragmentOption() {
		return nil
	}
	f := skb.Fragment
	l := uint32(skb.Len())
	if f.ApduLen < l {
		return &status.Violation{Op: "rxw.Add", Detail: "apdu_len < len"}
	}
	if f.ApduFirstSqn.GT(skb.Sequence) {
		return &status.Violation{Op: "rxw.Add", Detail: "apdu_first_sqn > sequence"}
	}
	if f.ApduLen == l {
		skb.Options &^= pktbuf.OptFragment
	}
	return nil
}

func (w *Window) addParity(skb *pktbuf.SKB, nakRbExpiry time.Time) status.Code {
	s := skb.Sequence
	tg := w.tgSqn(s)
	leadTG := w.tgSqn(w.lead)

	switch {
	case tg.LT(w.tgSqn(w.commitLead)):
		return status.DUPLICATE

	case tg.LT(leadTG):
		return w.Insert(skb)

	case tg.Equal(leadTG):
		if w.isTGContiguous(tg) {
			skb.CB.IsContiguous = true
			return w.Append(skb)
		}
		return w.Insert(skb)

	default:
		created, degraded := w.AddPlaceholderRange(tg.Sub(1), nakRbExpiry)
		if degraded {
			return status.SLOW_CONSUMER
		}
		code := w.Append(skb)
		if created > 0 && code == status.APPENDED {
			return status.MISSING
		}
		return code
	}
}

func (w *Window) addData(skb *pktbuf.SKB, nakRbExpiry time.Time) status.Code {
	s := skb.Sequence
	nextLead := w.lead.Add(1)

	switch {
	// The commit window is the half-open range [trail, commitLead);
	// commitLead itself is the first not-yet-committed position, so
	// the duplicate cutoff is strict.
	case s.LT(w.commitLead):
		return status.DUPLICATE

	case s.LTE(w.lead):
		return w.Insert(skb)

	case s.Equal(nextLead):
		if w.isFirstOfTG(s) {
			skb.CB.IsContiguous = true
		}
		return w.Append(skb)

	default:
		created, degraded := w.AddPlaceholderRange(s.Sub(1), nakRbExpiry)
		if degraded {
			return status.SLOW_CONSUMER
		}
		code := w.Append(skb)
		if created > 0 && code == status.APPENDED {
			return status.MISSING
		}
		return code
	}
}

// isTGContiguous reports whether the transmission group opening at tg
// is currently marked contiguous, per the opening slot's control
// block bit maintained by AddPlaceholder/Append (spec.md §4.3/§4.5).
func (w *Window) isTGContiguous(tg seq.Value) bool {
	opener := w.get(tg)
	return opener != nil && opener.CB.IsContiguous
}
