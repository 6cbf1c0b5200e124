package rxw

import (
	"time"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
)

// Define initialises an undefined window from the first admitted
// sequence, per spec.md §4.3. lead is set one behind firstLead so the
// very next Append/AddPlaceholder call advances it onto firstLead.
func (w *Window) Define(firstLead seq.Value) {
	w.lead = firstLead.Sub(1)
	w.trail = firstLead
	w.commitLead = firstLead
	w.rxwTrail = firstLead
	w.rxwTrailInit = firstLead
	w.isDefined = true
	w.isConstrained = true
}

// UpdateTrail advances the window's notion of the advertised trail,
// per spec.md §4.3. It never moves commitLead or trail backward and
// is a no-op on a stale or repeated advertisement.
func (w *Window) UpdateTrail(advertised seq.Value) {
	if w.isConstrained {
		if advertised.GT(w.rxwTrailInit) {
			w.isConstrained = false
		} else {
			return
		}
	}
	if advertised.LTE(w.rxwTrail) {
		return
	}
	w.rxwTrail = advertised
	if advertised.LTE(w.trail) {
		return
	}

	if w.IsEmpty() {
		skipped := w.trail.Distance(advertised)
		w.trail = advertised
		w.commitLead = advertised
		w.lead = advertised.Sub(1)
		w.cumulativeLosses += uint64(skipped)
		return
	}

	for s := w.commitLead; s.LT(advertised); s = s.Add(1) {
		if skb := w.get(s); skb != nil {
			w.transition(skb, pktbuf.LostData)
		}
	}
}

// UpdateLead extends the window forward to advertisedLead, creating
// placeholders for every skipped sequence, per spec.md §4.3. It
// returns the number of placeholders created.
func (w *Window) UpdateLead(advertisedLead seq.Value, nakRbExpiry time.Time) int {
	if advertisedLead.LTE(w.lead) {
		return 0
	}

	newLead := advertisedLead
	commitNonEmpty := w.trail.LT(w.commitLead)
	if commitNonEmpty && w.trail.Distance(advertisedLead) >= w.alloc {
		newLead = w.trail.Add(w.alloc - 1)
	}

	added := 0
	for w.lead.LT(newLead) {
		if w.IsFull() {
			w.RemoveTrail()
		}
		w.AddPlaceholder(nakRbExpiry)
		w.cumulativeLosses++
		added++
	}
	return added
}

// AddPlaceholder allocates a zero-length, null-TSI slot at lead+1 and
// pushes it onto the back-off queue, per spec.md §4.3.
func (w *Window) AddPlaceholder(expiry time.Time) *pktbuf.SKB {
	next := w.lead.Add(1)
	ph := pktbuf.NewPlaceholder(next, time.Now(), expiry)

	if !w.isFirstOfTG(next) {
		if opener := w.get(w.tgSqn(next)); opener != nil {
			opener.CB.IsContiguous = false
		}
	}

	w.lead = next
	w.set(next, ph)
	w.transition(ph, pktbuf.BackOff)
	return ph
}

// wouldOverflowCommitWindow reports whether filling placeholders up to
// target would need to evict slots the application still holds in the
// commit window, per spec.md §4.3's AddPlaceholderRange guard.
func (w *Window) wouldOverflowCommitWindow(target seq.Value) bool {
	commitNonEmpty := w.trail.LT(w.commitLead)
	resultingSpan := uint64(w.trail.Distance(target)) + 1
	return commitNonEmpty && resultingSpan >= uint64(w.alloc)
}

// AddPlaceholderRange fills placeholders up to and including target,
// per spec.md §4.3. When reaching target would overflow a non-empty
// commit window, it degrades to UpdateLead and reports the resulting
// placeholder count instead: the application is a slow consumer. The
// degraded bool tells the caller the requested target was not
// actually reached, so it must not proceed to Append the triggering
// packet.
func (w *Window) AddPlaceholderRange(target seq.Value, expiry time.Time) (added int, degraded bool) {
	if w.wouldOverflowCommitWindow(target) {
		return w.UpdateLead(target, expiry), true
	}

	for w.lead.LT(target) {
		if w.IsFull() {
			w.RemoveTrail()
		}
		w.AddPlaceholder(expiry)
		added++
	}
	return added, false
}
