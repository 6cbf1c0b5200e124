// Package session is the thin in-process façade spec.md §6 describes:
// a TSI bound to one rxw.Window, exposing the session-facing API as
// methods instead of free functions taking a window. rxwi.c has no
// equivalent of this layer (the C file is the window itself); it
// exists here because an idiomatic Go caller wants a receiver, not a
// window handle threaded through every call.
package session

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/xid"

	"github.com/SunilProgramer/openpgm/observe"
	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/rxw"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/status"
)

// Session binds one source's TSI to its receive window.
type Session struct {
	tsi    pktbuf.TSI
	window *rxw.Window
	log    *observe.Logger
}

// NewTSI generates a synthetic TSI for demo/test harnesses via
// rs/xid, the same globally-unique-ID library the pack's exporter
// example uses for synthetic identifiers.
func NewTSI() pktbuf.TSI {
	id := xid.New()
	var tsi pktbuf.TSI
	copy(tsi[:], id.Bytes()[:8])
	return tsi
}

// Init constructs a Session for tsi with the given window
// configuration, per spec.md §6's Init(tsi, max_tpdu, sqns|secs+rate).
func Init(tsi pktbuf.TSI, cfg rxw.Config, log *observe.Logger) *Session {
	if log != nil {
		cfg.Trace = log.TraceFunc()
	}
	s := &Session{
		tsi:    tsi,
		window: rxw.New(cfg),
		log:    log,
	}
	if log != nil {
		log.Init(tsi)
	}
	return s
}

// Shutdown releases every remaining in-window slot, aggregating
// per-slot release panics into one error with go-multierror the way
// independent failures are aggregated elsewhere in the pack's
// deployment tooling, rather than aborting on the first bad slot.
func (s *Session) Shutdown() error {
	var result *multierror.Error
	for sequence := s.window.Trail(); sequence.LTE(s.window.Lead()); sequence = sequence.Add(1) {
		if skb := s.window.Peek(sequence); skb != nil {
			func() {
				defer func() {
					if r := recover(); r != nil {
						result = multierror.Append(result, &releaseError{sequence: sequence, cause: r})
					}
				}()
				s.window.Unlink(skb)
			}()
		}
	}
	err := result.ErrorOrNil()
	if s.log != nil {
		s.log.Shutdown(err)
	}
	return err
}

type releaseError struct {
	sequence seq.Value
	cause    any
}

func (e *releaseError) Error() string {
	return "session: release slot failed"
}

// Add admits one received packet, per spec.md §6.
func (s *Session) Add(skb *pktbuf.SKB, nakRbExpiry time.Time) status.Code {
	return s.window.Add(skb, nakRbExpiry)
}

// Update advances the advertised trail and lead, per spec.md §6.
func (s *Session) Update(txwTrail, txwLead seq.Value, nakRbExpiry time.Time) int {
	s.window.UpdateTrail(txwTrail)
	return s.window.UpdateLead(txwLead, nakRbExpiry)
}

// Readv pulls contiguous complete APDUs, per spec.md §6.
func (s *Session) Readv(vec []*pktbuf.SKB) (int, status.Code) {
	return s.window.Readv(vec)
}

// Confirm records an NCF, per spec.md §6.
func (s *Session) Confirm(sequence seq.Value, nakRdataExpiry, nakRbExpiry time.Time) status.Code {
	code := s.window.Confirm(sequence, nakRdataExpiry, nakRbExpiry)
	if s.log != nil {
		s.log.Confirm(sequence, code)
	}
	return code
}

// Lost marks sequence abandoned, per spec.md §6.
func (s *Session) Lost(sequence seq.Value) {
	s.window.Lost(sequence)
	if s.log != nil {
		s.log.Lost(sequence)
	}
}

// Peek returns the slot at sequence, per spec.md §6.
func (s *Session) Peek(sequence seq.Value) *pktbuf.SKB {
	return s.window.Peek(sequence)
}

// Unlink detaches skb from the window, per spec.md §6.
func (s *Session) Unlink(skb *pktbuf.SKB) {
	s.window.Unlink(skb)
}

// RemoveTrail purges LOST slots at the trail, per spec.md §6.
func (s *Session) RemoveTrail() int {
	return s.window.RemoveTrail()
}

// Stats exposes the window's statistics snapshot for metrics wiring.
func (s *Session) Stats() rxw.Stats {
	return s.window.Stats()
}

// TSI returns the session's identity.
func (s *Session) TSI() pktbuf.TSI { return s.tsi }

// Window exposes the underlying window for collaborators (the metrics
// collector, the CLI) that need direct read access beyond this
// façade's surface.
func (s *Session) Window() *rxw.Window { return s.window }
