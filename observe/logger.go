package observe

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/rxw"
	"github.com/SunilProgramer/openpgm/seq"
)

// Logger wraps a logrus.FieldLogger with the session-lifecycle and
// window-trace calls a caller wires into rxw.Config.Trace and
// session.Session. rxw.Window never imports this package; Logger
// supplies the rxw.TraceFunc closure instead, keeping the window
// importable standalone.
type Logger struct {
	log   logrus.FieldLogger
	trace bool
}

// NewLogger builds a Logger. When flags.RxwTrace is unset, TraceFunc
// returns nil so the window never pays for formatting trace lines it
// would immediately discard.
func NewLogger(log logrus.FieldLogger, flags Flags) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logger{log: log, trace: flags.RxwTrace}
}

// TraceFunc returns an rxw.TraceFunc bound to this logger, or nil if
// tracing is disabled.
func (l *Logger) TraceFunc() rxw.TraceFunc {
	if !l.trace {
		return nil
	}
	return func(sequence seq.Value, from, to pktbuf.State) {
		l.log.WithFields(logrus.Fields{
			"sequence": uint32(sequence),
			"from":     from.String(),
			"to":       to.String(),
		}).Debug("rxw: state transition")
	}
}

func (l *Logger) Init(tsi pktbuf.TSI)     { l.log.WithField("tsi", tsi).Debug("session: init") }
func (l *Logger) Shutdown(err error) {
	if err != nil {
		l.log.WithError(err).Warn("session: shutdown with errors")
		return
	}
	l.log.Debug("session: shutdown")
}

func (l *Logger) Lost(sequence seq.Value) {
	l.log.WithField("sequence", uint32(sequence)).Warn("session: sequence lost")
}

func (l *Logger) Confirm(sequence seq.Value, code fmt.Stringer) {
	l.log.WithFields(logrus.Fields{
		"sequence": uint32(sequence),
		"code":     code.String(),
	}).Debug("session: confirm")
}
