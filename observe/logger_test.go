package observe

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
)

func TestTraceFuncNilWhenDisabled(t *testing.T) {
	log, _ := test.NewNullLogger()
	l := NewLogger(log, Flags{RxwTrace: false})
	require.Nil(t, l.TraceFunc())
}

func TestTraceFuncLogsStateTransition(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	l := NewLogger(log, Flags{RxwTrace: true})

	trace := l.TraceFunc()
	require.NotNil(t, trace)

	trace(seq.Value(42), pktbuf.BackOff, pktbuf.HaveData)

	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	require.Equal(t, uint32(42), hook.LastEntry().Data["sequence"])
	require.Equal(t, "BACK-OFF", hook.LastEntry().Data["from"])
	require.Equal(t, "HAVE-DATA", hook.LastEntry().Data["to"])
}

func TestLostLogsWarning(t *testing.T) {
	log, hook := test.NewNullLogger()
	l := NewLogger(log, Flags{})

	l.Lost(seq.Value(7))

	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
