package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/rxw"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/status"
)

func dataSKB(sequence uint32, payload string) *pktbuf.SKB {
	skb := pktbuf.Alloc(1500)
	skb.Sequence = seq.Value(sequence)
	skb.Tstamp = time.Now()
	copy(skb.Put(len(payload)), payload)
	return skb
}

func TestNewTSIIsNeverNull(t *testing.T) {
	require.False(t, NewTSI().IsNull())
}

func TestInitAndAddReadv(t *testing.T) {
	tsi := NewTSI()
	s := Init(tsi, rxw.Config{MaxTPDU: 1500, Sqns: 32}, nil)

	require.Equal(t, tsi, s.TSI())
	require.Equal(t, status.APPENDED, s.Add(dataSKB(100, "A"), time.Now()))

	vec := make([]*pktbuf.SKB, 8)
	n, _ := s.Readv(vec)
	require.Equal(t, 1, n)
}

func TestLostMarksSequence(t *testing.T) {
	s := Init(NewTSI(), rxw.Config{MaxTPDU: 1500, Sqns: 32}, nil)

	// The first packet defines the window at its own sequence, so 100
	// must arrive before 102 for 101 to become an in-window gap.
	require.Equal(t, status.APPENDED, s.Add(dataSKB(100, "A"), time.Now()))
	code102 := s.Add(dataSKB(102, "C"), time.Now())
	require.True(t, code102 == status.APPENDED || code102 == status.MISSING)

	s.Lost(seq.Value(101))
	require.True(t, s.Window().IsWaiting())
}

func TestShutdownReleasesRemainingSlots(t *testing.T) {
	s := Init(NewTSI(), rxw.Config{MaxTPDU: 1500, Sqns: 32}, nil)

	require.Equal(t, status.APPENDED, s.Add(dataSKB(100, "A"), time.Now()))

	skb := s.Peek(seq.Value(100))
	require.NotNil(t, skb)

	require.NoError(t, s.Shutdown())
}
