package rxw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SunilProgramer/openpgm/pktbuf"
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

func newTestWindow(t *testing.T, capacity uint32) *Window {
	t.Helper()
	return New(Config{MaxTPDU: 1500, Sqns: capacity})
}

func TestColdStartInOrder(t *testing.T) {
	w := newTestWindow(t, 32)

	require.Equal(t, status.APPENDED, w.Add(dataSKB(100, "A"), time.Now()))
	require.Equal(t, status.APPENDED, w.Add(dataSKB(101, "B"), time.Now()))
	require.Equal(t, status.APPENDED, w.Add(dataSKB(102, "C"), time.Now()))

	vec := make([]*pktbuf.SKB, 8)
	n, _ := w.Readv(vec)
	require.Equal(t, 3, n)

	require.Equal(t, seq.Value(103), w.CommitLead())
}

func TestSingleGapRecoveredByRetransmit(t *testing.T) {
	w := newTestWindow(t, 32)

	require.Equal(t, status.APPENDED, w.Add(dataSKB(100, "A"), time.Now()))
	code102 := w.Add(dataSKB(102, "C"), time.Now())
	require.True(t, code102 == status.MISSING || code102 == status.APPENDED)

	vec := make([]*pktbuf.SKB, 8)
	n, _ := w.Readv(vec)
	require.Equal(t, 1, n) // "A" is a complete single-packet APDU; 101 is still missing

	code := w.Add(dataSKB(101, "B"), time.Now())
	require.Equal(t, status.INSERTED, code)

	n, _ = w.Readv(vec)
	require.Equal(t, 2, n) // "B" then "C"
}

func TestDuplicateRetransmitIsIdempotent(t *testing.T) {
	w := newTestWindow(t, 32)

	require.Equal(t, status.APPENDED, w.Add(dataSKB(100, "A"), time.Now()))
	before := w.Stats()

	code := w.Add(dataSKB(100, "A"), time.Now())
	require.Equal(t, status.DUPLICATE, code)

	after := w.Stats()
	require.Equal(t, before.FragmentCount, after.FragmentCount)
}

func TestMalformedFragmentLength(t *testing.T) {
	w := newTestWindow(t, 32)

	skb := dataSKB(100, "AB")
	skb.Options |= pktbuf.OptFragment
	skb.Fragment.ApduFirstSqn = 100
	skb.Fragment.ApduLen = 1 // < len, malformed

	code := w.Add(skb, time.Now())
	require.Equal(t, status.MALFORMED, code)
	require.Nil(t, w.Peek(100))
}

func TestSlowConsumerBlocksOnFullCommitWindow(t *testing.T) {
	w := newTestWindow(t, 6)

	require.Equal(t, status.APPENDED, w.Add(dataSKB(100, "A"), time.Now()))
	require.Equal(t, status.APPENDED, w.Add(dataSKB(101, "B"), time.Now()))
	require.Equal(t, status.APPENDED, w.Add(dataSKB(102, "C"), time.Now()))
	require.Equal(t, status.APPENDED, w.Add(dataSKB(103, "D"), time.Now()))

	vec := make([]*pktbuf.SKB, 8)
	n, _ := w.Readv(vec)
	require.Equal(t, 4, n)
	require.Equal(t, seq.Value(104), w.CommitLead())

	trailBefore := w.Trail()
	lossesBefore := w.Stats().CumulativeLosses

	code := w.Add(dataSKB(200, "Z"), time.Now())
	require.Equal(t, status.SLOW_CONSUMER, code)

	require.Equal(t, trailBefore, w.Trail())
	require.True(t, w.Stats().CumulativeLosses > lossesBefore)
}

func TestUpdateTrailJumpsEmptyIncomingWindow(t *testing.T) {
	w := newTestWindow(t, 32)

	require.Equal(t, status.APPENDED, w.Add(dataSKB(100, "A"), time.Now()))
	require.Equal(t, status.APPENDED, w.Add(dataSKB(101, "B"), time.Now()))

	vec := make([]*pktbuf.SKB, 8)
	w.Readv(vec)

	// Both packets are committed, so the incoming window is empty and
	// the advertised trail moves every pointer forward to 103.
	w.UpdateTrail(103)
	require.Equal(t, 0, w.Stats().LostCount)
	require.Equal(t, seq.Value(103), w.Trail())
	require.Equal(t, seq.Value(103), w.CommitLead())
	require.Equal(t, uint64(3), w.Stats().CumulativeLosses)
}
