package observe

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/rxw"
	"github.com/SunilProgramer/openpgm/status"
)

func TestCollectorReportsWindowStats(t *testing.T) {
	w := rxw.New(rxw.Config{MaxTPDU: 1500, Sqns: 32})

	skb := pktbuf.Alloc(1500)
	skb.Sequence = 100
	copy(skb.Put(1), "A")
	require.Equal(t, status.APPENDED, w.Add(skb, time.Now()))

	c := NewCollector(w, "test-tsi")

	// fragmentCount, parityCount, committedCount, lostCount, 3x queueLen,
	// cumulativeLoss, isWaiting.
	require.Equal(t, 9, testutil.CollectAndCount(c))
}
