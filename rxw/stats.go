package rxw

import "time"

// Stats is a point-in-time snapshot of the window's session-long
// counters, mirroring the fields rxwi.c's pgm_rxw_t carries alongside
// the ring itself.
type Stats struct {
	FragmentCount  int
	ParityCount    int
	CommittedCount int
	LostCount      int

	BackoffQueueLen  int
	WaitNCFQueueLen  int
	WaitDataQueueLen int

	CumulativeLosses uint64

	MinFillTime time.Duration
	MaxFillTime time.Duration

	MinNakTransmitCount uint8
	MaxNakTransmitCount uint8

	IsWaiting bool
}

// Stats returns a snapshot, safe to read at any point between calls
// into the window (the window itself is never concurrently mutated,
// per spec.md §5).
func (w *Window) Stats() Stats {
	return Stats{
		FragmentCount:       w.fragmentCount,
		ParityCount:         w.parityCount,
		CommittedCount:      w.committedCount,
		LostCount:           w.lostCount,
		BackoffQueueLen:     w.backoffQueue.Len(),
		WaitNCFQueueLen:     w.waitNCFQueue.Len(),
		WaitDataQueueLen:    w.waitDataQueue.Len(),
		CumulativeLosses:    w.cumulativeLosses,
		MinFillTime:         w.minFillTime,
		MaxFillTime:         w.maxFillTime,
		MinNakTransmitCount: w.minNakTransmitCount,
		MaxNakTransmitCount: w.maxNakTransmitCount,
		IsWaiting:           w.isWaiting,
	}
}
