package rxw

import (
	"time"

	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/pkg/errors"
)

// Reconstruct recovers every missing data slot in the transmission
// group opening at tg via the rs collaborator, per spec.md §4.6.
//
// Parity shards are assigned to Reed-Solomon rows in the order their
// slots appear in the transmission group (pgm_rxw_reconstruct's rs_h
// counter in rxwi.c), not by a protocol-carried shard index — the wire
// format never carries one. This is exact for the overwhelmingly
// common rs_n == rs_k+1 case (one parity shard has exactly one
// possible row) and is the same simplification the original
// implementation makes.
func (w *Window) Reconstruct(tg seq.Value) error {
	if w.decoder == nil {
		return errors.New("rxw: FEC not available")
	}
	k := int(w.tgSize)
	n := w.decoder.N()

	shards := make([][]byte, n)
	slots := make([]*pktbuf.SKB, n)
	parityRow := k

	maxLen := 0
	for i := 0; i < k; i++ {
		s := tg.Add(uint32(i))
		skb := w.get(s)
		slots[i] = skb
		if skb != nil && skb.CB.State == pktbuf.HaveData {
			shards[i] = []byte(skb.Payload)
			if len(skb.Payload) > maxLen {
				maxLen = len(skb.Payload)
			}
		}
	}
	for i := 0; i < k; i++ {
		s := tg.Add(uint32(i))
		skb := w.get(s)
		if skb != nil && skb.CB.State == pktbuf.HaveParity {
			if parityRow >= n {
				return errors.New("rxw: more parity shards present than rs geometry allows")
			}
			shards[parityRow] = []byte(skb.Payload)
			if len(skb.Payload) > maxLen {
				maxLen = len(skb.Payload)
			}
			parityRow++
		}
	}

	for _, sh := range shards {
		if sh != nil && len(sh) != maxLen {
			return errors.New("rxw: transmission group shard lengths disagree")
		}
	}

	if err := w.decoder.DecodeParityAppended(shards); err != nil {
		return errors.Wrap(err, "rxw: reconstruct transmission group")
	}

	for i := 0; i < k; i++ {
		if slots[i] != nil && slots[i].CB.State == pktbuf.HaveData {
			continue
		}
		s := tg.Add(uint32(i))
		recovered := pktbuf.Alloc(w.maxTPDU)
		recovered.Sequence = s
		recovered.Tstamp = time.Now()
		view := recovered.Put(len(shards[i]))
		copy(view, shards[i])

		if first := w.get(tg); first != nil && first.HasVarPktlen() && len(shards[i]) >= 2 {
			trueLen := int(shards[i][len(shards[i])-2])<<8 | int(shards[i][len(shards[i])-1])
			if trueLen > len(shards[i]) {
				w.markTGLost(tg)
				return errors.New("rxw: recovered var-pktlen exceeds parity length")
			}
			recovered.Payload = recovered.Payload[:trueLen]
			recovered.Options |= pktbuf.OptVarPktlen
		}

		w.Insert(recovered)
	}
	return nil
}
