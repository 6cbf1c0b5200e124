// Package rs wraps github.com/klauspost/reedsolomon behind the narrow
// decode-only contract spec.md §6 specifies for the window's FEC
// collaborator: "DecodeParityAppended(payloads[], offsets[], length) —
// reconstructs missing positions in place given the offset permutation.
// Pure function; no retries." klauspost/reedsolomon is the real library
// xtaci/kcp-go's FEC layer is built on (see
// other_examples/..._kcp-go-v5-sess.go.go and the
// klauspost/reedsolomon entries carried in the pack's go.mod
// manifests); rxw.Reconstruct never touches GF(256) arithmetic itself.
package rs

import (
	"github.com/klauspost/reedsolomon"
	"github.com/pkg/errors"
)

// Decoder reconstructs a single transmission group's missing shards
// given k data shards and n-k parity shards. It holds no mutable state
// across calls; one Decoder is shared by every TG a window processes
// as long as (k, n) geometry doesn't change mid-session.
type Decoder struct {
	enc  reedsolomon.Encoder
	k, n int
}

// NewDecoder builds a Decoder for a transmission group of k data shards
// and n total shards (so n-k parity shards). k must equal the window's
// tg_size and n its rs_n, per spec.md's "rs_k == tg_size" constraint.
func NewDecoder(k, n int) (*Decoder, error) {
	if k <= 0 || n <= k {
		return nil, errors.Errorf("rs: invalid geometry k=%d n=%d", k, n)
	}
	enc, err := reedsolomon.New(k, n-k)
	if err != nil {
		return nil, errors.Wrap(err, "rs: construct encoder")
	}
	return &Decoder{enc: enc, k: k, n: n}, nil
}

// DecodeParityAppended reconstructs every missing shard in place.
// shards must have exactly d.n entries ordered by transmission-group
// position (data shards at indices [0, k), parity shards at indices
// [k, n)); a missing shard is represented by a nil entry. Every present
// shard must have the same length; reconstructed shards are allocated
// at that length. Returns an error if fewer than k shards are present,
// or if the present shards disagree on length.
func (d *Decoder) DecodeParityAppended(shards [][]byte) error {
	if len(shards) != d.n {
		return errors.Errorf("rs: expected %d shards, got %d", d.n, len(shards))
	}
	present := 0
	length := -1
	for _, s := range shards {
		if s == nil {
			continue
		}
		present++
		if length == -1 {
			length = len(s)
		} else if len(s) != length {
			return errors.New("rs: present shards disagree on length")
		}
	}
	if present < d.k {
		return errors.Errorf("rs: need %d shards to reconstruct, have %d", d.k, present)
	}
	if err := d.enc.Reconstruct(shards); err != nil {
		return errors.Wrap(err, "rs: reconstruct")
	}
	return nil
}

// K reports the data-shard count (== the window's tg_size).
func (d *Decoder) K() int { return d.k }

// N reports the total shard count (== the window's rs_n).
func (d *Decoder) N() int { return d.n }
