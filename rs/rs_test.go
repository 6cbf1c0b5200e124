package rs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconstructSingleLoss(t *testing.T) {
	d, err := NewDecoder(4, 5)
	require.NoError(t, err)

	originals := [][]byte{
		[]byte("aaaa"),
		[]byte("bbbb"),
		[]byte("cccc"),
		[]byte("dddd"),
	}
	shards := make([][]byte, 5)
	copy(shards, originals)
	shards[4] = make([]byte, 4)
	enc, err := NewDecoder(4, 5)
	require.NoError(t, err)
	require.NoError(t, enc.enc.Encode(shards))

	lost := shards[1]
	shards[1] = nil

	require.NoError(t, d.DecodeParityAppended(shards))
	require.True(t, bytes.Equal(lost, shards[1]))
}

func TestDecodeParityAppendedNeedsEnoughShards(t *testing.T) {
	d, err := NewDecoder(4, 5)
	require.NoError(t, err)

	shards := make([][]byte, 5)
	shards[0] = []byte("aaaa")
	shards[1] = []byte("bbbb")

	err = d.DecodeParityAppended(shards)
	require.Error(t, err)
}

func TestDecodeParityAppendedWrongShardCount(t *testing.T) {
	d, err := NewDecoder(4, 5)
	require.NoError(t, err)

	err = d.DecodeParityAppended(make([][]byte, 3))
	require.Error(t, err)
}
