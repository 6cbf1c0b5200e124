package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PGM_MAX_TPDU", "")
	t.Setenv("PGM_RXW_SQNS", "")
	t.Setenv("PGM_RS_K", "")
	t.Setenv("PGM_RS_N", "")
	t.Setenv("PGM_TG_SQN_SHIFT", "")
	t.Setenv("PGM_METRICS_ADDR", "")

	w, err := Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1500, w.MaxTPDU)
	require.Equal(t, 8, w.RSK)
	require.Equal(t, 9, w.RSN)
	require.Equal(t, uint(3), w.TGSqnShift)
	require.Equal(t, ":9320", w.MetricsAddr)
	require.False(t, w.IsFECEnabled)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("PGM_MAX_TPDU", "9000")
	t.Setenv("PGM_RXW_SQNS", "131072")
	t.Setenv("PGM_FEC_ENABLED", "true")
	t.Setenv("PGM_RS_K", "4")
	t.Setenv("PGM_RS_N", "5")
	t.Setenv("PGM_DEBUG", "rxw-trace")

	w, err := Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9000, w.MaxTPDU)
	require.Equal(t, uint32(131072), w.Sqns)
	require.True(t, w.IsFECEnabled)
	require.Equal(t, 4, w.RSK)
	require.Equal(t, 5, w.RSN)
	require.Equal(t, "rxw-trace", w.Debug)
}
