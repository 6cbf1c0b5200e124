package observe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDebugEnvEmpty(t *testing.T) {
	require.Equal(t, Flags{}, ParseDebugEnv(""))
}

func TestParseDebugEnvKnownTokens(t *testing.T) {
	require.Equal(t, Flags{RxwTrace: true}, ParseDebugEnv("rxw-trace"))
	require.Equal(t, Flags{GCFriendly: true}, ParseDebugEnv("gc-friendly"))
	require.Equal(t, Flags{GCFriendly: true, RxwTrace: true}, ParseDebugEnv("gc-friendly,rxw-trace"))
}

func TestParseDebugEnvAllToken(t *testing.T) {
	require.Equal(t, Flags{GCFriendly: true, RxwTrace: true}, ParseDebugEnv("all"))
}

func TestParseDebugEnvIgnoresUnknownTokens(t *testing.T) {
	require.Equal(t, Flags{RxwTrace: true}, ParseDebugEnv("bogus rxw-trace also-bogus"))
}

func TestParseDebugEnvHelpReturnsZeroValue(t *testing.T) {
	require.Equal(t, Flags{}, ParseDebugEnv("help,rxw-trace"))
}

func TestParseDebugEnvCaseInsensitive(t *testing.T) {
	require.Equal(t, Flags{RxwTrace: true}, ParseDebugEnv("RXW-TRACE"))
}
