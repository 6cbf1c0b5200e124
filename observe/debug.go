// Package observe carries the ambient logging, metrics, and debug-flag
// concerns the receive window itself stays free of (spec.md §5
// forbids internal side-channel work on the hot path). It is grounded
// on the teacher's network stack staying silent about logging
// entirely and borrowing the logging/metrics shape from the rest of
// the retrieved pack instead: github.com/sirupsen/logrus for
// structured logging and github.com/prometheus/client_golang for a
// pull-based custom collector.
package observe

import (
	"fmt"
	"os"
	"strings"
)

// Flags is the parsed form of the PGM_DEBUG environment variable,
// spec.md §6 "Debug switches".
type Flags struct {
	GCFriendly bool
	RxwTrace   bool
}

var knownTokens = []string{"gc-friendly", "rxw-trace", "all", "help"}

// ParseDebugEnv parses a comma/space separated PGM_DEBUG value. An
// unrecognised token is ignored rather than rejected, matching the
// original's tolerant tokenizer; "help" prints the known tokens to
// stderr and returns the zero Flags.
func ParseDebugEnv(value string) Flags {
	var f Flags
	for _, tok := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		switch strings.ToLower(tok) {
		case "gc-friendly":
			f.GCFriendly = true
		case "rxw-trace":
			f.RxwTrace = true
		case "all":
			f.GCFriendly = true
			f.RxwTrace = true
		case "help":
			fmt.Fprintf(os.Stderr, "PGM_DEBUG tokens: %s\n", strings.Join(knownTokens, ", "))
			return Flags{}
		}
	}
	return f
}
