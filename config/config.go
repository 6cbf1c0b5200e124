// Package config declares the environment-driven knobs a deployed
// receiver needs, parsed with github.com/sethvargo/go-envconfig the
// way the pack's container-deployment manifests parse their runtime
// configuration, rather than hand-rolled os.Getenv calls.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Window holds the fields needed to construct an rxw.Config. Exactly
// one of Sqns or (Seconds, MaxRate) should be set; Load does not
// enforce that. cmd/pgmrxwd falls back to 4096 sequences when neither
// is set, and rxw.Config uses Sqns when both are.
type Window struct {
	MaxTPDU int `env:"PGM_MAX_TPDU, default=1500"`

	Sqns uint32 `env:"PGM_RXW_SQNS"`

	Seconds uint32 `env:"PGM_RXW_SECONDS"`
	MaxRate uint32 `env:"PGM_RXW_MAX_RATE"`

	IsFECEnabled bool `env:"PGM_FEC_ENABLED"`
	RSK          int  `env:"PGM_RS_K, default=8"`
	RSN          int  `env:"PGM_RS_N, default=9"`
	TGSqnShift   uint `env:"PGM_TG_SQN_SHIFT, default=3"`

	MetricsAddr string `env:"PGM_METRICS_ADDR, default=:9320"`
	Debug       string `env:"PGM_DEBUG"`
}

// Load parses a Window from the process environment.
func Load(ctx context.Context) (Window, error) {
	var w Window
	if err := envconfig.Process(ctx, &w); err != nil {
		return Window{}, err
	}
	return w, nil
}
