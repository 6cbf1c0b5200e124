// Command pgmrxwd is a demonstration harness that drives one
// session.Session through a synthetic packet trace, serving its
// metrics over HTTP. It contains no NAK scheduling policy and no
// socket I/O of its own: spec.md's Non-goals exclude both, and the
// trace replay only calls the window's public API with externally
// supplied timestamps.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SunilProgramer/openpgm/config"
	"github.com/SunilProgramer/openpgm/observe"
	"github.com/SunilProgramer/openpgm/pktbuf"
	"github.com/SunilProgramer/openpgm/rxw"
	"github.com/SunilProgramer/openpgm/seq"
	"github.com/SunilProgramer/openpgm/session"
)

func main() {
	if err := _main(); err != nil {
		defer os.Exit(1)

		type stackTracer interface {
			StackTrace() errors.StackTrace
		}
		var st errors.StackTrace
		if e, ok := err.(stackTracer); ok {
			st = e.StackTrace()
		}
		logrus.Errorf("%s%+v\n", err, st)
	}
}

func _main() error {
	var traceLen int

	root := &cobra.Command{
		Use:   "pgmrxwd",
		Short: "Replay a synthetic PGM packet trace through a receive window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), traceLen)
		},
	}
	root.Flags().IntVar(&traceLen, "trace-len", 16, "number of synthetic data packets to replay")

	return root.ExecuteContext(context.Background())
}

func run(ctx context.Context, traceLen int) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	flags := observe.ParseDebugEnv(cfg.Debug)
	logger := observe.NewLogger(logrus.StandardLogger(), flags)

	windowCfg := rxw.Config{
		MaxTPDU:      cfg.MaxTPDU,
		Sqns:         cfg.Sqns,
		Seconds:      cfg.Seconds,
		MaxRate:      cfg.MaxRate,
		IsFECEnabled: cfg.IsFECEnabled,
		RSK:          cfg.RSK,
		RSN:          cfg.RSN,
		TGSqnShift:   cfg.TGSqnShift,
	}
	if windowCfg.Sqns == 0 && (windowCfg.Seconds == 0 || windowCfg.MaxRate == 0) {
		windowCfg.Sqns = 4096
	}

	tsi := session.NewTSI()
	sess := session.Init(tsi, windowCfg, logger)
	defer func() {
		if err := sess.Shutdown(); err != nil {
			logrus.WithError(err).Warn("shutdown reported errors")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(observe.NewCollector(sess.Window(), fmt.Sprintf("%x", tsi)))

	server := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{})}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()
	defer server.Close()

	replayTrace(sess, traceLen)
	return nil
}

// replayTrace feeds traceLen single-fragment data packets through
// sess, printing each packet's admission code and the byte count of
// every Readv that commits data. It is a fixed synthetic
// generator, not a file-sourced replay, since no wire-capture format
// is in scope here.
func replayTrace(sess *session.Session, traceLen int) {
	base := time.Now()
	for i := 0; i < traceLen; i++ {
		skb := pktbuf.Alloc(1500)
		skb.Sequence = seq.Value(i)
		view := skb.Put(4)
		copy(view, fmt.Sprintf("%04d", i))
		skb.Tstamp = base.Add(time.Duration(i) * time.Millisecond)

		code := sess.Add(skb, base.Add(100*time.Millisecond))
		fmt.Printf("add seq=%d code=%s\n", i, code)

		vec := make([]*pktbuf.SKB, 16)
		if n, _ := sess.Readv(vec); n > 0 {
			fmt.Printf("readv: %d bytes committed\n", n)
		}
	}
}
