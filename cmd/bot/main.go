package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/betoborelli9/beto-bot/internal/eod"
	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer trace.Shutdown(context.Background())

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	compressOldLogs(ctx)

	exch := initializeExchange(ctx, cfg)
	notifier := initializeNotifier(ctx)
	validateUniverse(ctx, cfg, exch, notifier)
	if len(cfg.UniverseStatic) == 0 {
		logger.Error(ctx, "No tradable symbols left in universe")
		os.Exit(1)
	}

	positions, err := loadPositions(ctx, cfg)
	if err != nil {
		os.Exit(1)
	}

	eng := initializeEngine(cfg, exch, positions, notifier)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()
	eodTick := time.NewTicker(60 * time.Second)
	defer eodTick.Stop()

	logger.Info(ctx, "Bot started",
		"mode", cfg.Mode,
		"universe", cfg.UniverseStatic,
		"poll_seconds", cfg.PollSeconds,
		"bar_interval", cfg.BarInterval,
	)
	notifier.Send(ctx, "🤖 Bot started: RSI + MA crossover + recent low, with stop/profit bands.")

	runPass(ctx, cfg.UniverseStatic, eng)
	for {
		select {
		case <-tick.C:
			runPass(ctx, cfg.UniverseStatic, eng)
		case <-eodTick.C:
			if ok, _ := eod.ShouldRunNow(); ok {
				if p, err := eod.SummarizeDay(time.Now().UTC().AddDate(0, 0, -1)); err == nil && p != "" {
					logger.Info(ctx, "EOD CSV written", "path", p)
				}
			}
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			if p, err := eod.SummarizeToday(); err == nil && p != "" {
				logger.Info(ctx, "EOD CSV written", "path", p)
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

// runPass walks the universe once. A symbol's failure never aborts the
// pass over the remaining symbols.
func runPass(ctx context.Context, symbols []string, eng interfaces.Engine) {
	for _, sym := range symbols {
		if _, err := eng.Step(ctx, sym); err != nil {
			logger.ErrorWithErr(ctx, "Step failed", err, "symbol", sym)
		}
	}
}
