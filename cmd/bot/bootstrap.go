package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/betoborelli9/beto-bot/internal/engine"
	"github.com/betoborelli9/beto-bot/internal/engine/engineobs"
	"github.com/betoborelli9/beto-bot/internal/exchange/binance"
	"github.com/betoborelli9/beto-bot/internal/exchange/exchangeobs"
	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/notify/noop"
	"github.com/betoborelli9/beto-bot/internal/notify/notifyobs"
	"github.com/betoborelli9/beto-bot/internal/notify/telegram"
	"github.com/betoborelli9/beto-bot/internal/store"
	"github.com/betoborelli9/beto-bot/internal/trace"
	"github.com/betoborelli9/beto-bot/internal/tradelog"
)

// initializeSystem loads the environment and sets up logger and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs gzips old tradelog files when retention is configured.
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeExchange builds the Binance client wrapped with observability.
func initializeExchange(ctx context.Context, cfg *store.Config) interfaces.Exchange {
	exch := binance.New(binance.Params{
		Mode:      cfg.Mode,
		APIKey:    os.Getenv("BINANCE_API_KEY"),
		APISecret: os.Getenv("BINANCE_API_SECRET"),
	})

	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	}

	return exchangeobs.Wrap(exch)
}

// initializeNotifier returns a Telegram notifier when credentials are
// present and a silent one otherwise, wrapped so delivery failures only
// ever surface as warnings.
func initializeNotifier(ctx context.Context) interfaces.Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	if token == "" || chatID == "" {
		logger.Warn(ctx, "No Telegram credentials configured - notifications disabled")
		return notifyobs.Wrap(noop.New())
	}
	return notifyobs.Wrap(telegram.New(token, chatID))
}

// validateUniverse drops symbols the exchange does not trade. Invalid
// symbols are reported once at startup; a validation call failure keeps
// the symbol (the exchange may just be briefly unreachable).
func validateUniverse(ctx context.Context, cfg *store.Config, exch interfaces.Exchange, notifier interfaces.Notifier) {
	if !cfg.ValidateUniverse {
		return
	}

	valid := make([]string, 0, len(cfg.UniverseStatic))
	var dropped []string
	for _, sym := range cfg.UniverseStatic {
		ok, err := exch.ValidateSymbol(ctx, sym)
		if err != nil {
			logger.Warn(ctx, "Symbol validation unavailable, keeping symbol", "symbol", sym, "error", err)
			valid = append(valid, sym)
			continue
		}
		if ok {
			valid = append(valid, sym)
		} else {
			dropped = append(dropped, sym)
		}
	}

	if len(dropped) > 0 {
		logger.Warn(ctx, "Dropped invalid symbols from universe", "symbols", dropped)
		notifier.Send(ctx, fmt.Sprintf("⚠️ Removed untradable symbols: `%s`", strings.Join(dropped, "`, `")))
	}
	cfg.UniverseStatic = valid
}

// loadPositions restores open positions from the previous run.
func loadPositions(ctx context.Context, cfg *store.Config) (*store.Positions, error) {
	positions, err := store.LoadPositions(cfg.PositionsPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load position store", err, "path", cfg.PositionsPath)
		return nil, err
	}
	if positions.Len() > 0 {
		logger.Info(ctx, "Recovered open positions", "count", positions.Len(), "symbols", positions.Symbols())
	}
	return positions, nil
}

// initializeEngine wires the trading engine with observability.
func initializeEngine(cfg *store.Config, exch interfaces.Exchange, positions *store.Positions, notifier interfaces.Notifier) interfaces.Engine {
	return engineobs.Wrap(engine.New(cfg, exch, positions, notifier))
}
