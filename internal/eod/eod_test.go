package eod

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTrades(t *testing.T, dir string, day time.Time, lines ...string) {
	t.Helper()
	path := filepath.Join(dir, day.UTC().Format("2006-01-02")+".txt")
	var body string
	for _, l := range lines {
		body += l + "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSummarizeDay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	writeTrades(t, dir, day,
		`{"Time":"2026-08-29 10:00:00","Symbol":"BTCUSDT","Side":"BUY","Qty":0.06,"Price":100.0,"OrderID":"SIM-1","Reason":"ENTRY"}`,
		`{"Time":"2026-08-29 11:00:00","Symbol":"BTCUSDT","Side":"SELL","Qty":0.06,"Price":103.0,"OrderID":"SIM-2","Reason":"take_profit"}`,
		`{"Time":"2026-08-29 11:30:00","Symbol":"ETHUSDT","Side":"BUY","Qty":0.002,"Price":3000.0,"OrderID":"SIM-3","Reason":"ENTRY"}`,
	)

	outPath, err := SummarizeDay(day)
	if err != nil {
		t.Fatal(err)
	}
	if outPath == "" {
		t.Fatal("expected a summary path")
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header, BTCUSDT, ETHUSDT, TOTAL
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	btc := records[1]
	if btc[0] != "BTCUSDT" {
		t.Errorf("expected BTCUSDT first, got %s", btc[0])
	}
	if btc[1] != "0.060000" || btc[3] != "0.060000" {
		t.Errorf("unexpected qty columns: %v", btc)
	}
	// matched 0.06 at avg 100 -> 103
	if btc[5] != "0.18" {
		t.Errorf("expected realized pnl 0.18, got %s", btc[5])
	}
	eth := records[2]
	if eth[0] != "ETHUSDT" || eth[5] != "0.00" {
		t.Errorf("expected unmatched ETH buy with zero realized pnl, got %v", eth)
	}
	total := records[3]
	if total[0] != "TOTAL" || total[5] != "0.18" {
		t.Errorf("unexpected total row: %v", total)
	}
}

func TestSummarizeDayNoTrades(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())

	outPath, err := SummarizeDay(time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if outPath != "" {
		t.Errorf("expected empty path for day without trades, got %s", outPath)
	}
}

func TestShouldRunNow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	run, _ := ShouldRunNow()
	if run {
		t.Error("expected false without yesterday's trade log")
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	writeTrades(t, dir, yesterday,
		`{"Symbol":"BTCUSDT","Side":"BUY","Qty":0.01,"Price":100.0}`,
	)

	run, _ = ShouldRunNow()
	if !run {
		t.Error("expected true with trade log and no summary")
	}

	if _, err := SummarizeDay(yesterday); err != nil {
		t.Fatal(err)
	}
	run, _ = ShouldRunNow()
	if run {
		t.Error("expected false once the summary exists")
	}
}
