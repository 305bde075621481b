package tradelog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendWritesJSONLine(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	err := Append(Entry{
		Symbol:  "BTCUSDT",
		Side:    "BUY",
		OrderID: "SIM-1",
		Reason:  "ENTRY",
		Qty:     0.000123,
		Price:   65000.5,
	})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".txt")
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		t.Fatal("expected one log line")
	}
	var got Entry
	if err := json.Unmarshal(sc.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Symbol != "BTCUSDT" || got.Side != "BUY" || got.Qty != 0.000123 || got.Price != 65000.5 {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Time == "" {
		t.Error("expected Time to be stamped")
	}
}

func TestAppendDecisionWritesToDecisionsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	err := AppendDecision(DecisionEntry{
		Symbol: "ETHUSDT",
		Action: "HOLD",
		Reason: "",
		Price:  3200.1,
		Indicators: map[string]float64{
			"RSI":     52.3,
			"FAST_MA": 3190.0,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "decisions", time.Now().UTC().Format("2006-01-02")+".txt")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got DecisionEntry
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got.Action != "HOLD" || got.Indicators["RSI"] != 52.3 {
		t.Errorf("unexpected decision entry: %+v", got)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	old := filepath.Join(dir, "2026-01-01.txt")
	if err := os.WriteFile(old, []byte(`{"Symbol":"BTCUSDT"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".txt")
	if err := os.WriteFile(fresh, []byte(`{"Symbol":"ETHUSDT"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected stale log to be removed after compression")
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Error("expected gzipped archive of stale log")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("expected fresh log to be left alone")
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	old := filepath.Join(dir, "2026-01-01.txt")
	if err := os.WriteFile(old, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(old); err != nil {
		t.Error("expected log untouched with retention disabled")
	}
}
