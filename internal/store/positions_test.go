package store

import (
	"path/filepath"
	"testing"

	"github.com/betoborelli9/beto-bot/internal/types"
)

func TestLoadPositionsMissingFile(t *testing.T) {
	p, err := LoadPositions(filepath.Join(t.TempDir(), "positions.json"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 0 {
		t.Errorf("expected empty table, got %d entries", p.Len())
	}
}

func TestPositionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	p, err := LoadPositions(path)
	if err != nil {
		t.Fatal(err)
	}
	pos := types.Position{
		Symbol:          "BTCUSDT",
		EntryPrice:      100,
		Qty:             0.06,
		StopPrice:       98.5,
		TakeProfitPrice: 103,
		OpenedAt:        1700000000,
	}
	if err := p.Insert(pos); err != nil {
		t.Fatal(err)
	}

	// Simulated restart: reload from the same file.
	p2, err := LoadPositions(path)
	if err != nil {
		t.Fatal(err)
	}
	got := p2.Get("BTCUSDT")
	if got == nil {
		t.Fatal("expected position to survive restart")
	}
	if *got != pos {
		t.Errorf("position changed across restart: want %+v, got %+v", pos, *got)
	}
}

func TestPositionsDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	p, err := LoadPositions(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Insert(types.Position{Symbol: "ETHUSDT", EntryPrice: 50, Qty: 0.1, StopPrice: 49.25, TakeProfitPrice: 51.5}); err != nil {
		t.Fatal(err)
	}
	if err := p.Delete("ETHUSDT"); err != nil {
		t.Fatal(err)
	}

	p2, err := LoadPositions(path)
	if err != nil {
		t.Fatal(err)
	}
	if p2.Get("ETHUSDT") != nil {
		t.Error("expected delete to persist across restart")
	}
}

func TestPositionsGetReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	p, err := LoadPositions(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Insert(types.Position{Symbol: "BTCUSDT", EntryPrice: 100, Qty: 0.06, StopPrice: 98.5, TakeProfitPrice: 103}); err != nil {
		t.Fatal(err)
	}

	got := p.Get("BTCUSDT")
	got.EntryPrice = 1
	if p.Get("BTCUSDT").EntryPrice != 100 {
		t.Error("expected Get to return a copy, not a reference into the table")
	}
}
