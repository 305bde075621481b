// Package eod aggregates the daily JSONL trade log into a per-symbol CSV
// summary. Crypto markets have no close, so days roll over at UTC
// midnight: the previous day is summarized once after rollover, and the
// current day on shutdown.
package eod

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type tradeLine struct {
	Time, Symbol, Side string
	Qty                float64
	Price              float64
	OrderID, Reason    string
}

type aggRow struct {
	Symbol      string
	BuyQty      float64
	BuyValue    float64
	SellQty     float64
	SellValue   float64
	RealizedPnL float64
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func tradeFile(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}

func csvPath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), "eod", d+".csv")
}

// SummarizeDay writes the CSV summary for the given day and returns its
// path. Returns "" without error when the day had no trades.
func SummarizeDay(t time.Time) (string, error) {
	inPath := tradeFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var tl tradeLine
		if err := json.Unmarshal(sc.Bytes(), &tl); err != nil {
			continue
		}
		row := aggs[tl.Symbol]
		if row == nil {
			row = &aggRow{Symbol: tl.Symbol}
			aggs[tl.Symbol] = row
		}
		switch tl.Side {
		case "BUY":
			row.BuyQty += tl.Qty
			row.BuyValue += tl.Qty * tl.Price
		case "SELL":
			row.SellQty += tl.Qty
			row.SellValue += tl.Qty * tl.Price
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := csvPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"symbol", "buy_qty", "buy_avg", "sell_qty", "sell_avg", "realized_pnl", "gross_buy_value", "gross_sell_value"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var totalBuy, totalSell, totalPnL float64
	for _, k := range keys {
		r := aggs[k]
		var buyAvg, sellAvg float64
		if r.BuyQty > 0 {
			buyAvg = r.BuyValue / r.BuyQty
		}
		if r.SellQty > 0 {
			sellAvg = r.SellValue / r.SellQty
		}
		matched := r.BuyQty
		if r.SellQty < matched {
			matched = r.SellQty
		}
		// +0 normalizes IEEE negative zero when matched == 0, so the CSV
		// never shows "-0.00".
		r.RealizedPnL = matched*(sellAvg-buyAvg) + 0
		rec := []string{
			r.Symbol,
			fmt.Sprintf("%.6f", r.BuyQty),
			fmt.Sprintf("%.4f", buyAvg),
			fmt.Sprintf("%.6f", r.SellQty),
			fmt.Sprintf("%.4f", sellAvg),
			fmt.Sprintf("%.2f", r.RealizedPnL),
			fmt.Sprintf("%.2f", r.BuyValue),
			fmt.Sprintf("%.2f", r.SellValue),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalBuy += r.BuyValue
		totalSell += r.SellValue
		totalPnL += r.RealizedPnL
	}
	_ = w.Write([]string{"TOTAL", "", "", "", "", fmt.Sprintf("%.2f", totalPnL), fmt.Sprintf("%.2f", totalBuy), fmt.Sprintf("%.2f", totalSell)})
	return outPath, nil
}

// SummarizeToday summarizes the current UTC day.
func SummarizeToday() (string, error) { return SummarizeDay(time.Now().UTC()) }

// ShouldRunNow reports whether yesterday's summary is still missing even
// though its trade log exists.
func ShouldRunNow() (bool, string) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	outPath := csvPath(yesterday)
	if _, err := os.Stat(tradeFile(yesterday)); err != nil {
		return false, outPath
	}
	if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
		return true, outPath
	}
	return false, outPath
}
