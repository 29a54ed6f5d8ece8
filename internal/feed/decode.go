package feed

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"hft_go/internal/domain"
)

// wireUpdate is the incremental depth payload as streamed by the venue:
// bid and ask deltas as [price, qty] decimal-string pairs.
type wireUpdate struct {
	Bids [][]string `json:"b"`
	Asks [][]string `json:"a"`
}

// wireSnapshot is the full-depth REST payload used to seed the book.
type wireSnapshot struct {
	LastUpdateID int64      `json:"lastUpdateId"`
	Bids         [][]string `json:"bids"`
	Asks         [][]string `json:"asks"`
}

// ParseUpdate decodes one raw update record. Failure is recoverable by
// contract: the caller skips the record and continues.
func ParseUpdate(raw []byte) (domain.DepthUpdate, error) {
	var w wireUpdate
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.DepthUpdate{}, fmt.Errorf("decode update: %w", err)
	}
	if w.Bids == nil && w.Asks == nil {
		return domain.DepthUpdate{}, fmt.Errorf("decode update: no depth arrays")
	}

	bids, err := parseLevels(w.Bids)
	if err != nil {
		return domain.DepthUpdate{}, fmt.Errorf("decode bids: %w", err)
	}
	asks, err := parseLevels(w.Asks)
	if err != nil {
		return domain.DepthUpdate{}, fmt.Errorf("decode asks: %w", err)
	}
	return domain.DepthUpdate{Bids: bids, Asks: asks}, nil
}

// ParseSnapshot decodes the full-depth snapshot body.
func ParseSnapshot(raw []byte) (bids, asks []domain.Level, err error) {
	var w wireSnapshot
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if bids, err = parseLevels(w.Bids); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot bids: %w", err)
	}
	if asks, err = parseLevels(w.Asks); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot asks: %w", err)
	}
	return bids, asks, nil
}

// parseLevels converts [price, qty] string pairs into levels. Decimal
// strings are parsed locale-independently at this boundary only; the core
// runs on float64.
func parseLevels(rows [][]string) ([]domain.Level, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	levels := make([]domain.Level, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("level %d: want [price qty], got %d fields", i, len(row))
		}
		price, err := parseDecimal(row[0])
		if err != nil {
			return nil, fmt.Errorf("level %d price: %w", i, err)
		}
		qty, err := parseDecimal(row[1])
		if err != nil {
			return nil, fmt.Errorf("level %d qty: %w", i, err)
		}
		levels = append(levels, domain.Level{Price: price, Qty: qty})
	}
	return levels, nil
}

func parseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
