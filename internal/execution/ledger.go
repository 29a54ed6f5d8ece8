package execution

import (
	"context"
	"time"

	"hft_go/internal/domain"
)

// Ledger is the backtest execution effect: a virtual cash/asset account
// that fills every accepted order instantly at its order price. Created
// fresh per replay run; never touched by the live path.
type Ledger struct {
	cash   float64
	asset  float64
	trades int
}

// NewLedger seeds the ledger with a starting cash balance.
func NewLedger(startingCash float64) *Ledger {
	return &Ledger{cash: startingCash}
}

// Execute applies the trade to the virtual balances: a BUY spends cash for
// asset, a SELL the inverse.
func (l *Ledger) Execute(ctx context.Context, order domain.Order) (time.Duration, error) {
	notional := order.Notional()
	if order.Side == domain.SideBuy {
		l.cash -= notional
		l.asset += order.Qty
	} else {
		l.cash += notional
		l.asset -= order.Qty
	}
	l.trades++
	return 0, nil
}

// TotalEquity marks the asset balance at the given price and adds cash.
func (l *Ledger) TotalEquity(markPrice float64) float64 {
	return l.cash + l.asset*markPrice
}

// Trades returns the number of simulated fills.
func (l *Ledger) Trades() int { return l.trades }

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 { return l.cash }

// Asset returns the current asset balance.
func (l *Ledger) Asset() float64 { return l.asset }
