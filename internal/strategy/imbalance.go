package strategy

import (
	"hft_go/internal/book"
	"hft_go/internal/domain"
)

// Imbalance is a depth-imbalance signal over the top of the book: heavily
// bid-weighted depth means short-term buying pressure, heavily ask-weighted
// depth the opposite. It is stateless; throttling lives in the engine loop.
//
// Price rule: a BUY crosses the spread at the best ask, a SELL at the best
// bid, so the candidate order is marketable. Live and backtest use the same
// rule.
type Imbalance struct {
	symbol   string
	upper    float64
	lower    float64
	depth    int
	tradeQty float64
}

// NewImbalance creates the strategy with explicit thresholds.
func NewImbalance(symbol string, upper, lower float64, depth int, tradeQty float64) *Imbalance {
	if upper <= lower {
		panic("strategy: upper threshold must exceed lower threshold")
	}
	return &Imbalance{
		symbol:   symbol,
		upper:    upper,
		lower:    lower,
		depth:    depth,
		tradeQty: tradeQty,
	}
}

// Evaluate inspects the book and returns a candidate order, if any.
// A crossed or touching book (best ask <= best bid, which also covers the
// empty-side zero sentinel) is not tradable.
func (s *Imbalance) Evaluate(b *book.Book) (domain.Order, bool) {
	if b.BestAsk() <= b.BestBid() {
		return domain.Order{}, false
	}

	imb := b.Imbalance(s.depth)
	switch {
	case imb > s.upper:
		return domain.Order{
			Symbol: s.symbol,
			Side:   domain.SideBuy,
			Price:  b.BestAsk(),
			Qty:    s.tradeQty,
		}, true
	case imb < s.lower:
		return domain.Order{
			Symbol: s.symbol,
			Side:   domain.SideSell,
			Price:  b.BestBid(),
			Qty:    s.tradeQty,
		}, true
	default:
		return domain.Order{}, false
	}
}
