package domain

// Side of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Order is a signal-generated trade request. Prices and quantities are
// float64 end to end; wire strings are narrowed once at the feed boundary.
type Order struct {
	Symbol string
	Side   Side
	Price  float64
	Qty    float64
}

// Notional returns the cash value of the order.
func (o Order) Notional() float64 {
	return o.Price * o.Qty
}
