package domain

// Level is a single resting price point: the price and the total quantity
// quoted there.
type Level struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// DepthUpdate is one decoded incremental order-book message: a batch of
// bid-side and ask-side level deltas. A delta with qty at or below the
// book's epsilon removes the level.
type DepthUpdate struct {
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}
