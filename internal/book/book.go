package book

import (
	"sort"

	"hft_go/internal/domain"
)

// MinQty is the smallest quantity a level may hold. An upsert at or below
// this threshold deletes the level instead of storing it.
const MinQty = 1e-7

// DefaultCapacity pre-sizes each side for a deep book so the hotpath does
// not touch the allocator. Exceeding it falls back to normal slice growth.
const DefaultCapacity = 5000

// Book maintains the two ordered sides of a single instrument's depth:
// bids strictly descending by price, asks strictly ascending, no duplicate
// prices on either side. It is single-owner state: the engine loop is the
// only writer and reader, so the book carries no locking.
type Book struct {
	bids []domain.Level
	asks []domain.Level
}

// New returns a book whose sides are carved from one pre-allocated arena.
func New(capacity int) *Book {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	arena := make([]domain.Level, 0, 2*capacity)
	return &Book{
		bids: arena[0:0:capacity],
		asks: arena[capacity : capacity : 2*capacity],
	}
}

// UpsertBid applies one bid-side delta. Overwrites in place when the price
// exists, removes it when qty drops to MinQty or below, inserts at the
// ordering position otherwise. Idempotent per price.
func (b *Book) UpsertBid(price, qty float64) {
	// First index with price <= target in the descending sequence.
	i := sort.Search(len(b.bids), func(i int) bool { return b.bids[i].Price <= price })
	b.bids = upsert(b.bids, i, price, qty)
}

// UpsertAsk applies one ask-side delta, mirroring UpsertBid on the
// ascending sequence.
func (b *Book) UpsertAsk(price, qty float64) {
	i := sort.Search(len(b.asks), func(i int) bool { return b.asks[i].Price >= price })
	b.asks = upsert(b.asks, i, price, qty)
}

func upsert(side []domain.Level, i int, price, qty float64) []domain.Level {
	if i < len(side) && side[i].Price == price {
		if qty <= MinQty {
			return append(side[:i], side[i+1:]...)
		}
		side[i].Qty = qty
		return side
	}
	if qty <= MinQty {
		return side
	}
	side = append(side, domain.Level{})
	copy(side[i+1:], side[i:])
	side[i] = domain.Level{Price: price, Qty: qty}
	return side
}

// BestBid returns the highest bid price, or 0 if the side is empty.
// Zero is a sentinel for "no market", never a real price.
func (b *Book) BestBid() float64 {
	if len(b.bids) == 0 {
		return 0.0
	}
	return b.bids[0].Price
}

// BestAsk returns the lowest ask price, or 0 if the side is empty.
func (b *Book) BestAsk() float64 {
	if len(b.asks) == 0 {
		return 0.0
	}
	return b.asks[0].Price
}

// Imbalance returns the bid share of resting quantity over the top `depth`
// levels of each side, in [0, 1]. An empty side yields the neutral 0.5:
// a one-sided book carries no directional signal.
func (b *Book) Imbalance(depth int) float64 {
	if len(b.bids) == 0 || len(b.asks) == 0 {
		return 0.5
	}
	var bidVol, askVol float64
	for i := 0; i < depth && i < len(b.bids); i++ {
		bidVol += b.bids[i].Qty
	}
	for i := 0; i < depth && i < len(b.asks); i++ {
		askVol += b.asks[i].Qty
	}
	return bidVol / (bidVol + askVol)
}

// LoadSnapshot replaces both sides wholesale from unordered full-depth
// lists and sorts each into its required order. Seeding only; incremental
// maintenance goes through the upserts.
func (b *Book) LoadSnapshot(bids, asks []domain.Level) {
	b.bids = append(b.bids[:0], bids...)
	b.asks = append(b.asks[:0], asks...)
	sort.Slice(b.bids, func(i, j int) bool { return b.bids[i].Price > b.bids[j].Price })
	sort.Slice(b.asks, func(i, j int) bool { return b.asks[i].Price < b.asks[j].Price })
}

// Apply feeds every delta of one decoded update into the book.
func (b *Book) Apply(u domain.DepthUpdate) {
	for _, l := range u.Bids {
		b.UpsertBid(l.Price, l.Qty)
	}
	for _, l := range u.Asks {
		b.UpsertAsk(l.Price, l.Qty)
	}
}

// BidDepth returns the number of bid levels currently resting.
func (b *Book) BidDepth() int { return len(b.bids) }

// AskDepth returns the number of ask levels currently resting.
func (b *Book) AskDepth() int { return len(b.asks) }

// Bids exposes the bid side for inspection (descending). Callers must not
// retain the slice across updates.
func (b *Book) Bids() []domain.Level { return b.bids }

// Asks exposes the ask side for inspection (ascending).
func (b *Book) Asks() []domain.Level { return b.asks }
