package strategy

import (
	"hft_go/internal/book"
	"hft_go/internal/domain"
)

// Strategy turns the current book state into at most one trade candidate.
// Implementations must be deterministic: the same book state always yields
// the same decision, so live and replay runs stay behaviorally identical.
type Strategy interface {
	Evaluate(b *book.Book) (domain.Order, bool)
}
