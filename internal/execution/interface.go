package execution

import (
	"context"
	"time"

	"hft_go/internal/domain"
)

// Effect is the single trade-effect capability the engine loop is written
// against: apply an accepted order, report how long the effect took.
// The live path binds a Gateway, the backtest path a Ledger.
type Effect interface {
	Execute(ctx context.Context, order domain.Order) (time.Duration, error)
}
