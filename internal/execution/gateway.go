package execution

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"hft_go/internal/domain"
)

// orderPayload is the wire shape a venue order call would carry.
type orderPayload struct {
	ClientOrderID string `json:"client_order_id"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
}

// Gateway is the live execution port. It formats the order payload and
// measures elapsed time but performs no transmission: this is the seam
// where a real venue client plugs in.
type Gateway struct {
	lastPayload []byte
}

// NewGateway creates the stub gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// Execute builds the payload and returns the measured elapsed time.
func (g *Gateway) Execute(ctx context.Context, order domain.Order) (time.Duration, error) {
	start := time.Now()

	payload, err := json.Marshal(orderPayload{
		ClientOrderID: uuid.NewString(),
		Symbol:        order.Symbol,
		Side:          string(order.Side),
		Type:          "LIMIT",
		Price:         formatPrice(order.Price),
		Quantity:      formatQty(order.Qty),
	})
	if err != nil {
		return 0, err
	}
	g.lastPayload = payload

	elapsed := time.Since(start)
	slog.Info("EXEC",
		slog.String("side", string(order.Side)),
		slog.Float64("price", order.Price),
		slog.Float64("qty", order.Qty),
		slog.Duration("latency", elapsed))
	return elapsed, nil
}

// LastPayload returns the most recently formatted order payload.
func (g *Gateway) LastPayload() []byte {
	return g.lastPayload
}

func formatPrice(p float64) string { return strconv.FormatFloat(p, 'f', 2, 64) }

func formatQty(q float64) string { return strconv.FormatFloat(q, 'f', 4, 64) }
