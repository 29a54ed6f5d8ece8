package risk

import (
	"log/slog"
	"math"

	"hft_go/internal/domain"
)

// Limits are the two fixed pre-trade bounds enforced by the gate.
type Limits struct {
	MaxOrderNotional float64 // cash value cap per order
	MaxPosition      float64 // absolute net position cap
}

// Gate is the pre-trade check and post-trade position tracker for the one
// risk book this system models. Single-owner: only the engine loop touches
// it, so there is no locking.
type Gate struct {
	limits   Limits
	position float64
}

// NewGate returns a flat gate with the given limits.
func NewGate(limits Limits) *Gate {
	return &Gate{limits: limits}
}

// CheckOrder reports whether the order passes both limits. A rejection is
// policy, not an error: it is logged and the caller throttles. Pure query,
// never mutates the position.
func (g *Gate) CheckOrder(side domain.Side, price, qty float64) bool {
	notional := price * qty
	if notional > g.limits.MaxOrderNotional {
		slog.Warn("RISK_REJECT: notional too high",
			slog.Float64("notional", notional),
			slog.Float64("limit", g.limits.MaxOrderNotional))
		return false
	}

	projected := g.position
	if side == domain.SideBuy {
		projected += qty
	} else {
		projected -= qty
	}

	if math.Abs(projected) > g.limits.MaxPosition {
		slog.Warn("RISK_REJECT: position limit",
			slog.Float64("projected", projected),
			slog.Float64("limit", g.limits.MaxPosition))
		return false
	}
	return true
}

// ApplyFill applies the position delta for an executed trade. Must follow
// an accepting CheckOrder for the same trade; the engine loop owns that
// ordering, the gate does not re-check.
func (g *Gate) ApplyFill(side domain.Side, qty float64) {
	if side == domain.SideBuy {
		g.position += qty
	} else {
		g.position -= qty
	}
	slog.Info("RISK_POSITION", slog.Float64("position", g.position))
}

// Position returns the current signed net position.
func (g *Gate) Position() float64 {
	return g.position
}
