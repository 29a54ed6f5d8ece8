package risk

import (
	"testing"

	"hft_go/internal/domain"
)

func TestCheckOrder_NotionalLimit(t *testing.T) {
	g := NewGate(Limits{MaxOrderNotional: 2000, MaxPosition: 0.01})

	// 100000 * 1 = 100000 notional, far above the 2000 limit.
	if g.CheckOrder(domain.SideBuy, 100000, 1) {
		t.Error("expected rejection for notional above limit")
	}

	// 90000 * 0.002 = 180 notional: fine.
	if !g.CheckOrder(domain.SideBuy, 90000, 0.002) {
		t.Error("expected acceptance for notional within limit")
	}
}

func TestCheckOrder_PositionLimit(t *testing.T) {
	g := NewGate(Limits{MaxOrderNotional: 1e9, MaxPosition: 0.01})

	// Projected position 0.02 exceeds the 0.01 cap.
	if g.CheckOrder(domain.SideBuy, 1, 0.02) {
		t.Error("expected rejection for projected position above limit")
	}

	// Shorts count by magnitude too.
	if g.CheckOrder(domain.SideSell, 1, 0.02) {
		t.Error("expected rejection for projected short above limit")
	}

	if !g.CheckOrder(domain.SideBuy, 1, 0.01) {
		t.Error("expected acceptance at exactly the position limit")
	}
}

func TestCheckOrder_IsPure(t *testing.T) {
	g := NewGate(Limits{MaxOrderNotional: 2000, MaxPosition: 0.01})

	g.CheckOrder(domain.SideBuy, 100, 0.005)
	g.CheckOrder(domain.SideBuy, 1e9, 1) // rejected
	if g.Position() != 0 {
		t.Errorf("CheckOrder mutated position: %v", g.Position())
	}
}

func TestApplyFill_TracksPosition(t *testing.T) {
	g := NewGate(Limits{MaxOrderNotional: 2000, MaxPosition: 1})

	g.ApplyFill(domain.SideBuy, 0.002)
	g.ApplyFill(domain.SideBuy, 0.002)
	g.ApplyFill(domain.SideSell, 0.001)

	want := 0.002 + 0.002 - 0.001
	if g.Position() != want {
		t.Errorf("Position = %v, want %v", g.Position(), want)
	}
}

func TestCheckOrder_UsesCurrentPosition(t *testing.T) {
	g := NewGate(Limits{MaxOrderNotional: 1e9, MaxPosition: 0.01})

	g.ApplyFill(domain.SideBuy, 0.008)

	// Another 0.008 would project to 0.016 > 0.01.
	if g.CheckOrder(domain.SideBuy, 1, 0.008) {
		t.Error("expected rejection once accumulated position nears the cap")
	}
	// Selling reduces the magnitude and passes.
	if !g.CheckOrder(domain.SideSell, 1, 0.008) {
		t.Error("expected acceptance for position-reducing trade")
	}
}
