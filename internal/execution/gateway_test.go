package execution

import (
	"context"
	"encoding/json"
	"testing"

	"hft_go/internal/domain"
)

func TestGateway_FormatsPayloadWithoutTransmitting(t *testing.T) {
	g := NewGateway()

	latency, err := g.Execute(context.Background(), domain.Order{
		Symbol: "BTCUSD",
		Side:   domain.SideBuy,
		Price:  90123.456,
		Qty:    0.002,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if latency < 0 {
		t.Errorf("latency = %v, want >= 0", latency)
	}

	var payload map[string]string
	if err := json.Unmarshal(g.LastPayload(), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["symbol"] != "BTCUSD" || payload["side"] != "BUY" || payload["type"] != "LIMIT" {
		t.Errorf("unexpected payload: %s", g.LastPayload())
	}
	if payload["price"] != "90123.46" {
		t.Errorf("price = %q, want %q", payload["price"], "90123.46")
	}
	if payload["quantity"] != "0.0020" {
		t.Errorf("quantity = %q, want %q", payload["quantity"], "0.0020")
	}
	if payload["client_order_id"] == "" {
		t.Error("missing client order id")
	}
}
