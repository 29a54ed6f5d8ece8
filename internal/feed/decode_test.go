package feed

import (
	"testing"
)

func TestParseUpdate(t *testing.T) {
	raw := []byte(`{"e":"depthUpdate","s":"BTCUSD","b":[["90000.10","0.5"],["89999.00","0"]],"a":[["90001.00","1.25"]]}`)

	u, err := ParseUpdate(raw)
	if err != nil {
		t.Fatalf("ParseUpdate: %v", err)
	}
	if len(u.Bids) != 2 || len(u.Asks) != 1 {
		t.Fatalf("deltas = (%d, %d), want (2, 1)", len(u.Bids), len(u.Asks))
	}
	if u.Bids[0].Price != 90000.10 || u.Bids[0].Qty != 0.5 {
		t.Errorf("bid[0] = %+v", u.Bids[0])
	}
	// Zero-qty deltas are carried through; the book interprets them as
	// deletions.
	if u.Bids[1].Qty != 0 {
		t.Errorf("bid[1].Qty = %v, want 0", u.Bids[1].Qty)
	}
	if u.Asks[0].Price != 90001.00 || u.Asks[0].Qty != 1.25 {
		t.Errorf("ask[0] = %+v", u.Asks[0])
	}
}

func TestParseUpdate_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"no depth arrays", `{"e":"ping"}`},
		{"short level", `{"b":[["90000.10"]],"a":[]}`},
		{"bad decimal", `{"b":[["abc","1"]],"a":[]}`},
		{"bad qty", `{"b":[],"a":[["90001.00","x"]]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseUpdate([]byte(tc.raw)); err == nil {
				t.Errorf("expected error for %q", tc.raw)
			}
		})
	}
}

func TestParseUpdate_EmptySidesOK(t *testing.T) {
	u, err := ParseUpdate([]byte(`{"b":[],"a":[]}`))
	if err != nil {
		t.Fatalf("ParseUpdate: %v", err)
	}
	if len(u.Bids) != 0 || len(u.Asks) != 0 {
		t.Errorf("expected empty update, got %+v", u)
	}
}

func TestParseSnapshot(t *testing.T) {
	raw := []byte(`{"lastUpdateId":12345,"bids":[["100.00","1"],["99.00","2"]],"asks":[["101.00","1"]]}`)

	bids, asks, err := ParseSnapshot(raw)
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if len(bids) != 2 || len(asks) != 1 {
		t.Fatalf("levels = (%d, %d), want (2, 1)", len(bids), len(asks))
	}
	if bids[1].Price != 99 || bids[1].Qty != 2 {
		t.Errorf("bids[1] = %+v", bids[1])
	}
}
