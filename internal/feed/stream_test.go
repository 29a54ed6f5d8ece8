package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newMockWSServer serves one websocket connection through handler.
func newMockWSServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
}

func httpToWS(url string) string {
	return strings.Replace(url, "http://", "ws://", 1)
}

func TestStream_DeliversMessagesThenReportsLoss(t *testing.T) {
	server := newMockWSServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"b":[["100","1"]],"a":[]}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"b":[],"a":[["101","2"]]}`))
		// Closing the server side is a stream loss for the client.
	})
	defer server.Close()

	s := NewStream(httpToWS(server.URL))
	s.ReadTimeout = 500 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer s.Close()

	var got [][]byte
	err := s.Run(ctx, func(raw []byte) {
		got = append(got, append([]byte(nil), raw...))
	})
	if err == nil {
		t.Fatal("expected stream loss error after server close")
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if string(got[0]) != `{"b":[["100","1"]],"a":[]}` {
		t.Errorf("unexpected first message: %s", got[0])
	}
}

func TestStream_ConnectGivesUpAfterRetries(t *testing.T) {
	s := NewStream("ws://127.0.0.1:1") // nothing listens here
	s.ConnectAttempts = 1

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Connect(ctx); err == nil {
		t.Error("expected connect failure")
	}
}

func TestStream_RunRequiresConnect(t *testing.T) {
	s := NewStream("ws://unused")
	if err := s.Run(context.Background(), func([]byte) {}); err == nil {
		t.Error("expected error when running an unconnected stream")
	}
}
