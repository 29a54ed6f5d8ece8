package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"hft_go/internal/infra"
)

// Stream is the live depth-update connection. Connect retries with backoff
// because startup transients are common; once the stream is established a
// read error is fatal for the session — the core never reconnects or
// buffers across a stream loss.
type Stream struct {
	url  string
	conn *websocket.Conn

	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	ConnectAttempts  int
}

// NewStream creates a stream for the given websocket URL.
func NewStream(url string) *Stream {
	return &Stream{
		url:              url,
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		ConnectAttempts:  5,
	}
}

// Connect dials the stream, retrying with exponential backoff up to
// ConnectAttempts before giving up.
func (s *Stream) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: s.HandshakeTimeout}

	var lastErr error
	for attempt := 0; attempt < s.ConnectAttempts; attempt++ {
		conn, _, err := dialer.DialContext(ctx, s.url, nil)
		if err == nil {
			s.conn = conn
			slog.Info("STREAM_CONNECTED", slog.String("url", s.url))
			return nil
		}
		lastErr = err

		delay := infra.CalculateBackoff(attempt)
		slog.Warn("STREAM_CONNECT_RETRY",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("stream connect: %w", lastErr)
}

// Run reads raw messages until the context is cancelled or the connection
// fails, handing each payload to onMessage. The returned error is the
// transport loss that ends the live session.
func (s *Stream) Run(ctx context.Context, onMessage func(raw []byte)) error {
	if s.conn == nil {
		return fmt.Errorf("stream: not connected")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.conn.SetReadDeadline(time.Now().Add(s.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("stream read: %w", err)
		}
		onMessage(msg)
	}
}

// Close tears down the connection.
func (s *Stream) Close() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
