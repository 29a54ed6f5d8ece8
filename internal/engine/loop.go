package engine

import (
	"context"
	"log/slog"
	"time"

	"hft_go/internal/book"
	"hft_go/internal/domain"
	"hft_go/internal/execution"
	"hft_go/internal/infra/metrics"
	"hft_go/internal/risk"
	"hft_go/internal/strategy"
)

// progressEvery controls the periodic throughput log on the hotpath.
const progressEvery = 2000

// Cooldowns are the two throttle lengths, in update ticks. PostReject is
// the longer one: a trade the gate just refused should not be re-attempted
// on the very next tick, while successful trading is only rate-limited.
type Cooldowns struct {
	PostTrade  int
	PostReject int
}

// Session is the single-threaded control loop shared by the live and
// replay paths: mutate the book, evaluate the signal, gate through risk,
// apply the execution effect. One update is fully processed before the
// next is read; nothing here suspends or locks.
type Session struct {
	book   *book.Book
	strat  strategy.Strategy
	gate   *risk.Gate
	effect execution.Effect

	cooldowns Cooldowns
	cooldown  int

	processed uint64
	trades    int
	rejects   int
}

// NewSession wires the loop's collaborators together.
func NewSession(b *book.Book, strat strategy.Strategy, gate *risk.Gate, effect execution.Effect, cds Cooldowns) *Session {
	return &Session{
		book:      b,
		strat:     strat,
		gate:      gate,
		effect:    effect,
		cooldowns: cds,
	}
}

// OnUpdate processes one decoded depth update end to end.
func (s *Session) OnUpdate(ctx context.Context, u domain.DepthUpdate) {
	start := time.Now()
	s.book.Apply(u)

	s.processed++
	metrics.UpdatesProcessed.Inc()
	if s.processed%progressEvery == 0 {
		slog.Info("PROGRESS", slog.Uint64("updates", s.processed))
	}

	s.tick(ctx)
	metrics.TickLatencyUs.Observe(float64(time.Since(start).Microseconds()))
}

// tick runs one step of the cooldown state machine. Cooling: decrement and
// do nothing regardless of signal. Idle: evaluate, gate, execute.
func (s *Session) tick(ctx context.Context) {
	if s.cooldown > 0 {
		s.cooldown--
		return
	}

	order, ok := s.strat.Evaluate(s.book)
	if !ok {
		return
	}

	if !s.gate.CheckOrder(order.Side, order.Price, order.Qty) {
		s.rejects++
		metrics.RiskRejects.Inc()
		s.cooldown = s.cooldowns.PostReject
		return
	}

	latency, err := s.effect.Execute(ctx, order)
	if err != nil {
		slog.Error("EXEC_FAILED", slog.Any("error", err))
		s.cooldown = s.cooldowns.PostReject
		return
	}

	s.gate.ApplyFill(order.Side, order.Qty)
	s.trades++
	metrics.TradesExecuted.Inc()
	s.cooldown = s.cooldowns.PostTrade

	slog.Debug("TRADE",
		slog.String("side", string(order.Side)),
		slog.Float64("price", order.Price),
		slog.Duration("exec_latency", latency))
}

// Book returns the session's order book.
func (s *Session) Book() *book.Book { return s.book }

// Processed returns the number of updates applied so far.
func (s *Session) Processed() uint64 { return s.processed }

// Trades returns the number of executed trades.
func (s *Session) Trades() int { return s.trades }

// Rejects returns the number of risk-gate rejections.
func (s *Session) Rejects() int { return s.rejects }
