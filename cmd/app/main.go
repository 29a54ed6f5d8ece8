package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hft_go/internal/app"
	"hft_go/internal/book"
	"hft_go/internal/engine"
	"hft_go/internal/execution"
	"hft_go/internal/feed"
	"hft_go/internal/infra/metrics"
	"hft_go/internal/risk"
	"hft_go/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics endpoint for the live session.
	if cfg.Metrics.Addr != "" {
		reg := metrics.Init()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				slog.Error("Metrics server failed", slog.Any("error", err))
			}
		}()
	}

	tradeQty, err := cfg.TradeQty()
	if err != nil {
		slog.Error("Invalid trade qty", slog.Any("error", err))
		os.Exit(1)
	}

	b := book.New(book.DefaultCapacity)

	// Seed from the snapshot; failure degrades to an empty book rather than
	// aborting the session.
	if cfg.Feed.SnapshotURL != "" {
		bids, asks, err := feed.NewSnapshotClient(cfg.Feed.SnapshotURL).Fetch(ctx)
		if err != nil {
			slog.Warn("SNAPSHOT_DEGRADED: starting with empty book", slog.Any("error", err))
		} else {
			b.LoadSnapshot(bids, asks)
			slog.Info("SNAPSHOT_LOADED",
				slog.Int("bids", b.BidDepth()),
				slog.Int("asks", b.AskDepth()))
		}
	}

	session := engine.NewSession(
		b,
		strategy.NewImbalance(cfg.Feed.Symbol,
			cfg.Strategy.UpperThreshold, cfg.Strategy.LowerThreshold,
			cfg.Strategy.DepthWindow, tradeQty),
		risk.NewGate(risk.Limits{
			MaxOrderNotional: cfg.Risk.MaxOrderNotional,
			MaxPosition:      cfg.Risk.MaxPosition,
		}),
		execution.NewGateway(),
		engine.Cooldowns{
			PostTrade:  cfg.Strategy.CooldownPostTrade,
			PostReject: cfg.Strategy.CooldownPostReject,
		},
	)

	// The recorder writes the replay input; losing it degrades replayability
	// but not the live session.
	recorder, err := feed.OpenRecorder(cfg.Feed.UpdateLog)
	if err != nil {
		slog.Warn("RECORDER_DISABLED", slog.Any("error", err))
		recorder = nil
	} else {
		defer recorder.Close()
	}

	stream := feed.NewStream(cfg.Feed.WSURL)
	if err := stream.Connect(ctx); err != nil {
		slog.Error("Stream connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer stream.Close()

	// One update is fully processed before the next read: record verbatim,
	// decode, mutate the book, tick the strategy.
	err = stream.Run(ctx, func(raw []byte) {
		if recorder != nil {
			if err := recorder.Record(raw); err != nil {
				slog.Warn("RECORD_FAILED", slog.Any("error", err))
			}
		}

		update, err := feed.ParseUpdate(raw)
		if err != nil {
			metrics.RecordsSkipped.Inc()
			slog.Warn("RECORD_SKIPPED", slog.Any("error", err))
			return
		}
		session.OnUpdate(ctx, update)
	})

	// Stream loss is fatal for the session; no reconnect, no buffering.
	if err != nil && ctx.Err() == nil {
		slog.Error("STREAM_LOST", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Session finished",
		slog.Uint64("updates", session.Processed()),
		slog.Int("trades", session.Trades()),
		slog.Int("risk_rejects", session.Rejects()))
}
