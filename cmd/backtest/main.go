package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"hft_go/backtest"
	"hft_go/internal/app"
	"hft_go/internal/engine"
	"hft_go/internal/risk"
	"hft_go/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logPath := flag.String("log", "", "update log to replay (overrides config)")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	tradeQty, err := cfg.TradeQty()
	if err != nil {
		slog.Error("Invalid trade qty", slog.Any("error", err))
		os.Exit(1)
	}

	updateLog := cfg.Feed.UpdateLog
	if *logPath != "" {
		updateLog = *logPath
	}

	replayer := backtest.NewReplayer(backtest.Options{
		LogPath:        updateLog,
		Symbol:         cfg.Feed.Symbol,
		TradeQty:       tradeQty,
		UpperThreshold: cfg.Strategy.UpperThreshold,
		LowerThreshold: cfg.Strategy.LowerThreshold,
		DepthWindow:    cfg.Strategy.DepthWindow,
		Cooldowns: engine.Cooldowns{
			PostTrade:  cfg.Strategy.CooldownPostTrade,
			PostReject: cfg.Strategy.CooldownPostReject,
		},
		RiskLimits: risk.Limits{
			MaxOrderNotional: cfg.Risk.MaxOrderNotional,
			MaxPosition:      cfg.Risk.MaxPosition,
		},
		StartingBalance:   cfg.Backtest.StartingBalance,
		FallbackMarkPrice: cfg.Backtest.FallbackMarkPrice,
	})

	report, err := replayer.Run(context.Background())
	if err != nil {
		slog.Error("Replay failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(report)

	if _, err := bootstrap.Store.SaveReport(context.Background(), storage.RunReport{
		RanAt:       time.Now(),
		UpdateLog:   updateLog,
		Processed:   report.Processed,
		Skipped:     report.Skipped,
		Trades:      report.Trades,
		StartEquity: report.StartEquity,
		FinalEquity: report.FinalEquity,
		NetPnL:      report.NetPnL,
	}); err != nil {
		slog.Warn("Failed to persist report", slog.Any("error", err))
	}
}
