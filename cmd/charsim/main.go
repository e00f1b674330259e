// Package main is the entry point for the headless character simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/config"
	"github.com/Faultbox/thirdperson/internal/logger"
	"github.com/Faultbox/thirdperson/internal/sim"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, cfgPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Third Person Character Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		return
	}

	if err := run(cfg, cfgPath); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, cfgPath string) error {
	var scenario *sim.Scenario
	if cfg.Sim.Scenario != "" {
		sc, err := sim.LoadScenario(cfg.Sim.Scenario)
		if err != nil {
			return err
		}
		scenario = sc
	}

	runner, err := sim.New(cfg, scenario)
	if err != nil {
		return err
	}

	trace, err := sim.NewTraceWriter(cfg.Sim.TracePath)
	if err != nil {
		return err
	}
	defer trace.Close()
	runner.SetTrace(trace)

	var reload <-chan *config.Config
	if cfg.Sim.Watch {
		if cfgPath == "" {
			logger.Warn("watch requested but no config file was loaded")
		} else {
			w, err := config.NewWatcher(cfgPath)
			if err != nil {
				return fmt.Errorf("watching %s: %w", cfgPath, err)
			}
			defer w.Close()
			reload = w.Configs
			logger.Info("watching config", zap.String("path", cfgPath))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, cfg.Sim.Ticks, reload)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted", zap.Int("tick", summary.Ticks))
	} else if err != nil {
		return err
	}

	for _, d := range summary.Dummies {
		logger.Info("dummy",
			zap.String("name", d.Name),
			zap.Float32("health", d.Health),
			zap.Int("hits", d.Hits),
		)
	}
	if trace != nil {
		logger.Info("trace written", zap.String("path", cfg.Sim.TracePath), zap.Int("rows", trace.Rows()))
	}
	return nil
}
