// Copyright 2025 The Brewflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package app wires config, logging, the audit sink, and the workflow host
// together, and runs one brewing workflow from the command line.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/nqvinh/brewflow/audit"
	"github.com/nqvinh/brewflow/brew"
	"github.com/nqvinh/brewflow/host"
	"github.com/nqvinh/brewflow/internal/config"
	"github.com/nqvinh/brewflow/internal/logger"
	"github.com/nqvinh/brewflow/internal/natz"
	"github.com/nqvinh/brewflow/step"
)

// Options carries the CLI flag values that override the environment config.
type Options struct {
	BeanWeight  int
	WaterWeight int
	Timeout     time.Duration
}

// Run executes one brewing workflow and prints its transcript. It returns
// once the workflow finishes, fails, or is cancelled by a signal or the
// configured timeout.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(ctx, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(log.Slogger)
	defer func() {
		if err := log.Shutdown(ctx); err != nil {
			slog.Error("failed to shut down logger provider", "error", err)
		}
	}()

	var sink audit.Sink = &audit.LogSink{Logger: log.Slogger}
	if cfg.Audit.Enabled {
		conn, err := natz.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connecting audit sink: %w", err)
		}
		defer conn.Close()

		sink, err = audit.NewJetStreamSink(ctx, conn, cfg.Audit.Stream)
		if err != nil {
			return err
		}
	}

	exec := &step.Executor{
		MinDelay: cfg.Brew.StepMinDelay,
		MaxDelay: cfg.Brew.StepMaxDelay,
		Logger:   log.Slogger,
		Sink:     sink,
	}
	h := host.New(brew.NewCoordinator(exec, log.Slogger), log.Slogger)

	payload, err := json.Marshal(brew.Input{
		BeanWeight:  opts.BeanWeight,
		WaterWeight: opts.WaterWeight,
	})
	if err != nil {
		return err
	}

	id, err := h.Start(ctx, payload)
	if err != nil {
		return err
	}

	waitCtx, cancelWait := context.WithCancel(ctx)
	defer cancelWait()
	if opts.Timeout > 0 {
		waitCtx, cancelWait = context.WithTimeout(waitCtx, opts.Timeout)
		defer cancelWait()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			slog.Info("shutdown signal received", "signal", sig.String())
			if err := h.Cancel(id); err != nil {
				slog.Warn("cancel failed", "error", err)
			}
		case <-waitCtx.Done():
			// On timeout, cancel the instance too so it does not linger.
			_ = h.Cancel(id)
		}
	}()

	transcript, err := h.Await(context.WithoutCancel(ctx), id)
	if err != nil {
		return err
	}

	for _, line := range transcript[:len(transcript)-1] {
		fmt.Println(line)
	}
	color.New(color.FgGreen, color.Bold).Println(transcript[len(transcript)-1])
	return nil
}
