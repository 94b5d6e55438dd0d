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

package step

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/nqvinh/brewflow/audit"
)

// Runner executes one named step. Coordinators depend on this interface so
// tests can substitute executors that fail or finish instantly.
type Runner interface {
	Run(ctx context.Context, task string) (Result, error)
}

// Executor is the production Runner. Each Run suspends for a uniform random
// duration within [MinDelay, MaxDelay], then reports the measured elapsed
// time. It never retries and never partially completes; the only way a Run
// does not finish is cancellation of its context.
type Executor struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	Logger   *slog.Logger
	Sink     audit.Sink
}

var _ Runner = (*Executor)(nil)

func (e *Executor) Run(ctx context.Context, task string) (Result, error) {
	started := time.Now()

	if err := e.sleep(ctx); err != nil {
		return Result{}, err
	}

	res := Result{Task: task, Elapsed: time.Since(started)}
	e.logger().Info("finished step",
		"step", task,
		"elapsed_seconds", res.Elapsed.Seconds(),
	)

	if e.Sink != nil {
		ev := audit.Event{
			Instance: InstanceFromContext(ctx),
			Step:     task,
			Elapsed:  res.Elapsed.Seconds(),
			At:       time.Now(),
		}
		// The audit trail is an observability side effect; losing one event
		// must not fail a step that did finish.
		if err := e.Sink.Append(ctx, ev); err != nil {
			e.logger().Warn("audit append failed", "step", task, "error", err)
		}
	}

	return res, nil
}

// sleep suspends for the simulated work duration or until ctx is cancelled.
func (e *Executor) sleep(ctx context.Context) error {
	d := e.MinDelay
	if spread := e.MaxDelay - e.MinDelay; spread > 0 {
		d += rand.N(spread + 1)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
