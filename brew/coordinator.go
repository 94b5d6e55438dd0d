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

package brew

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nqvinh/brewflow/step"
)

// Coordinator runs the fixed brewing step graph. It assumes a well-formed
// Input; the ingress layer validates before handing one over.
type Coordinator struct {
	exec   step.Runner
	logger *slog.Logger
}

// NewCoordinator builds a Coordinator running its steps on exec. A nil
// logger falls back to slog.Default.
func NewCoordinator(exec step.Runner, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{exec: exec, logger: logger}
}

// Run executes the workflow for one instance: fan out the four preparation
// steps, join on all of them, run extraction, and close with a summary line
// carrying the total wall-clock time.
//
// The first four transcript entries appear in completion order, which varies
// run to run. The join is fail-fast: the first step error cancels the
// remaining preparation steps and no transcript is returned.
func (c *Coordinator) Run(ctx context.Context, instance string, in Input) (Transcript, error) {
	c.logger.Info("workflow started", "instance", instance)
	ctx = step.WithInstance(ctx, instance)
	started := time.Now()

	prep := in.prepTasks()
	// Buffered to the fan-out width so a finishing step never blocks on a
	// coordinator that is still waiting at the join barrier.
	results := make(chan step.Result, len(prep))

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range prep {
		g.Go(func() error {
			res, err := c.exec.Run(gctx, task)
			if err != nil {
				return err
			}
			results <- res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err, true)
	}
	close(results)

	transcript := make(Transcript, 0, len(prep)+2)
	for res := range results {
		transcript = append(transcript, res.Message())
	}

	final, err := c.exec.Run(ctx, TaskExtract)
	if err != nil {
		return nil, classify(err, false)
	}
	transcript = append(transcript, final.Message())

	total := time.Since(started)
	transcript = append(transcript, fmt.Sprintf(summaryTemplate, total.Seconds()))

	c.logger.Info("workflow finished",
		"instance", instance,
		"elapsed_seconds", total.Seconds(),
	)
	return transcript, nil
}
