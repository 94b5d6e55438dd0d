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

// Package audit defines the append-only sink that receives one event per
// completed workflow step. The default sink writes to the structured logger;
// a JetStream-backed sink is available for durable, out-of-process audit
// trails.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Event records one completed step of a workflow instance.
type Event struct {
	Instance string    `json:"instance" msgpack:"instance"`
	Step     string    `json:"step"     msgpack:"step"`
	Elapsed  float64   `json:"elapsed_seconds" msgpack:"elapsed_seconds"`
	At       time.Time `json:"at"       msgpack:"at"`
}

// Sink is an append-only destination for step events. Append must not block
// workflow progress longer than the passed context allows.
type Sink interface {
	Append(ctx context.Context, ev Event) error
}

// LogSink writes each event to a slog.Logger. It is the default sink.
type LogSink struct {
	Logger *slog.Logger
}

var _ Sink = (*LogSink)(nil)

func (s *LogSink) Append(_ context.Context, ev Event) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("step completed",
		"instance", ev.Instance,
		"step", ev.Step,
		"elapsed_seconds", ev.Elapsed,
	)
	return nil
}

// Discard is a Sink that drops every event. Useful in tests.
type Discard struct{}

var _ Sink = Discard{}

func (Discard) Append(context.Context, Event) error { return nil }
