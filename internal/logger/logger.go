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

// Package logger wires log/slog to either a colored development handler or a
// JSON handler bridged to an OTLP log exporter, depending on the run mode.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/nqvinh/brewflow/internal/types"
)

// Options is the subset of the application config the logger needs.
type Options interface {
	ModeField() types.Mode
	Writer() io.Writer
	LogLevel() slog.Level
	OTELExporter() string
	OTELEndpoint() string
	ServiceName() string
	GetVersion() string
}

// Logger bundles the slog logger with the OTLP provider that backs it in
// release mode. The provider is nil in debug mode.
type Logger struct {
	Slogger *slog.Logger
	*sdklog.LoggerProvider
}

// NewLogger builds the logging pipeline for the given options.
//
// Debug mode installs a colored single-line handler for humans. Release mode
// installs a JSON handler on the configured writer plus, when LOG_OTEL_EXPORTER
// selects one, an otelslog bridge shipping records over OTLP.
func NewLogger(ctx context.Context, opts Options) (*Logger, error) {
	w := opts.Writer()
	if w == nil {
		return nil, fmt.Errorf("no log writer configured")
	}

	if opts.ModeField() == types.ModeDebug {
		h := &prettyHandler{out: w, level: opts.LogLevel()}
		return &Logger{Slogger: slog.New(h)}, nil
	}

	handlers := []slog.Handler{
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.LogLevel()}),
	}

	var provider *sdklog.LoggerProvider
	if opts.OTELExporter() != "none" && opts.OTELExporter() != "" {
		exporter, err := newExporter(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP log exporter: %w", err)
		}

		res, err := resource.Merge(
			resource.Default(),
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName(opts.ServiceName()),
				semconv.ServiceVersion(opts.GetVersion()),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("building OTLP resource: %w", err)
		}

		provider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
			sdklog.WithResource(res),
		)
		handlers = append(handlers,
			otelslog.NewHandler(opts.ServiceName(), otelslog.WithLoggerProvider(provider)))
	}

	return &Logger{
		Slogger:        slog.New(&fanoutHandler{handlers: handlers}),
		LoggerProvider: provider,
	}, nil
}

func newExporter(ctx context.Context, opts Options) (sdklog.Exporter, error) {
	switch opts.OTELExporter() {
	case "otlp-http":
		var o []otlploghttp.Option
		if ep := opts.OTELEndpoint(); ep != "" {
			o = append(o, otlploghttp.WithEndpointURL(ep))
		}
		return otlploghttp.New(ctx, o...)
	case "otlp-grpc":
		var o []otlploggrpc.Option
		if ep := opts.OTELEndpoint(); ep != "" {
			o = append(o, otlploggrpc.WithEndpointURL(ep))
		}
		return otlploggrpc.New(ctx, o...)
	default:
		return nil, fmt.Errorf("unknown OTEL exporter %q (want otlp-http or otlp-grpc)", opts.OTELExporter())
	}
}

// Shutdown flushes and stops the OTLP provider, if one was installed.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l == nil || l.LoggerProvider == nil {
		return nil
	}
	return l.LoggerProvider.Shutdown(ctx)
}

// fanoutHandler dispatches each record to every wrapped handler.
type fanoutHandler struct {
	handlers []slog.Handler
}

var _ slog.Handler = (*fanoutHandler)(nil)

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}
