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

package audit

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/nqvinh/brewflow/internal/codec"
	"github.com/nqvinh/brewflow/internal/natz"
)

// SubjectPrefix is the root of the audit subject space. Events for one
// instance are published to <prefix>.<instance-id>, so the stream stays
// filterable per workflow run.
const SubjectPrefix = "audit.step"

// JetStreamSink appends msgpack-encoded events to a JetStream stream.
// Publishes are acknowledged, so an Append that returns nil is durable.
type JetStreamSink struct {
	conn   *natz.Conn
	stream string
	enc    codec.Binary
}

var _ Sink = (*JetStreamSink)(nil)

// NewJetStreamSink ensures the audit stream exists and returns a sink
// publishing to it.
func NewJetStreamSink(ctx context.Context, conn *natz.Conn, stream string) (*JetStreamSink, error) {
	if stream == "" {
		return nil, fmt.Errorf("audit stream name is empty")
	}
	_, err := conn.EnsureStream(ctx, jetstream.StreamConfig{
		Name:      stream,
		Subjects:  []string{SubjectPrefix + ".>"},
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("ensuring audit stream: %w", err)
	}
	return &JetStreamSink{conn: conn, stream: stream, enc: codec.Msgpack{}}, nil
}

func (s *JetStreamSink) Append(ctx context.Context, ev Event) error {
	data, err := s.enc.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding audit event: %w", err)
	}
	subject := fmt.Sprintf("%s.%s", SubjectPrefix, ev.Instance)
	if _, err := s.conn.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("appending audit event: %w", err)
	}
	return nil
}
