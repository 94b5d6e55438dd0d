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

// Package host runs brewing workflows in-process: it validates start
// payloads, issues instance identifiers, tracks per-instance status, and
// supports cancellation and status queries. State is in-memory only;
// durability and replay belong to an external execution platform, not here.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nqvinh/brewflow/brew"
	"github.com/nqvinh/brewflow/internal/codec"
	"github.com/nqvinh/brewflow/internal/types"
)

var (
	// ErrInvalidInput rejects a malformed or out-of-range start payload
	// before any workflow runs.
	ErrInvalidInput = errors.New("invalid workflow input")

	// ErrNotFound reports an unknown instance identifier.
	ErrNotFound = errors.New("workflow instance not found")

	// ErrNotFinished reports a result query against an instance that is
	// still running.
	ErrNotFinished = errors.New("workflow instance not finished")
)

// Status is the lifecycle state of one workflow instance.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Finished reports whether the status is terminal.
func (s Status) Finished() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type instance struct {
	status     Status
	transcript brew.Transcript
	err        error
	cancel     context.CancelFunc
	done       chan struct{}
}

// Host starts and tracks workflow instances.
type Host struct {
	coordinator *brew.Coordinator
	logger      *slog.Logger
	dec         codec.Binary

	mu        sync.Mutex
	instances map[types.InstanceID]*instance
}

// New builds a Host running workflows on the given coordinator.
func New(coordinator *brew.Coordinator, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		coordinator: coordinator,
		logger:      logger,
		dec:         codec.JSON{},
		instances:   make(map[types.InstanceID]*instance),
	}
}

// DecodeInput turns a raw start payload into a validated brew.Input. Any
// decoding or validation problem maps to ErrInvalidInput so callers reject
// the request before a coordinator is involved.
func (h *Host) DecodeInput(payload []byte) (brew.Input, error) {
	var in brew.Input
	if len(payload) == 0 {
		return in, fmt.Errorf("%w: empty payload", ErrInvalidInput)
	}
	if err := h.dec.Unmarshal(payload, &in); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := in.Validate(); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return in, nil
}

// Start decodes and validates the payload, issues an instance identifier,
// and launches the workflow. The workflow outlives the Start call's context;
// only Cancel (or process exit) stops it.
func (h *Host) Start(ctx context.Context, payload []byte) (types.InstanceID, error) {
	in, err := h.DecodeInput(payload)
	if err != nil {
		return types.InstanceID{}, err
	}

	id, err := types.NewInstanceID()
	if err != nil {
		return types.InstanceID{}, fmt.Errorf("issuing instance id: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	inst := &instance{
		status: StatusPending,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	h.instances[id] = inst
	h.mu.Unlock()

	h.logger.Info("workflow instance scheduled", "instance", id.String())
	go h.run(runCtx, id, in, inst)
	return id, nil
}

func (h *Host) run(ctx context.Context, id types.InstanceID, in brew.Input, inst *instance) {
	defer inst.cancel()

	h.mu.Lock()
	inst.status = StatusRunning
	h.mu.Unlock()

	transcript, err := h.coordinator.Run(ctx, id.String(), in)

	h.mu.Lock()
	switch {
	case err == nil:
		inst.status = StatusCompleted
		inst.transcript = transcript
	case errors.Is(err, brew.ErrCancelled):
		inst.status = StatusCancelled
		inst.err = err
	default:
		inst.status = StatusFailed
		inst.err = err
	}
	h.mu.Unlock()
	close(inst.done)

	if err != nil {
		h.logger.Warn("workflow instance did not complete",
			"instance", id.String(), "status", string(inst.status), "error", err)
	}
}

// Status returns the current lifecycle state of an instance.
func (h *Host) Status(id types.InstanceID) (Status, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	inst, ok := h.instances[id]
	if !ok {
		return "", ErrNotFound
	}
	return inst.status, nil
}

// Result returns the transcript of a finished instance. A failed or
// cancelled instance yields its error instead; a running one yields
// ErrNotFinished.
func (h *Host) Result(id types.InstanceID) (brew.Transcript, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	inst, ok := h.instances[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !inst.status.Finished() {
		return nil, ErrNotFinished
	}
	if inst.err != nil {
		return nil, inst.err
	}
	return inst.transcript, nil
}

// Cancel signals an instance to stop. Cancelling a finished or unknown
// instance is not an error worth distinguishing beyond ErrNotFound.
func (h *Host) Cancel(id types.InstanceID) error {
	h.mu.Lock()
	inst, ok := h.instances[id]
	h.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	inst.cancel()
	return nil
}

// Await blocks until the instance finishes or ctx expires, then returns the
// same outcome as Result.
func (h *Host) Await(ctx context.Context, id types.InstanceID) (brew.Transcript, error) {
	h.mu.Lock()
	inst, ok := h.instances[id]
	h.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-inst.done:
		return h.Result(id)
	}
}
