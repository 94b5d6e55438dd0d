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
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nqvinh/brewflow/audit"
	"github.com/nqvinh/brewflow/step"
)

// scriptedRunner runs each task for a fixed scripted duration, optionally
// failing one of them. It stands in for the random-delay executor so tests
// can control completion order and timing exactly.
type scriptedRunner struct {
	delays   map[string]time.Duration
	failTask string
	failWith error
}

func (r *scriptedRunner) Run(ctx context.Context, task string) (step.Result, error) {
	if task == r.failTask {
		return step.Result{}, &step.Error{Task: task, Reason: r.failWith}
	}
	d := r.delays[task]
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return step.Result{}, ctx.Err()
	case <-timer.C:
		return step.Result{Task: task, Elapsed: d}, nil
	}
}

var testInput = Input{BeanWeight: 20, WaterWeight: 300}

func fastExecutor() *step.Executor {
	return &step.Executor{
		MinDelay: time.Millisecond,
		MaxDelay: 15 * time.Millisecond,
		Sink:     audit.Discard{},
	}
}

func TestRunTranscriptShape(t *testing.T) {
	c := NewCoordinator(fastExecutor(), nil)

	transcript, err := c.Run(context.Background(), "test-instance", testInput)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(transcript) != 6 {
		t.Fatalf("transcript has %d entries, want 6: %q", len(transcript), transcript)
	}

	// The first four entries are the preparation steps, in some order.
	wantPrep := map[string]bool{
		"Finished boiling 300g of water":   false,
		"Finished grinding 20g of beans":   false,
		"Finished rinsing filter":          false,
		"Finished adding filter to chemex": false,
	}
	for i, entry := range transcript[:4] {
		matched := false
		for prefix, seen := range wantPrep {
			if strings.HasPrefix(entry, prefix) {
				if seen {
					t.Errorf("entry %d duplicates preparation step: %q", i, entry)
				}
				wantPrep[prefix] = true
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("entry %d is not a preparation result: %q", i, entry)
		}
	}
	for prefix, seen := range wantPrep {
		if !seen {
			t.Errorf("preparation step missing from transcript: %q", prefix)
		}
	}

	if !strings.HasPrefix(transcript[4], "Finished performing extraction") {
		t.Errorf("entry 4 = %q, want the extraction result", transcript[4])
	}
	if !strings.HasPrefix(transcript[5], "Enjoy your coffee, I wasted ") {
		t.Errorf("entry 5 = %q, want the summary line", transcript[5])
	}
}

func TestRunCompletionOrder(t *testing.T) {
	in := testInput
	runner := &scriptedRunner{delays: map[string]time.Duration{
		in.BoilTask():   40 * time.Millisecond,
		in.GrindTask():  10 * time.Millisecond,
		TaskRinseFilter: 20 * time.Millisecond,
		TaskAddFilter:   30 * time.Millisecond,
		TaskExtract:     5 * time.Millisecond,
	}}
	c := NewCoordinator(runner, nil)

	transcript, err := c.Run(context.Background(), "test-instance", in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Preparation results arrive in completion order, not launch order.
	wantOrder := []string{
		"Finished grinding 20g of beans",
		"Finished rinsing filter",
		"Finished adding filter to chemex",
		"Finished boiling 300g of water",
	}
	for i, prefix := range wantOrder {
		if !strings.HasPrefix(transcript[i], prefix) {
			t.Errorf("entry %d = %q, want prefix %q", i, transcript[i], prefix)
		}
	}
}

func TestRunSummaryTimeCoversBothPhases(t *testing.T) {
	in := testInput
	delays := map[string]time.Duration{
		in.BoilTask():   50 * time.Millisecond,
		in.GrindTask():  10 * time.Millisecond,
		TaskRinseFilter: 10 * time.Millisecond,
		TaskAddFilter:   10 * time.Millisecond,
		TaskExtract:     30 * time.Millisecond,
	}
	c := NewCoordinator(&scriptedRunner{delays: delays}, nil)

	transcript, err := c.Run(context.Background(), "test-instance", in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var total float64
	if _, err := fmt.Sscanf(transcript[5], "Enjoy your coffee, I wasted %f seconds making it.", &total); err != nil {
		t.Fatalf("cannot parse summary %q: %v", transcript[5], err)
	}

	// Sequencing invariant: total covers the slowest preparation step plus
	// the extraction that only starts after the join.
	floor := (delays[in.BoilTask()] + delays[TaskExtract]).Seconds()
	if total < floor-0.01 { // summary is rounded to two decimals
		t.Errorf("summary total %.2fs is below sequencing floor %.2fs", total, floor)
	}
	if total <= 0 {
		t.Errorf("summary total %.2fs is not positive", total)
	}
}

func TestRunJoinFailureDiscardsPartialResults(t *testing.T) {
	in := testInput
	runner := &scriptedRunner{
		delays: map[string]time.Duration{
			in.BoilTask():   5 * time.Millisecond,
			TaskRinseFilter: 5 * time.Millisecond,
			TaskAddFilter:   5 * time.Millisecond,
		},
		failTask: in.GrindTask(),
		failWith: errors.New("grinder jammed"),
	}
	c := NewCoordinator(runner, nil)

	transcript, err := c.Run(context.Background(), "test-instance", in)
	if transcript != nil {
		t.Errorf("failed join returned a transcript: %q", transcript)
	}

	var joinErr *JoinError
	if !errors.As(err, &joinErr) {
		t.Fatalf("Run returned %v, want *JoinError", err)
	}
	var stepErr *step.Error
	if !errors.As(err, &stepErr) {
		t.Fatalf("join error does not wrap the step failure: %v", err)
	}
	if stepErr.Task != in.GrindTask() {
		t.Errorf("failed task = %q, want %q", stepErr.Task, in.GrindTask())
	}
	if errors.Is(err, ErrCancelled) {
		t.Error("join failure misreported as cancellation")
	}
}

func TestRunCancellationDuringConcurrentPhase(t *testing.T) {
	in := testInput
	runner := &scriptedRunner{delays: map[string]time.Duration{
		in.BoilTask():   time.Minute,
		in.GrindTask():  time.Minute,
		TaskRinseFilter: time.Minute,
		TaskAddFilter:   time.Minute,
	}}
	c := NewCoordinator(runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	type outcome struct {
		transcript Transcript
		err        error
	}
	done := make(chan outcome, 1)
	go func() {
		tr, err := c.Run(ctx, "test-instance", in)
		done <- outcome{tr, err}
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case out := <-done:
		if out.transcript != nil {
			t.Errorf("cancelled run returned a transcript: %q", out.transcript)
		}
		if !errors.Is(out.err, ErrCancelled) {
			t.Errorf("Run returned %v, want ErrCancelled", out.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled workflow did not resolve within the grace period")
	}
}

func TestRunCancellationDuringFinalization(t *testing.T) {
	in := testInput
	runner := &scriptedRunner{delays: map[string]time.Duration{
		in.BoilTask():   time.Millisecond,
		in.GrindTask():  time.Millisecond,
		TaskRinseFilter: time.Millisecond,
		TaskAddFilter:   time.Millisecond,
		TaskExtract:     time.Minute,
	}}
	c := NewCoordinator(runner, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Run(ctx, "test-instance", in)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Run returned %v, want ErrCancelled", err)
	}
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{name: "valid", input: Input{BeanWeight: 20, WaterWeight: 300}},
		{name: "zero beans", input: Input{BeanWeight: 0, WaterWeight: 300}, wantErr: true},
		{name: "negative water", input: Input{BeanWeight: 20, WaterWeight: -1}, wantErr: true},
		{name: "both missing", input: Input{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
