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
)

// ErrCancelled reports that the workflow was cancelled or timed out from
// the outside. It is distinct from failure: the host surfaces the two
// differently.
var ErrCancelled = errors.New("workflow cancelled")

// JoinError reports that the concurrent preparation phase failed. The whole
// workflow fails; results from steps that had already finished are
// discarded rather than returned partially.
type JoinError struct {
	Cause error
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("preparation join failed: %v", e.Cause)
}

func (e *JoinError) Unwrap() error { return e.Cause }

// classify maps an error out of a step phase onto the workflow-level
// taxonomy. Cancellation always wins over failure so that a join torn down
// by an external cancel is not misreported as JoinError.
func classify(err error, join bool) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if join {
		return &JoinError{Cause: err}
	}
	return fmt.Errorf("finalization failed: %w", err)
}
