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

// Package step executes one named unit of workflow work and reports how long
// it took. The work itself is simulated by a bounded random delay.
package step

import (
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of one completed step. It is immutable once
// produced; ownership passes to the coordinator that requested the step.
type Result struct {
	Task    string
	Elapsed time.Duration
}

// Message renders the result in the fixed transcript form, for example
// "Finished boiling 300g of water in 4.20 sec.".
func (r Result) Message() string {
	return fmt.Sprintf("Finished %s in %.2f sec.", strings.ToLower(r.Task), r.Elapsed.Seconds())
}

// Error reports that a step could not complete. The simulated work in this
// package never produces one, but coordinators must be able to propagate a
// concrete step failure, and test doubles return it.
type Error struct {
	Task   string
	Reason error
}

func (e *Error) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Task, e.Reason)
}

func (e *Error) Unwrap() error { return e.Reason }
