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

// Package brew coordinates the chemex brewing workflow: four preparation
// steps run concurrently, their completion is joined, and extraction runs
// only after every preparation step has finished. The result is an ordered
// transcript of what happened and how long it took.
package brew

import (
	"fmt"
)

// Input is the workflow payload: how much coffee to grind and how much
// water to boil. It is constructed once at workflow start and shared
// read-only by the concurrent steps.
type Input struct {
	BeanWeight  int `json:"beanWeight"`
	WaterWeight int `json:"waterWeight"`
}

// Validate rejects inputs the workflow cannot brew with. The ingress layer
// calls this before a coordinator ever sees the input.
func (in Input) Validate() error {
	if in.BeanWeight <= 0 {
		return fmt.Errorf("bean weight must be positive, got %d", in.BeanWeight)
	}
	if in.WaterWeight <= 0 {
		return fmt.Errorf("water weight must be positive, got %d", in.WaterWeight)
	}
	return nil
}

// Fixed step descriptions. The two weight-bearing tasks are derived from
// the input; the rest never change.
const (
	TaskRinseFilter = "Rinsing filter"
	TaskAddFilter   = "Adding filter to chemex"
	TaskExtract     = "Performing extraction"
)

// BoilTask names the water-boiling step for this input.
func (in Input) BoilTask() string {
	return fmt.Sprintf("Boiling %dg of water", in.WaterWeight)
}

// GrindTask names the bean-grinding step for this input.
func (in Input) GrindTask() string {
	return fmt.Sprintf("Grinding %dg of beans", in.BeanWeight)
}

// prepTasks returns the four concurrent preparation steps in launch order.
// Launch order is fixed; completion order is not.
func (in Input) prepTasks() []string {
	return []string{
		in.BoilTask(),
		in.GrindTask(),
		TaskRinseFilter,
		TaskAddFilter,
	}
}

// Transcript is the ordered audit trail of a completed workflow: the four
// preparation results in completion order, then the extraction result, then
// the summary line.
type Transcript []string

const summaryTemplate = "Enjoy your coffee, I wasted %.2f seconds making it."
