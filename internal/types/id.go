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

package types

import "github.com/gofrs/uuid/v5"

// InstanceID identifies one workflow execution. IDs are UUIDv7 so they sort
// by creation time, which keeps audit subjects and status listings in
// chronological order for free.
type InstanceID uuid.UUID

// NewInstanceID issues a fresh instance identifier.
func NewInstanceID() (InstanceID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return InstanceID{}, err
	}
	return InstanceID(id), nil
}

// ParseInstanceID parses the canonical string form of an instance identifier.
func ParseInstanceID(s string) (InstanceID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return InstanceID{}, err
	}
	return InstanceID(id), nil
}

func (id InstanceID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is the zero UUID.
func (id InstanceID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}
