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

// Package codec provides pluggable binary encodings for values crossing a
// process boundary: ingress payloads and audit events.
package codec

// Binary encodes Go values to bytes and back. Implementations must be safe
// for concurrent use.
type Binary interface {
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte, valuePtr any) error
}
