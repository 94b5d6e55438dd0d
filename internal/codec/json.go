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

package codec

import (
	"encoding/json"
	"fmt"
)

var _ Binary = (*JSON)(nil)

// JSON implements Binary using encoding/json. Used for ingress payloads,
// where human-readable input matters more than byte count.
type JSON struct{}

func (JSON) Marshal(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, valuePtr any) error {
	if err := json.Unmarshal(data, valuePtr); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}
