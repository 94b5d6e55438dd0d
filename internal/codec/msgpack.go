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
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var _ Binary = (*Msgpack)(nil)

// Msgpack implements Binary using MessagePack. It is the audit sink's wire
// format: compact and it keeps integer/float distinction intact.
type Msgpack struct{}

func (Msgpack) Marshal(value any) ([]byte, error) {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}
	return data, nil
}

func (Msgpack) Unmarshal(data []byte, valuePtr any) error {
	if err := msgpack.Unmarshal(data, valuePtr); err != nil {
		return fmt.Errorf("msgpack decode: %w", err)
	}
	return nil
}
