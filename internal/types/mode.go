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

import (
	"fmt"
	"strings"
)

// Mode selects how the application behaves at runtime, most notably which
// logging pipeline is installed.
type Mode string

const (
	// ModeDebug enables the colored pretty log handler and verbose output.
	ModeDebug Mode = "debug"

	// ModeRelease enables the JSON log handler and the OTLP log bridge.
	ModeRelease Mode = "release"
)

// ParseMode converts a string into a Mode. Unknown values are an error so
// that a typo in MODE does not silently run a debug build in production.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDebug:
		return ModeDebug, nil
	case ModeRelease:
		return ModeRelease, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want debug or release)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so Mode can be parsed
// directly from environment variables by the env package.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) String() string { return string(m) }
