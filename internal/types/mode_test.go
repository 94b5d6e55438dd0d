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

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "debug", input: "debug", want: ModeDebug},
		{name: "release", input: "release", want: ModeRelease},
		{name: "mixed case", input: "Release", want: ModeRelease},
		{name: "surrounding whitespace", input: "  debug ", want: ModeDebug},
		{name: "unknown", input: "production", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMode(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModeUnmarshalText(t *testing.T) {
	var m Mode
	if err := m.UnmarshalText([]byte("release")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if m != ModeRelease {
		t.Errorf("got %v, want %v", m, ModeRelease)
	}

	if err := m.UnmarshalText([]byte("staging")); err == nil {
		t.Error("UnmarshalText accepted unknown mode")
	}
}
