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

import "testing"

type sample struct {
	Name    string  `json:"name" msgpack:"name"`
	Grams   int     `json:"grams" msgpack:"grams"`
	Seconds float64 `json:"seconds" msgpack:"seconds"`
}

func TestCodecsPreserveStructFields(t *testing.T) {
	in := sample{Name: "boiling water", Grams: 300, Seconds: 4.25}

	for _, tt := range []struct {
		name  string
		codec Binary
	}{
		{"json", JSON{}},
		{"msgpack", Msgpack{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.codec.Marshal(in)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var out sample
			if err := tt.codec.Unmarshal(data, &out); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if out != in {
				t.Errorf("round trip changed value: got %+v, want %+v", out, in)
			}
		})
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var out sample
	if err := (JSON{}).Unmarshal([]byte("{not json"), &out); err == nil {
		t.Error("JSON accepted malformed input")
	}
	if err := (Msgpack{}).Unmarshal([]byte{0xc1}, &out); err == nil {
		t.Error("Msgpack accepted reserved byte")
	}
}
