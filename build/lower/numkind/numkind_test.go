// Copyright 2025 Google LLC
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

package numkind_test

import (
	"testing"

	"github.com/paiml/ruchy-sub001/build/lower/numkind"
)

func TestFromSuffix(t *testing.T) {
	tests := []struct {
		suffix string
		want   numkind.Kind
		bits   int
		float  bool
	}{
		{suffix: "i32", want: numkind.Int32, bits: 32},
		{suffix: "i64", want: numkind.Int64, bits: 64},
		{suffix: "u8", want: numkind.Uint8, bits: 8},
		{suffix: "usize", want: numkind.Usize, bits: 64},
		{suffix: "f32", want: numkind.Float32, bits: 32, float: true},
		{suffix: "f64", want: numkind.Float64, bits: 64, float: true},
		{suffix: "x", want: numkind.Invalid},
	}
	for _, test := range tests {
		t.Run(test.suffix, func(t *testing.T) {
			got := numkind.FromSuffix(test.suffix)
			if got != test.want {
				t.Fatalf("got kind %v but want %v", got, test.want)
			}
			if got == numkind.Invalid {
				return
			}
			if got.Bits() != test.bits {
				t.Errorf("got %d bits but want %d", got.Bits(), test.bits)
			}
			if got.IsFloat() != test.float {
				t.Errorf("IsFloat()=%t but want %t", got.IsFloat(), test.float)
			}
			if got.String() != test.suffix {
				t.Errorf("String()=%q but want %q", got.String(), test.suffix)
			}
		})
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		kind numkind.Kind
		v    int64
		want bool
	}{
		{kind: numkind.Int8, v: 127, want: true},
		{kind: numkind.Int8, v: 128, want: false},
		{kind: numkind.Int8, v: -128, want: true},
		{kind: numkind.Uint8, v: 255, want: true},
		{kind: numkind.Uint8, v: 256, want: false},
		{kind: numkind.Uint32, v: -1, want: false},
		{kind: numkind.Int32, v: 1 << 31, want: false},
		{kind: numkind.Int64, v: -1 << 63, want: true},
		{kind: numkind.Uint64, v: -1, want: false},
		{kind: numkind.Float64, v: 1 << 62, want: true},
		{kind: numkind.Bool, v: 1, want: false},
	}
	for i, test := range tests {
		if got := test.kind.Fits(test.v); got != test.want {
			t.Errorf("test %d: %v.Fits(%d) = %t but want %t", i, test.kind, test.v, got, test.want)
		}
	}
}
