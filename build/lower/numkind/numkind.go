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

// Package numkind defines the numeric kinds of literals in the target language.
package numkind

import (
	"math"

	"github.com/gx-org/backend/dtype"
)

// Kind of a numeric literal.
type Kind uint

// Kinds backed by an array data type.
const (
	Invalid = Kind(dtype.Invalid)

	Bool    = Kind(dtype.Bool)
	Int32   = Kind(dtype.Int32)
	Int64   = Kind(dtype.Int64)
	Uint32  = Kind(dtype.Uint32)
	Uint64  = Kind(dtype.Uint64)
	Float32 = Kind(dtype.Float32)
	Float64 = Kind(dtype.Float64)
)

// Kinds of the target language with no array data type.
const (
	Int8 = Kind(iota + dtype.MaxDataType)
	Int16
	Int128
	Isize
	Uint8
	Uint16
	Uint128
	Usize

	// Max value for a Kind constant.
	Max
)

// DefaultInt is the kind of an integer literal with no suffix.
const DefaultInt = Int32

// DefaultFloat is the kind of a float literal with no suffix.
const DefaultFloat = Float64

var suffixes = map[string]Kind{
	"i8":    Int8,
	"i16":   Int16,
	"i32":   Int32,
	"i64":   Int64,
	"i128":  Int128,
	"isize": Isize,
	"u8":    Uint8,
	"u16":   Uint16,
	"u32":   Uint32,
	"u64":   Uint64,
	"u128":  Uint128,
	"usize": Usize,
	"f32":   Float32,
	"f64":   Float64,
	"bool":  Bool,
}

// FromSuffix returns the kind of a literal suffix such as i64 or f32.
// It returns Invalid for unknown suffixes.
func FromSuffix(suffix string) Kind {
	k, ok := suffixes[suffix]
	if !ok {
		return Invalid
	}
	return k
}

// String returns the name of the kind in the target language.
func (k Kind) String() string {
	for name, kind := range suffixes {
		if kind == k {
			return name
		}
	}
	return "invalid"
}

// DType converts a kind into an array data type.
// Kinds with no data type return dtype.Invalid.
func (k Kind) DType() dtype.DataType {
	if k >= Kind(dtype.MaxDataType) {
		return dtype.Invalid
	}
	return dtype.DataType(k)
}

// IsFloat returns true for floating point kinds.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsInteger returns true for integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Int128, Isize, Uint8, Uint16, Uint32, Uint64, Uint128, Usize:
		return true
	}
	return false
}

// IsSigned returns true for signed integer kinds.
func (k Kind) IsSigned() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Int128, Isize:
		return true
	}
	return false
}

var bits = map[Kind]int{
	Int8:    8,
	Int16:   16,
	Int128:  128,
	Isize:   64,
	Uint8:   8,
	Uint16:  16,
	Uint128: 128,
	Usize:   64,
}

// Bits returns the size of a value of the kind in bits.
func (k Kind) Bits() int {
	if n, ok := bits[k]; ok {
		return n
	}
	if dt := k.DType(); dt != dtype.Invalid {
		return int(dtype.Sizeof(dt)) * 8
	}
	return 0
}

// Fits returns true if an integer value can be represented by the kind.
func (k Kind) Fits(v int64) bool {
	if k.IsFloat() {
		return true
	}
	if !k.IsInteger() {
		return false
	}
	n := k.Bits()
	if n >= 64 {
		return k.IsSigned() || v >= 0
	}
	if k.IsSigned() {
		limit := int64(1) << (n - 1)
		return v >= -limit && v < limit
	}
	return v >= 0 && uint64(v) <= uint64(math.MaxUint64)>>(64-n)
}
