// Copyright 2026 EngFlow Inc. All rights reserved.
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

package ast

import (
	"fmt"

	"golang.org/x/text/cases"
)

// DeclarationType enumerates the representable storage types of §3.
type DeclarationType int

const (
	TypeUnknown DeclarationType = iota
	TypeString
	TypeBool
	TypeNumber
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeI128
	TypeIsize
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeUsize
	TypeF32
	TypeF64
)

var typeNames = map[string]DeclarationType{
	"string": TypeString,
	"bool":   TypeBool,
	"number": TypeNumber,
	"i8":     TypeI8,
	"i16":    TypeI16,
	"i32":    TypeI32,
	"i64":    TypeI64,
	"i128":   TypeI128,
	"isize":  TypeIsize,
	"u8":     TypeU8,
	"u16":    TypeU16,
	"u32":    TypeU32,
	"u64":    TypeU64,
	"u128":   TypeU128,
	"usize":  TypeUsize,
	"f32":    TypeF32,
	"f64":    TypeF64,
}

var typeFold = cases.Fold()

// ParseDeclarationType parses a type name case-insensitively (spec §3: "Parsed
// case-insensitively"), e.g. "String", "STRING", and "string" are equivalent.
func ParseDeclarationType(name string) (DeclarationType, error) {
	folded := typeFold.String(name)
	if t, ok := typeNames[folded]; ok {
		return t, nil
	}
	return TypeUnknown, fmt.Errorf("unknown declaration type %q", name)
}

func (t DeclarationType) String() string {
	for name, dt := range typeNames {
		if dt == t {
			return name
		}
	}
	return "unknown"
}

// DefaultGoType returns the Go type used by the emitter to represent t when
// generating variable accessors.
func (t DeclarationType) DefaultGoType() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeNumber:
		// Per §3's Inferred variable table note: a variable whose type is
		// inferred purely from participation in arithmetic defaults to the
		// widest generic numeric representation until resolved further.
		return "int64"
	case TypeI8, TypeI16, TypeI32, TypeI64, TypeI128, TypeIsize:
		return map[DeclarationType]string{
			TypeI8: "int8", TypeI16: "int16", TypeI32: "int32",
			TypeI64: "int64", TypeI128: "int64", TypeIsize: "int",
		}[t]
	case TypeU8, TypeU16, TypeU32, TypeU64, TypeU128, TypeUsize:
		return map[DeclarationType]string{
			TypeU8: "uint8", TypeU16: "uint16", TypeU32: "uint32",
			TypeU64: "uint64", TypeU128: "uint64", TypeUsize: "uint",
		}[t]
	case TypeF32:
		return "float32"
	case TypeF64:
		return "float64"
	default:
		return "any"
	}
}
