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
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Normalize strips explicit Paren wrappers recursively, leaving operator
// precedence (already encoded in the tree shape) as the sole source of
// grouping. Used to compare ASTs "up to parenthesis normalization" per §8.
func Normalize(e Expr) Expr {
	switch v := e.(type) {
	case Paren:
		return Normalize(v.X)
	case UnaryOp:
		return UnaryOp{Op: v.Op, X: Normalize(v.X)}
	case BinaryOp:
		return BinaryOp{Op: v.Op, L: Normalize(v.L), R: Normalize(v.R)}
	case Call:
		return Call{Name: v.Name, Args: normalizeAll(v.Args)}
	case BuiltinCall:
		return BuiltinCall{Name: v.Name, Args: normalizeAll(v.Args)}
	case Cast:
		return Cast{Target: v.Target, X: Normalize(v.X)}
	default:
		return e
	}
}

func normalizeAll(args []Expr) []Expr {
	if args == nil {
		return nil
	}
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = Normalize(a)
	}
	return out
}

// equateOptions is the set of go-cmp options used to compare Expr trees "up
// to parenthesis normalization" with the 1e-6 float tolerance from §8/§9 — a
// test-harness-only concession; IR equality at compile time never uses this.
var equateOptions = cmp.Options{
	cmpopts.EquateApprox(0, 1e-6),
	cmp.Comparer(func(a, b FloatLit) bool { return math.Abs(float64(a)-float64(b)) <= 1e-6 }),
}

// Equal reports whether a and b are the same expression up to parenthesis
// normalization and float tolerance (1e-6), per the round-trip property of
// spec §8. It is a test-harness helper, never used for compile-time IR
// equality (see DESIGN.md's Open Question decisions).
func Equal(a, b Expr) bool {
	return cmp.Equal(Normalize(a), Normalize(b), equateOptions)
}

// Diff returns a human-readable diff of a and b (normalized, float-tolerant),
// or "" if they are Equal. Intended for test failure messages.
func Diff(a, b Expr) string {
	return cmp.Diff(Normalize(a), Normalize(b), equateOptions)
}
