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

// TextTemplate is a text body with embedded-expression placeholders, per §3:
// interpolations `{expr}` in source become `{}` placeholders in Literal, with
// each expression appended to Args in left-to-right order.
type TextTemplate struct {
	Literal string
	Args    []Expr
}

func (t TextTemplate) String() string {
	return t.Literal
}

// Speaker is either a literal name or a single variable reference, appearing
// before the first ':' in a speech line (§3).
type Speaker struct {
	// IsVariable selects between the Literal and Var forms.
	IsVariable bool
	Literal    string
	Var        GetVar
}

func (s Speaker) String() string {
	if s.IsVariable {
		return "{" + s.Var.String() + "}"
	}
	return s.Literal
}
