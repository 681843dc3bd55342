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

// Package diag carries source positions through stage errors without
// creating an import cycle between the stage packages (metadata, scope,
// ids, infer, emit, source, config) and internal/compiler, which is the
// only package allowed to know about every stage and therefore the only
// place the full Kind taxonomy of spec §7 can live.
package diag

import "fmt"

// Located wraps err with the file and line it occurred at. internal/compiler
// recovers File/Line with errors.As after wrapping the stage error into a
// compiler.Error, so the original position survives the wrap.
type Located struct {
	File string
	Line int
	Err  error
}

// At wraps err with a position, or returns nil if err is nil.
func At(file string, line int, err error) error {
	if err == nil {
		return nil
	}
	return &Located{File: file, Line: line, Err: err}
}

func (e *Located) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err)
}

func (e *Located) Unwrap() error { return e.Err }
