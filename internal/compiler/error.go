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

// Package compiler wires the seven pipeline stages (source, metadata,
// scope, ids, infer, emit, and configuration) into a single Compile call,
// and defines the error-kind taxonomy of spec §7 on top of them. It is the
// only package that imports every stage package, and therefore the only
// place the full Kind enumeration can live without an import cycle (see
// internal/diag's package doc).
package compiler

import (
	"errors"
	"fmt"

	"github.com/dialogscript/yarnc/internal/diag"
)

// Kind discriminates the error taxonomy of spec §7.
type Kind int

const (
	KindConfiguration Kind = iota
	KindIO
	KindFileStructure
	KindMetadata
	KindLineClassification
	KindExpression
	KindStructural
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindIO:
		return "I/O"
	case KindFileStructure:
		return "file structure"
	case KindMetadata:
		return "metadata"
	case KindLineClassification:
		return "line classification"
	case KindExpression:
		return "expression"
	case KindStructural:
		return "structural"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind, so callers can classify a returned Error
// with errors.Is the way the teacher's lexer package compares against
// ErrContinueLineInvalid and friends.
var (
	ErrConfiguration      = errors.New("configuration error")
	ErrIO                 = errors.New("I/O error")
	ErrFileStructure      = errors.New("file structure error")
	ErrMetadata           = errors.New("metadata error")
	ErrLineClassification = errors.New("line classification error")
	ErrExpression         = errors.New("expression error")
	ErrStructural         = errors.New("structural error")
	ErrSemantic           = errors.New("semantic error")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindIO:
		return ErrIO
	case KindFileStructure:
		return ErrFileStructure
	case KindMetadata:
		return ErrMetadata
	case KindLineClassification:
		return ErrLineClassification
	case KindExpression:
		return ErrExpression
	case KindStructural:
		return ErrStructural
	default:
		return ErrSemantic
	}
}

// Error is the single diagnostic type spec §7 surfaces to the CLI: a kind,
// an optional file/line position, a message, and an optional help string.
type Error struct {
	Kind    Kind
	File    string
	Line    int
	Message string
	Help    string
}

func (e *Error) Error() string {
	pos := e.Message
	if e.File != "" {
		pos = fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	} else if e.Line != 0 {
		pos = fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	if e.Help == "" {
		return pos
	}
	return pos + "\nHelp: " + e.Help
}

// Is reports whether target is this Error's kind sentinel, so
// errors.Is(err, compiler.ErrSemantic) works for every compiler.Error of
// kind KindSemantic.
func (e *Error) Is(target error) bool { return target == sentinelFor(e.Kind) }

// newError builds an Error from a stage err, recovering file/line from a
// wrapped diag.Located if present.
func newError(kind Kind, stage string, err error) *Error {
	e := &Error{Kind: kind, Message: err.Error()}
	var loc *diag.Located
	if errors.As(err, &loc) {
		e.File = loc.File
		e.Line = loc.Line
		e.Message = loc.Err.Error()
	}
	e.Help = helpFor(kind, stage)
	return e
}

// helpFor attaches a short, kind-specific hint for ambiguous failures, per
// spec §6's "a \"Help:\" line when the cause is ambiguous".
func helpFor(kind Kind, stage string) string {
	switch kind {
	case KindStructural:
		return "check that every <<if>> has a matching <<endif>> and every options block a matching '<-'"
	case KindLineClassification:
		return "check indentation (4 columns per tab) and the line's leading sigil ('->', '<<', or plain text)"
	case KindSemantic:
		return "check that every $variable used has a consistent <<declare>> or inferred type across all nodes"
	case KindFileStructure:
		return "check that every node has a single '---'/'===' pair and a title: header line"
	default:
		return ""
	}
}
