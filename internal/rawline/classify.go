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

package rawline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/exprparse"
	"github.com/dialogscript/yarnc/internal/lexer"
)

var reBareGetVar = regexp.MustCompile(`^\$[A-Za-z_][A-Za-z0-9_]*$`)

// Classify dispatches a raw (untrimmed) source line to its flat form,
// per spec §4.2's ordered tries: Speech, Command, Option-line, EndOptions,
// Branch (declare is a pre-pass concern but recognized here too, so callers
// can filter it out before scope grouping). lineNo is the 1-based source
// line number, recorded on the result for later diagnostics.
func Classify(lineNo int, raw string) (Line, error) {
	indent, rest := ComputeIndent(raw)
	content := strings.TrimRight(rest, " \t\r")

	line, err := func() (Line, error) {
		switch {
		case content == "<-":
			return Line{Kind: KindEndOptions, Indent: indent}, nil
		case strings.HasPrefix(content, "->"):
			return classifyOption(indent, strings.TrimSpace(content[2:]))
		case strings.HasPrefix(content, "<<"):
			return classifyDirective(indent, content)
		default:
			return classifySpeech(indent, content)
		}
	}()
	if err != nil {
		return Line{}, err
	}
	line.LineNo = lineNo
	return line, nil
}

func classifySpeech(indent int, content string) (Line, error) {
	line := Line{Kind: KindSpeech, Indent: indent}
	text := content

	if idx := strings.IndexByte(content, ':'); idx >= 0 {
		prefix := content[:idx]
		remainder := strings.TrimPrefix(content[idx+1:], " ")

		switch {
		case isBareGetVarForm(prefix):
			line.HasSpeaker = true
			line.Speaker = ast.Speaker{IsVariable: true, Var: ast.GetVar{Name: prefix[2 : len(prefix)-1]}}
			text = remainder
		case prefix != "" && !strings.ContainsAny(prefix, " \t{"):
			line.HasSpeaker = true
			line.Speaker = ast.Speaker{Literal: prefix}
			text = remainder
		}
	}

	body, tagsPart, err := splitTrailingTags(text)
	if err != nil {
		return Line{}, fmt.Errorf("speech line: %w", err)
	}
	tags, err := parseTags(tagsPart)
	if err != nil {
		return Line{}, fmt.Errorf("speech line: %w", err)
	}
	line.Tags = tags

	tmpl, err := ParseTemplate(strings.TrimRight(body, " \t"))
	if err != nil {
		return Line{}, err
	}
	line.Text = tmpl
	return line, nil
}

// isBareGetVarForm reports whether prefix is exactly "{$name}".
func isBareGetVarForm(prefix string) bool {
	if len(prefix) < 4 || prefix[0] != '{' || prefix[len(prefix)-1] != '}' {
		return false
	}
	return reBareGetVar.MatchString(prefix[1 : len(prefix)-1])
}

func classifyOption(indent int, rest string) (Line, error) {
	line := Line{Kind: KindOption, Indent: indent}

	textPart := rest
	var tagsPart string

	if idx := strings.Index(rest, "<<if"); idx >= 0 {
		textPart = rest[:idx]
		afterIf := rest[idx+len("<<if"):]
		closeIdx := strings.Index(afterIf, ">>")
		if closeIdx < 0 {
			return Line{}, fmt.Errorf("option line: unterminated <<if>>")
		}
		condSrc := strings.TrimSpace(afterIf[:closeIdx])
		cond, err := exprparse.Parse(condSrc)
		if err != nil {
			return Line{}, fmt.Errorf("option line condition: %w", err)
		}
		line.HasOptionCond = true
		line.OptionCond = cond
		tagsPart = afterIf[closeIdx+2:]
	} else if idx2 := strings.IndexByte(rest, '#'); idx2 >= 0 {
		textPart = rest[:idx2]
		tagsPart = rest[idx2:]
	}

	tags, err := parseTags(tagsPart)
	if err != nil {
		return Line{}, fmt.Errorf("option line: %w", err)
	}
	line.OptionTags = tags

	tmpl, err := ParseTemplate(strings.TrimSpace(textPart))
	if err != nil {
		return Line{}, err
	}
	line.OptionText = tmpl
	return line, nil
}

func parseTags(s string) (Tags, error) {
	var out Tags
	for _, tok := range strings.Fields(s) {
		tag := strings.TrimPrefix(tok, "#")
		if rest, ok := strings.CutPrefix(tag, "line:"); ok {
			if out.HasLineID {
				return Tags{}, fmt.Errorf("more than one line:id tag")
			}
			out.HasLineID = true
			out.LineID = rest
			continue
		}
		out.Values = append(out.Values, tag)
	}
	return out, nil
}

// directiveBody strips the "<<"/">>" delimiters, returning the inner content.
func directiveBody(content string) (string, error) {
	if !strings.HasSuffix(content, ">>") {
		return "", fmt.Errorf("directive %q: missing closing '>>'", content)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(content, "<<"), ">>")
	return inner, nil
}

func splitFirstWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

func classifyDirective(indent int, content string) (Line, error) {
	inner, err := directiveBody(content)
	if err != nil {
		return Line{}, err
	}
	name, rest := splitFirstWord(inner)

	switch name {
	case "if", "elseif":
		if rest == "" {
			return Line{}, fmt.Errorf("<<%s>> requires exactly one expression argument", name)
		}
		cond, err := exprparse.Parse(rest)
		if err != nil {
			return Line{}, fmt.Errorf("<<%s>> condition: %w", name, err)
		}
		kind := KindIf
		if name == "elseif" {
			kind = KindElseIf
		}
		return Line{Kind: kind, Indent: indent, Cond: cond}, nil

	case "else":
		if rest != "" {
			return Line{}, fmt.Errorf("<<else>> takes no argument")
		}
		return Line{Kind: KindElse, Indent: indent}, nil

	case "endif":
		if rest != "" {
			return Line{}, fmt.Errorf("<<endif>> takes no argument")
		}
		return Line{Kind: KindEndIf, Indent: indent}, nil

	case "declare":
		return classifyDeclare(indent, rest)

	default:
		return classifyCommand(indent, name, rest)
	}
}

func classifyDeclare(indent int, rest string) (Line, error) {
	if !strings.HasPrefix(rest, "$") {
		return Line{}, fmt.Errorf("<<declare>>: expected $name, found %q", rest)
	}
	varName, rest := splitFirstWord(rest)
	varName = strings.TrimPrefix(varName, "$")

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "=") {
		return Line{}, fmt.Errorf("<<declare>> $%s: expected '='", varName)
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	exprSrc, typeSrc, hasType := cutTrailingAsType(rest)
	defaultExpr, err := exprparse.Parse(exprSrc)
	if err != nil {
		return Line{}, fmt.Errorf("<<declare>> $%s default value: %w", varName, err)
	}

	line := Line{Kind: KindDeclare, Indent: indent, DeclareVar: varName, DeclareDefault: defaultExpr}
	if hasType {
		dt, err := ast.ParseDeclarationType(typeSrc)
		if err != nil {
			return Line{}, fmt.Errorf("<<declare>> $%s: %w", varName, err)
		}
		line.HasDeclareType = true
		line.DeclareType = dt
	}
	return line, nil
}

// cutTrailingAsType splits "expr as Type" into ("expr", "Type", true), or
// returns (s, "", false) when there is no trailing "as Type".
func cutTrailingAsType(s string) (exprSrc, typeSrc string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) >= 2 && fields[len(fields)-2] == "as" {
		typeSrc = fields[len(fields)-1]
		exprSrc = strings.TrimSpace(strings.Join(fields[:len(fields)-2], " "))
		return exprSrc, typeSrc, true
	}
	return s, "", false
}

var setOperators = []struct {
	token string
	op    SetOp
}{
	{"+=", SetAdd},
	{"-=", SetSub},
	{"*=", SetMul},
	{"/=", SetDiv},
	{"%=", SetRem},
	{"=", SetAssign},
	{"to", SetAssign},
}

func classifyCommand(indent int, name, rest string) (Line, error) {
	switch name {
	case "set":
		return classifySet(indent, rest)
	case "jump":
		return classifyJump(indent, rest)
	case "stop":
		if rest != "" {
			return Line{}, fmt.Errorf("<<stop>> takes no argument")
		}
		return Line{Kind: KindCommand, Indent: indent, CommandForm: CommandStop}, nil
	default:
		body, tagsPart, err := splitTrailingTags(rest)
		if err != nil {
			return Line{}, fmt.Errorf("<<%s>>: %w", name, err)
		}
		tags, err := parseTags(tagsPart)
		if err != nil {
			return Line{}, fmt.Errorf("<<%s>>: %w", name, err)
		}
		args, err := splitArgs(body)
		if err != nil {
			return Line{}, fmt.Errorf("<<%s>>: %w", name, err)
		}
		parsed := make([]ast.Expr, len(args))
		for i, a := range args {
			expr, err := exprparse.Parse(a)
			if err != nil {
				return Line{}, fmt.Errorf("<<%s>> argument %d: %w", name, i+1, err)
			}
			parsed[i] = expr
		}
		return Line{Kind: KindCommand, Indent: indent, CommandForm: CommandCustom, CommandName: name, Args: parsed, Tags: tags}, nil
	}
}

func classifySet(indent int, rest string) (Line, error) {
	if !strings.HasPrefix(rest, "$") {
		return Line{}, fmt.Errorf("<<set>>: expected $name, found %q", rest)
	}
	varTok, rest := splitFirstWord(rest)
	varName := strings.TrimPrefix(varTok, "$")

	for _, candidate := range setOperators {
		if rest == candidate.token || strings.HasPrefix(rest, candidate.token+" ") {
			exprSrc := strings.TrimSpace(strings.TrimPrefix(rest, candidate.token))
			expr, err := exprparse.Parse(exprSrc)
			if err != nil {
				return Line{}, fmt.Errorf("<<set>> $%s: %w", varName, err)
			}
			return Line{
				Kind:        KindCommand,
				Indent:      indent,
				CommandForm: CommandSet,
				SetVar:      varName,
				SetOp:       candidate.op,
				SetExpr:     expr,
			}, nil
		}
	}
	return Line{}, fmt.Errorf("<<set>> $%s: expected one of to, =, +=, -=, *=, /=, %%=", varName)
}

func classifyJump(indent int, rest string) (Line, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Line{}, fmt.Errorf("<<jump>> requires a node name")
	}
	target := rest
	if strings.HasPrefix(rest, `"`) && strings.HasSuffix(rest, `"`) && len(rest) >= 2 {
		target = lexer.Unquote(rest)
	}
	return Line{Kind: KindCommand, Indent: indent, CommandForm: CommandJump, JumpTarget: target}, nil
}
