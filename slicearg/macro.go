// Copyright 2025 go-slicearg Authors
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

package slicearg

import (
	"bufio"
	"io"
	"strings"

	"github.com/go-faster/errors"
)

// maxExpandDepth bounds nested macro calls.
const maxExpandDepth = 16

// Macro is one function-like #define from an assembler header.
type Macro struct {
	Name   string
	Params []string

	// Body holds one entry per physical line of the definition; the Go
	// assembler keeps escaped newlines as statement separators.
	Body []string
}

// MacroSet is the set of macros defined by a header, in definition order.
type MacroSet struct {
	macros map[string]*Macro
	order  []string
}

// ParseHeader reads the function-like #define directives of an assembler
// header. Comments, object-like defines and other lines are ignored.
func ParseHeader(r io.Reader) (*MacroSet, error) {
	set := &MacroSet{macros: make(map[string]*Macro)}
	sc := bufio.NewScanner(r)

	var (
		cur    *Macro
		skip   bool
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(stripComment(sc.Text()), " \t")
		cont := strings.HasSuffix(line, `\`)
		line = strings.TrimSuffix(line, `\`)

		if skip {
			skip = cont
			continue
		}
		if cur == nil {
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "#define") {
				continue
			}
			m, first, err := parseDefine(strings.TrimSpace(strings.TrimPrefix(trimmed, "#define")))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			if m == nil {
				// Object-like define, such as the flags in textflag.h.
				skip = cont
				continue
			}
			if _, dup := set.macros[m.Name]; dup {
				return nil, errors.Wrapf(ErrSyntax, "line %d: %s redefined", lineNo, m.Name)
			}
			cur = m
			line = first
		}
		if s := strings.TrimSpace(line); s != "" {
			cur.Body = append(cur.Body, s)
		}
		if !cont {
			set.macros[cur.Name] = cur
			set.order = append(set.order, cur.Name)
			cur = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if cur != nil {
		return nil, errors.Wrapf(ErrSyntax, "%s: definition continues past end of file", cur.Name)
	}
	return set, nil
}

// parseDefine splits "name(A, B) rest" into a macro and the rest of the line.
// It returns a nil macro for object-like defines.
func parseDefine(s string) (*Macro, string, error) {
	n := 0
	for n < len(s) && isIdentByte(s[n]) {
		n++
	}
	name := s[:n]
	if name == "" {
		return nil, "", errors.Wrapf(ErrSyntax, "#define without a name: %q", s)
	}
	if n == len(s) || s[n] != '(' {
		return nil, "", nil
	}
	open := n
	end := strings.IndexByte(s, ')')
	if end < open {
		return nil, "", errors.Wrapf(ErrSyntax, "unterminated parameter list for %s", name)
	}
	m := &Macro{Name: name}
	if params := strings.TrimSpace(s[open+1 : end]); params != "" {
		for _, p := range strings.Split(params, ",") {
			m.Params = append(m.Params, strings.TrimSpace(p))
		}
	}
	return m, s[end+1:], nil
}

// Names returns the macro names in definition order.
func (s *MacroSet) Names() []string {
	return append([]string(nil), s.order...)
}

// Lookup returns the macro called name.
func (s *MacroSet) Lookup(name string) (*Macro, bool) {
	m, ok := s.macros[name]
	return m, ok
}

// Expand returns the instruction lines produced by calling name with args,
// with nested macro calls expanded.
func (s *MacroSet) Expand(name string, args ...string) ([]string, error) {
	return s.expand(name, args, 0)
}

// ExpandLine expands line if it is a macro call and returns it unchanged
// otherwise.
func (s *MacroSet) ExpandLine(line string) ([]string, error) {
	return s.expandLine(line, 0)
}

func (s *MacroSet) expandLine(line string, depth int) ([]string, error) {
	line = strings.TrimSpace(line)
	name, args, ok := splitCall(line)
	if !ok {
		return []string{line}, nil
	}
	if _, defined := s.macros[name]; !defined {
		return []string{line}, nil
	}
	return s.expand(name, args, depth)
}

func (s *MacroSet) expand(name string, args []string, depth int) ([]string, error) {
	if depth >= maxExpandDepth {
		return nil, errors.Wrapf(ErrSyntax, "%s: macro nesting deeper than %d", name, maxExpandDepth)
	}
	m, ok := s.macros[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMacro, "%s", name)
	}
	if len(args) != len(m.Params) {
		return nil, errors.Wrapf(ErrArity, "%s takes %d, got %d", name, len(m.Params), len(args))
	}
	bind := make(map[string]string, len(args))
	for i, p := range m.Params {
		bind[p] = strings.TrimSpace(args[i])
	}

	var out []string
	for _, body := range m.Body {
		lines, err := s.expandLine(substitute(body, bind), depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", name)
		}
		out = append(out, lines...)
	}
	return out, nil
}

// substitute replaces whole identifiers found in bind.
func substitute(body string, bind map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(body); {
		if !isIdentByte(body[i]) {
			b.WriteByte(body[i])
			i++
			continue
		}
		j := i
		for j < len(body) && isIdentByte(body[j]) {
			j++
		}
		word := body[i:j]
		if v, ok := bind[word]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}

// splitCall recognizes "name(arg, arg)" spanning the whole line.
func splitCall(line string) (string, []string, bool) {
	open := strings.IndexByte(line, '(')
	if open <= 0 || !strings.HasSuffix(line, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(line[:open])
	for i := 0; i < len(name); i++ {
		if !isIdentByte(name[i]) {
			return "", nil, false
		}
	}
	inner := line[open+1 : len(line)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil, true
	}
	return name, splitArgs(inner), true
}
