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
	"strconv"
	"strings"
	"unicode"

	"github.com/go-faster/errors"
)

// ParseInsts parses assembler lines, skipping blank lines and comments.
func ParseInsts(lines []string) ([]Inst, error) {
	var out []Inst
	for _, line := range lines {
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}
		inst, err := ParseInst(line)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// ParseInst parses one instruction such as "MOVQ buf+(8+24)(FP), BX".
// Frame displacements may be constant expressions.
func ParseInst(line string) (Inst, error) {
	line = strings.TrimSpace(line)
	op, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		op, rest = line[:i], line[i:]
	}
	if op == "" {
		return Inst{}, errors.Wrap(ErrSyntax, "empty instruction")
	}
	inst := Inst{Op: op}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return inst, nil
	}
	for _, field := range splitArgs(rest) {
		o, err := ParseOperand(field)
		if err != nil {
			return Inst{}, errors.Wrapf(err, "instruction %q", line)
		}
		inst.Args = append(inst.Args, o)
	}
	return inst, nil
}

// ParseOperand parses a register, an immediate ($expr) or a frame slot
// (name+expr(FP)).
func ParseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Operand{}, errors.Wrap(ErrSyntax, "empty operand")
	case strings.HasPrefix(s, "$"):
		v, err := evalExpr(s[1:])
		if err != nil {
			return Operand{}, errors.Wrapf(err, "immediate %q", s)
		}
		return Imm(uint64(v)), nil
	case strings.HasSuffix(s, "(FP)"):
		body := strings.TrimSuffix(s, "(FP)")
		n := 0
		for n < len(body) && isIdentByte(body[n]) {
			n++
		}
		name, disp := body[:n], body[n:]
		if name == "" {
			return Operand{}, errors.Wrapf(ErrSyntax, "frame operand %q has no symbol", s)
		}
		if disp == "" || (disp[0] != '+' && disp[0] != '-') {
			return Operand{}, errors.Wrapf(ErrSyntax, "frame operand %q has no displacement", s)
		}
		v, err := evalExpr("0" + disp)
		if err != nil {
			return Operand{}, errors.Wrapf(err, "frame operand %q", s)
		}
		return FrameSlot(name, v), nil
	case strings.ContainsAny(s, "()+-*$ "):
		return Operand{}, errors.Wrapf(ErrUnsupported, "operand %q", s)
	default:
		return Reg(s), nil
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// splitArgs splits on commas that are not inside parentheses.
func splitArgs(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

// evalExpr evaluates an integer expression with + - * and parentheses, the
// subset the Go assembler accepts in displacements and immediates that the
// slice macros generate.
func evalExpr(s string) (int64, error) {
	p := exprParser{s: strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)}
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.s) {
		return 0, errors.Wrapf(ErrSyntax, "unexpected %q in %q", p.s[p.pos:], s)
	}
	return v, nil
}

type exprParser struct {
	s   string
	pos int
}

func (p *exprParser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *exprParser) sum() (int64, error) {
	v, err := p.product()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.product()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			p.pos++
			r, err := p.product()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (p *exprParser) product() (int64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.peek() == '*' {
		p.pos++
		r, err := p.unary()
		if err != nil {
			return 0, err
		}
		v *= r
	}
	return v, nil
}

func (p *exprParser) unary() (int64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	case '(':
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errors.Wrapf(ErrSyntax, "missing ) in %q", p.s)
		}
		p.pos++
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.s) && isIdentByte(p.s[p.pos]) {
		p.pos++
	}
	lit := p.s[start:p.pos]
	if lit == "" {
		return 0, errors.Wrapf(ErrSyntax, "expected number in %q", p.s)
	}
	u, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "number %q", lit)
	}
	return int64(u), nil
}
