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

package main

import (
	"bytes"
	"fmt"
	"go/types"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/asmfmt"
	"github.com/mmcloughlin/avo/operand"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-slicearg/slicearg"
)

// Op selects which slice accessor to expand.
type Op string

const (
	OpAddr Op = "addr"
	OpLen  Op = "len"
	OpSize Op = "size"
)

// Ops lists the accessors in header order.
var Ops = []Op{OpAddr, OpLen, OpSize}

// Macro returns the header macro implementing op.
func (o Op) Macro() string { return "slice_" + string(o) }

// ParseOp parses an accessor name, accepting either "len" or "slice_len".
func ParseOp(s string) (Op, error) {
	op := Op(strings.TrimPrefix(strings.ToLower(s), "slice_"))
	if !lo.Contains(Ops, op) {
		return "", errors.Errorf("unknown op %q, want one of %v", s, Ops)
	}
	return op, nil
}

// Request describes one accessor expansion.
type Request struct {
	Target slicearg.Target
	Layout *Layout
	Param  string
	Op     Op

	// Elem is the element size operand for OpSize: an immediate ($n), a
	// register or the name of a parameter. Empty uses the element size of
	// the slice type.
	Elem string
	Reg  string

	// Func, when set, wraps the expansion in a complete TEXT block that
	// stores the register into the result slot.
	Func string
}

// Expand returns the instructions for req with frame operands named the way
// go vet expects.
func Expand(req Request) ([]slicearg.Inst, error) {
	p, ok := req.Layout.Lookup(req.Param)
	if !ok {
		return nil, errors.Errorf("no parameter %q in %s", req.Param, req.Layout.Expr)
	}
	if p.Slice == nil {
		return nil, errors.Errorf("parameter %s is %s, not a slice", p.Name, p.Type)
	}
	base := int64(p.Slice.Base.Disp)

	var (
		insts []slicearg.Inst
		err   error
	)
	switch req.Op {
	case OpAddr:
		insts, err = slicearg.LoadAddress(req.Target, p.Name, base, req.Reg)
	case OpLen:
		insts, err = slicearg.LoadLength(req.Target, p.Name, base, req.Reg)
	case OpSize:
		elem, elemErr := elemOperand(req, p)
		if elemErr != nil {
			return nil, elemErr
		}
		insts, err = slicearg.LoadByteSize(req.Target, p.Name, base, elem, req.Reg)
	default:
		return nil, errors.Errorf("unknown op %q", req.Op)
	}
	if err != nil {
		return nil, err
	}
	return vetNames(insts, p), nil
}

func elemOperand(req Request, p Param) (slicearg.Operand, error) {
	switch {
	case req.Elem == "":
		return slicearg.Imm(uint64(p.Slice.ElemSize)), nil
	case strings.HasPrefix(req.Elem, "$"):
		return slicearg.ParseOperand(req.Elem)
	case req.Target.IsRegister(req.Elem):
		return slicearg.Reg(req.Elem), nil
	}
	q, ok := req.Layout.Lookup(req.Elem)
	if !ok {
		return slicearg.Operand{}, errors.Errorf("element size %q is not an immediate, register or parameter", req.Elem)
	}
	if !q.Basic || q.Size != slicearg.QuadwordSize || !isInteger(q.Type) {
		return slicearg.Operand{}, errors.Errorf("element size parameter %s is %s, want a quadword integer", q.Name, q.Type)
	}
	return frameOperand(q.Slot), nil
}

func isInteger(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}

// vetNames renames the slice triple slots of p to p_base, p_len and p_cap.
func vetNames(insts []slicearg.Inst, p Param) []slicearg.Inst {
	slots := map[int64]operand.Mem{
		int64(p.Slice.Base.Disp): p.Slice.Base,
		int64(p.Slice.Len.Disp):  p.Slice.Len,
		int64(p.Slice.Cap.Disp):  p.Slice.Cap,
	}
	return lo.Map(insts, func(inst slicearg.Inst, _ int) slicearg.Inst {
		inst.Args = lo.Map(inst.Args, func(o slicearg.Operand, _ int) slicearg.Operand {
			if o.Kind != slicearg.KindFrame || o.Name != p.Name {
				return o
			}
			if m, ok := slots[o.Disp]; ok {
				return frameOperand(m)
			}
			return o
		})
		return inst
	})
}

func frameOperand(m operand.Mem) slicearg.Operand {
	return slicearg.FrameSlot(m.Symbol.Name, int64(m.Disp))
}

// Render formats the expansion of req as assembler source.
func Render(req Request) ([]byte, error) {
	insts, err := Expand(req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if req.Func == "" {
		for _, line := range slicearg.Lines(insts) {
			fmt.Fprintf(&buf, "\t%s\n", line)
		}
		return format(buf.Bytes())
	}

	if req.Layout.Result == nil {
		return nil, errors.Errorf("%s needs exactly one 8-byte result to wrap in %s", req.Layout.Expr, req.Func)
	}
	insts = append(insts, slicearg.Inst{
		Op:   req.Target.Load,
		Args: []slicearg.Operand{slicearg.Reg(req.Reg), frameOperand(*req.Layout.Result)},
	})
	fmt.Fprintf(&buf, "// func %s%s\n", req.Func, strings.TrimPrefix(req.Layout.Expr, "func"))
	fmt.Fprintf(&buf, "TEXT ·%s(SB), NOSPLIT, $0-%d\n", req.Func, req.Layout.FrameBytes)
	for _, line := range slicearg.Lines(insts) {
		fmt.Fprintf(&buf, "\t%s\n", line)
	}
	buf.WriteString("\tRET\n")
	return format(buf.Bytes())
}

// ProbeName derives a TEXT symbol name such as sliceSizeB or
// sliceAddrSrcBuf. Only the first letter of each part is changed.
func ProbeName(op Op, param string) string {
	title := cases.Title(language.English, cases.NoLower)
	return "slice" + title.String(string(op)) + title.String(param)
}

// RenderLayout describes the slice parameters of l and the macro calls
// that read them.
func RenderLayout(t slicearg.Target, l *Layout, reg string) ([]byte, error) {
	if !t.IsRegister(reg) {
		return nil, errors.Wrapf(slicearg.ErrUnsupported, "%s register %q", t.Name, reg)
	}
	if t.Clobbered(reg) {
		return nil, errors.Wrapf(slicearg.ErrClobbered, "%s destination %s", t.Name, reg)
	}
	slices := l.SliceParams()
	if len(slices) == 0 {
		return nil, errors.Errorf("%s has no slice parameters", l.Expr)
	}
	frame := l.Params[0].Name

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// %s: $0-%d\n", l.Expr, l.FrameBytes)
	for _, p := range slices {
		base := strconv.Itoa(p.Slice.Base.Disp)
		fmt.Fprintf(&buf, "\n// %s %s, element size %d\n", p.Name, p.Type, p.Slice.ElemSize)
		fmt.Fprintf(&buf, "//\t%s %s %s\n", p.Slice.Base.Asm(), p.Slice.Len.Asm(), p.Slice.Cap.Asm())
		fmt.Fprintf(&buf, "%s(%s, %s, %s)\n", OpAddr.Macro(), frame, base, reg)
		fmt.Fprintf(&buf, "%s(%s, %s, %s)\n", OpLen.Macro(), frame, base, reg)
		fmt.Fprintf(&buf, "%s(%s, %s, $%d, %s)\n", OpSize.Macro(), frame, base, p.Slice.ElemSize, reg)
	}
	if l.Result != nil {
		fmt.Fprintf(&buf, "\n// result\n//\t%s\n", l.Result.Asm())
	}
	return buf.Bytes(), nil
}

func format(src []byte) ([]byte, error) {
	out, err := asmfmt.Format(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "asmfmt")
	}
	return out, nil
}
