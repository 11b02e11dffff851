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
)

// OperandKind distinguishes the operand forms used by the slice macros.
type OperandKind uint8

const (
	KindReg   OperandKind = iota // AX, R3
	KindImm                      // $8
	KindFrame                    // name+off(FP)
)

// Operand is a register, an immediate, or a slot in the argument frame.
type Operand struct {
	Kind OperandKind
	Reg  string // KindReg
	Imm  uint64 // KindImm
	Name string // KindFrame: symbol before the displacement
	Disp int64  // KindFrame: byte offset from the frame pointer
}

// Reg returns a register operand.
func Reg(name string) Operand { return Operand{Kind: KindReg, Reg: name} }

// Imm returns an immediate operand.
func Imm(v uint64) Operand { return Operand{Kind: KindImm, Imm: v} }

// FrameSlot returns the operand name+disp(FP).
func FrameSlot(name string, disp int64) Operand {
	return Operand{Kind: KindFrame, Name: name, Disp: disp}
}

// Offset returns o moved by delta bytes. Only frame slots move.
func (o Operand) Offset(delta int64) Operand {
	if o.Kind == KindFrame {
		o.Disp += delta
	}
	return o
}

func (o Operand) String() string {
	switch o.Kind {
	case KindReg:
		return o.Reg
	case KindImm:
		return "$" + strconv.FormatUint(o.Imm, 10)
	case KindFrame:
		var b strings.Builder
		b.WriteString(o.Name)
		if o.Disp >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.FormatInt(o.Disp, 10))
		b.WriteString("(FP)")
		return b.String()
	default:
		return "?"
	}
}

// Inst is one assembler instruction in Go operand order: sources first,
// destination last.
type Inst struct {
	Op   string
	Args []Operand
}

func (i Inst) String() string {
	if len(i.Args) == 0 {
		return i.Op
	}
	args := make([]string, len(i.Args))
	for n, a := range i.Args {
		args[n] = a.String()
	}
	return i.Op + " " + strings.Join(args, ", ")
}

// Lines renders a sequence of instructions one per line.
func Lines(insts []Inst) []string {
	out := make([]string, len(insts))
	for i, inst := range insts {
		out[i] = inst.String()
	}
	return out
}
