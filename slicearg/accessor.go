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

import "github.com/go-faster/errors"

// LoadAddress returns the expansion of slice_addr(name, offset, dst): one
// quadword load from name+offset(FP).
func LoadAddress(t Target, name string, offset int64, dst string) ([]Inst, error) {
	if err := t.checkDest(dst); err != nil {
		return nil, err
	}
	return []Inst{t.load(FrameSlot(name, offset+AddrOffset), dst)}, nil
}

// LoadLength returns the expansion of slice_len(name, offset, dst): one
// quadword load from name+(8+offset)(FP).
func LoadLength(t Target, name string, offset int64, dst string) ([]Inst, error) {
	if err := t.checkDest(dst); err != nil {
		return nil, err
	}
	return []Inst{t.load(FrameSlot(name, offset+LenOffset), dst)}, nil
}

// LoadByteSize returns the expansion of slice_size(name, offset, elem, dst),
// leaving len*elem mod 2^64 in dst. elem is an immediate, a register or a
// frame slot. Every register in t.Clobbers is overwritten.
func LoadByteSize(t Target, name string, offset int64, elem Operand, dst string) ([]Inst, error) {
	if err := t.checkDest(dst); err != nil {
		return nil, err
	}
	if t.Clobbered(dst) {
		return nil, errors.Wrapf(ErrClobbered, "%s destination %s", t.Name, dst)
	}
	if elem.Kind == KindReg && !t.IsRegister(elem.Reg) {
		return nil, errors.Wrapf(ErrUnsupported, "%s element size register %s", t.Name, elem.Reg)
	}
	length := FrameSlot(name, offset+LenOffset)

	if t.Accumulator != "" {
		// The length is read into the accumulator first, so an element
		// size held there is gone before it is used.
		if elem.Kind == KindReg && elem.Reg == t.Accumulator {
			return nil, errors.Wrapf(ErrClobbered, "%s element size %s", t.Name, elem.Reg)
		}
		return []Inst{
			t.load(length, t.Accumulator),
			t.load(elem, dst),
			{Op: t.Mul, Args: []Operand{Reg(dst)}},
			t.load(Reg(t.Accumulator), dst),
		}, nil
	}

	// The length lands in dst first.
	if elem.Kind == KindReg && elem.Reg == dst {
		return nil, errors.Wrapf(ErrClobbered, "%s element size %s is the destination", t.Name, elem.Reg)
	}
	return []Inst{
		t.load(length, dst),
		t.load(elem, t.Scratch),
		{Op: t.Mul, Args: []Operand{Reg(t.Scratch), Reg(dst), Reg(dst)}},
	}, nil
}

func (t Target) load(src Operand, dst string) Inst {
	return Inst{Op: t.Load, Args: []Operand{src, Reg(dst)}}
}

func (t Target) checkDest(dst string) error {
	if !t.IsRegister(dst) {
		return errors.Wrapf(ErrUnsupported, "%s register %q", t.Name, dst)
	}
	return nil
}
