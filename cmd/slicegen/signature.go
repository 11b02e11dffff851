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
	"go/token"
	"go/types"

	"github.com/go-faster/errors"
	"github.com/mmcloughlin/avo/gotypes"
	"github.com/mmcloughlin/avo/operand"
	"github.com/samber/lo"

	"github.com/ajroetker/go-slicearg/slicearg"
)

// Param is one parameter of a parsed signature and where it lives in the
// argument frame.
type Param struct {
	Name  string
	Index int
	Type  types.Type
	Size  int64

	// Slot is the frame operand of a basic parameter, or the base of a
	// slice. Other composite parameters have none.
	Slot  operand.Mem
	Basic bool

	// Slice is set for slice parameters.
	Slice *SliceSlots
}

// SliceSlots are the frame operands of a slice parameter, named the way
// go vet expects (p_base, p_len, p_cap).
type SliceSlots struct {
	Base     operand.Mem
	Len      operand.Mem
	Cap      operand.Mem
	ElemSize int64
}

// Layout is the ABI0 frame layout of a Go function signature.
type Layout struct {
	Expr      string
	Signature *gotypes.Signature
	Params    []Param

	// Result is the first result slot when the signature has exactly one
	// quadword result.
	Result *operand.Mem

	// FrameBytes is the size of arguments plus results.
	FrameBytes int
}

// SliceParams returns the slice parameters in declaration order.
func (l *Layout) SliceParams() []Param {
	return lo.Filter(l.Params, func(p Param, _ int) bool { return p.Slice != nil })
}

// Lookup returns the parameter called name.
func (l *Layout) Lookup(name string) (Param, bool) {
	return lo.Find(l.Params, func(p Param) bool { return p.Name == name })
}

// ParseLayout computes the frame layout of expr, a function type such as
// "func(a, b []complex64) int". Every slice parameter is checked against the
// offsets the slice headers hard-code.
func ParseLayout(expr string) (*Layout, error) {
	tv, err := types.Eval(token.NewFileSet(), nil, token.NoPos, expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse signature %q", expr)
	}
	sig, ok := tv.Type.(*types.Signature)
	if !ok {
		return nil, errors.Errorf("%q is not a function type", expr)
	}
	s := gotypes.NewSignature(nil, sig)

	l := &Layout{
		Expr:       expr,
		Signature:  s,
		FrameBytes: s.Bytes(),
	}
	sizes := types.SizesFor("gc", "amd64")

	for i := 0; i < sig.Params().Len(); i++ {
		v := sig.Params().At(i)
		if v.Name() == "" || v.Name() == "_" {
			return nil, errors.Errorf("parameter %d of %q must be named", i, expr)
		}
		p := Param{Name: v.Name(), Index: i, Type: v.Type(), Size: sizes.Sizeof(v.Type())}
		c := s.Params().Lookup(v.Name())

		if st, isSlice := v.Type().Underlying().(*types.Slice); isSlice {
			slots, err := sliceSlots(c)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %s", v.Name())
			}
			slots.ElemSize = sizes.Sizeof(st.Elem())
			p.Slice = slots
			p.Slot = slots.Base
		} else if b, err := c.Resolve(); err == nil {
			p.Slot = b.Addr
			p.Basic = true
		}
		l.Params = append(l.Params, p)
	}

	if sig.Results().Len() == 1 {
		if b, err := s.Results().At(0).Resolve(); err == nil && sizes.Sizeof(b.Type) == slicearg.QuadwordSize {
			addr := b.Addr
			l.Result = &addr
		}
	}
	return l, nil
}

func sliceSlots(c gotypes.Component) (*SliceSlots, error) {
	base, err := c.Base().Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "base")
	}
	length, err := c.Len().Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "len")
	}
	capacity, err := c.Cap().Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "cap")
	}
	slots := &SliceSlots{Base: base.Addr, Len: length.Addr, Cap: capacity.Addr}

	// The headers assume the triple is three adjacent quadwords.
	if got := slots.Len.Disp - slots.Base.Disp; got != slicearg.LenOffset {
		return nil, errors.Errorf("len at +%d from base, headers assume +%d", got, slicearg.LenOffset)
	}
	if got := slots.Cap.Disp - slots.Base.Disp; got != slicearg.CapOffset {
		return nil, errors.Errorf("cap at +%d from base, headers assume +%d", got, slicearg.CapOffset)
	}
	return slots, nil
}
