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
	"maps"
	"math/bits"

	"github.com/go-faster/errors"
)

// Machine executes the instruction forms the slice macros expand to against
// a Frame. Registers never written read as zero.
type Machine struct {
	Target Target
	Frame  *Frame
	Regs   map[string]uint64
}

// NewMachine returns a machine with an empty register file.
func NewMachine(t Target, f *Frame) *Machine {
	return &Machine{Target: t, Frame: f, Regs: make(map[string]uint64)}
}

// Snapshot returns a copy of the register file.
func (m *Machine) Snapshot() map[string]uint64 {
	return maps.Clone(m.Regs)
}

// Exec runs insts in order and stops at the first failing instruction.
func (m *Machine) Exec(insts ...Inst) error {
	for _, inst := range insts {
		if err := m.step(inst); err != nil {
			return errors.Wrapf(err, "exec %q", inst.String())
		}
	}
	return nil
}

// Run parses and executes assembler lines, typically the output of
// MacroSet.Expand.
func (m *Machine) Run(lines ...string) error {
	insts, err := ParseInsts(lines)
	if err != nil {
		return err
	}
	return m.Exec(insts...)
}

func (m *Machine) value(o Operand) (uint64, error) {
	switch o.Kind {
	case KindReg:
		return m.Regs[o.Reg], nil
	case KindImm:
		return o.Imm, nil
	case KindFrame:
		return m.Frame.Quad(o.Disp)
	default:
		return 0, errors.Wrapf(ErrUnsupported, "operand kind %d", o.Kind)
	}
}

func (m *Machine) step(inst Inst) error {
	switch inst.Op {
	case m.Target.Load:
		if len(inst.Args) != 2 || inst.Args[1].Kind != KindReg {
			return errors.Wrap(ErrUnsupported, "move must target a register")
		}
		v, err := m.value(inst.Args[0])
		if err != nil {
			return err
		}
		m.Regs[inst.Args[1].Reg] = v
		return nil

	case m.Target.Mul:
		if m.Target.Accumulator != "" {
			// One-operand form: DX:AX = AX * src.
			if len(inst.Args) != 1 || inst.Args[0].Kind == KindImm {
				return errors.Wrap(ErrUnsupported, "one-operand multiply needs a register or memory source")
			}
			v, err := m.value(inst.Args[0])
			if err != nil {
				return err
			}
			hi, lo := bits.Mul64(m.Regs[m.Target.Accumulator], v)
			m.Regs[m.Target.Accumulator] = lo
			m.Regs[m.Target.High] = hi
			return nil
		}
		// Three-operand form: dst = a * b, low 64 bits.
		if len(inst.Args) != 3 {
			return errors.Wrap(ErrUnsupported, "multiply needs three register operands")
		}
		for _, a := range inst.Args {
			if a.Kind != KindReg {
				return errors.Wrap(ErrUnsupported, "multiply needs three register operands")
			}
		}
		m.Regs[inst.Args[2].Reg] = m.Regs[inst.Args[0].Reg] * m.Regs[inst.Args[1].Reg]
		return nil

	default:
		return errors.Wrapf(ErrUnsupported, "%s mnemonic %s", m.Target.Name, inst.Op)
	}
}
