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
	"slices"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Target describes how one architecture's assembler spells the loads and the
// multiply the slice macros expand to.
type Target struct {
	Name string // "AMD64", "ARM64"
	Arch string // GOARCH: "amd64", "arm64"

	Load string // quadword move: "MOVQ", "MOVD"
	Mul  string // unsigned multiply: "MULQ", "MUL"

	// Accumulator receives the length in slice_size before the multiply.
	// Empty when the length is loaded straight into the destination.
	Accumulator string

	// High receives the upper half of a one-operand multiply.
	High string

	// Scratch holds the element size for three-operand multiplies.
	Scratch string

	// Clobbers lists every register slice_size may overwrite besides its
	// destination.
	Clobbers []string

	// Registers are the general purpose registers accepted as a destination.
	Registers []string
}

// AMD64Target returns the target for x86-64. slice_size goes through MULQ,
// which always multiplies AX and writes the 128-bit product to DX:AX.
func AMD64Target() Target {
	return Target{
		Name:        "AMD64",
		Arch:        "amd64",
		Load:        "MOVQ",
		Mul:         "MULQ",
		Accumulator: "AX",
		High:        "DX",
		Clobbers:    []string{"AX", "DX"},
		Registers: []string{
			"AX", "BX", "CX", "DX", "SI", "DI", "BP",
			"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
		},
	}
}

// ARM64Target returns the target for AArch64. MUL has no immediate form, so
// the element size is staged in R16 (IP0), which the Go toolchain treats as
// call-clobbered scratch.
func ARM64Target() Target {
	regs := make([]string, 0, 26)
	for i := 0; i <= 26; i++ {
		// R18 is the platform register.
		if i == 18 {
			continue
		}
		regs = append(regs, "R"+strconv.Itoa(i))
	}
	return Target{
		Name:      "ARM64",
		Arch:      "arm64",
		Load:      "MOVD",
		Mul:       "MUL",
		Scratch:   "R16",
		Clobbers:  []string{"R16"},
		Registers: regs,
	}
}

// Targets returns all supported targets in a stable order.
func Targets() []Target {
	return []Target{AMD64Target(), ARM64Target()}
}

// GetTarget returns the target for a GOARCH or target name, case-insensitive.
func GetTarget(name string) (Target, error) {
	for _, t := range Targets() {
		if strings.EqualFold(name, t.Arch) || strings.EqualFold(name, t.Name) {
			return t, nil
		}
	}
	return Target{}, errors.Wrapf(ErrUnsupported, "target %q", name)
}

// HeaderName is the file name hand-written assembly includes for t.
func (t Target) HeaderName() string {
	return "slicearg_" + t.Arch + ".h"
}

// IsRegister reports whether r names a destination register on t.
func (t Target) IsRegister(r string) bool {
	return slices.Contains(t.Registers, r)
}

// Clobbered reports whether slice_size may overwrite r.
func (t Target) Clobbered(r string) bool {
	return slices.Contains(t.Clobbers, r)
}
