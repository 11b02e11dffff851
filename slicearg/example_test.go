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

package slicearg_test

import (
	"fmt"
	"strings"

	"github.com/ajroetker/go-slicearg/slicearg"
)

func ExampleLoadByteSize() {
	insts, err := slicearg.LoadByteSize(slicearg.AMD64Target(), "b", 24, slicearg.Imm(4), "BX")
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Join(slicearg.Lines(insts), "\n"))
	// Output:
	// MOVQ b+32(FP), AX
	// MOVQ $4, BX
	// MULQ BX
	// MOVQ AX, BX
}

func ExampleMacroSet_Expand() {
	header, err := slicearg.Header(slicearg.ARM64Target())
	if err != nil {
		panic(err)
	}
	set, err := slicearg.ParseHeader(strings.NewReader(string(header)))
	if err != nil {
		panic(err)
	}
	lines, err := set.Expand("slice_size", "xs", "0", "$2", "R3")
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Join(lines, "\n"))
	// Output:
	// MOVD xs+(8+0)(FP), R3
	// MOVD $2, R16
	// MUL R16, R3, R3
}

func ExampleMachine() {
	f := slicearg.NewFrame(2 * slicearg.DescriptorSize)
	_ = f.PutDescriptor(slicearg.DescriptorSize, slicearg.Of(make([]int32, 5)))

	t := slicearg.AMD64Target()
	insts, _ := slicearg.LoadByteSize(t, "a", 24, slicearg.Imm(4), "CX")

	m := slicearg.NewMachine(t, f)
	if err := m.Exec(insts...); err != nil {
		panic(err)
	}
	fmt.Println(m.Regs["CX"])
	// Output: 20
}
