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

// Package slicearg describes how slice arguments are laid out in a Go ABI0
// argument frame and how hand-written assembly reads them.
//
// The assembly side lives in the slicearg/asm package as a pair of headers
// (slicearg_amd64.h, slicearg_arm64.h) exposing three macros:
//
//	slice_addr(NAME, OFFSET, REGISTER)
//	slice_len(NAME, OFFSET, REGISTER)
//	slice_size(NAME, OFFSET, ELEMENT_SIZE, REGISTER)
//
// NAME is the argument symbol as it appears in NAME+off(FP), OFFSET is the
// byte distance from that argument to the start of the slice, and REGISTER
// receives the result. slice_size multiplies the length by ELEMENT_SIZE (an
// immediate like $8, a register, or a frame slot) with unsigned 64-bit
// wraparound.
//
// This package holds the same contract in Go: Descriptor pins the layout at
// compile time, LoadAddress, LoadLength and LoadByteSize build the
// instruction sequences each macro expands to, Header renders the header
// text, and Frame, Machine and MacroSet let tests run both the generated
// sequences and the checked-in headers without executing any assembly.
//
// # Layout hazard
//
// The macros cannot see the Go declaration of the function they are used in.
// If NAME or OFFSET does not point at a slice, the emitted load silently reads
// whatever quadword lives there. Prefer "go vet" clean, fully expanded
// operands (see cmd/slicegen expand) when in doubt.
package slicearg
