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

package asm

import (
	"os"
	"runtime"
	"strconv"

	"github.com/ajroetker/go-slicearg/slicearg"
)

// NoAsmEnvVar disables the assembly implementations when set to a true value.
const NoAsmEnvVar = "SLICEARG_NO_ASM"

var useAsm = hasAsm && !NoAsmEnv()

// NoAsmEnv reports whether NoAsmEnvVar asks for the Go fallbacks. Any
// non-empty value that does not parse as a boolean counts as true.
func NoAsmEnv() bool {
	v := os.Getenv(NoAsmEnvVar)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err != nil || b
}

// Backend returns the GOARCH whose assembly is in use, or "generic".
func Backend() string {
	if useAsm {
		return runtime.GOARCH
	}
	return "generic"
}

// complex64Size is the ELEMENT_SIZE the complex64 probes pass to slice_size.
const complex64Size = 8

// SliceAddr returns the base address of s as slice_addr(s, 0, REG) sees it.
func SliceAddr(s []complex64) uintptr {
	if useAsm {
		return sliceAddrAsm(s)
	}
	return uintptr(slicearg.Of(s).Addr)
}

// SliceLen returns len(s) as read by slice_len(s, 0, REG).
func SliceLen(s []complex64) int {
	if useAsm {
		return sliceLenAsm(s)
	}
	return slicearg.Of(s).Len
}

// SliceSize returns the byte size of s as computed by slice_size(s, 0, $8, REG).
func SliceSize(s []complex64) int {
	if useAsm {
		return sliceSizeAsm(s)
	}
	return int(slicearg.Of(s).ByteSize(complex64Size))
}

// SliceAddrSecond returns the base address of b, addressed as 24 bytes past a.
func SliceAddrSecond(a, b []complex64) uintptr {
	if useAsm {
		return sliceAddrSecondAsm(a, b)
	}
	return uintptr(slicearg.Of(b).Addr)
}

// SliceLenSecond returns len(b), addressed as 24 bytes past a.
func SliceLenSecond(a, b []complex64) int {
	if useAsm {
		return sliceLenSecondAsm(a, b)
	}
	return slicearg.Of(b).Len
}

// SliceSizeSecond returns the byte size of b, addressed as 24 bytes past a.
func SliceSizeSecond(a, b []complex64) int {
	if useAsm {
		return sliceSizeSecondAsm(a, b)
	}
	return int(slicearg.Of(b).ByteSize(complex64Size))
}

// SliceSizeBy returns len(s)*elem modulo 2^64, with the element size taken
// from a register.
func SliceSizeBy(s []byte, elem uint64) uint64 {
	if useAsm {
		return sliceSizeByAsm(s, elem)
	}
	return slicearg.Of(s).ByteSize(elem)
}
