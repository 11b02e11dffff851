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

import "unsafe"

// Layout of a slice triple relative to its base offset in the frame.
const (
	QuadwordSize = 8

	AddrOffset = 0
	LenOffset  = AddrOffset + QuadwordSize
	CapOffset  = LenOffset + QuadwordSize

	// DescriptorSize is the number of frame bytes one slice argument occupies.
	DescriptorSize = CapOffset + QuadwordSize
)

// Descriptor mirrors the header of a Go slice: base address, element count
// and capacity, three consecutive quadwords with no padding.
type Descriptor struct {
	Addr unsafe.Pointer
	Len  int
	Cap  int
}

// Each line below fails to compile if the Go layout of Descriptor (and thus
// of a slice) drifts from the offsets the assembly headers hard-code.
var (
	_ [0]struct{} = [unsafe.Offsetof(Descriptor{}.Addr) - AddrOffset]struct{}{}
	_ [0]struct{} = [unsafe.Offsetof(Descriptor{}.Len) - LenOffset]struct{}{}
	_ [0]struct{} = [unsafe.Offsetof(Descriptor{}.Cap) - CapOffset]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(Descriptor{}) - DescriptorSize]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof([]byte(nil)) - DescriptorSize]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(uintptr(0)) - QuadwordSize]struct{}{}
)

// Of returns the descriptor of s as the callee of an assembly function
// taking s would see it in its frame.
func Of[T any](s []T) Descriptor {
	return *(*Descriptor)(unsafe.Pointer(&s))
}

// ByteSize returns the byte span of the slice's backing storage for elements
// of elem bytes. The product wraps modulo 2^64, like MULQ.
func (d Descriptor) ByteSize(elem uint64) uint64 {
	return ByteSize(uint64(d.Len), elem)
}

// Bytes reinterprets d as a byte slice. The result is only meaningful for
// handing to assembly; it must not be indexed unless d describes real memory.
func (d Descriptor) Bytes() []byte {
	return *(*[]byte)(unsafe.Pointer(&d))
}

// ByteSize multiplies length by elem with unsigned 64-bit wraparound.
func ByteSize(length, elem uint64) uint64 {
	return length * elem
}
