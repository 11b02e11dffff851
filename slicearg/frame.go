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
	"encoding/binary"

	"github.com/go-faster/errors"
)

// Frame is a byte image of an ABI0 argument area, addressed from FP.
// Both supported targets are little-endian.
type Frame struct {
	buf []byte
}

// NewFrame returns a zeroed frame of size bytes.
func NewFrame(size int) *Frame {
	return &Frame{buf: make([]byte, size)}
}

// Size returns the frame size in bytes.
func (f *Frame) Size() int { return len(f.buf) }

func (f *Frame) slot(off int64) ([]byte, error) {
	if off < 0 || off > int64(len(f.buf))-QuadwordSize {
		return nil, errors.Wrapf(ErrOutOfFrame, "quadword at %d in %d byte frame", off, len(f.buf))
	}
	return f.buf[off : off+QuadwordSize], nil
}

// Quad reads the quadword at off.
func (f *Frame) Quad(off int64) (uint64, error) {
	b, err := f.slot(off)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// PutQuad writes v at off.
func (f *Frame) PutQuad(off int64, v uint64) error {
	b, err := f.slot(off)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

// PutTriple writes a slice triple with its address field at off.
func (f *Frame) PutTriple(off int64, addr, length, capacity uint64) error {
	if off < 0 || off > int64(len(f.buf))-DescriptorSize {
		return errors.Wrapf(ErrOutOfFrame, "slice at %d in %d byte frame", off, len(f.buf))
	}
	for i, v := range [...]uint64{addr, length, capacity} {
		binary.LittleEndian.PutUint64(f.buf[off+int64(i)*QuadwordSize:], v)
	}
	return nil
}

// PutDescriptor writes d at off the way the caller of an assembly function
// lays out a slice argument.
func (f *Frame) PutDescriptor(off int64, d Descriptor) error {
	return f.PutTriple(off, uint64(uintptr(d.Addr)), uint64(d.Len), uint64(d.Cap))
}
