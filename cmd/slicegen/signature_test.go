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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-slicearg/slicearg"
)

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("func(a, b []complex64, n int) int")
	require.NoError(t, err)

	assert.Equal(t, 64, l.FrameBytes)
	require.Len(t, l.Params, 3)
	require.NotNil(t, l.Result)
	assert.Equal(t, "ret+56(FP)", l.Result.Asm())

	slices := l.SliceParams()
	require.Len(t, slices, 2)
	for i, p := range slices {
		base := i * slicearg.DescriptorSize
		assert.Equal(t, base, p.Slice.Base.Disp, p.Name)
		assert.Equal(t, base+slicearg.LenOffset, p.Slice.Len.Disp, p.Name)
		assert.Equal(t, base+slicearg.CapOffset, p.Slice.Cap.Disp, p.Name)
		assert.EqualValues(t, 8, p.Slice.ElemSize, p.Name)
	}
	assert.Equal(t, "b_len+32(FP)", slices[1].Slice.Len.Asm())

	n, ok := l.Lookup("n")
	require.True(t, ok)
	assert.True(t, n.Basic)
	assert.Nil(t, n.Slice)
	assert.Equal(t, "n+48(FP)", n.Slot.Asm())
}

func TestParseLayoutElemSizes(t *testing.T) {
	for _, tt := range []struct {
		sig  string
		size int64
	}{
		{"func(s []byte)", 1},
		{"func(s []int16)", 2},
		{"func(s []float32)", 4},
		{"func(s []uint64)", 8},
		{"func(s []complex128)", 16},
		{"func(s [][]byte)", slicearg.DescriptorSize},
	} {
		t.Run(tt.sig, func(t *testing.T) {
			l, err := ParseLayout(tt.sig)
			require.NoError(t, err)
			require.Len(t, l.SliceParams(), 1)
			assert.Equal(t, tt.size, l.SliceParams()[0].Slice.ElemSize)
			assert.Nil(t, l.Result)
		})
	}
}

func TestParseLayoutNoResultSlot(t *testing.T) {
	for _, sig := range []string{
		"func(s []byte) (int, int)",
		"func(s []byte) int32",
		"func(s []byte) []byte",
	} {
		l, err := ParseLayout(sig)
		require.NoError(t, err, sig)
		assert.Nil(t, l.Result, sig)
	}
}

func TestParseLayoutErrors(t *testing.T) {
	for _, sig := range []string{
		"",
		"int",
		"func(",
		"func([]byte)",
		"func(_ []byte)",
	} {
		_, err := ParseLayout(sig)
		assert.Error(t, err, sig)
	}
}
