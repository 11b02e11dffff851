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

package asm_test

import (
	"bytes"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-slicearg/slicearg"
)

// These tests run the checked-in headers, not the Go model of them, so they
// hold on every GOARCH.

func loadMacros(t *testing.T, target slicearg.Target) *slicearg.MacroSet {
	t.Helper()
	data, err := os.ReadFile(target.HeaderName())
	require.NoError(t, err)
	set, err := slicearg.ParseHeader(bytes.NewReader(data))
	require.NoError(t, err)
	return set
}

// seededMachine returns a machine whose registers all hold distinct values,
// so any stray write shows up in a snapshot diff.
func seededMachine(target slicearg.Target, f *slicearg.Frame) *slicearg.Machine {
	m := slicearg.NewMachine(target, f)
	for i, r := range target.Registers {
		m.Regs[r] = 0x5eed0000 + uint64(i)
	}
	return m
}

// changed returns the registers whose value differs between two snapshots.
func changed(before, after map[string]uint64) []string {
	var out []string
	for r, v := range after {
		if before[r] != v {
			out = append(out, r)
		}
	}
	return out
}

func TestHeadersUpToDate(t *testing.T) {
	for _, target := range slicearg.Targets() {
		t.Run(target.Name, func(t *testing.T) {
			want, err := slicearg.Header(target)
			require.NoError(t, err)
			got, err := os.ReadFile(target.HeaderName())
			require.NoError(t, err)
			require.Equal(t, string(want), string(got), "stale header, run go generate")
		})
	}
}

func TestHeaderMacros(t *testing.T) {
	for _, target := range slicearg.Targets() {
		t.Run(target.Name, func(t *testing.T) {
			set := loadMacros(t, target)
			assert.Equal(t, []string{"slice_addr", "slice_len", "slice_size"}, set.Names())

			m, ok := set.Lookup("slice_size")
			require.True(t, ok)
			assert.Equal(t, []string{"NAME", "OFFSET", "ELEMENT_SIZE", "REGISTER"}, m.Params)
		})
	}
}

func TestHeaderLoads(t *testing.T) {
	const (
		addr     = 0xc000_1234_5000
		length   = 1000
		capacity = 4096
	)
	for _, target := range slicearg.Targets() {
		dst := target.Registers[1]
		set := loadMacros(t, target)

		for _, offset := range []int64{0, 8, 24, 1 << 12} {
			t.Run(target.Name+"/"+strconv.FormatInt(offset, 10), func(t *testing.T) {
				f := slicearg.NewFrame(int(offset) + slicearg.DescriptorSize)
				require.NoError(t, f.PutTriple(offset, addr, length, capacity))

				for _, tc := range []struct {
					macro string
					want  uint64
				}{
					{"slice_addr", addr},
					{"slice_len", length},
				} {
					lines, err := set.Expand(tc.macro, "buf", strconv.FormatInt(offset, 10), dst)
					require.NoError(t, err)
					require.Len(t, lines, 1, "%s must be a single load", tc.macro)

					m := seededMachine(target, f)
					before := m.Snapshot()
					require.NoError(t, m.Run(lines...))
					assert.Equal(t, tc.want, m.Regs[dst], tc.macro)
					assert.Equal(t, []string{dst}, changed(before, m.Snapshot()), tc.macro)
				}
			})
		}
	}
}

func TestHeaderByteSize(t *testing.T) {
	tests := []struct {
		name   string
		length uint64
		elem   uint64
		want   uint64
	}{
		{"empty", 0, 8, 0},
		{"five int32", 5, 4, 20},
		{"wraps", 1 << 32, 1 << 32, 0},
		{"single byte", 1, 1, 1},
		{"large", 3, 1<<63 + 1, 1<<63 + 3},
	}

	for _, target := range slicearg.Targets() {
		set := loadMacros(t, target)
		dst := target.Registers[1]
		elemReg := target.Registers[2]

		for _, tt := range tests {
			t.Run(target.Name+"/"+tt.name, func(t *testing.T) {
				f := slicearg.NewFrame(2*slicearg.DescriptorSize + slicearg.QuadwordSize)
				require.NoError(t, f.PutTriple(slicearg.DescriptorSize, 0xdead0000, tt.length, tt.length))
				require.NoError(t, f.PutQuad(2*slicearg.DescriptorSize, tt.elem))

				for _, elem := range []string{
					"$" + strconv.FormatUint(tt.elem, 10),
					elemReg,
					"elem+48(FP)",
				} {
					lines, err := set.Expand("slice_size", "a", "24", elem, dst)
					require.NoError(t, err)

					m := seededMachine(target, f)
					m.Regs[elemReg] = tt.elem
					before := m.Snapshot()
					require.NoError(t, m.Run(lines...))
					assert.Equal(t, tt.want, m.Regs[dst], "element size %s", elem)

					allowed := append([]string{dst}, target.Clobbers...)
					assert.Subset(t, allowed, changed(before, m.Snapshot()), "element size %s", elem)
				}
			})
		}
	}
}

func TestHeaderOffsetShift(t *testing.T) {
	for _, target := range slicearg.Targets() {
		set := loadMacros(t, target)
		dst := target.Registers[0]

		for _, macro := range []string{"slice_addr", "slice_len"} {
			for _, offset := range []int64{0, 8, 1 << 20, 1 << 40} {
				base, err := set.Expand(macro, "x", strconv.FormatInt(offset, 10), dst)
				require.NoError(t, err)
				shifted, err := set.Expand(macro, "x", strconv.FormatInt(offset+8, 10), dst)
				require.NoError(t, err)

				a, err := slicearg.ParseInsts(base)
				require.NoError(t, err)
				b, err := slicearg.ParseInsts(shifted)
				require.NoError(t, err)

				require.Len(t, a, 1)
				require.Len(t, b, 1)
				assert.Equal(t, int64(8), b[0].Args[0].Disp-a[0].Args[0].Disp,
					"%s %s offset %d", target.Name, macro, offset)
			}
		}
	}
}

func TestHeaderOrderIndependent(t *testing.T) {
	for _, target := range slicearg.Targets() {
		set := loadMacros(t, target)
		dst := target.Registers[1]

		first, err := set.Expand("slice_addr", "buf", "16", dst)
		require.NoError(t, err)
		_, err = set.Expand("slice_len", "buf", "16", dst)
		require.NoError(t, err)
		_, err = set.Expand("slice_size", "buf", "16", "$4", dst)
		require.NoError(t, err)
		again, err := set.Expand("slice_addr", "buf", "16", dst)
		require.NoError(t, err)

		assert.Equal(t, first, again, target.Name)
	}
}

func TestHeaderMatchesAccessors(t *testing.T) {
	for _, target := range slicearg.Targets() {
		set := loadMacros(t, target)
		dst := target.Registers[1]

		addr, err := slicearg.LoadAddress(target, "buf", 24, dst)
		require.NoError(t, err)
		length, err := slicearg.LoadLength(target, "buf", 24, dst)
		require.NoError(t, err)
		size, err := slicearg.LoadByteSize(target, "buf", 24, slicearg.Imm(8), dst)
		require.NoError(t, err)

		for _, tc := range []struct {
			macro string
			args  []string
			want  []slicearg.Inst
		}{
			{"slice_addr", []string{"buf", "24", dst}, addr},
			{"slice_len", []string{"buf", "24", dst}, length},
			{"slice_size", []string{"buf", "24", "$8", dst}, size},
		} {
			lines, err := set.Expand(tc.macro, tc.args...)
			require.NoError(t, err)
			got, err := slicearg.ParseInsts(lines)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "%s %s", target.Name, tc.macro)
		}
	}
}
