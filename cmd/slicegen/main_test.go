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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-slicearg/slicearg"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestHeaderCmd(t *testing.T) {
	for _, target := range slicearg.Targets() {
		t.Run(target.Name, func(t *testing.T) {
			want, err := slicearg.Header(target)
			require.NoError(t, err)

			out, err := run(t, "header", "--arch", target.Arch)
			require.NoError(t, err)
			assert.Equal(t, string(want), out)

			path := filepath.Join(t.TempDir(), target.HeaderName())
			out, err = run(t, "header", "--arch", target.Arch, "-v", "-o", path)
			require.NoError(t, err)
			assert.Empty(t, out)
			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestHeaderCmdMatchesCheckedIn(t *testing.T) {
	for _, target := range slicearg.Targets() {
		out, err := run(t, "header", "--arch", target.Arch)
		require.NoError(t, err)
		want, err := os.ReadFile(filepath.Join("..", "..", "slicearg", "asm", target.HeaderName()))
		require.NoError(t, err)
		assert.Equal(t, string(want), out, target.HeaderName())
	}
}

func TestLayoutCmd(t *testing.T) {
	out, err := run(t, "layout", "--arch", "arm64", "--sig", "func(a, b []complex64, n int) int")
	require.NoError(t, err)
	assert.Contains(t, out, "slice_size(a, 24, $8, R1)")
	assert.Contains(t, out, "b_base+24(FP) b_len+32(FP) b_cap+40(FP)")

	out, err = run(t, "layout", "--sig", "func(s []uint16)", "--reg", "SI")
	require.NoError(t, err)
	assert.Contains(t, out, "slice_size(s, 0, $2, SI)")
}

func TestExpandCmd(t *testing.T) {
	out, err := run(t, "expand",
		"--arch", "amd64",
		"--sig", pairSig,
		"--param", "b",
		"--op", "size",
		"--reg", "BX",
		"--probe",
	)
	require.NoError(t, err)
	lines := normalize(out)
	require.NotEmpty(t, lines)
	assert.Equal(t, "TEXT ·sliceSizeB(SB), NOSPLIT, $0-56", lines[1])

	out, err = run(t, "expand",
		"--arch", "arm64",
		"--sig", "func(s []byte, elem uint64) uint64",
		"--param", "s",
		"--op", "slice_size",
		"--elem", "elem",
		"--reg", "R0",
		"--func", "sizeBy",
	)
	require.NoError(t, err)
	assert.Contains(t, normalize(out), "MOVD elem+24(FP), R16")
}

func TestCmdErrors(t *testing.T) {
	for _, args := range [][]string{
		{"header", "--arch", "riscv64"},
		{"header", "extra"},
		{"layout"},
		{"layout", "--sig", "func(n int)"},
		{"expand", "--sig", pairSig, "--param", "a", "--op", "cap", "--reg", "BX"},
		{"expand", "--sig", pairSig, "--param", "a", "--op", "size", "--reg", "AX"},
		{"expand", "--sig", pairSig, "--param", "a", "--op", "len"},
	} {
		_, err := run(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

// syncBuffer counts Sync calls on the verbose log sink.
type syncBuffer struct {
	bytes.Buffer
	syncs int
}

func (b *syncBuffer) Sync() error {
	b.syncs++
	return nil
}

func TestVerboseLoggerSynced(t *testing.T) {
	sink := &syncBuffer{}
	a := newApp(func() (*zap.Logger, error) {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		return zap.New(zapcore.NewCore(enc, sink, zapcore.DebugLevel)), nil
	})

	var out bytes.Buffer
	cmd := a.command(&out)
	cmd.SetArgs([]string{"layout", "-v", "--sig", "func(s []uint16)"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, sink.String(), "Parsed signature")
	assert.Equal(t, 1, sink.syncs)
	assert.Contains(t, out.String(), "slice_len(s, 0, BX)")
}
