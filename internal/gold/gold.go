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

// Package gold implements golden files.
package gold

import (
	"flag"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const defaultDir = "_golden"

// Update reports whether golden files update is requested.
//
// Call Init() in TestMain to propagate.
var Update bool

// Init should be called in TestMain.
func Init() {
	flag.BoolVar(&Update, "update", false, "update golden files")
}

// Path returns path to golden file.
func Path(elems ...string) string {
	return filepath.Join(
		append([]string{defaultDir}, elems...)...,
	)
}

// ReadFile reads golden file.
func ReadFile(t testing.TB, elems ...string) []byte {
	t.Helper()

	p := Path(elems...)
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("golden file %s: %+v", path.Join(elems...), err)
	}

	return data
}

// defaultName derives a file name from the test name when none is given.
func defaultName(t testing.TB, ext string, elems []string) []string {
	if len(elems) > 0 {
		return elems
	}
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return []string{name + ext}
}

func writeFile(t testing.TB, data []byte, elems ...string) {
	t.Helper()

	p := Path(elems...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755), "mkdir")
	require.NoError(t, os.WriteFile(p, data, 0o600), "write")
}

// Str checks text golden file.
func Str(t testing.TB, s string, elems ...string) {
	t.Helper()

	elems = defaultName(t, ".txt", elems)
	if Update {
		writeFile(t, []byte(s), elems...)
		return
	}

	require.Equal(t, string(ReadFile(t, elems...)), s, "golden file text mismatch")
}

// Bytes checks binary golden file.
func Bytes(t testing.TB, data []byte, elems ...string) {
	t.Helper()

	elems = defaultName(t, ".raw", elems)
	if Update {
		writeFile(t, data, elems...)
		return
	}

	require.Equal(t, ReadFile(t, elems...), data, "golden file binary mismatch")
}
