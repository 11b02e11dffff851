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

// Package main prints which slice accessor backend this machine runs, the
// slice layout the headers assume, and the CPU features kernels built on
// them usually dispatch on.
package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-slicearg/slicearg"
	"github.com/ajroetker/go-slicearg/slicearg/asm"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("Accessor backend: %s\n", asm.Backend())
	fmt.Printf("%s: %q\n", asm.NoAsmEnvVar, os.Getenv(asm.NoAsmEnvVar))
	if t, err := slicearg.GetTarget(runtime.GOARCH); err == nil {
		fmt.Printf("Header: %s (clobbers %v)\n", t.HeaderName(), t.Clobbers)
	}
	fmt.Println()

	fmt.Println("=== slice argument layout ===")
	fmt.Printf("  addr: +%d\n", slicearg.AddrOffset)
	fmt.Printf("  len:  +%d\n", slicearg.LenOffset)
	fmt.Printf("  cap:  +%d (not read)\n", slicearg.CapOffset)
	fmt.Printf("  size: %d bytes\n", slicearg.DescriptorSize)
	fmt.Println()

	if !selfCheck() {
		fmt.Println("Self check: FAILED")
		os.Exit(1)
	}
	fmt.Println("Self check: ok")
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}
}

// selfCheck compares the probes with the Go view of the same slices.
func selfCheck() bool {
	a := make([]complex64, 3, 4)
	b := make([]complex64, 11)
	ok := asm.SliceLen(a) == len(a) &&
		asm.SliceSize(a) == int(slicearg.Of(a).ByteSize(8)) &&
		asm.SliceLenSecond(a, b) == len(b) &&
		asm.SliceSizeSecond(a, b) == int(slicearg.Of(b).ByteSize(8)) &&
		asm.SliceSizeBy(make([]byte, 7), 3) == 21
	return ok
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:   %v\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasASIMDHP: %v\n", cpu.ARM64.HasASIMDHP)
	fmt.Printf("  HasSVE:     %v\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:    %v\n", cpu.ARM64.HasSVE2)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasSSE41:    %v\n", cpu.X86.HasSSE41)
	fmt.Printf("  HasAVX2:     %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasFMA:      %v\n", cpu.X86.HasFMA)
	fmt.Printf("  HasAVX512F:  %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX512BW: %v\n", cpu.X86.HasAVX512BW)
}
