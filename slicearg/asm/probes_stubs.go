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

//go:build !(amd64 || arm64) || noasm

package asm

// Stub implementations for builds without the assembly.
// These should never be called - useAsm is always false here.

const hasAsm = false

func sliceAddrAsm(s []complex64) uintptr          { panic("slicearg assembly not available") }
func sliceLenAsm(s []complex64) int               { panic("slicearg assembly not available") }
func sliceSizeAsm(s []complex64) int              { panic("slicearg assembly not available") }
func sliceAddrSecondAsm(a, b []complex64) uintptr { panic("slicearg assembly not available") }
func sliceLenSecondAsm(a, b []complex64) int      { panic("slicearg assembly not available") }
func sliceSizeSecondAsm(a, b []complex64) int     { panic("slicearg assembly not available") }
func sliceSizeByAsm(s []byte, elem uint64) uint64 { panic("slicearg assembly not available") }
