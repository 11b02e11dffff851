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

//go:build (amd64 || arm64) && !noasm

package asm

const hasAsm = true

//go:noescape
func sliceAddrAsm(s []complex64) uintptr

//go:noescape
func sliceLenAsm(s []complex64) int

//go:noescape
func sliceSizeAsm(s []complex64) int

//go:noescape
func sliceAddrSecondAsm(a, b []complex64) uintptr

//go:noescape
func sliceLenSecondAsm(a, b []complex64) int

//go:noescape
func sliceSizeSecondAsm(a, b []complex64) int

//go:noescape
func sliceSizeByAsm(s []byte, elem uint64) uint64
