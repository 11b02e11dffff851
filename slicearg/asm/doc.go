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

// Package asm ships the slice accessor headers for hand-written Go assembly
// and a set of small assembly functions built on them.
//
// Assembly in another package uses the headers by copying
// slicearg_$GOARCH.h next to its .s files (see "slicegen header") and
// including it:
//
//	#include "textflag.h"
//	#include "slicearg_amd64.h"
//
//	// func sum(xs []float32) float32
//	TEXT ·sum(SB), NOSPLIT, $0-28
//		slice_addr(xs, 0, SI)
//		slice_len(xs, 0, CX)
//		...
//
// The functions exported here report what the macros read out of their own
// frames. They exist to pin the header contract down on real hardware and
// fall back to Go on other architectures, with the noasm build tag, or when
// SLICEARG_NO_ASM is set.
package asm

//go:generate go run ../../cmd/slicegen header --arch amd64 -o slicearg_amd64.h
//go:generate go run ../../cmd/slicegen header --arch arm64 -o slicearg_arm64.h
