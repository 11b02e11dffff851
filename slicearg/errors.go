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

import "github.com/go-faster/errors"

var (
	// ErrUnsupported is returned for targets, registers, mnemonics or
	// operand forms the slice macros never produce.
	ErrUnsupported = errors.New("unsupported")

	// ErrClobbered is returned when a slice_size destination or element size
	// register would be overwritten by the expansion itself.
	ErrClobbered = errors.New("register clobbered by slice_size")

	// ErrOutOfFrame is returned when a load or store falls outside a Frame.
	ErrOutOfFrame = errors.New("access outside argument frame")

	// ErrUnknownMacro is returned when expanding a macro that is not defined.
	ErrUnknownMacro = errors.New("unknown macro")

	// ErrArity is returned when a macro is called with the wrong number of
	// arguments.
	ErrArity = errors.New("wrong number of macro arguments")

	// ErrSyntax is returned for malformed header or instruction text.
	ErrSyntax = errors.New("syntax error")
)
