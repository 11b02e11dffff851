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
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/go-faster/errors"
)

var headerTemplate = template.Must(template.New("header").Parse(`// Code generated by slicegen header --arch {{.Arch}}. DO NOT EDIT.

// Slice argument accessors for {{.Name}} Go assembly.
//
// A slice argument occupies three quadwords of the argument frame:
//
//	NAME+({{.AddrOffset}}+OFFSET)(FP)   base address
//	NAME+({{.LenOffset}}+OFFSET)(FP)   length
//	NAME+({{.CapOffset}}+OFFSET)(FP)  capacity, never read here
//
// OFFSET is the byte distance from NAME to the slice, 0 when NAME is the
// slice itself. The assembler measures NAME+OFFSET(FP) from the start of
// the frame, so NAME should be the first argument. Nothing checks that a
// slice lives there: a wrong NAME or OFFSET silently loads whatever
// quadword occupies that slot.

// slice_addr moves the base address of the slice into REGISTER.
// For a slice 8 bytes into the frame:
//
//	slice_addr(buf, 8, {{.Example}})
#define slice_addr(NAME, OFFSET, REGISTER) \
	{{.Load}} NAME+OFFSET(FP), REGISTER

// slice_len moves the element count of the slice into REGISTER.
//
//	slice_len(buf, 8, {{.Example}})
#define slice_len(NAME, OFFSET, REGISTER) \
	{{.Load}} NAME+({{.LenOffset}}+OFFSET)(FP), REGISTER

// slice_size moves len*ELEMENT_SIZE into REGISTER, wrapping modulo 2^64.
// ELEMENT_SIZE is an immediate, a register or a frame slot. Clobbers {{.ClobberList}};
{{- if .Accumulator}}
// REGISTER must not be one of them and ELEMENT_SIZE must not be {{.Accumulator}}.
//
//	slice_size(buf, 8, $8, {{.Example}})
#define slice_size(NAME, OFFSET, ELEMENT_SIZE, REGISTER) \
	slice_len(NAME, OFFSET, {{.Accumulator}}) \
	{{.Load}} ELEMENT_SIZE, REGISTER \
	{{.Mul}} REGISTER \
	{{.Load}} {{.Accumulator}}, REGISTER
{{- else}}
// REGISTER must not be one of them and ELEMENT_SIZE must not be REGISTER.
//
//	slice_size(buf, 8, $8, {{.Example}})
#define slice_size(NAME, OFFSET, ELEMENT_SIZE, REGISTER) \
	slice_len(NAME, OFFSET, REGISTER) \
	{{.Load}} ELEMENT_SIZE, {{.Scratch}} \
	{{.Mul}} {{.Scratch}}, REGISTER, REGISTER
{{- end}}
`))

type headerData struct {
	Target
	AddrOffset  int
	LenOffset   int
	CapOffset   int
	ClobberList string
	Example     string
}

// WriteHeader writes the slice accessor header for t.
func WriteHeader(w io.Writer, t Target) error {
	data := headerData{
		Target:      t,
		AddrOffset:  AddrOffset,
		LenOffset:   LenOffset,
		CapOffset:   CapOffset,
		ClobberList: strings.Join(t.Clobbers, " and "),
		Example:     t.Registers[1],
	}
	if err := headerTemplate.Execute(w, data); err != nil {
		return errors.Wrapf(err, "render %s", t.HeaderName())
	}
	return nil
}

// Header returns the slice accessor header for t.
func Header(t Target) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
