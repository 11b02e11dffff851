// Package probe holds slicegen output for go vet's asmdecl check.
package probe

func sliceAddrA(a, b []complex64) int

func sliceLenB(a, b []complex64) int

func sliceSizeB(a, b []complex64) int

func sizeBy(s []byte, elem uint64) uint64
