// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package envelope

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// hostLittleEndian reports whether the in-memory layout of numbers matches the wire.
var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// float32s returns the little-endian float32 elements of b. On little-endian hosts with a
// 4-byte aligned b the result aliases b. Misaligned data costs one bulk copy, big-endian
// hosts decode element-wise.
func float32s(b []byte) []float32 {
	n := len(b) / 4
	if n == 0 {
		return []float32{}
	}
	ptr := unsafe.Pointer(unsafe.SliceData(b))
	if hostLittleEndian {
		if uintptr(ptr)%unsafe.Alignof(float32(0)) == 0 {
			return unsafe.Slice((*float32)(ptr), n)
		}
		out := make([]float32, n)
		copy(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(out))), n*4), b)
		return out
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// int64s is float32s for 8-byte signed integers.
func int64s(b []byte) []int64 {
	n := len(b) / 8
	if n == 0 {
		return []int64{}
	}
	ptr := unsafe.Pointer(unsafe.SliceData(b))
	if hostLittleEndian {
		if uintptr(ptr)%unsafe.Alignof(int64(0)) == 0 {
			return unsafe.Slice((*int64)(ptr), n)
		}
		out := make([]int64, n)
		copy(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(out))), n*8), b)
		return out
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out
}
