// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "unsafe"

// Slot is an opaque handle to a single block of uninitialized memory that
// satisfies some layout. A provider creates a slot for exactly one
// construction; writing through it unconditionally overwrites whatever
// bytes were at the address before.
type Slot struct {
	ptr unsafe.Pointer
}

// Raw returns the slot's raw address.
// The address satisfies the size and alignment of the layout the slot was
// reserved for, and is exclusive to this construction.
func (s Slot) Raw() unsafe.Pointer { return s.ptr }

// WriteSlot consumes the slot, filling it with v, and returns the typed
// pointer to the placed value. The layout of T must match the layout the
// slot was reserved for; the emplace path validates this after the
// construction returns.
func WriteSlot[T any](s Slot, v T) *T {
	p := (*T)(s.ptr)
	*p = v
	return p
}

// zeroArena backs dangling slots for zero-size layouts. Providers never
// touch their own storage for zero-size payloads; they return an aligned
// address into this arena instead. Sized [MaxAlign] so every alignment a
// layout can legally request finds an address inside it.
var zeroArena [MaxAlign]byte

func danglingSlot(l Layout) Slot {
	base := unsafe.Pointer(&zeroArena[0])
	off := alignOffset(uintptr(base), l.align)
	return Slot{ptr: unsafe.Add(base, off)}
}
