// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "unsafe"

// Heap places each value in its own runtime allocation. Typed layouts
// allocate through the runtime type descriptor, so the collector scans
// the value correctly whatever it contains; raw layouts get an aligned
// byte region. Zero-size layouts allocate nothing.
//
// Heap is statically infallible and, since the runtime does not move heap
// objects, a [PinProvider]. It is the guaranteed last link of a fallback
// chain.
type Heap struct{}

// Reserve implements [Provider]. The returned error is always nil.
func (Heap) Reserve(layout Layout) (Slot, error) {
	return heapReserve(layout), nil
}

// Discard implements [Provider]. The allocation is reclaimed by the
// collector once the handle drops its reference.
func (Heap) Discard(Slot, Layout) {}

// Pinned implements [PinProvider].
func (Heap) Pinned() {}

// heapReserve carves a slot out of a fresh runtime allocation. The slot's
// pointer is the only reference; holders must retain the slot for as long
// as the value lives.
func heapReserve(layout Layout) Slot {
	if layout.zeroSized() {
		return danglingSlot(layout)
	}
	if layout.typ != nil {
		return Slot{ptr: layout.typ.UnsafeNew()}
	}
	buf := make([]byte, layout.size+layout.align-1)
	base := unsafe.Pointer(&buf[0])
	off := alignOffset(uintptr(base), layout.align)
	return Slot{ptr: unsafe.Add(base, off)}
}
