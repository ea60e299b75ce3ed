// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "unsafe"

// FixedBuffer places values into a caller-supplied byte buffer. It is the
// cheap first link of a fallback chain: a reservation that does not fit —
// or a payload that contains Go pointers, which a raw byte buffer cannot
// legally host — reports [ErrOutOfCapacity] and leaves the constructor
// untouched for a retry elsewhere.
//
// The buffer's backing array does not move while referenced, so
// FixedBuffer is a [PinProvider].
type FixedBuffer struct {
	buf []byte
}

// NewFixedBuffer wraps buf. The provider is the exclusive legitimate
// accessor of buf's contents for as long as values constructed in it live.
func NewFixedBuffer(buf []byte) *FixedBuffer {
	return &FixedBuffer{buf: buf}
}

// NewFixedSize allocates a fresh buffer of n bytes and wraps it.
func NewFixedSize(n int) *FixedBuffer {
	return &FixedBuffer{buf: make([]byte, n)}
}

// Cap returns the capacity of the underlying buffer in bytes.
func (b *FixedBuffer) Cap() int { return len(b.buf) }

// Reserve implements [Provider].
func (b *FixedBuffer) Reserve(layout Layout) (Slot, error) {
	if layout.zeroSized() {
		return danglingSlot(layout), nil
	}
	if !layout.noscan || len(b.buf) == 0 {
		return Slot{}, ErrOutOfCapacity
	}
	base := unsafe.Pointer(&b.buf[0])
	off := alignOffset(uintptr(base), layout.align)
	avail := uintptr(len(b.buf))
	if off > avail || layout.size > avail-off {
		return Slot{}, ErrOutOfCapacity
	}
	return Slot{ptr: unsafe.Add(base, off)}, nil
}

// Discard implements [Provider]. The bytes stay borrowed from the caller;
// nothing to account.
func (b *FixedBuffer) Discard(Slot, Layout) {}

// Pinned implements [PinProvider].
func (b *FixedBuffer) Pinned() {}

// GrowBuffer places values into a growable byte buffer. Reservation never
// fails: when the current backing store cannot fit the layout, the buffer
// grows by at least size+align bytes — enough to guarantee room after
// realignment — and the offset is recomputed until it fits. Payloads that
// contain Go pointers are delegated to a typed heap allocation, which
// keeps the provider infallible without hiding pointers from the
// collector.
//
// Growing reallocates the backing store, so addresses handed out by
// earlier reservations are not stable across reservations: GrowBuffer is
// deliberately not a [PinProvider].
type GrowBuffer struct {
	buf []byte
}

// NewGrowBuffer returns an empty growable buffer.
func NewGrowBuffer() *GrowBuffer { return &GrowBuffer{} }

// NewGrowBufferCap returns a growable buffer with n bytes preallocated.
func NewGrowBufferCap(n int) *GrowBuffer {
	return &GrowBuffer{buf: make([]byte, n)}
}

// Cap returns the current capacity of the backing store in bytes.
func (b *GrowBuffer) Cap() int { return len(b.buf) }

// Reserve implements [Provider]. The returned error is always nil; the
// provider is statically infallible.
func (b *GrowBuffer) Reserve(layout Layout) (Slot, error) {
	if layout.zeroSized() {
		return danglingSlot(layout), nil
	}
	if !layout.noscan {
		return heapReserve(layout), nil
	}
	for {
		if len(b.buf) > 0 {
			base := unsafe.Pointer(&b.buf[0])
			off := alignOffset(uintptr(base), layout.align)
			if off+layout.size <= uintptr(len(b.buf)) {
				return Slot{ptr: unsafe.Add(base, off)}, nil
			}
		}
		grown := make([]byte, len(b.buf)+int(layout.size+layout.align))
		copy(grown, b.buf)
		b.buf = grown
	}
}

// Discard implements [Provider].
func (b *GrowBuffer) Discard(Slot, Layout) {}
