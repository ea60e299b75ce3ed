// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package emplace

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// slabChunkSize is the mmap granularity of a [Slab].
const slabChunkSize = 1 << 18

// Slab is a bump allocator over anonymous mmap'd chunks, for emplace-heavy
// call sites that want placement off the Go heap entirely. Chunks are
// mapped on demand and never recycled per-value; Discard only maintains
// the live-reservation accounting, which makes the provider a convenient
// leak detector in tests.
//
// Only pointer-free payloads may live in a slab — mapped memory is
// invisible to the collector — so pointered layouts report
// [ErrOutOfCapacity], as do layouts larger than a chunk. Mapped chunks
// never move: Slab is a [PinProvider].
//
// Close unmaps every chunk. The caller must release all handles first.
type Slab struct {
	chunks [][]byte
	tail   []byte
	live   int
	bytes  uintptr
}

// NewSlab returns a slab with no chunks mapped yet.
func NewSlab() *Slab { return &Slab{} }

// Reserve implements [Provider].
func (s *Slab) Reserve(layout Layout) (Slot, error) {
	if layout.zeroSized() {
		return danglingSlot(layout), nil
	}
	if !layout.noscan || layout.size > slabChunkSize-layout.align {
		return Slot{}, ErrOutOfCapacity
	}
	for {
		if len(s.tail) > 0 {
			base := unsafe.Pointer(&s.tail[0])
			off := alignOffset(uintptr(base), layout.align)
			if off+layout.size <= uintptr(len(s.tail)) {
				slot := Slot{ptr: unsafe.Add(base, off)}
				s.tail = s.tail[off+layout.size:]
				s.live++
				s.bytes += layout.size
				return slot, nil
			}
		}
		chunk, err := unix.Mmap(-1, 0, slabChunkSize,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			return Slot{}, err
		}
		s.chunks = append(s.chunks, chunk)
		s.tail = chunk
	}
}

// Discard implements [Provider]. Bump allocation does not reuse the
// region; only the live accounting changes.
func (s *Slab) Discard(_ Slot, layout Layout) {
	if layout.zeroSized() {
		return
	}
	s.live--
	s.bytes -= layout.size
}

// Pinned implements [PinProvider].
func (s *Slab) Pinned() {}

// Live returns the number of outstanding reservations.
func (s *Slab) Live() int { return s.live }

// LiveBytes returns the payload bytes of outstanding reservations.
func (s *Slab) LiveBytes() uintptr { return s.bytes }

// Close unmaps every chunk. Values constructed in the slab must not be
// accessed afterwards.
func (s *Slab) Close() error {
	for _, chunk := range s.chunks {
		if err := unix.Munmap(chunk); err != nil {
			return err
		}
	}
	s.chunks = nil
	s.tail = nil
	return nil
}
