// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Provider supplies slots for in-place constructions and accounts for
// their release. A provider either borrows externally owned memory
// ([FixedBuffer], [GrowBuffer]) or owns memory it allocates ([Heap],
// [Slab]).
//
// Allocating providers host any number of live values. Borrowed-buffer
// providers back at most one live value at a time: reserving again while
// a previously constructed value is still held reuses the same region.
// Sequential reuse after the handle's release is fine.
type Provider interface {
	// Reserve returns a slot satisfying layout, or [ErrOutOfCapacity]
	// when the provider cannot host it. Zero-size layouts always succeed
	// with a dangling, aligned slot and never touch provider storage.
	Reserve(layout Layout) (Slot, error)

	// Discard returns a reservation without a live value in it: after a
	// constructor panicked mid-construction, or when an owned handle is
	// released. Providers for which the bytes need no accounting treat
	// this as a no-op.
	Discard(slot Slot, layout Layout)
}

// PinProvider marks providers whose slots keep a stable address for as
// long as the constructed value is held. Only these compose with
// base-protocol constructors; see [TryPinEmplace].
//
// Pinned is a phantom marker method with an empty body.
type PinProvider interface {
	Provider
	Pinned()
}
