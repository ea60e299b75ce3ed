// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "sync/atomic"

// Disposer is implemented by constructed values that need teardown when
// their handle is released. Release invokes it exactly once; values
// without a Dispose method are trivially destructible.
type Disposer interface {
	Dispose()
}

// Handle owns a constructed value living in provider-supplied memory. It
// does not own the backing bytes of borrowed-buffer providers, but it is
// their exclusive legitimate accessor for the value's lifetime. A handle
// is move-only in spirit: there is at most one live handle per value, and
// releasing twice panics.
type Handle[O any] struct {
	used     atomic.Uintptr
	value    O
	slot     Slot
	layout   Layout
	provider Provider
	pinned   bool
}

func newHandle[O any](value O, slot Slot, layout Layout, p Provider, pinned bool) *Handle[O] {
	return &Handle[O]{value: value, slot: slot, layout: layout, provider: p, pinned: pinned}
}

// Value returns the constructed value through its erased interface type.
// Panics if the handle has been released.
func (h *Handle[O]) Value() O {
	if h.used.Load() != 0 {
		panic(panicHandleUse)
	}
	return h.value
}

// Pinned reports whether the provider promised a stable address for as
// long as this handle is held.
func (h *Handle[O]) Pinned() bool { return h.pinned }

// Released reports whether the handle has been released or leaked.
func (h *Handle[O]) Released() bool { return h.used.Load() != 0 }

// Release drops the value: its Dispose method runs if it has one, then
// the reservation returns to the provider. Panics on a second call.
func (h *Handle[O]) Release() {
	if !h.TryRelease() {
		panic(panicHandleReleased)
	}
}

// TryRelease is the non-panicking variant of [Release]. It reports
// whether this call performed the release.
func (h *Handle[O]) TryRelease() bool {
	if h.used.Add(1) != 1 {
		return false
	}
	if d, ok := any(h.value).(Disposer); ok {
		d.Dispose()
	}
	h.provider.Discard(h.slot, h.layout)
	var zero O
	h.value = zero
	h.slot = Slot{}
	return true
}

// Leak consumes the handle without running teardown and returns the
// value. The caller takes over the value's lifetime; the provider's
// reservation is never returned. Panics if the handle was already
// released.
func (h *Handle[O]) Leak() O {
	if h.used.Add(1) != 1 {
		panic(panicHandleReleased)
	}
	return h.value
}
