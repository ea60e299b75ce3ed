// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"reflect"

	"github.com/modern-go/reflect2"
)

// TryEmplace constructs c's value in p. On success the value's ownership
// comes back as a handle; on failure the error surfaces and c is left
// untouched, ready for a retry with another provider.
//
// If the constructor panics mid-construction, the reservation returns to
// the provider before the panic propagates.
func TryEmplace[O any](p Provider, c Constructor[O]) (*Handle[O], error) {
	_, pinned := p.(PinProvider)
	return tryEmplace[O](p, c, pinned)
}

// Emplace is [TryEmplace] that panics with "failed to initialize" when the
// provider cannot fit the value.
func Emplace[O any](p Provider, c Constructor[O]) *Handle[O] {
	h, err := TryEmplace(p, c)
	if err != nil {
		panic(panicFailedInit)
	}
	return h
}

// TryEmplace2 constructs c's value in p1 and, should p1 lack capacity,
// retries the unconsumed constructor in p2. Only p2's error surfaces.
func TryEmplace2[O any](p1, p2 Provider, c Constructor[O]) (*Handle[O], error) {
	if h, err := TryEmplace(p1, c); err == nil {
		return h, nil
	}
	return TryEmplace(p2, c)
}

// Emplace2 is [TryEmplace2] that panics with "failed to initialize" when
// both providers fail.
func Emplace2[O any](p1, p2 Provider, c Constructor[O]) *Handle[O] {
	h, err := TryEmplace2(p1, p2, c)
	if err != nil {
		panic(panicFailedInit)
	}
	return h
}

// TryPinEmplace constructs a base-protocol recipe in an address-stable
// provider. It is a thin wrapper over the ordinary emplace path: the
// entire stability burden lies in which providers implement
// [PinProvider], not in any extra work here.
func TryPinEmplace[O any](p PinProvider, c PinConstructor[O]) (*Handle[O], error) {
	return tryEmplace[O](p, c, true)
}

// PinEmplace is [TryPinEmplace] that panics with "failed to initialize"
// on failure.
func PinEmplace[O any](p PinProvider, c PinConstructor[O]) *Handle[O] {
	h, err := TryPinEmplace(p, c)
	if err != nil {
		panic(panicFailedInit)
	}
	return h
}

// TryPinEmplace2 is the two-provider fallback for base-protocol recipes.
// Only p2's error surfaces.
func TryPinEmplace2[O any](p1, p2 PinProvider, c PinConstructor[O]) (*Handle[O], error) {
	if h, err := TryPinEmplace(p1, c); err == nil {
		return h, nil
	}
	return TryPinEmplace(p2, c)
}

// PinEmplace2 is [TryPinEmplace2] that panics with "failed to initialize"
// when both providers fail.
func PinEmplace2[O any](p1, p2 PinProvider, c PinConstructor[O]) *Handle[O] {
	h, err := TryPinEmplace2(p1, p2, c)
	if err != nil {
		panic(panicFailedInit)
	}
	return h
}

// Boxed constructs c's value in [Heap]. It never fails.
func Boxed[O any](c PinConstructor[O]) *Handle[O] {
	h, err := tryEmplace[O](Heap{}, c, true)
	if err != nil {
		panic(panicFailedInit)
	}
	return h
}

// tryEmplace is the single construction path behind every combinator.
func tryEmplace[O any](p Provider, c PinConstructor[O], pinned bool) (*Handle[O], error) {
	layout := c.Layout()
	slot, err := p.Reserve(layout)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		// Reservation must not outlive a failed construction, whichever
		// way the constructor failed.
		if !committed {
			p.Discard(slot, layout)
		}
	}()
	obj := c.Construct(slot)
	validateConstruct(slot, layout, any(obj))
	committed = true
	return newHandle(obj, slot, layout, p, pinned), nil
}

// validateConstruct checks the construction contract: the returned object
// points at the slot address and its pointee layout equals the declared
// one. A violation is a programmer error in the constructor, never a
// recoverable condition.
func validateConstruct(slot Slot, layout Layout, obj any) {
	if reflect2.PtrOf(obj) != slot.ptr {
		panic(panicAddrMismatch)
	}
	if rt := reflect.TypeOf(obj); rt != nil && rt.Kind() == reflect.Pointer {
		el := rt.Elem()
		if el.Size() != layout.size || uintptr(el.Align()) != layout.align {
			panic(panicLayoutMismatch)
		}
	}
}
