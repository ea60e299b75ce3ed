// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "sync/atomic"

// PinConstructor is the base construction protocol: a single-use recipe
// that knows how to build a value and how big the value will be. O is the
// erased interface type through which the constructed value is exposed;
// the concrete type behind O is not named anywhere in the constructor's
// own type, which is what lets an abstract interface method return one.
//
// A bare PinConstructor may rely on the slot address never changing before
// the construction completes, so it composes only with address-stable
// (pinning) providers; see [TryPinEmplace]. Implementations must uphold:
//
//   - Layout is pure and callable any number of times before consumption.
//   - Construct is called at most once, with a slot that satisfies Layout.
//   - The returned object's dynamic value points at the slot address, and
//     its pointee layout equals the declared one. The emplace path checks
//     both and panics on violation.
type PinConstructor[O any] interface {
	// Layout returns the layout of the value to be constructed.
	Layout() Layout
	// Construct consumes the recipe, writes the value into slot, and
	// returns it through the erased interface type.
	Construct(slot Slot) O
}

// Constructor is the refinement of [PinConstructor] for recipes that do
// not rely on a stable slot address prior to construction. It composes
// with every provider, including ones that may move or reallocate their
// backing store between constructions.
//
// Movable is a phantom marker method; implementations provide an empty
// body. It serves purely as evidence of the relocation guarantee.
type Constructor[O any] interface {
	PinConstructor[O]
	Movable()
}

// discarder is implemented by constructors whose captured inputs need an
// explicit release when the recipe is dropped unconsumed (e.g. a sealed
// receiver's owning variants).
type discarder interface {
	discard()
}

// Once wraps a movable constructor with one-shot enforcement. The wrapped
// recipe can be consumed at most once; a second Construct panics. A *Once
// is itself a [Constructor], and a failed emplace leaves it unconsumed,
// so the very same cell retries with another provider without re-deriving
// the original recipe.
type Once[O any] struct {
	used  atomic.Uintptr
	inner Constructor[O]
}

// OnceOf wraps the supplied constructor in a single-use cell.
func OnceOf[O any](c Constructor[O]) *Once[O] {
	return &Once[O]{inner: c}
}

// Layout returns the layout of the pending value.
// Panics if the cell has already been consumed.
func (o *Once[O]) Layout() Layout {
	if o.used.Load() != 0 {
		panic(panicConsumed)
	}
	return o.inner.Layout()
}

// Construct consumes the cell. Panics on reuse.
func (o *Once[O]) Construct(slot Slot) O {
	if o.used.Add(1) != 1 {
		panic(panicConsumed)
	}
	return o.inner.Construct(slot)
}

// Movable implements [Constructor].
func (o *Once[O]) Movable() {}

// Consumed reports whether the cell has been consumed or discarded.
func (o *Once[O]) Consumed() bool { return o.used.Load() != 0 }

// Discard drops the cell without constructing. Captured inputs are
// released: an owning sealed receiver runs its release callback exactly
// once. Panics if the cell was already consumed or discarded.
func (o *Once[O]) Discard() {
	if o.used.Add(1) != 1 {
		panic(panicConsumed)
	}
	if d, ok := o.inner.(discarder); ok {
		d.discard()
	}
}

// PinOnce is the single-use cell for base-protocol recipes. It mirrors
// [Once] but stays within [PinConstructor], so it composes only with
// pinning providers.
type PinOnce[O any] struct {
	used  atomic.Uintptr
	inner PinConstructor[O]
}

// PinOnceOf wraps the supplied base-protocol constructor in a single-use cell.
func PinOnceOf[O any](c PinConstructor[O]) *PinOnce[O] {
	return &PinOnce[O]{inner: c}
}

// Layout returns the layout of the pending value.
// Panics if the cell has already been consumed.
func (o *PinOnce[O]) Layout() Layout {
	if o.used.Load() != 0 {
		panic(panicConsumed)
	}
	return o.inner.Layout()
}

// Construct consumes the cell. Panics on reuse.
func (o *PinOnce[O]) Construct(slot Slot) O {
	if o.used.Add(1) != 1 {
		panic(panicConsumed)
	}
	return o.inner.Construct(slot)
}

// Consumed reports whether the cell has been consumed or discarded.
func (o *PinOnce[O]) Consumed() bool { return o.used.Load() != 0 }

// Discard drops the cell without constructing, releasing captured inputs.
// Panics if the cell was already consumed or discarded.
func (o *PinOnce[O]) Discard() {
	if o.used.Add(1) != 1 {
		panic(panicConsumed)
	}
	if d, ok := o.inner.(discarder); ok {
		d.discard()
	}
}

// closure is the recipe behind [FromClosure] and the function adapters.
type closure[O any] struct {
	layout  Layout
	write   func(Slot) O
	release func()
}

func (c closure[O]) Layout() Layout        { return c.layout }
func (c closure[O]) Construct(slot Slot) O { return c.write(slot) }
func (c closure[O]) Movable()              {}
func (c closure[O]) discard() {
	if c.release != nil {
		c.release()
	}
}

// FromClosure creates a constructor from a raw write-back routine. The
// routine must fill the slot with a value of exactly the declared layout
// and return it through the erased interface; use [WriteSlot] for the
// placement. Most callers want the typed [FromFunc] adapters instead.
func FromClosure[O any](layout Layout, write func(Slot) O) *Once[O] {
	return OnceOf[O](closure[O]{layout: layout, write: write})
}

// PinFromClosure is the base-protocol variant of [FromClosure], for
// write-back routines that rely on the slot address being final.
func PinFromClosure[O any](layout Layout, write func(Slot) O) *PinOnce[O] {
	return PinOnceOf[O](closure[O]{layout: layout, write: write})
}
