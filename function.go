// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Function and method adapters: package a function, its captured
// arguments (including a sealed receiver, if present), and a write-back
// coercion into a single-use constructor. The coercion turns the in-slot
// pointer into the erased interface type; a plain
//
//	func(p *T) MyInterface { return p }
//
// is enough, and keeps the conversion checked at compile time. The only
// runtime behavior these adapters add is the single write-back call.

// FromFunc creates a constructor for the deferred call produce(). The
// layout is that of T; the call runs at construction time, its result is
// written into the slot, and coerce exposes it as O.
func FromFunc[T, O any](produce func() T, coerce func(*T) O) *Once[O] {
	return OnceOf[O](closure[O]{
		layout: LayoutOf[T](),
		write: func(s Slot) O {
			return coerce(WriteSlot(s, produce()))
		},
	})
}

// FromFunc1 is [FromFunc] with one captured argument.
func FromFunc1[A, T, O any](arg A, f func(A) T, coerce func(*T) O) *Once[O] {
	return OnceOf[O](closure[O]{
		layout: LayoutOf[T](),
		write: func(s Slot) O {
			return coerce(WriteSlot(s, f(arg)))
		},
	})
}

// FromFunc2 is [FromFunc] with two captured arguments.
func FromFunc2[A, B, T, O any](a A, b B, f func(A, B) T, coerce func(*T) O) *Once[O] {
	return OnceOf[O](closure[O]{
		layout: LayoutOf[T](),
		write: func(s Slot) O {
			return coerce(WriteSlot(s, f(a, b)))
		},
	})
}

// PinFromFunc is the base-protocol variant of [FromFunc].
func PinFromFunc[T, O any](produce func() T, coerce func(*T) O) *PinOnce[O] {
	return PinOnceOf[O](closure[O]{
		layout: LayoutOf[T](),
		write: func(s Slot) O {
			return coerce(WriteSlot(s, produce()))
		},
	})
}

// BindMethod creates a constructor for a deferred method call on a sealed
// receiver. The receiver is unsealed exactly once, inside the
// construction; discarding the unconsumed constructor releases it instead,
// so an abandoned call neither leaks nor double-frees the receiver. A
// shared receiver's captured count drops when the call returns.
func BindMethod[R any, T, O any](recv Sealed, method func(*T) R, coerce func(*R) O) *Once[O] {
	return OnceOf[O](closure[O]{
		layout: LayoutOf[R](),
		write: func(s Slot) O {
			this, done := unsealCall[T](recv)
			if done != nil {
				defer done()
			}
			return coerce(WriteSlot(s, method(this)))
		},
		release: recv.Release,
	})
}

// BindMethod1 is [BindMethod] with one captured argument.
func BindMethod1[A, R any, T, O any](recv Sealed, arg A, method func(*T, A) R, coerce func(*R) O) *Once[O] {
	return OnceOf[O](closure[O]{
		layout: LayoutOf[R](),
		write: func(s Slot) O {
			this, done := unsealCall[T](recv)
			if done != nil {
				defer done()
			}
			return coerce(WriteSlot(s, method(this, arg)))
		},
		release: recv.Release,
	})
}

// BindMethod2 is [BindMethod] with two captured arguments.
func BindMethod2[A, B, R any, T, O any](recv Sealed, a A, b B, method func(*T, A, B) R, coerce func(*R) O) *Once[O] {
	return OnceOf[O](closure[O]{
		layout: LayoutOf[R](),
		write: func(s Slot) O {
			this, done := unsealCall[T](recv)
			if done != nil {
				defer done()
			}
			return coerce(WriteSlot(s, method(this, a, b)))
		},
		release: recv.Release,
	})
}

// PinBindMethod is the base-protocol variant of [BindMethod], for methods
// whose result must never be observed at a temporary address.
func PinBindMethod[R any, T, O any](recv Sealed, method func(*T) R, coerce func(*R) O) *PinOnce[O] {
	recv.Pin()
	return PinOnceOf[O](closure[O]{
		layout: LayoutOf[R](),
		write: func(s Slot) O {
			this, done := unsealCall[T](recv)
			if done != nil {
				defer done()
			}
			return coerce(WriteSlot(s, method(this)))
		},
		release: recv.Release,
	})
}

// PinBindMethod1 is [PinBindMethod] with one captured argument.
func PinBindMethod1[A, R any, T, O any](recv Sealed, arg A, method func(*T, A) R, coerce func(*R) O) *PinOnce[O] {
	recv.Pin()
	return PinOnceOf[O](closure[O]{
		layout: LayoutOf[R](),
		write: func(s Slot) O {
			this, done := unsealCall[T](recv)
			if done != nil {
				defer done()
			}
			return coerce(WriteSlot(s, method(this, arg)))
		},
		release: recv.Release,
	})
}

// PinBindMethod2 is [PinBindMethod] with two captured arguments.
func PinBindMethod2[A, B, R any, T, O any](recv Sealed, a A, b B, method func(*T, A, B) R, coerce func(*R) O) *PinOnce[O] {
	recv.Pin()
	return PinOnceOf[O](closure[O]{
		layout: LayoutOf[R](),
		write: func(s Slot) O {
			this, done := unsealCall[T](recv)
			if done != nil {
				defer done()
			}
			return coerce(WriteSlot(s, method(this, a, b)))
		},
		release: recv.Release,
	})
}
