// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"sync/atomic"
	"unsafe"
)

// ReceiverKind enumerates the closed set of type-erased receiver
// representations. The set is closed on purpose: unsealing is a single
// consuming match on the kind.
type ReceiverKind uint8

const (
	// KindBorrowed is a shared borrow of the receiver (&self).
	KindBorrowed ReceiverKind = iota + 1
	// KindBorrowedMut is an exclusive borrow of the receiver (&mut self).
	KindBorrowedMut
	// KindOwned is a uniquely owned receiver with a release callback.
	KindOwned
	// KindShared is a reference-counted receiver ([Rc]).
	KindShared
	// KindSharedAtomic is an atomically reference-counted receiver ([Arc]).
	KindSharedAtomic
)

func (k ReceiverKind) String() string {
	switch k {
	case KindBorrowed:
		return "Borrowed"
	case KindBorrowedMut:
		return "BorrowedMut"
	case KindOwned:
		return "Owned"
	case KindShared:
		return "Shared"
	case KindSharedAtomic:
		return "SharedAtomic"
	default:
		return "Invalid"
	}
}

// Sealed is a type-erased representation of a method receiver: a kind tag,
// an opaque address, and, for owning variants, a release callback captured
// at seal time. It exists so that a constructor returned from an interface
// method does not need to mention the concrete implementing type.
//
// A Sealed value is consumed exactly once, either by unsealing inside a
// construction or by [Sealed.Release] when the construction is abandoned.
// Owning variants run their release callback exactly once on either path
// that does not transfer ownership; a second consumption panics.
type Sealed struct {
	state *sealedState
}

type sealedState struct {
	used    atomic.Uintptr
	kind    ReceiverKind
	pinned  bool
	addr    unsafe.Pointer
	release func(unsafe.Pointer)
}

// sealState allocates the shared one-shot state behind a Sealed value.
// Sealing allocates; unsealing does not.
func sealState(kind ReceiverKind, addr unsafe.Pointer, release func(unsafe.Pointer)) Sealed {
	return Sealed{state: &sealedState{kind: kind, addr: addr, release: release}}
}

// consume claims the one-shot state. Panics on reuse or on a zero Sealed.
func (s Sealed) consume() *sealedState {
	if s.state == nil {
		panic("emplace: zero sealed receiver")
	}
	if s.state.used.Add(1) != 1 {
		panic(panicSealedReuse)
	}
	return s.state
}

// Kind returns the receiver representation this value was sealed from.
func (s Sealed) Kind() ReceiverKind {
	if s.state == nil {
		return 0
	}
	return s.state.kind
}

// Pinned reports whether the receiver carries an address-stability
// requirement; see [Sealed.Pin].
func (s Sealed) Pinned() bool { return s.state != nil && s.state.pinned }

// Pin marks the sealed receiver as requiring a stable address for as long
// as it is held, and returns it for chaining.
func (s Sealed) Pin() Sealed {
	if s.state == nil {
		panic("emplace: zero sealed receiver")
	}
	s.state.pinned = true
	return s
}

// Consumed reports whether the sealed receiver has been unsealed or released.
func (s Sealed) Consumed() bool { return s.state != nil && s.state.used.Load() != 0 }

// Release drops a sealed-but-never-unsealed receiver, invoking the release
// callback of owning variants exactly once. Failed or abandoned
// constructions use this path so the receiver neither leaks nor
// double-frees. Panics if the receiver was already consumed.
func (s Sealed) Release() {
	st := s.consume()
	if st.release != nil {
		st.release(st.addr)
	}
}

// SealRef erases a borrowed receiver.
func SealRef[T any](recv *T) Sealed {
	return sealState(KindBorrowed, unsafe.Pointer(recv), nil)
}

// SealMut erases a mutably borrowed receiver. The caller promises the
// borrow is exclusive for the lifetime of the sealed value.
func SealMut[T any](recv *T) Sealed {
	return sealState(KindBorrowedMut, unsafe.Pointer(recv), nil)
}

// SealOwned erases a uniquely owned receiver. The dispose callback runs
// exactly once if the sealed value is released without being unsealed;
// unsealing transfers ownership and disarms it. dispose may be nil.
func SealOwned[T any](recv *T, dispose func(*T)) Sealed {
	var release func(unsafe.Pointer)
	if dispose != nil {
		release = func(p unsafe.Pointer) { dispose((*T)(p)) }
	}
	return sealState(KindOwned, unsafe.Pointer(recv), release)
}

// SealRc erases a reference-counted receiver, capturing one count. The
// count is dropped exactly once if the sealed value is released without
// being unsealed; unsealing transfers it.
func SealRc[T any](rc *Rc[T]) Sealed {
	c := rc.Clone()
	return sealState(KindShared, unsafe.Pointer(c), func(p unsafe.Pointer) {
		(*Rc[T])(p).Release()
	})
}

// SealArc erases an atomically reference-counted receiver, capturing one
// count; see [SealRc].
func SealArc[T any](arc *Arc[T]) Sealed {
	c := arc.Clone()
	return sealState(KindSharedAtomic, unsafe.Pointer(c), func(p unsafe.Pointer) {
		(*Arc[T])(p).Release()
	})
}

func kindMismatch(got, want ReceiverKind) string {
	return "emplace: unseal " + want.String() + " on " + got.String() + " receiver"
}

// UnsealRef recovers a borrowed receiver. Panics on kind mismatch or reuse.
func UnsealRef[T any](s Sealed) *T {
	st := s.consume()
	if st.kind != KindBorrowed {
		panic(kindMismatch(st.kind, KindBorrowed))
	}
	return (*T)(st.addr)
}

// UnsealMut recovers a mutably borrowed receiver. Panics on kind mismatch
// or reuse.
func UnsealMut[T any](s Sealed) *T {
	st := s.consume()
	if st.kind != KindBorrowedMut {
		panic(kindMismatch(st.kind, KindBorrowedMut))
	}
	return (*T)(st.addr)
}

// UnsealOwned recovers a uniquely owned receiver, transferring ownership
// to the caller; the seal-time dispose callback is disarmed. Panics on
// kind mismatch or reuse.
func UnsealOwned[T any](s Sealed) *T {
	st := s.consume()
	if st.kind != KindOwned {
		panic(kindMismatch(st.kind, KindOwned))
	}
	return (*T)(st.addr)
}

// UnsealRc recovers a reference-counted receiver; the captured count
// transfers to the returned cell. Panics on kind mismatch or reuse.
func UnsealRc[T any](s Sealed) *Rc[T] {
	st := s.consume()
	if st.kind != KindShared {
		panic(kindMismatch(st.kind, KindShared))
	}
	return (*Rc[T])(st.addr)
}

// UnsealArc recovers an atomically reference-counted receiver; the
// captured count transfers to the returned cell. Panics on kind mismatch
// or reuse.
func UnsealArc[T any](s Sealed) *Arc[T] {
	st := s.consume()
	if st.kind != KindSharedAtomic {
		panic(kindMismatch(st.kind, KindSharedAtomic))
	}
	return (*Arc[T])(st.addr)
}

// unsealCall recovers the typed receiver address for a method invocation,
// regardless of kind. Ownership of owning variants transfers into the
// invocation: the release callback is disarmed. Shared variants hand the
// count captured at seal time back through done; the invocation drops it
// when the call returns, so a consumed call releases exactly one count.
// done is nil for the borrowing and owning kinds.
func unsealCall[T any](s Sealed) (this *T, done func()) {
	st := s.consume()
	switch st.kind {
	case KindBorrowed, KindBorrowedMut, KindOwned:
		return (*T)(st.addr), nil
	case KindShared:
		rc := (*Rc[T])(st.addr)
		return rc.Get(), rc.Release
	case KindSharedAtomic:
		arc := (*Arc[T])(st.addr)
		return arc.Get(), arc.Release
	default:
		panic("emplace: invalid receiver kind")
	}
}

// Rc is a reference-counted cell for sharing a receiver across sealed
// method calls within a single goroutine. The count is not synchronized;
// use [Arc] when clones cross goroutines.
type Rc[T any] struct {
	refs  int
	value T
}

// NewRc returns a cell holding v with a count of one.
func NewRc[T any](v T) *Rc[T] { return &Rc[T]{refs: 1, value: v} }

// Clone takes an additional count and returns the same cell.
func (r *Rc[T]) Clone() *Rc[T] {
	r.refs++
	return r
}

// Get returns the address of the shared value.
func (r *Rc[T]) Get() *T { return &r.value }

// Refs returns the current count.
func (r *Rc[T]) Refs() int { return r.refs }

// Release drops one count. When the count reaches zero the value's
// Dispose method runs, if it has one. Panics if released more times than
// cloned.
func (r *Rc[T]) Release() {
	r.refs--
	if r.refs < 0 {
		panic("emplace: shared receiver over-released")
	}
	if r.refs == 0 {
		if d, ok := any(&r.value).(Disposer); ok {
			d.Dispose()
		}
	}
}

// Arc is the atomically reference-counted counterpart of [Rc]. Counting
// is safe across goroutines; access to the value itself carries whatever
// safety the value provides.
type Arc[T any] struct {
	refs  atomic.Int64
	value T
}

// NewArc returns a cell holding v with a count of one.
func NewArc[T any](v T) *Arc[T] {
	a := &Arc[T]{value: v}
	a.refs.Store(1)
	return a
}

// Clone takes an additional count and returns the same cell.
func (a *Arc[T]) Clone() *Arc[T] {
	a.refs.Add(1)
	return a
}

// Get returns the address of the shared value.
func (a *Arc[T]) Get() *T { return &a.value }

// Refs returns the current count.
func (a *Arc[T]) Refs() int64 { return a.refs.Load() }

// Release drops one count; the last release runs the value's Dispose
// method, if it has one. Panics if released more times than cloned.
func (a *Arc[T]) Release() {
	n := a.refs.Add(-1)
	if n < 0 {
		panic("emplace: shared receiver over-released")
	}
	if n == 0 {
		if d, ok := any(&a.value).(Disposer); ok {
			d.Dispose()
		}
	}
}
