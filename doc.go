// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package emplace provides in-place construction of type-erased values
// with caller-chosen placement.
//
// The core problem is narrow but intricate: produce a value whose concrete
// type and footprint are unknown until the moment it is needed, and let
// the call site — not the API — choose where its bytes live: a fast
// fixed-size buffer, a growable buffer, or the heap, trying cheaper
// options first and falling back automatically. An abstract interface
// method can thereby return a polymorphic in-progress computation without
// forcing a fresh allocation on every call.
//
// # Design Philosophy
//
// emplace provides:
//   - A minimal single-use constructor protocol: a recipe that knows how
//     to build the value and how big it will be
//   - Memory providers that satisfy a construction request and account
//     for its release
//   - Receiver sealing, so a method's self-parameter is captured without
//     naming its concrete type
//
// The whole protocol is single-threaded and fully synchronous: nothing in
// this package awaits, schedules, or locks. The only atomics are the
// one-shot counters that turn "must consume exactly once" contracts into
// panics instead of undefined behavior.
//
// # Constructor Protocol
//
// A constructor exposes two operations: Layout, pure and callable any
// number of times before consumption, and Construct, taken exactly once.
// The protocol has two strengths:
//
//   - [PinConstructor]: the base protocol, usable only with
//     address-stable ([PinProvider]) providers
//   - [Constructor]: a strict narrowing marked by the phantom method
//     Movable, evidence that the recipe does not rely on the memory never
//     moving prior to construction
//
// Single-use enforcement lives in the [Once] and [PinOnce] cells, which
// panic on reuse and support Discard for abandoning a recipe without
// leaking its captured inputs. A failed emplace leaves the cell
// unconsumed, so the same cell retries with another provider without
// re-deriving the recipe.
//
//   - [LayoutOf], [RawLayout]: layout computation
//   - [Slot], [WriteSlot]: the raw-memory handle and typed placement
//   - [OnceOf], [PinOnceOf]: single-use cells
//   - [FromClosure], [PinFromClosure]: raw write-back constructors
//
// # Memory Providers
//
// A [Provider] reserves a slot for a layout and accounts for its release;
// a [PinProvider] additionally promises a stable address for as long as
// the constructed value is held.
//
//   - [FixedBuffer]: caller-supplied bytes; fails with [ErrOutOfCapacity]
//     when the aligned layout does not fit (pinning: yes)
//   - [GrowBuffer]: grows by at least size+align and recomputes the
//     offset until the layout fits; statically infallible (pinning: no —
//     growth moves the backing store)
//   - [Heap]: one runtime allocation per value, GC-correct for payloads
//     that contain pointers; statically infallible (pinning: yes)
//   - [Slab]: bump allocation over anonymous mmap chunks, unix only
//     (pinning: yes)
//   - [AcquireBuffer], [ReleaseBuffer]: pooled scratch [GrowBuffer]s
//
// Raw byte buffers are invisible to the garbage collector, so providers
// place only pointer-free payloads ([Layout.NoScan]) in them; a payload
// carrying Go pointers reports [ErrOutOfCapacity] from capacity-bounded
// providers and is delegated to a typed heap allocation by the infallible
// ones. The fallback chain makes this transparent at the call site.
//
// Zero-size payloads never fail on any provider, including a literally
// empty buffer: the slot is dangling but aligned, and provider storage is
// never touched.
//
// # Emplace Operations
//
// Each operation has a panicking form and a Result-returning Try form,
// in one-provider and two-provider (fallback) arities, for both protocol
// strengths:
//
//   - [TryEmplace], [Emplace], [TryEmplace2], [Emplace2]
//   - [TryPinEmplace], [PinEmplace], [TryPinEmplace2], [PinEmplace2]
//   - [Boxed]: heap convenience, never fails
//
// On failure the constructor comes back untouched; on success the value's
// ownership comes back as a [Handle]. The panicking forms fail loudly
// with the fixed message "failed to initialize". The pinned forms perform
// no extra work: the entire address-stability burden is carried by which
// providers implement [PinProvider].
//
// After every successful construction the path validates that the
// returned object's address and pointee layout match the reservation; a
// mismatch is a programmer error in the constructor and panics.
//
// # Owned Handles
//
// A [Handle] owns the constructed value in place. It does not own the
// backing bytes of borrowed-buffer providers but is their exclusive
// legitimate accessor for the value's lifetime.
//
//   - [Handle.Value]: access the erased value
//   - [Handle.Release]: run the value's [Disposer] hook, if any, and
//     return the reservation (panics on reuse)
//   - [Handle.TryRelease]: non-panicking variant
//   - [Handle.Leak]: take the value, disarm teardown
//   - [Handle.Pinned]: whether the address-stability promise holds
//
// # Sealed Receivers
//
// [Sealed] is a closed, enumerable erasure of a method receiver:
// Borrowed, BorrowedMut, Owned, Shared ([Rc]) and SharedAtomic ([Arc]),
// each optionally wrapped with an address-stability requirement
// ([Sealed.Pin]). Sealing happens once; unsealing recovers the original
// typed value exactly once; and a sealed-but-never-unsealed receiver
// still runs its release callback exactly once via [Sealed.Release], so
// abandoned constructions neither leak nor double-free.
//
//   - [SealRef], [SealMut], [SealOwned], [SealRc], [SealArc]
//   - [UnsealRef], [UnsealMut], [UnsealOwned], [UnsealRc], [UnsealArc]
//
// Thread safety of a shared receiver is whatever the chosen sharing cell
// provides: [Rc] counts without synchronization, [Arc] atomically.
//
// # Function and Method Adapters
//
// The adapters package a function, its captured arguments, and a
// write-back coercion into a constructor whose layout is the function's
// return type:
//
//   - [FromFunc], [FromFunc1], [FromFunc2]
//   - [BindMethod], [BindMethod1], [BindMethod2] (sealed receiver)
//   - [PinFromFunc], [PinBindMethod], [PinBindMethod1], [PinBindMethod2]
//
// A code generator that rewrites an interface method to return a
// constructor needs exactly these: seal the receiver, capture the
// arguments, and declare the return type's layout. The coercion argument
// (typically func(p *T) MyInterface { return p }) keeps the erasure
// checked at compile time.
//
// # Errors
//
// [ErrOutOfCapacity] ("out of capacity") is the only recoverable error;
// [GrowBuffer] and [Heap] are statically infallible. Contract violations
// — consuming a constructor twice, a write-back producing a different
// layout than declared, releasing a handle twice — panic with fixed
// messages. There is no logging and no telemetry in this package.
//
// # Example
//
//	type Message interface{ Text() string }
//
//	type Greeter interface {
//		// Greet defers building the reply; the caller picks placement.
//		Greet(name string) *emplace.Once[Message]
//	}
//
//	// reply is the concrete result type; *reply implements Message.
//	type reply struct{ buf [32]byte; n int }
//
//	func (e *english) Greet(name string) *emplace.Once[Message] {
//		return emplace.BindMethod1(emplace.SealRef(e), name,
//			(*english).greet,
//			func(r *reply) Message { return r },
//		)
//	}
//
//	stack := emplace.NewFixedSize(64)
//	msg := emplace.Emplace2(stack, emplace.Heap{}, greeter.Greet("world"))
//	defer msg.Release()
//	_ = msg.Value().Text()
package emplace
