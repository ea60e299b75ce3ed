// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"fmt"
	"math"
	"math/bits"
	"reflect"

	"github.com/modern-go/reflect2"
)

// Layout describes the size and alignment of a value that has not been
// built yet. Typed layouts additionally carry the runtime type descriptor,
// which providers use to make GC-correct placement decisions: a payload
// that contains Go pointers may not live in a raw byte buffer, because the
// collector does not scan such memory.
type Layout struct {
	size   uintptr
	align  uintptr
	typ    reflect2.Type
	noscan bool
}

// LayoutOf computes the layout of T from its concrete, statically known
// type. This is the pre-erasure moment: the constructor built from this
// layout no longer mentions T in its own type.
func LayoutOf[T any]() Layout {
	t := reflect.TypeFor[T]()
	return Layout{
		size:   t.Size(),
		align:  uintptr(t.Align()),
		typ:    reflect2.Type2(t),
		noscan: noScan(t),
	}
}

// MaxAlign is the largest alignment a layout may request (one page).
const MaxAlign = 1 << 12

// RawLayout builds an untyped layout for opaque byte payloads.
// The payload is assumed to contain no Go pointers.
// Panics if align is zero, not a power of two, or above [MaxAlign], or if
// the padded size would not fit an int. Bounding the size here keeps every
// downstream offset computation free of uintptr wraparound.
func RawLayout(size, align uintptr) Layout {
	if align == 0 || align > MaxAlign || bits.OnesCount64(uint64(align)) != 1 {
		panic("emplace: alignment must be a power of two no larger than MaxAlign")
	}
	if size > uintptr(math.MaxInt)-align {
		panic("emplace: layout size overflows")
	}
	return Layout{size: size, align: align, noscan: true}
}

// Size returns the byte size of the value to be constructed.
func (l Layout) Size() uintptr { return l.size }

// Align returns the alignment requirement of the value to be constructed.
func (l Layout) Align() uintptr { return l.align }

// NoScan reports whether the payload is free of Go pointers and may
// therefore be placed in memory the garbage collector does not scan.
func (l Layout) NoScan() bool { return l.noscan }

// Type returns the runtime type descriptor, or nil for raw layouts.
func (l Layout) Type() reflect2.Type { return l.typ }

func (l Layout) String() string {
	return fmt.Sprintf("Layout(size=%d, align=%d)", l.size, l.align)
}

func (l Layout) zeroSized() bool { return l.size == 0 }

// alignOffset returns how many bytes must be skipped from addr to reach
// the next address aligned to align. align must be a power of two.
func alignOffset(addr, align uintptr) uintptr {
	mask := align - 1
	return (align - (addr & mask)) & mask
}

// noScan reports whether values of type t contain no Go pointers.
// Mirrors the runtime's noscan classification.
func noScan(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		if t.Len() == 0 {
			return true
		}
		return noScan(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !noScan(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Pointer, UnsafePointer, Map, Chan, Func, Interface, Slice, String.
		return false
	}
}
