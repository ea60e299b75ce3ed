// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/emplace"
)

func TestLayoutOfScalars(t *testing.T) {
	l := emplace.LayoutOf[int64]()
	if l.Size() != 8 {
		t.Fatalf("size = %d, want 8", l.Size())
	}
	if l.Align() != unsafe.Alignof(int64(0)) {
		t.Fatalf("align = %d, want %d", l.Align(), unsafe.Alignof(int64(0)))
	}
	if !l.NoScan() {
		t.Fatal("int64 layout should be pointer-free")
	}
}

func TestLayoutOfStruct(t *testing.T) {
	type pair struct {
		a int32
		b int64
	}
	l := emplace.LayoutOf[pair]()
	if l.Size() != unsafe.Sizeof(pair{}) {
		t.Fatalf("size = %d, want %d", l.Size(), unsafe.Sizeof(pair{}))
	}
	if l.Align() != unsafe.Alignof(pair{}) {
		t.Fatalf("align = %d, want %d", l.Align(), unsafe.Alignof(pair{}))
	}
	if !l.NoScan() {
		t.Fatal("pair layout should be pointer-free")
	}
}

func TestLayoutZeroSize(t *testing.T) {
	l := emplace.LayoutOf[struct{}]()
	if l.Size() != 0 {
		t.Fatalf("size = %d, want 0", l.Size())
	}
	if !l.NoScan() {
		t.Fatal("struct{} layout should be pointer-free")
	}
}

func TestLayoutNoScan(t *testing.T) {
	type mixed struct {
		n int
		s string
	}
	cases := []struct {
		name   string
		noscan bool
		layout emplace.Layout
	}{
		{"bytes", true, emplace.LayoutOf[[16]byte]()},
		{"empty array of strings", true, emplace.LayoutOf[[0]string]()},
		{"pointer", false, emplace.LayoutOf[*int]()},
		{"string", false, emplace.LayoutOf[string]()},
		{"slice", false, emplace.LayoutOf[[]byte]()},
		{"map", false, emplace.LayoutOf[map[int]int]()},
		{"mixed struct", false, emplace.LayoutOf[mixed]()},
		{"array of pointers", false, emplace.LayoutOf[[3]*int]()},
	}
	for _, c := range cases {
		if c.layout.NoScan() != c.noscan {
			t.Errorf("%s: NoScan = %v, want %v", c.name, c.layout.NoScan(), c.noscan)
		}
	}
}

func TestRawLayout(t *testing.T) {
	l := emplace.RawLayout(24, 8)
	if l.Size() != 24 || l.Align() != 8 {
		t.Fatalf("got (%d, %d), want (24, 8)", l.Size(), l.Align())
	}
	if !l.NoScan() {
		t.Fatal("raw layout should be pointer-free")
	}
	if l.Type() != nil {
		t.Fatal("raw layout should carry no type descriptor")
	}
}

func TestRawLayoutBadAlign(t *testing.T) {
	for _, align := range []uintptr{0, 3, 6, 12, emplace.MaxAlign * 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("align %d: expected panic", align)
				}
			}()
			emplace.RawLayout(8, align)
		}()
	}
}

func TestRawLayoutOverflowingSize(t *testing.T) {
	// A size this large would wrap every offset computation downstream.
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	emplace.RawLayout(^uintptr(0)-8, 8)
}
