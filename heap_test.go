// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/emplace"
)

type linked struct {
	next *linked
	name string
	n    int
}

func TestHeapNeverFails(t *testing.T) {
	h, err := emplace.TryEmplace(emplace.Heap{}, bytesConstructor([1024]byte{9}))
	require.NoError(t, err)
	require.Equal(t, byte(9), h.Value().(*[1024]byte)[0])
	h.Release()
}

func TestHeapPointeredPayload(t *testing.T) {
	c := emplace.FromFunc(
		func() linked { return linked{name: "head", n: 1} },
		func(p *linked) any { return p },
	)
	h, err := emplace.TryEmplace(emplace.Heap{}, c)
	require.NoError(t, err)
	v := h.Value().(*linked)
	require.Equal(t, "head", v.name)
	require.Equal(t, 1, v.n)
	require.Nil(t, v.next)
}

func TestHeapIsPinned(t *testing.T) {
	var p emplace.Provider = emplace.Heap{}
	_, ok := p.(emplace.PinProvider)
	require.True(t, ok)

	h := emplace.PinEmplace(emplace.Heap{}, emplace.PinOnceOf(bytesConstructor([8]byte{})))
	require.True(t, h.Pinned())
	h.Release()
}

func TestBoxed(t *testing.T) {
	h := emplace.Boxed[any](bytesConstructor([8]byte{7}))
	require.True(t, h.Pinned())
	require.Equal(t, byte(7), h.Value().(*[8]byte)[0])
	h.Release()
}

func TestHeapZeroSize(t *testing.T) {
	c := emplace.FromFunc(
		func() struct{} { return struct{}{} },
		func(p *struct{}) any { return p },
	)
	h, err := emplace.TryEmplace(emplace.Heap{}, c)
	require.NoError(t, err)
	require.NotNil(t, h.Value())
	h.Release()
}
