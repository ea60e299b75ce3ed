// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/emplace"
)

func TestBufferPool(t *testing.T) {
	buf := emplace.AcquireBuffer()
	require.GreaterOrEqual(t, buf.Cap(), 256)

	h, err := emplace.TryEmplace(buf, bytesConstructor([64]byte{1}))
	require.NoError(t, err)
	require.Equal(t, byte(1), h.Value().(*[64]byte)[0])

	h.Release()
	emplace.ReleaseBuffer(buf)
}

func TestBufferPoolReuseGrownCapacity(t *testing.T) {
	buf := emplace.AcquireBuffer()
	h, err := emplace.TryEmplace(buf, bytesConstructor([1024]byte{}))
	require.NoError(t, err)
	grown := buf.Cap()
	require.GreaterOrEqual(t, grown, 1024)
	h.Release()
	emplace.ReleaseBuffer(buf)

	// The pooled buffer keeps whatever capacity it grew to.
	again := emplace.AcquireBuffer()
	defer emplace.ReleaseBuffer(again)
	if again == buf {
		require.Equal(t, grown, again.Cap())
	}
}
