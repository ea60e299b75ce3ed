// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "sync"

// Buffer pool for emplace-heavy call sites. Releasing a buffer while a
// value constructed in it is still held dereferences freed-in-spirit
// memory; callers must release the handle first. Safe for callers that
// guarantee the one-live-value-at-a-time discipline documented on
// [Provider].

const pooledBufferCap = 256

var growBufferPool = sync.Pool{New: func() any { return NewGrowBufferCap(pooledBufferCap) }}

// AcquireBuffer acquires a pooled [GrowBuffer] with capacity already
// grown by earlier users.
func AcquireBuffer() *GrowBuffer {
	return growBufferPool.Get().(*GrowBuffer)
}

// ReleaseBuffer returns b to the pool. No value constructed in b may be
// alive.
func ReleaseBuffer(b *GrowBuffer) {
	growBufferPool.Put(b)
}
