// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BytePool adapts bytebufferpool's size-calibrating pool to the api.BytePool
// contract so payload buffers can cycle through queues without churning the
// allocator.

package pool

import (
	"github.com/valyala/bytebufferpool"

	"github.com/momentics/hioload-conc/api"
)

// Compile-time interface compliance.
var _ api.BytePool = (*BytePool)(nil)

// BytePool hands out reusable byte slices. The zero value is not usable;
// create with NewBytePool.
type BytePool struct {
	pool *bytebufferpool.Pool
}

// NewBytePool creates an empty pool.
func NewBytePool() *BytePool {
	return &BytePool{pool: new(bytebufferpool.Pool)}
}

// Acquire returns a slice of exactly n bytes backed by pooled storage.
func (p *BytePool) Acquire(n int) []byte {
	bb := p.pool.Get()
	if cap(bb.B) < n {
		bb.B = append(bb.B[:cap(bb.B)], make([]byte, n-cap(bb.B))...)
	}
	return bb.B[:n]
}

// Release returns a buffer's backing storage to the pool. The slice must
// not be used afterwards.
func (p *BytePool) Release(buf []byte) {
	p.pool.Put(&bytebufferpool.ByteBuffer{B: buf})
}
