package dsi

import "bringup-go/errcode"

// MaxLongPayload bounds a single long write body (command byte included).
// The DSI word count field is 16 bits.
const MaxLongPayload = 0xFFFF

// Allocator owns the buffers used for DCS long writes. Every buffer
// returned by Alloc is passed to Free exactly once.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// HeapAllocator allocates from the Go heap; Free is a no-op.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(n int) ([]byte, error) {
	if n <= 0 || n > MaxLongPayload {
		return nil, errcode.InvalidParams
	}
	return make([]byte, n), nil
}

func (HeapAllocator) Free([]byte) {}
