package allochain

import (
	"sync"
	"unsafe"
)

// SafeHandle is a mutex-protected wrapper around Handle for concurrent
// access. All operations are thread-safe but come with the overhead of
// mutex locking. The underlying strategies remain single-threaded
// internally; SafeHandle only serializes calls into them.
type SafeHandle struct {
	mu sync.Mutex
	h  *Handle
}

// NewSafeHandle wraps h for thread-safe access. If h is nil, System is
// wrapped.
func NewSafeHandle(h *Handle) *SafeHandle {
	return &SafeHandle{h: resolve(h)}
}

// Allocate thread-safely allocates size bytes.
func (s *SafeHandle) Allocate(size int) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Allocate(size)
}

// AllocateZeroed thread-safely allocates count*elemSize zeroed bytes.
func (s *SafeHandle) AllocateZeroed(count, elemSize int) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.AllocateZeroed(count, elemSize)
}

// CopyFrom thread-safely allocates size bytes and copies src into them.
func (s *SafeHandle) CopyFrom(src unsafe.Pointer, size int) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.CopyFrom(src, size)
}

// Free thread-safely releases ptr.
func (s *SafeHandle) Free(ptr unsafe.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Free(ptr)
}

// Resize thread-safely resizes ptr to size bytes.
func (s *SafeHandle) Resize(ptr unsafe.Pointer, size int) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Resize(ptr, size)
}

// Destroy thread-safely releases every resource owned by the wrapped
// handle.
func (s *SafeHandle) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Destroy()
}

// Metrics thread-safely returns a snapshot of the wrapped handle's
// statistics.
func (s *SafeHandle) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Metrics()
}
