package allochain

import "unsafe"

// Kind selects which allocation strategy a Handle implements.
type Kind uint8

const (
	// KindSystem is the untracked, process-global passthrough to the Go
	// heap.
	KindSystem Kind = iota
	// KindTrackedSystem is Go-heap-backed allocation with an ownership
	// ledger.
	KindTrackedSystem
	// KindFixedRegion is exactly one arena over caller-provided memory;
	// it never grows.
	KindFixedRegion
	// KindGrowingRegion is a vector of arenas, growing by one region at
	// a time.
	KindGrowingRegion
)

// Handle is the allocator's single polymorphic type. Every Handle has a
// Kind selecting its strategy and an optional Fallback consulted when
// its own strategy cannot satisfy a request. A nil *Handle is treated as
// System everywhere below except Destroy, where it is a no-op, matching
// the convention that a NULL handle means "the system-direct handle".
type Handle struct {
	kind Kind

	// Fallback, if set, is tried when this handle's own strategy cannot
	// satisfy an allocation, and is walked when locating the owner of a
	// pointer for Free/Resize.
	Fallback *Handle

	tracked *trackedSystem
	fixed   *fixedRegion
	growing *growingRegion
}

// System is the process-global, stateless system-direct sentinel. It
// carries no mutable state of its own (spec section 3): its identity is
// purely structural, not a guarded singleton. System must never be
// destroyed.
var System = &Handle{kind: KindSystem}

func resolve(h *Handle) *Handle {
	if h == nil {
		return System
	}
	return h
}

// NewTrackedSystem creates a tracked-system handle: Go-heap-backed
// allocation recorded in an ownership ledger so Free/Resize can be
// routed correctly from a fallback chain.
func NewTrackedSystem() *Handle {
	return &Handle{kind: KindTrackedSystem, tracked: newTrackedSystem()}
}

// NewFixedRegion creates a fixed-region handle over buf. buf is never
// grown; ownsMemory controls whether Destroy releases buf (set false for
// caller-owned memory, such as a stack-allocated array the caller
// intends to keep using after Destroy).
func NewFixedRegion(buf []byte, ownsMemory bool) (*Handle, error) {
	fr, err := newFixedRegion(buf, ownsMemory)
	if err != nil {
		return nil, err
	}
	return &Handle{kind: KindFixedRegion, fixed: fr}, nil
}

// NewGrowingRegion creates a growing-region handle that allocates new
// regionSize-byte regions on demand. No single allocation may exceed
// regionSize.
func NewGrowingRegion(regionSize int) (*Handle, error) {
	g, err := newGrowingRegion(regionSize)
	if err != nil {
		return nil, err
	}
	return &Handle{kind: KindGrowingRegion, growing: g}, nil
}

func (h *Handle) localMake(size int) *header {
	switch h.kind {
	case KindSystem:
		return systemMake(size)
	case KindTrackedSystem:
		return h.tracked.make(size)
	case KindFixedRegion:
		return h.fixed.make(size)
	case KindGrowingRegion:
		return h.growing.make(size)
	default:
		abort("handle: unreachable kind in localMake")
		return nil
	}
}

func (h *Handle) localOwns(hd *header) bool {
	switch h.kind {
	case KindSystem:
		return systemOwns(hd)
	case KindTrackedSystem:
		return h.tracked.owns(hd)
	case KindFixedRegion:
		return h.fixed.owns(hd)
	case KindGrowingRegion:
		return h.growing.owns(hd)
	default:
		abort("handle: unreachable kind in localOwns")
		return false
	}
}

func (h *Handle) localFree(hd *header) {
	switch h.kind {
	case KindSystem:
		systemFree(hd)
	case KindTrackedSystem:
		h.tracked.free(hd)
	case KindFixedRegion:
		h.fixed.free(hd)
	case KindGrowingRegion:
		h.growing.free(hd)
	default:
		abort("handle: unreachable kind in localFree")
	}
}

func (h *Handle) localResize(hd *header, size int) *header {
	switch h.kind {
	case KindSystem:
		return systemResize(hd, size)
	case KindTrackedSystem:
		return h.tracked.resize(hd, size)
	case KindFixedRegion:
		return h.fixed.resize(hd, size)
	case KindGrowingRegion:
		return h.growing.resize(hd, size)
	default:
		abort("handle: unreachable kind in localResize")
		return nil
	}
}

// findOwner walks the fallback chain starting at h looking for the
// handle that owns hd.
func findOwner(h *Handle, hd *header) *Handle {
	for cur := h; cur != nil; cur = cur.Fallback {
		if cur.localOwns(hd) {
			return cur
		}
	}
	return nil
}

// Allocate requests size bytes from h, trying h's own strategy first and
// then each handle in its fallback chain in order. Returns nil once the
// whole chain is exhausted, and nil immediately for size == 0.
func (h *Handle) Allocate(size int) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	h = resolve(h)

	if hd := h.localMake(size); hd != nil {
		return userPointer(hd)
	}
	if h.Fallback != nil {
		return h.Fallback.Allocate(size)
	}
	return nil
}

// AllocateZeroed allocates count*elemSize bytes and zeroes them.
func (h *Handle) AllocateZeroed(count, elemSize int) unsafe.Pointer {
	size := count * elemSize
	p := resolve(h).Allocate(size)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), size))
	return p
}

// CopyFrom allocates size bytes from h and copies size bytes from src
// into them. Returns nil if src is nil or size is 0.
func (h *Handle) CopyFrom(src unsafe.Pointer, size int) unsafe.Pointer {
	if src == nil || size == 0 {
		return nil
	}
	p := resolve(h).Allocate(size)
	if p == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(p), size), unsafe.Slice((*byte)(src), size))
	return p
}

// Free releases ptr, which must have come from h or one of the handles
// in its fallback chain. A nil ptr is a no-op. Freeing a pointer owned
// by no handle in the chain is a fatal condition.
func (h *Handle) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	h = resolve(h)

	hd := headerFromPointer(ptr)
	owner := findOwner(h, hd)
	if owner == nil {
		abort("handle: free called on a pointer owned by no handle in the chain")
	}
	owner.localFree(hd)
}

// Resize changes ptr's size to size bytes, possibly moving it, and
// returns the (possibly new) pointer. size == 0 behaves like Free and
// returns nil; a nil ptr behaves like Allocate. When the owning
// strategy's own in-place/local relocation fails, Resize falls back to
// a fresh allocation from the root handle h, copies min(old,new) payload
// bytes, and frees the original from its owning handle — the one
// cross-strategy migration path spec section 4.7 describes.
func (h *Handle) Resize(ptr unsafe.Pointer, size int) unsafe.Pointer {
	h = resolve(h)

	if size == 0 {
		h.Free(ptr)
		return nil
	}
	if ptr == nil {
		return h.Allocate(size)
	}

	hd := headerFromPointer(ptr)
	owner := findOwner(h, hd)
	if owner == nil {
		abort("handle: resize called on a pointer owned by no handle in the chain")
	}

	if result := owner.localResize(hd, size); result != nil {
		return userPointer(result)
	}

	newPtr := h.Allocate(size)
	if newPtr == nil {
		return nil
	}

	oldLen := actualDataSize(hd)
	copyLen := oldLen
	if size < copyLen {
		copyLen = size
	}
	copy(unsafe.Slice((*byte)(newPtr), copyLen), payloadBytes(hd, copyLen))
	owner.localFree(hd)
	return newPtr
}

// Destroy releases every resource owned by h and, recursively, by its
// fallback chain. Destroying System is forbidden and fatal; Destroy on a
// nil *Handle does nothing.
func (h *Handle) Destroy() {
	if h == nil {
		return
	}

	if h.Fallback != nil {
		h.Fallback.Destroy()
	}

	switch h.kind {
	case KindSystem:
		abort("handle: the system-direct sentinel cannot be destroyed")
	case KindTrackedSystem:
		h.tracked.destroy()
	case KindFixedRegion:
		h.fixed.destroy()
	case KindGrowingRegion:
		h.growing.destroy()
	default:
		abort("handle: unreachable kind in Destroy")
	}
}

// AllocateBytes is a convenience wrapper over Allocate returning a []byte
// view of the allocation.
func (h *Handle) AllocateBytes(size int) []byte {
	p := resolve(h).Allocate(size)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

// ResizeBytes is a convenience wrapper over Resize returning a []byte
// view of the (possibly moved) allocation.
func (h *Handle) ResizeBytes(buf []byte, size int) []byte {
	h = resolve(h)
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	p := h.Resize(ptr, size)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}
