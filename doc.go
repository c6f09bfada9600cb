// Package allochain implements a pluggable, composable memory allocator.
//
// # Overview
//
// A Handle is the package's single polymorphic type: it selects one of
// four allocation strategies and may carry an optional fallback handle
// consulted whenever its own strategy cannot satisfy a request. All four
// strategies share the same in-band header layout, so pointers can move
// between them (via Resize's cross-strategy migration) and be freed
// through whichever handle in a chain actually owns them.
//
//   - System: an untracked passthrough to the Go heap. This is the
//     package-level System sentinel; a nil *Handle is treated as System
//     everywhere except Destroy, where it is a no-op.
//   - TrackedSystem: Go-heap-backed allocation recorded in an ownership
//     ledger, so a fallback chain can still route Free/Resize correctly.
//   - FixedRegion: exactly one bump-allocated region over caller-supplied
//     memory. Never grows.
//   - GrowingRegion: a vector of regions, appending a fresh one whenever
//     none of the existing regions can serve a request.
//
// # Basic Usage
//
//	h, err := allochain.NewFixedRegion(make([]byte, 4096), true)
//	if err != nil { ... }
//	defer h.Destroy()
//
//	buf := h.AllocateBytes(128)
//	buf = h.ResizeBytes(buf, 256)
//	h.Free(unsafe.Pointer(&buf[0]))
//
// A fallback chain lets a bounded strategy spill into an unbounded one:
//
//	h, _ := allochain.NewFixedRegion(make([]byte, 4096), true)
//	h.Fallback = allochain.NewTrackedSystem()
//
// # Thread Safety
//
// Handle and its strategies are not thread-safe; all operations must be
// serialized by the caller. For concurrent access, wrap a Handle in a
// SafeHandle:
//
//	safe := allochain.NewSafeHandle(h)
//	defer safe.Destroy()
//	buf := safe.Allocate(128)
//
// # Memory Layout
//
// Every allocation is preceded in memory by an 8-byte header carrying a
// block count and a freelist tag. Sizes are rounded up to whole 8-byte
// blocks, so every returned pointer is aligned to at least 8 bytes.
// Region strategies bump-allocate from the head of their backing buffer
// and reclaim freed spans into a coalescing freelist; freed blocks at
// the tail of a region simply retract the bump pointer instead of
// entering the freelist.
//
// # Resize Semantics
//
// Resize tries, in order: no-op (block count unchanged), a resize within
// the owning strategy (in place for regions when room allows, a move into
// another of its own regions for a growing region, a copy into a fresh
// block for system and tracked-system), and finally migration — a fresh
// allocation from the root of the fallback chain, a copy of
// min(old, new) payload bytes, and a free of the original through
// whichever handle actually owned it.
//
// # Important Notes
//
//   - Allocating 0 bytes always returns a nil pointer.
//   - Freeing or resizing a pointer that no handle in the chain owns is
//     a fatal condition: it logs and panics rather than returning an
//     error, matching this package's C origins where such a call is
//     undefined behavior.
//   - Destroying the System sentinel is fatal.
//
// # Metrics
//
// Handle.Metrics returns a snapshot of a single handle's own usage (not
// its fallback chain's):
//
//	m := h.Metrics()
//	fmt.Printf("utilization: %.2f%%\n", m.Utilization*100)
package allochain
