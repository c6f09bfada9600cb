package allochain

import "unsafe"

// region is a contiguous byte buffer managed by bump allocation plus a
// coalescing freelist for reclaimed space. It underlies both the
// fixed-region and growing-region strategies.
type region struct {
	buf        []byte
	blockCount int
	head       int // bump pointer, in blocks from the start of buf
	end        int // exclusive bound, in blocks; reserves headerBlocks for the sentinel
	freelist   freeList
	ownsMemory bool

	// release, when set, is called on destroy instead of simply
	// dropping buf. Used by mmap-backed regions (mmap_unix.go) to call
	// munmap instead of relying on garbage collection.
	release func([]byte) error
}

// initRegion sets up r over buf. The final headerBlocks worth of blocks
// are reserved and zeroed so that walking past the last live allocation
// always lands on a readable, all-zero header.
func initRegion(r *region, buf []byte, ownsMemory bool) error {
	blockCount := len(buf) / blockSize
	if blockCount < int(headerBlocks) {
		return ErrBufferTooSmall
	}

	*r = region{
		buf:        buf,
		blockCount: blockCount,
		head:       0,
		end:        blockCount - int(headerBlocks),
		ownsMemory: ownsMemory,
	}

	sentinel := r.headerAt(r.end)
	*sentinel = header{}
	return nil
}

func (r *region) headerAt(blockOffset int) *header {
	return (*header)(unsafe.Pointer(&r.buf[blockOffset*blockSize]))
}

func (r *region) blockOffsetOf(h *header) int {
	return int((uintptr(unsafe.Pointer(h)) - uintptr(unsafe.Pointer(&r.buf[0]))) / blockSize)
}

// contains reports whether h lies within r's backing buffer.
func (r *region) contains(h *header) bool {
	if h == nil || len(r.buf) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(&r.buf[0]))
	hi := lo + uintptr(r.end*blockSize)
	p := uintptr(unsafe.Pointer(h))
	return p >= lo && p < hi
}

func (r *region) tryAdvanceHead(blocks int) bool {
	proposed := r.head + blocks
	if proposed > r.end {
		return false
	}
	r.head = proposed
	return true
}

// make allocates size bytes from r, trying the freelist before the bump
// pointer. Returns nil if r cannot satisfy the request locally.
func (r *region) make(size int) *header {
	needed := blocksFor(size) + headerBlocks

	if r.end-r.head < int(needed) && r.freelist.len() == 0 {
		return nil
	}

	for i := 0; i < r.freelist.len(); i++ {
		candidate := r.freelist.entries[i]
		allocated := r.freelist.takeBlocksFrom(candidate, needed)
		if allocated == 0 {
			continue
		}
		candidate.freelistTag = 0
		candidate.blockCount = allocated - headerBlocks
		return candidate
	}

	h := r.headerAt(r.head)
	if r.tryAdvanceHead(int(needed)) {
		h.blockCount = needed - headerBlocks
		h.freelistTag = 0
		return h
	}

	return nil
}

// free releases h back to r. Caller must ensure h belongs to r.
func (r *region) free(h *header) {
	tail := next(h)
	if r.blockOffsetOf(tail) == r.head {
		r.head -= int(headerBlocks + h.blockCount)
		return
	}
	r.freelist.join(h)
}

// resizeInPlace attempts to grow or shrink h to hold size bytes without
// moving it. Returns true on success.
func (r *region) resizeInPlace(h *header, size int) bool {
	need := blocksFor(size)

	if h.blockCount >= need+minAllocBlocks {
		remaining := h.blockCount - need
		tail := next(h)
		if r.blockOffsetOf(tail) == r.head {
			r.head -= int(remaining)
			h.blockCount = need
			return true
		}
		h.blockCount = need
		remainder := next(h)
		remainder.blockCount = remaining - headerBlocks
		remainder.freelistTag = 0
		r.freelist.join(remainder)
		return true
	}

	if h.blockCount < need {
		extra := need - h.blockCount
		tail := next(h)

		if r.blockOffsetOf(tail) == r.head {
			if !r.tryAdvanceHead(int(extra)) {
				return false
			}
			h.blockCount += extra
			return true
		}

		if r.freelist.contains(tail) {
			taken := r.freelist.takeBlocksFrom(tail, extra)
			if taken == 0 {
				return false
			}
			h.blockCount += taken
			return true
		}

		return false
	}

	return true
}

// sizeInUse returns the number of live payload bytes currently allocated
// in r, not counting headers: it walks the headers in [0, head) and sums
// the payloads of those not in the freelist.
func (r *region) sizeInUse() int {
	inUse := 0
	for off := 0; off < r.head; {
		h := r.headerAt(off)
		if h.freelistTag == 0 {
			inUse += actualDataSize(h)
		}
		off += int(headerBlocks + h.blockCount)
	}
	return inUse
}

func (r *region) capacity() int {
	return r.end * blockSize
}
