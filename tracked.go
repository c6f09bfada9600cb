package allochain

import "unsafe"

// trackedSystem is the tracked-system strategy: OS-heap-backed
// allocation with a freeList used purely as an ownership ledger. No
// coalescing semantics apply to the ledger; its entries are membership
// tokens, not free space (spec section 4.5).
type trackedSystem struct {
	ledger freeList
}

func newTrackedSystem() *trackedSystem {
	return &trackedSystem{}
}

func (t *trackedSystem) owns(h *header) bool {
	return t.ledger.contains(h)
}

func (t *trackedSystem) make(size int) *header {
	buf := make([]byte, totalBytes(size))
	h := (*header)(unsafe.Pointer(&buf[0]))
	h.blockCount = blocksFor(size)
	t.ledger.append(h)
	return h
}

func (t *trackedSystem) free(h *header) {
	t.ledger.remove(h)
}

// resize reallocates h to hold size bytes. If the block count is
// unchanged, this is a true no-op and no ledger update happens (the
// address did not change). Otherwise a fresh backing array replaces the
// old one and, per spec section 4.5, the ledger entry at tag-1 is
// rewritten to point at the new header.
func (t *trackedSystem) resize(h *header, size int) *header {
	need := blocksFor(size)
	if h.blockCount == need {
		return h
	}

	tag := h.freelistTag

	newBuf := make([]byte, totalBytes(size))
	newH := (*header)(unsafe.Pointer(&newBuf[0]))
	newH.blockCount = need
	newH.freelistTag = tag

	oldLen := actualDataSize(h)
	newLen := actualDataSize(newH)
	copyLen := oldLen
	if newLen < copyLen {
		copyLen = newLen
	}
	copy(payloadBytes(newH, copyLen), payloadBytes(h, copyLen))

	t.ledger.entries[tag-1] = newH
	return newH
}

func (t *trackedSystem) destroy() {
	for i := 0; i < t.ledger.len(); i++ {
		t.ledger.entries[i] = nil
	}
	t.ledger = freeList{}
}

func (t *trackedSystem) sizeInUse() int {
	sum := 0
	for i := 0; i < t.ledger.len(); i++ {
		sum += actualDataSize(t.ledger.entries[i])
	}
	return sum
}
