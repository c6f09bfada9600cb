package allochain

import "unsafe"

// systemMake allocates size bytes directly from the Go heap and stamps
// the header with the system-direct ownership sentinel. There is no
// bookkeeping beyond the header itself: system-direct is an untracked
// passthrough, exactly as spec section 4.4 describes.
func systemMake(size int) *header {
	buf := make([]byte, totalBytes(size))
	h := (*header)(unsafe.Pointer(&buf[0]))
	h.blockCount = blocksFor(size)
	h.freelistTag = freelistTagSentinel
	return h
}

// systemOwns reports whether h carries the system-direct ownership tag.
func systemOwns(h *header) bool {
	return h != nil && h.freelistTag == freelistTagSentinel
}

// systemFree is a no-op beyond the caller dropping its last reference to
// the backing array: system-direct has no ledger to remove from, and
// this is a garbage-collected host language, so "releasing to the OS
// heap" happens automatically once nothing still points at buf.
func systemFree(h *header) {
	_ = h
}

// systemResize reallocates h to hold size bytes. If the block count is
// unchanged this is a true no-op; otherwise a fresh backing array is
// allocated, the smaller of the old/new payloads is copied over, and the
// system-direct ownership tag is carried forward.
func systemResize(h *header, size int) *header {
	need := blocksFor(size)
	if h.blockCount == need {
		return h
	}

	newH := systemMake(size)
	oldLen := actualDataSize(h)
	newLen := actualDataSize(newH)
	copyLen := oldLen
	if newLen < copyLen {
		copyLen = newLen
	}
	copy(payloadBytes(newH, copyLen), payloadBytes(h, copyLen))
	return newH
}
