package allochain

import "unsafe"

// blockSize is the allocator's alignment quantum: one 64-bit word. Every
// size handed to the allocator is rounded up to a whole number of blocks,
// so every returned pointer is aligned to at least blockSize bytes.
const blockSize = 8

// header is written in-band immediately before every user payload.
//
// freelistTag == 0 means the header is live and not tracked by any
// freelist. freelistTagSentinel marks a live system-direct allocation.
// Any other value is a one-based index into the owning freeList's
// entries slice.
type header struct {
	blockCount  uint32
	freelistTag uint32
}

const headerSize = unsafe.Sizeof(header{})

// headerBlocks is the header size expressed in blocks. The allocator
// requires this to be exact: the header must occupy a whole number of
// blocks so that header-relative pointer arithmetic never has to deal
// with partial blocks.
const headerBlocks = uint32(headerSize / blockSize)

const freelistTagSentinel = ^uint32(0)

// minAllocBlocks is the smallest number of blocks a freed span must have
// above a requested allocation for it to be worth splitting into two
// allocations rather than handed over whole.
const minAllocBlocks = 1 + headerBlocks

func init() {
	if headerSize%blockSize != 0 {
		panic("allochain: header size is not an integral number of blocks")
	}
}

// blocksFor returns the number of payload blocks needed to hold size
// bytes.
func blocksFor(size int) uint32 {
	if size <= 0 {
		return 0
	}
	return uint32((size + blockSize - 1) / blockSize)
}

// totalBytes returns the number of bytes (header + payload) a request of
// size bytes consumes once rounded to whole blocks.
func totalBytes(size int) int {
	return int(headerSize) + int(blocksFor(size))*blockSize
}

// headerFromPointer recovers the header immediately preceding a user
// pointer.
func headerFromPointer(p unsafe.Pointer) *header {
	return (*header)(unsafe.Add(p, -int(headerSize)))
}

// userPointer returns the application-visible pointer for a header: the
// first byte following the header.
func userPointer(h *header) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(h), headerSize)
}

// next returns the header that would immediately follow h if the bytes
// after h's payload are themselves a header. It may legally return a
// pointer to a region's reserved sentinel header, whose fields are
// always zero.
func next(h *header) *header {
	return (*header)(unsafe.Add(unsafe.Pointer(h), int(headerSize)+int(h.blockCount)*blockSize))
}

// payloadBytes returns a byte slice view over h's live payload, sized to
// n bytes (n must be <= h.blockCount*blockSize).
func payloadBytes(h *header, n int) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(userPointer(h)), n)
}

// actualDataSize returns the full payload capacity in bytes that h
// currently reserves (its block count expressed in bytes, which may be
// larger than the size originally requested).
func actualDataSize(h *header) int {
	return int(h.blockCount) * blockSize
}
