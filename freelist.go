package allochain

// freeList is a dense, mutable set of free headers. Every entry e at
// index i satisfies e.freelistTag == i+1; this back-reference is what
// lets remove() locate and fix up an entry in O(1) given only the
// header itself.
//
// Capacity grows to 1+2*count on overflow and is compacted back down
// when count*4 <= capacity, matching the C allocator this package is
// ported from (original_source/src/allocator.c, allocation_array_*):
// capacity is managed by hand rather than left to append()'s built-in
// growth curve so the documented law is the actual, testable behavior.
type freeList struct {
	entries []*header
	count   int
}

func (fl *freeList) len() int {
	return fl.count
}

// contains reports whether h is currently tracked by this freeList.
func (fl *freeList) contains(h *header) bool {
	if h == nil || h.freelistTag == 0 || int(h.freelistTag) > fl.count {
		return false
	}
	return fl.entries[h.freelistTag-1] == h
}

func (fl *freeList) ensureCapacity(want int) {
	if want <= cap(fl.entries) {
		return
	}
	newCap := 1 + 2*fl.count
	if newCap < want {
		newCap = want
	}
	grown := make([]*header, fl.count, newCap)
	copy(grown, fl.entries[:fl.count])
	fl.entries = grown
}

func (fl *freeList) shrinkIfNeeded() {
	if cap(fl.entries) == 0 {
		return
	}
	if fl.count*4 > cap(fl.entries) {
		return
	}
	newCap := 1 + 2*fl.count
	shrunk := make([]*header, fl.count, newCap)
	copy(shrunk, fl.entries[:fl.count])
	fl.entries = shrunk
}

// append adds h to the set and assigns its freelistTag.
func (fl *freeList) append(h *header) {
	fl.ensureCapacity(fl.count + 1)
	fl.entries = fl.entries[:fl.count+1]
	fl.entries[fl.count] = h
	fl.count++
	h.freelistTag = uint32(fl.count)
}

// remove drops h from the set. h must already be contained.
func (fl *freeList) remove(h *header) {
	if !fl.contains(h) {
		abort("freelist: remove called on header not in this freelist")
	}
	idx := h.freelistTag - 1
	last := fl.count - 1
	fl.entries[idx] = fl.entries[last]
	fl.entries[idx].freelistTag = idx + 1
	fl.entries[last] = nil
	fl.count--
	fl.entries = fl.entries[:fl.count]
	h.freelistTag = 0
	fl.shrinkIfNeeded()
}

// takeBlocksFrom attempts to satisfy a needed-block request from member,
// which must already be contained in fl. Returns the number of blocks
// the caller now owns (header + payload), or 0 if member does not have
// enough space. The caller may receive more blocks than requested when
// the surplus is too small to host a second allocation.
func (fl *freeList) takeBlocksFrom(member *header, needed uint32) uint32 {
	available := member.blockCount + headerBlocks

	if available < needed {
		return 0
	}

	if available < needed+minAllocBlocks {
		fl.remove(member)
		return available
	}

	remaining := available - needed
	member.blockCount = needed - headerBlocks
	newFree := next(member)
	newFree.blockCount = remaining - headerBlocks
	newFree.freelistTag = member.freelistTag
	fl.entries[member.freelistTag-1] = newFree
	return needed
}

// join inserts a freshly freed header h (h.freelistTag must be 0),
// coalescing with adjacent free neighbours where possible. Mirrors
// allocation_array_join_allocation in original_source/src/allocator.c:
//  1. absorb the right neighbour if it is free (O(1): its tag directly
//     names its slot);
//  2. scan for a left neighbour whose "next" header is h; if found, its
//     block count absorbs h's span and, if step 1 already gave h a
//     freelist entry, that entry is removed since the span it covered is
//     now part of the left neighbour's entry;
//  3. otherwise, if h was not linked by step 1, append it as a new entry.
func (fl *freeList) join(h *header) {
	if h.freelistTag != 0 {
		abort("freelist: join called on header already in a freelist")
	}

	right := next(h)
	if fl.contains(right) {
		h.freelistTag = right.freelistTag
		h.blockCount += right.blockCount + headerBlocks
		fl.entries[h.freelistTag-1] = h
	}

	for i := 0; i < fl.count; i++ {
		before := fl.entries[i]
		if next(before) == h {
			before.blockCount += h.blockCount + headerBlocks
			if h.freelistTag != 0 {
				fl.remove(h)
			}
			return
		}
	}

	if h.freelistTag == 0 {
		fl.append(h)
	}
}
