package allochain

// growingRegion is a vector of regions sized regionSize bytes each. A
// new region is appended whenever none of the existing ones can satisfy
// a request (spec section 4.6).
type growingRegion struct {
	regions    []*region
	regionSize int
}

func newGrowingRegion(regionSize int) (*growingRegion, error) {
	if regionSize < int(headerSize)+blockSize {
		return nil, ErrRegionTooSmall
	}
	return &growingRegion{regionSize: regionSize}, nil
}

func (g *growingRegion) addRegion() *region {
	r := &region{}
	if err := initRegion(r, make([]byte, g.regionSize), true); err != nil {
		abort("growing-region: failed to initialize a fresh region: " + err.Error())
	}
	g.regions = append(g.regions, r)
	return r
}

func (g *growingRegion) findOwner(h *header) (*region, int) {
	for i, r := range g.regions {
		if r.contains(h) {
			return r, i
		}
	}
	return nil, -1
}

func (g *growingRegion) owns(h *header) bool {
	r, _ := g.findOwner(h)
	return r != nil
}

func (g *growingRegion) make(size int) *header {
	if size > g.regionSize {
		return nil
	}

	for _, r := range g.regions {
		if h := r.make(size); h != nil {
			return h
		}
	}

	r := g.addRegion()
	return r.make(size)
}

func (g *growingRegion) free(h *header) {
	r, _ := g.findOwner(h)
	if r == nil {
		abort("growing-region: free called on a header owned by no region")
	}
	r.free(h)
}

// resize attempts in-place growth within the owning region first; on
// failure it allocates fresh space from the growing strategy itself
// (which may append a new region), copies the payload, and frees the
// original from its region.
func (g *growingRegion) resize(h *header, size int) *header {
	if size > g.regionSize {
		return nil
	}

	owner, _ := g.findOwner(h)
	if owner == nil {
		abort("growing-region: resize called on a header owned by no region")
	}

	if owner.resizeInPlace(h, size) {
		return h
	}

	newH := g.make(size) // may append a region; owner stays valid since regions are never reordered
	if newH == nil {
		return nil
	}

	oldLen := actualDataSize(h)
	newLen := actualDataSize(newH)
	copyLen := oldLen
	if newLen < copyLen {
		copyLen = newLen
	}
	copy(payloadBytes(newH, copyLen), payloadBytes(h, copyLen))
	owner.free(h)
	return newH
}

func (g *growingRegion) destroy() {
	for _, r := range g.regions {
		if r.ownsMemory && r.release != nil {
			if err := r.release(r.buf); err != nil {
				abort("growing-region: failed to release a region's backing memory: " + err.Error())
			}
		}
	}
	g.regions = nil
}

func (g *growingRegion) sizeInUse() int {
	sum := 0
	for _, r := range g.regions {
		sum += r.sizeInUse()
	}
	return sum
}

func (g *growingRegion) capacity() int {
	sum := 0
	for _, r := range g.regions {
		sum += r.capacity()
	}
	return sum
}
