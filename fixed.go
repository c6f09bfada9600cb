package allochain

// fixedRegion wraps exactly one region and never grows (spec section
// 4.6).
type fixedRegion struct {
	r region
}

func newFixedRegion(buf []byte, ownsMemory bool) (*fixedRegion, error) {
	fr := &fixedRegion{}
	if err := initRegion(&fr.r, buf, ownsMemory); err != nil {
		return nil, err
	}
	return fr, nil
}

func (fr *fixedRegion) owns(h *header) bool {
	return fr.r.contains(h)
}

func (fr *fixedRegion) make(size int) *header {
	return fr.r.make(size)
}

func (fr *fixedRegion) free(h *header) {
	fr.r.free(h)
}

func (fr *fixedRegion) resize(h *header, size int) *header {
	if fr.r.resizeInPlace(h, size) {
		return h
	}
	return nil
}

func (fr *fixedRegion) destroy() {
	if fr.r.ownsMemory && fr.r.release != nil {
		if err := fr.r.release(fr.r.buf); err != nil {
			abort("fixed-region: failed to release backing memory: " + err.Error())
		}
	}
	fr.r = region{}
}
