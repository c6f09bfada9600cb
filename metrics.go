package allochain

// Metrics is a snapshot of a single Handle's statistics. It does not
// aggregate across a fallback chain — call Metrics() on each handle in
// the chain to see the whole picture, since each strategy owns its
// memory independently.
type Metrics struct {
	Kind        Kind
	SizeInUse   int     // live payload bytes, not counting headers
	Capacity    int     // total bytes of this handle's own regions (0 for system/tracked-system)
	NumRegions  int     // number of regions backing this handle (0 for system/tracked-system)
	Utilization float64 // SizeInUse / Capacity, or 0 if Capacity is 0
}

// Metrics returns a snapshot of h's own statistics (not its fallback
// chain's).
func (h *Handle) Metrics() Metrics {
	h = resolve(h)

	m := Metrics{Kind: h.kind}

	switch h.kind {
	case KindSystem:
		// System is untracked by design: it keeps no bookkeeping to
		// report beyond its kind.
	case KindTrackedSystem:
		m.SizeInUse = h.tracked.sizeInUse()
	case KindFixedRegion:
		m.SizeInUse = h.fixed.r.sizeInUse()
		m.Capacity = h.fixed.r.capacity()
		m.NumRegions = 1
	case KindGrowingRegion:
		m.SizeInUse = h.growing.sizeInUse()
		m.Capacity = h.growing.capacity()
		m.NumRegions = len(h.growing.regions)
	}

	if m.Capacity > 0 {
		m.Utilization = float64(m.SizeInUse) / float64(m.Capacity)
	}

	return m
}
