//go:build unix

package allochain

import "golang.org/x/sys/unix"

// NewFixedRegionFromMmap creates a fixed-region handle backed by an
// anonymous mmap mapping instead of a Go-heap slice. This is useful for
// large scratch arenas that should not be scanned or moved by the
// garbage collector, mirroring how internal/mmap wraps unix.Mmap/
// unix.Munmap to back a region with page-aligned memory.
//
// Destroy on the returned handle calls unix.Munmap instead of dropping a
// Go slice reference.
func NewFixedRegionFromMmap(size int) (*Handle, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	fr, err := newFixedRegion(buf, true)
	if err != nil {
		_ = unix.Munmap(buf)
		return nil, err
	}
	fr.r.release = unix.Munmap

	return &Handle{kind: KindFixedRegion, fixed: fr}, nil
}
