package allochain

import (
	"errors"
	"io"
	"log/slog"
)

// Sentinel errors returned by constructors that fail for a
// caller-visible, recoverable reason. Allocate/Resize failures are
// reported as a nil pointer, not as an error. Ownership violations and other process-terminating conditions
// (spec section 5) are not represented as errors — they go through
// abort() instead.
var (
	// ErrBufferTooSmall is returned by NewFixedRegion when the supplied
	// buffer cannot hold even the reserved sentinel header.
	ErrBufferTooSmall = errors.New("allochain: buffer too small for a region")

	// ErrRegionTooSmall is returned by NewGrowingRegion when regionSize
	// is smaller than one header plus one block.
	ErrRegionTooSmall = errors.New("allochain: region size must be at least header+block")

	// ErrMmapUnsupported is returned by NewFixedRegionFromMmap on
	// platforms without an mmap syscall binding.
	ErrMmapUnsupported = errors.New("allochain: mmap-backed regions are not supported on this platform")
)

// logger is the package-level diagnostic logger, defaulting to a
// discarding handler so that embedding a *Handle costs nothing until
// the caller opts in. Mirrors the hiveexplorer/logger convention of a
// package-level *slog.Logger replaceable via a setter.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger installs l as the package-level diagnostic logger used to
// record fatal conditions before abort() panics. Passing nil restores
// the discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// abort reports a process-terminating condition (spec section 5:
// ownership violation, sentinel destroy, or bookkeeping overflow) and
// panics. Every abort() call site names the invariant it is enforcing.
func abort(msg string, args ...any) {
	logger.Error(msg, args...)
	panic("allochain: " + msg)
}
