package allochain

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNilHandleResolvesToSystem(t *testing.T) {
	var h *Handle
	p := h.Allocate(16)
	require.NotNil(t, p)
	System.Free(p)
}

func TestAllocateZeroSizeReturnsNil(t *testing.T) {
	require.Nil(t, System.Allocate(0))
}

func TestAllocateZeroedClearsMemory(t *testing.T) {
	h := NewTrackedSystem()
	p := h.AllocateZeroed(4, 4)
	view := unsafe.Slice((*byte)(p), 16)
	for _, b := range view {
		require.Zero(t, b)
	}
}

func TestCopyFromCopiesPayload(t *testing.T) {
	h := NewTrackedSystem()
	src := h.AllocateBytes(8)
	for i := range src {
		src[i] = byte(i + 1)
	}

	dstPtr := h.CopyFrom(unsafe.Pointer(&src[0]), 8)
	require.NotNil(t, dstPtr)
	dst := unsafe.Slice((*byte)(dstPtr), 8)
	require.Equal(t, src, dst)
}

func TestFreeNilIsNoop(t *testing.T) {
	require.NotPanics(t, func() { System.Free(nil) })
}

func TestFreeUnownedPointerAborts(t *testing.T) {
	h := NewTrackedSystem()
	other := NewTrackedSystem()
	p := other.Allocate(16)
	require.Panics(t, func() { h.Free(p) })
}

func TestResizeZeroSizeActsLikeFree(t *testing.T) {
	h := NewTrackedSystem()
	p := h.Allocate(16)
	result := h.Resize(p, 0)
	require.Nil(t, result)
}

func TestResizeNilPointerActsLikeAllocate(t *testing.T) {
	h := NewTrackedSystem()
	result := h.Resize(nil, 16)
	require.NotNil(t, result)
}

func TestResizeInPlaceWithinFixedRegion(t *testing.T) {
	h, err := NewFixedRegion(make([]byte, 256), true)
	require.NoError(t, err)

	p := h.Allocate(8)
	resized := h.Resize(p, 24)
	require.Equal(t, p, resized, "growing into trailing free space should not move the pointer")
}

func TestResizeMigratesAcrossFallbackChain(t *testing.T) {
	fixed, err := NewFixedRegion(make([]byte, 40), true)
	require.NoError(t, err)
	fixed.Fallback = NewTrackedSystem()

	p := fixed.Allocate(8)
	view := unsafe.Slice((*byte)(p), 8)
	for i := range view {
		view[i] = byte(i + 1)
	}

	// Ask for far more than the fixed region can ever hold; this forces a
	// migration to the fallback tracked-system strategy.
	resized := fixed.Resize(p, 1<<16)
	require.NotNil(t, resized)

	newView := unsafe.Slice((*byte)(resized), 8)
	require.Equal(t, view, newView)

	hd := headerFromPointer(resized)
	require.True(t, fixed.Fallback.localOwns(hd))
}

func TestDestroySystemAborts(t *testing.T) {
	require.Panics(t, func() { System.Destroy() })
}

func TestDestroyNilHandleIsNoop(t *testing.T) {
	var h *Handle
	require.NotPanics(t, func() { h.Destroy() })
}

func TestDestroyRecursesIntoFallback(t *testing.T) {
	inner := NewTrackedSystem()
	outer, err := NewFixedRegion(make([]byte, 64), true)
	require.NoError(t, err)
	outer.Fallback = inner

	inner.localMake(8) // an allocation that would be left dangling if destroy skipped the fallback
	require.NotPanics(t, func() { outer.Destroy() })
}

func TestAllocateFallsThroughChainWhenLocalStrategyIsFull(t *testing.T) {
	fixed, err := NewFixedRegion(make([]byte, 24), true)
	require.NoError(t, err)
	fixed.Fallback = NewTrackedSystem()

	p := fixed.Allocate(1 << 16)
	require.NotNil(t, p)

	hd := headerFromPointer(p)
	require.True(t, fixed.Fallback.localOwns(hd))
}

func TestResizeBytesTracksMovedSlice(t *testing.T) {
	h := NewTrackedSystem()
	buf := h.AllocateBytes(8)
	buf[0] = 9

	grown := h.ResizeBytes(buf, 64)
	require.Len(t, grown, 64)
	require.Equal(t, byte(9), grown[0])
}
