package allochain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFixedRegionRejectsUndersizedBuffer(t *testing.T) {
	_, err := newFixedRegion(make([]byte, 2), true)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestFixedRegionMakeAndOwns(t *testing.T) {
	fr, err := newFixedRegion(make([]byte, 128), true)
	require.NoError(t, err)

	h := fr.make(32)
	require.NotNil(t, h)
	require.True(t, fr.owns(h))
}

func TestFixedRegionNeverGrowsBeyondBuffer(t *testing.T) {
	fr, err := newFixedRegion(make([]byte, 32), true)
	require.NoError(t, err)
	require.Nil(t, fr.make(1<<20))
}

func TestFixedRegionResizeFallsBackToNilWhenNoRoom(t *testing.T) {
	fr, err := newFixedRegion(make([]byte, 32), true)
	require.NoError(t, err)
	h := fr.make(8)
	require.Nil(t, fr.resize(h, 1<<20))
}

func TestFixedRegionDestroyReleasesOwnedMemory(t *testing.T) {
	var released []byte
	fr, err := newFixedRegion(make([]byte, 64), true)
	require.NoError(t, err)
	fr.r.release = func(b []byte) error {
		released = b
		return nil
	}
	fr.destroy()
	require.NotNil(t, released)
}

func TestFixedRegionDestroySkipsReleaseWhenNotOwning(t *testing.T) {
	called := false
	fr, err := newFixedRegion(make([]byte, 64), false)
	require.NoError(t, err)
	fr.r.release = func(b []byte) error {
		called = true
		return nil
	}
	fr.destroy()
	require.False(t, called)
}
