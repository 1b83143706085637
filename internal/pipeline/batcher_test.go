package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carvekit/carvepipe/internal/video"
)

func TestBatcher_FullAndShortBatches(t *testing.T) {
	// 100 frames at capacity 32 must batch as [32, 32, 32, 4].
	src := newMemSource(makeFrames(100, 4, 4))
	b := NewBatcher(src, 32)

	var sizes []int
	var starts []int
	for {
		batch, err := b.Next()
		if errors.Is(err, video.ErrEndOfStream) {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, batch.Len())
		starts = append(starts, batch.Start)
	}

	require.Equal(t, []int{32, 32, 32, 4}, sizes)
	require.Equal(t, []int{0, 32, 64, 96}, starts)
}

func TestBatcher_PreservesFrameOrder(t *testing.T) {
	src := newMemSource(makeFrames(10, 2, 2))
	b := NewBatcher(src, 4)

	next := 0
	for {
		batch, err := b.Next()
		if errors.Is(err, video.ErrEndOfStream) {
			break
		}
		require.NoError(t, err)
		for _, f := range batch.Frames {
			require.Equal(t, next, f.Index)
			next++
		}
	}
	require.Equal(t, 10, next)
}

func TestBatcher_EmptyStream(t *testing.T) {
	src := newMemSource(nil)
	b := NewBatcher(src, 32)

	batch, err := b.Next()
	require.ErrorIs(t, err, video.ErrEndOfStream)
	require.Nil(t, batch)
}

func TestBatcher_ExactMultipleEndsWithEndOfStream(t *testing.T) {
	src := newMemSource(makeFrames(8, 2, 2))
	b := NewBatcher(src, 4)

	for i := 0; i < 2; i++ {
		batch, err := b.Next()
		require.NoError(t, err)
		require.Equal(t, 4, batch.Len())
	}

	_, err := b.Next()
	require.ErrorIs(t, err, video.ErrEndOfStream)
}

func TestBatcher_ReadErrorIsFatal(t *testing.T) {
	src := newMemSource(makeFrames(10, 2, 2))
	src.failAt = 3
	src.readErr = fmt.Errorf("decoder crashed")

	b := NewBatcher(src, 4)
	batch, err := b.Next()
	require.Error(t, err)
	require.NotErrorIs(t, err, video.ErrEndOfStream)
	require.Contains(t, err.Error(), "decoder crashed")
	require.Nil(t, batch)
}
