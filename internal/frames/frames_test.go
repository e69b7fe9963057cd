package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parallax-data/stereocal/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func testIntrinsics() Intrinsics {
	return Intrinsics{Width: 1280, Height: 720, PPX: 640, PPY: 360, Fx: 640.5, Fy: 641.2}
}

func TestImageFrameRelease(t *testing.T) {
	f := NewImageFrame([]byte{1, 2, 3}, testIntrinsics())
	require.True(t, f.HasData())
	assert.NotEmpty(t, f.ID())
	assert.Equal(t, 640.5, f.Profile().Intrinsics().Fx)

	f.Release()
	assert.False(t, f.HasData())
	assert.Nil(t, f.Data())

	// Double release is a no-op.
	f.Release()
	assert.False(t, f.HasData())
}

func TestImageFrameEmptyData(t *testing.T) {
	f := NewImageFrame(nil, testIntrinsics())
	assert.False(t, f.HasData())
}

func TestMemoryQueueFIFO(t *testing.T) {
	q := NewMemoryQueue(4)
	first := NewImageFrame([]byte{1}, testIntrinsics())
	second := NewImageFrame([]byte{2}, testIntrinsics())
	q.Enqueue(first)
	q.Enqueue(second)
	require.Equal(t, 2, q.Size())

	got, ok := q.Poll()
	require.True(t, ok)
	assert.Equal(t, first.ID(), got.(*ImageFrame).ID())

	got, ok = q.Poll()
	require.True(t, ok)
	assert.Equal(t, second.ID(), got.(*ImageFrame).ID())

	_, ok = q.Poll()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Size())
}

func TestMemoryQueueEvictsOldestWhenFull(t *testing.T) {
	q := NewMemoryQueue(2)
	oldest := NewImageFrame([]byte{1}, testIntrinsics())
	q.Enqueue(oldest)
	q.Enqueue(NewImageFrame([]byte{2}, testIntrinsics()))
	q.Enqueue(NewImageFrame([]byte{3}, testIntrinsics()))

	require.Equal(t, 2, q.Size())
	// The evicted frame must have been released.
	assert.False(t, oldest.HasData())

	got, ok := q.Poll()
	require.True(t, ok)
	assert.Equal(t, []byte{2}, got.(*ImageFrame).Data())
}

func TestMemoryQueueMinimumCapacity(t *testing.T) {
	q := NewMemoryQueue(0)
	q.Enqueue(NewImageFrame([]byte{1}, testIntrinsics()))
	q.Enqueue(NewImageFrame([]byte{2}, testIntrinsics()))
	assert.Equal(t, 1, q.Size())
}
