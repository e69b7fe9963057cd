package calib

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parallax-data/stereocal/internal/frames"
)

func stagedQueue(n int, intr frames.Intrinsics) *frames.MemoryQueue {
	q := frames.NewMemoryQueue(n)
	for i := 0; i < n; i++ {
		q.Enqueue(frames.NewImageFrame([]byte{0xff}, intr))
	}
	return q
}

func TestFocalLengthRunMatchedPair(t *testing.T) {
	intr := frames.Intrinsics{Fx: 640, Fy: 641}
	left := stagedQueue(3, intr)
	right := stagedQueue(3, intr)

	var reported []float64
	report, err := FocalLengthRun(validParams(), left, right,
		TargetRectGaussianDotVertices, detectConstant(RectSides{120, 120, 80, 80}),
		175, 100, 50,
		func(v float64) { reported = append(reported, v) })
	require.NoError(t, err)

	// One shared counter across both imagers.
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, reported)
	assert.NotEqual(t, uuid.Nil, report.ID)

	want := RectSides{120, 120, 80, 80}
	if diff := cmp.Diff(want, report.Left); diff != "" {
		t.Errorf("left rect mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, report.Right); diff != "" {
		t.Errorf("right rect mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1.0, report.Result.RatioToApply, 1e-12)
	assert.InDelta(t, 0.0, report.Result.Angle, 1e-12)
}

func TestFocalLengthRunRejectsBadParamsBeforeDraining(t *testing.T) {
	left := stagedQueue(2, frames.Intrinsics{Fx: 640, Fy: 640})
	right := stagedQueue(2, frames.Intrinsics{Fx: 640, Fy: 640})

	p := validParams()
	p.StepCount = 300
	_, err := FocalLengthRun(p, left, right,
		TargetRectGaussianDotVertices, detectConstant(RectSides{1, 1, 1, 1}),
		175, 100, 50, nil)

	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "step_count", ive.Field)
	// Queues untouched on validation failure.
	assert.Equal(t, 2, left.Size())
	assert.Equal(t, 2, right.Size())
}

func TestFocalLengthRunPropagatesEmptyQueue(t *testing.T) {
	left := stagedQueue(2, frames.Intrinsics{Fx: 640, Fy: 640})
	right := frames.NewMemoryQueue(2)

	_, err := FocalLengthRun(validParams(), left, right,
		TargetRectGaussianDotVertices, detectConstant(RectSides{1, 1, 1, 1}),
		175, 100, 50, nil)
	require.ErrorIs(t, err, ErrEmptyBatch)
	assert.ErrorContains(t, err, "right imager")
}
