package calib

import (
	"gonum.org/v1/gonum/stat"

	"github.com/parallax-data/stereocal/internal/frames"
)

// RectSides holds the four measured side lengths (pixels) of a detected
// calibration target. Index convention: [0] and [1] are the horizontal
// sides, [2] and [3] the vertical sides.
type RectSides [4]float64

// TargetType selects which calibration target the detection primitive
// should look for in a frame.
type TargetType int

const (
	// TargetRectGaussianDotVertices measures the rectangle spanned by the
	// four Gaussian-dot vertices of the standard focal-length target.
	TargetRectGaussianDotVertices TargetType = iota
	// TargetPosGaussianDotVertices locates the dot vertices themselves
	// rather than the rectangle sides.
	TargetPosGaussianDotVertices
)

// DetectFunc is the target-detection primitive: given a frame with pixel
// data and a target selector, it returns the four measured side lengths or
// an error when the target cannot be found.
type DetectFunc func(f frames.Frame, target TargetType) (RectSides, error)

// ProgressFunc receives absolute progress values during a drain, one call
// per dequeued frame. It runs synchronously on the calling goroutine and
// must not block.
type ProgressFunc func(progress float64)

// TargetRectInfo drains the frames currently enqueued on q, measures the
// calibration target in each data-bearing frame with detect, and returns
// the element-wise mean rectangle together with the imager's intrinsics.
//
// The queue size is read once at entry: frames arriving during the drain
// are left for the next call, so the operation is bounded and never blocks.
// Intrinsics come from the first data-bearing frame and are assumed
// constant across the batch. Each dequeued frame is released immediately
// after measurement, before the progress callback fires, so at most one
// frame's pixel data is live at a time. progress is incremented once per
// dequeued frame and its new value passed to cb when cb is non-nil.
//
// Returns ErrEmptyBatch when the queue is empty at entry, and a
// *TargetExtractionError when detection fails on any frame or when no frame
// yielded a measurement.
func TargetRectInfo(q frames.Queue, target TargetType, detect DetectFunc, progress *int, cb ProgressFunc) (RectSides, frames.Intrinsics, error) {
	var rect RectSides
	var intr frames.Intrinsics

	queueSize := q.Size()
	if queueSize == 0 {
		return rect, intr, ErrEmptyBatch
	}

	haveIntrinsics := false
	var sides [4][]float64
	for fc := 0; fc < queueSize; fc++ {
		f, ok := q.Poll()
		if !ok {
			break
		}
		err := func() error {
			defer f.Release()
			if !f.HasData() {
				return nil
			}
			if !haveIntrinsics {
				intr = f.Profile().Intrinsics()
				haveIntrinsics = true
			}
			cur, err := detect(f, target)
			if err != nil {
				return &TargetExtractionError{Err: err}
			}
			for i, v := range cur {
				sides[i] = append(sides[i], v)
			}
			return nil
		}()
		if err != nil {
			return rect, intr, err
		}

		(*progress)++
		if cb != nil {
			cb(float64(*progress))
		}
	}

	if len(sides[0]) == 0 {
		return rect, intr, &TargetExtractionError{}
	}
	for i := range rect {
		rect[i] = stat.Mean(sides[i], nil)
	}
	return rect, intr, nil
}
