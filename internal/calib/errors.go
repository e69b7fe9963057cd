package calib

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when a rectangle extraction starts against a
// queue with no frames in it.
var ErrEmptyBatch = errors.New("no frames in input queue")

// InvalidValueError reports the first scan-control parameter found outside
// its documented range.
type InvalidValueError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("auto calibration failed: given value of %q %d is out of range (%d - %d)",
		e.Field, e.Value, e.Min, e.Max)
}

// TargetExtractionError reports that the target-detection primitive failed
// on a frame, or that no frame in the batch yielded a usable measurement.
type TargetExtractionError struct {
	// Err is the detection primitive's failure, nil when the batch simply
	// contained no measurable frame.
	Err error
}

func (e *TargetExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract target information from the captured frames: %v", e.Err)
	}
	return "failed to extract the target rectangle info: no target found in any frame"
}

func (e *TargetExtractionError) Unwrap() error { return e.Err }
