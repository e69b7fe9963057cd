package calib

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/parallax-data/stereocal/internal/frames"
	"github.com/parallax-data/stereocal/internal/monitoring"
)

// Report summarises a completed focal-length calibration run for
// diagnostics and operator review.
type Report struct {
	ID              uuid.UUID
	Left            RectSides
	Right           RectSides
	LeftIntrinsics  frames.Intrinsics
	RightIntrinsics frames.Intrinsics
	Result          CorrectionResult
}

// FocalLengthRun performs one complete calibration pass: validates the
// scan-control parameters, measures the target on the left then the right
// imager's staged frames sharing a single progress counter, and derives the
// correction. Applying Result.RatioToApply to the device is the caller's
// responsibility.
func FocalLengthRun(p FocalLengthParams, left, right frames.Queue, target TargetType, detect DetectFunc, targetW, targetH, baseline float64, cb ProgressFunc) (*Report, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	progress := 0
	leftRect, leftIntr, err := TargetRectInfo(left, target, detect, &progress, cb)
	if err != nil {
		return nil, fmt.Errorf("left imager: %w", err)
	}
	rightRect, rightIntr, err := TargetRectInfo(right, target, detect, &progress, cb)
	if err != nil {
		return nil, fmt.Errorf("right imager: %w", err)
	}

	result := FocalLengthCorrectionFactor(leftRect, rightRect, leftIntr, rightIntr, targetW, targetH, baseline)
	report := &Report{
		ID:              uuid.New(),
		Left:            leftRect,
		Right:           rightRect,
		LeftIntrinsics:  leftIntr,
		RightIntrinsics: rightIntr,
		Result:          result,
	}
	monitoring.Logf("focal length run %s: ratio %.4f%%, angle %.4f deg, factor %.6f",
		report.ID, result.Ratio, result.Angle, result.RatioToApply)
	return report, nil
}
