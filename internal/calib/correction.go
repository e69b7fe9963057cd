package calib

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/parallax-data/stereocal/internal/frames"
)

// alignCorrectionFactor weights how much of the measured aspect-ratio
// misalignment is removed from the raw scale ratio.
const alignCorrectionFactor = 0.5

// sideEpsilon guards near-degenerate detections: side sums or lengths at or
// below this threshold contribute zero instead of dividing.
const sideEpsilon = 0.1

// CorrectionResult is the estimator's output. RatioToApply is the
// multiplicative correction for the focal length; Ratio and Angle are
// diagnostics.
type CorrectionResult struct {
	RatioToApply float64 // factor to multiply into the focal length
	Ratio        float64 // percent deviation after alignment correction
	Angle        float64 // estimated tilt angle between imagers, degrees
}

// aspectRatio is the horizontal/vertical side-sum ratio of a measured
// rectangle, zero when the vertical sum is near-degenerate.
func aspectRatio(rect RectSides) float64 {
	vertical := rect[2] + rect[3]
	if vertical <= sideEpsilon {
		return 0
	}
	return (rect[0] + rect[1]) / vertical
}

// groundTruthMean inverts the pinhole projection per side to estimate the
// target distance implied by each measurement, then averages. Sides with a
// non-positive measurement contribute zero but still count toward the
// divisor; downstream tuning depends on that averaging behaviour.
func groundTruthMean(rect RectSides, intr frames.Intrinsics, targetW, targetH float64) float64 {
	var gt [4]float64
	if rect[0] > 0 {
		gt[0] = intr.Fx * targetW / rect[0]
	}
	if rect[1] > 0 {
		gt[1] = intr.Fx * targetW / rect[1]
	}
	if rect[2] > 0 {
		gt[2] = intr.Fy * targetH / rect[2]
	}
	if rect[3] > 0 {
		gt[3] = intr.Fy * targetH / rect[3]
	}
	return stat.Mean(gt[:], nil)
}

// FocalLengthCorrectionFactor derives the multiplicative focal-length
// correction from the averaged left/right target rectangles, the imager
// intrinsics, the physical target dimensions, and the stereo baseline.
//
// The derivation aligns the two imagers' aspect ratios to estimate relative
// tilt, inverts the pinhole projection per side against the known target
// size, and corrects the raw left/right scale ratio by half the measured
// misalignment. Inputs are not range-checked here: callers supply finite
// positive target dimensions and a non-zero baseline magnitude.
func FocalLengthCorrectionFactor(left, right RectSides, leftIntr, rightIntr frames.Intrinsics, targetW, targetH, baseline float64) CorrectionResult {
	align := 0.0
	if arLeft := aspectRatio(left); arLeft > 0 {
		align = aspectRatio(right)/arLeft - 1
	}

	angleLeft := rad2deg(math.Atan(align * groundTruthMean(left, leftIntr, targetW, targetH) / math.Abs(baseline)))
	angleRight := rad2deg(math.Atan(align * groundTruthMean(right, rightIntr, targetW, targetH) / math.Abs(baseline)))

	// Per-side left/right scale ratios, same zero-fill averaging as the
	// ground-truth estimate.
	var r [4]float64
	c := leftIntr.Fx / rightIntr.Fx
	if left[0] > sideEpsilon {
		r[0] = c * right[0] / left[0]
	}
	if left[1] > sideEpsilon {
		r[1] = c * right[1] / left[1]
	}
	c = leftIntr.Fy / rightIntr.Fy
	if left[2] > sideEpsilon {
		r[2] = c * right[2] / left[2]
	}
	if left[3] > sideEpsilon {
		r[3] = c * right[3] / left[3]
	}
	rawRatio := (stat.Mean(r[:], nil) - 1) * 100

	ratio := rawRatio - alignCorrectionFactor*align*100
	return CorrectionResult{
		RatioToApply: ratio/100 + 1,
		Ratio:        ratio,
		Angle:        (angleLeft + angleRight) / 2,
	}
}

func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }
