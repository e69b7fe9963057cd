// Package calib implements the focal-length correction core for stereo
// depth cameras: scan-parameter validation, per-imager target-rectangle
// measurement over a batch of captured frames, and the closed-form
// derivation of the correction factor from the left/right measurements.
//
// Each operation is self-contained given its inputs; no state is retained
// across calls. Frame acquisition, device lifecycle, and persistence of the
// resulting coefficients belong to the caller.
package calib
