package calib

// FocalLengthParams are the scan-control parameters governing a
// focal-length calibration run. They are fixed for the duration of a run
// once validated.
type FocalLengthParams struct {
	StepCount                       int
	FyScanRange                     int
	KeepNewValueAfterSuccessfulScan int
	InterruptDataSampling           int
	AdjustBothSides                 int
	FLScanLocation                  int
	FyScanDirection                 int
	WhiteWallMode                   int
}

// paramRange is one field's documented closed range. Evaluation order is
// part of the contract: the first out-of-range field determines the error.
type paramRange struct {
	name     string
	value    int
	min, max int
}

// Check validates every parameter against its documented range and returns
// an *InvalidValueError for the first violation, in declared order.
func (p FocalLengthParams) Check() error {
	ranges := []paramRange{
		{"step_count", p.StepCount, 8, 256},
		{"fy_scan_range", p.FyScanRange, 1, 60000},
		{"keep_new_value_after_successful_scan", p.KeepNewValueAfterSuccessfulScan, 0, 1},
		{"interrupt_data_sampling", p.InterruptDataSampling, 0, 1},
		{"adjust_both_sides", p.AdjustBothSides, 0, 1},
		{"fl_scan_location", p.FLScanLocation, 0, 1},
		{"fy_scan_direction", p.FyScanDirection, 0, 1},
		{"white_wall_mode", p.WhiteWallMode, 0, 1},
	}
	for _, r := range ranges {
		if r.value < r.min || r.value > r.max {
			return &InvalidValueError{Field: r.name, Value: r.value, Min: r.min, Max: r.max}
		}
	}
	return nil
}
