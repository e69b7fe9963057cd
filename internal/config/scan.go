// Package config loads and validates calibration scan configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parallax-data/stereocal/internal/calib"
)

// ScanConfig holds the scan-control parameters and target geometry for a
// focal-length calibration run. Fields are pointers so a partial JSON file
// only overrides what it names; the Get* accessors supply defaults.
type ScanConfig struct {
	// Scan-control params
	StepCount                       *int `json:"step_count,omitempty"`
	FyScanRange                     *int `json:"fy_scan_range,omitempty"`
	KeepNewValueAfterSuccessfulScan *int `json:"keep_new_value_after_successful_scan,omitempty"`
	InterruptDataSampling           *int `json:"interrupt_data_sampling,omitempty"`
	AdjustBothSides                 *int `json:"adjust_both_sides,omitempty"`
	FLScanLocation                  *int `json:"fl_scan_location,omitempty"`
	FyScanDirection                 *int `json:"fy_scan_direction,omitempty"`
	WhiteWallMode                   *int `json:"white_wall_mode,omitempty"`

	// Physical setup
	TargetWidthMM  *float64 `json:"target_width_mm,omitempty"`
	TargetHeightMM *float64 `json:"target_height_mm,omitempty"`
	BaselineMM     *float64 `json:"baseline_mm,omitempty"`
}

// EmptyScanConfig returns a ScanConfig with all fields unset.
func EmptyScanConfig() *ScanConfig {
	return &ScanConfig{}
}

// LoadScanConfig loads a ScanConfig from a JSON file. The file must have a
// .json extension and stay under the max file size. Omitted fields keep
// their defaults, so partial configs are safe.
func LoadScanConfig(path string) (*ScanConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyScanConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Params assembles the scan-control parameters, applying defaults for any
// field not set in the config.
func (c *ScanConfig) Params() calib.FocalLengthParams {
	return calib.FocalLengthParams{
		StepCount:                       c.GetStepCount(),
		FyScanRange:                     c.GetFyScanRange(),
		KeepNewValueAfterSuccessfulScan: c.GetKeepNewValueAfterSuccessfulScan(),
		InterruptDataSampling:           c.GetInterruptDataSampling(),
		AdjustBothSides:                 c.GetAdjustBothSides(),
		FLScanLocation:                  c.GetFLScanLocation(),
		FyScanDirection:                 c.GetFyScanDirection(),
		WhiteWallMode:                   c.GetWhiteWallMode(),
	}
}

// Validate checks the scan-control ranges and the physical setup.
func (c *ScanConfig) Validate() error {
	if err := c.Params().Check(); err != nil {
		return err
	}
	if w := c.GetTargetWidthMM(); w <= 0 {
		return fmt.Errorf("target_width_mm must be positive, got %f", w)
	}
	if h := c.GetTargetHeightMM(); h <= 0 {
		return fmt.Errorf("target_height_mm must be positive, got %f", h)
	}
	if b := c.GetBaselineMM(); b == 0 {
		return fmt.Errorf("baseline_mm must be non-zero")
	}
	return nil
}

// GetStepCount returns the step_count value or the default.
func (c *ScanConfig) GetStepCount() int {
	if c.StepCount == nil {
		return 100
	}
	return *c.StepCount
}

// GetFyScanRange returns the fy_scan_range value or the default.
func (c *ScanConfig) GetFyScanRange() int {
	if c.FyScanRange == nil {
		return 40
	}
	return *c.FyScanRange
}

// GetKeepNewValueAfterSuccessfulScan returns the keep_new_value_after_successful_scan value or the default.
func (c *ScanConfig) GetKeepNewValueAfterSuccessfulScan() int {
	if c.KeepNewValueAfterSuccessfulScan == nil {
		return 0
	}
	return *c.KeepNewValueAfterSuccessfulScan
}

// GetInterruptDataSampling returns the interrupt_data_sampling value or the default.
func (c *ScanConfig) GetInterruptDataSampling() int {
	if c.InterruptDataSampling == nil {
		return 0
	}
	return *c.InterruptDataSampling
}

// GetAdjustBothSides returns the adjust_both_sides value or the default.
func (c *ScanConfig) GetAdjustBothSides() int {
	if c.AdjustBothSides == nil {
		return 0
	}
	return *c.AdjustBothSides
}

// GetFLScanLocation returns the fl_scan_location value or the default.
func (c *ScanConfig) GetFLScanLocation() int {
	if c.FLScanLocation == nil {
		return 0
	}
	return *c.FLScanLocation
}

// GetFyScanDirection returns the fy_scan_direction value or the default.
func (c *ScanConfig) GetFyScanDirection() int {
	if c.FyScanDirection == nil {
		return 0
	}
	return *c.FyScanDirection
}

// GetWhiteWallMode returns the white_wall_mode value or the default.
func (c *ScanConfig) GetWhiteWallMode() int {
	if c.WhiteWallMode == nil {
		return 0
	}
	return *c.WhiteWallMode
}

// GetTargetWidthMM returns the target_width_mm value or the default
// (the 175mm standard focal-length target).
func (c *ScanConfig) GetTargetWidthMM() float64 {
	if c.TargetWidthMM == nil {
		return 175.0
	}
	return *c.TargetWidthMM
}

// GetTargetHeightMM returns the target_height_mm value or the default.
func (c *ScanConfig) GetTargetHeightMM() float64 {
	if c.TargetHeightMM == nil {
		return 100.0
	}
	return *c.TargetHeightMM
}

// GetBaselineMM returns the baseline_mm value or the default.
func (c *ScanConfig) GetBaselineMM() float64 {
	if c.BaselineMM == nil {
		return 50.0
	}
	return *c.BaselineMM
}
