package pathlen

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Config configures an [Analyzer].
type Config struct {
	// NPoints is the number of points sampled per envelope face by the max path length estimator.
	NPoints int
	// NRays is the number of directions sampled per point by the max path length estimator.
	NRays int
	// WeightWithDensity selects density weighting of path lengths.
	WeightWithDensity bool
	// LengthUnit is the length of one geometry unit in meters, see [Centimeter] and friends.
	LengthUnit float64
	// StepSize is the marching increment of vertex sampling in geometry units.
	StepSize float64
	// MaxSteps bounds the steps of path length and vertex walks. Zero means no bound.
	MaxSteps int
	// ScannerMaxSteps bounds the steps of max path length estimation walks.
	ScannerMaxSteps int
	// Seed seeds the default random source and the estimator's streams.
	Seed uint64
	// Rand is the random source of vertex sampling. If nil a PCG source seeded with Seed is used.
	Rand Rand
	// Logger receives diagnostics. If nil logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		NPoints:           200,
		NRays:             200,
		WeightWithDensity: true,
		LengthUnit:        Meter,
		StepSize:          0.001,
		MaxSteps:          1 << 20,
		ScannerMaxSteps:   100,
		Seed:              1,
	}
}

// Validate returns all configuration errors joined.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.NPoints < 0 {
		errs = append(errs, fmt.Errorf("negative NPoints %d", cfg.NPoints))
	}
	if cfg.NRays < 0 {
		errs = append(errs, fmt.Errorf("negative NRays %d", cfg.NRays))
	}
	if !(cfg.LengthUnit > 0) || math.IsInf(cfg.LengthUnit, 0) {
		errs = append(errs, fmt.Errorf("invalid LengthUnit %g", cfg.LengthUnit))
	}
	if !(cfg.StepSize > 0) || math.IsInf(cfg.StepSize, 0) {
		errs = append(errs, fmt.Errorf("invalid StepSize %g", cfg.StepSize))
	}
	if cfg.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("negative MaxSteps %d", cfg.MaxSteps))
	}
	if cfg.ScannerMaxSteps < 0 {
		errs = append(errs, fmt.Errorf("negative ScannerMaxSteps %d", cfg.ScannerMaxSteps))
	}
	return errors.Join(errs...)
}
