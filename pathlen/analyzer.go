package pathlen

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/soypat/geometry/md3"
)

// Analyzer answers path length and vertex queries over a geometry for an event generator.
// Lengths are reported in meters. An Analyzer serves one query at a time:
// returned tables are owned by the Analyzer and overwritten by the next query of the same kind.
type Analyzer struct {
	nav     Navigator
	cfg     Config
	log     *slog.Logger
	targets []int
	rng     Rand
	scale   float64

	walker  *Walker
	scanner *Walker

	pathLengths    PathLengths
	maxPathLengths PathLengths
}

// NewAnalyzer creates an Analyzer over nav. The list of targets is built from
// nav's materials with mixtures expanded into their elements.
func NewAnalyzer(nav Navigator, cfg Config) (*Analyzer, error) {
	if nav == nil {
		return nil, fmt.Errorf("nil navigator: %w", ErrMissingGeometry)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With(slog.String("component", "pathlen"))
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	a := &Analyzer{
		nav: nav,
		cfg: cfg,
		log: log,
		rng: rng,
	}
	a.buildTargets()
	a.pathLengths = NewPathLengths(a.targets)
	a.maxPathLengths = NewPathLengths(a.targets)
	a.SetLengthUnit(cfg.LengthUnit)
	a.SetWeightWithDensity(cfg.WeightWithDensity)
	return a, nil
}

func (a *Analyzer) buildTargets() {
	seen := make(map[int]bool)
	var codes []int
	for _, m := range a.nav.Materials() {
		codes = m.Codes(codes[:0])
		for _, c := range codes {
			if !seen[c] {
				seen[c] = true
				a.targets = append(a.targets, c)
			}
		}
	}
	a.log.Info("analyzer targets", slog.Int("count", len(a.targets)))
}

// ListOfTargets returns the distinct material codes of the geometry in first seen order.
func (a *Analyzer) ListOfTargets() []int { return a.targets }

// SetLengthUnit sets the length of one geometry unit in meters. Non positive units are ignored.
func (a *Analyzer) SetLengthUnit(u float64) {
	if !(u > 0) {
		a.log.Warn("ignoring invalid length unit", slog.Float64("unit", u))
		return
	}
	a.cfg.LengthUnit = u
	a.scale = unitScale(u)
	a.log.Debug("length unit set", slog.Float64("scale", a.scale))
}

// SetWeightWithDensity selects whether lengths are weighted by material density.
func (a *Analyzer) SetWeightWithDensity(b bool) {
	a.cfg.WeightWithDensity = b
	wt := weightingFor(b)
	a.walker = NewWalker(a.nav, WalkerConfig{Weighting: wt, MaxSteps: a.cfg.MaxSteps, Logger: a.log})
	a.scanner = NewWalker(a.nav, WalkerConfig{Weighting: wt, MaxSteps: a.cfg.ScannerMaxSteps, Logger: a.log})
}

// SetScannerNPoints sets the number of points per face of max path length estimation.
func (a *Analyzer) SetScannerNPoints(n int) {
	if n < 0 {
		return
	}
	a.cfg.NPoints = n
}

// SetScannerNRays sets the number of rays per point of max path length estimation.
func (a *Analyzer) SetScannerNRays(n int) {
	if n < 0 {
		return
	}
	a.cfg.NRays = n
}

// ComputePathLengths returns the weighted path length per target along r in meters.
func (a *Analyzer) ComputePathLengths(r Ray) (PathLengths, error) {
	err := Accumulate(a.walker, r, a.pathLengths)
	a.pathLengths.Scale(a.scale)
	if err != nil {
		return a.pathLengths, fmt.Errorf("computing path lengths: %w", err)
	}
	return a.pathLengths, nil
}

// ComputeMaxPathLengths estimates the maximum weighted path length per target
// over rays entering the geometry's bounding envelope. If the envelope is not
// available the error is logged and an all zero table is returned.
func (a *Analyzer) ComputeMaxPathLengths() PathLengths {
	a.maxPathLengths.SetAllToZero()
	bb, err := a.nav.BoundingEnvelope()
	if err != nil {
		a.log.Error("no bounding envelope", slog.String("err", err.Error()))
		return a.maxPathLengths
	}
	env := EnvelopeFromBox(bb)
	a.log.Info("estimating max path lengths",
		slog.Int("points", a.cfg.NPoints), slog.Int("rays", a.cfg.NRays),
		slog.Any("origin", env.Origin), slog.Any("halfExtents", env.HalfExtents))
	cfg := ScannerConfig{
		NPoints: a.cfg.NPoints,
		NRays:   a.cfg.NRays,
		Seed:    a.cfg.Seed,
		Logger:  a.log,
	}
	err = EstimateMax(a.scanner, env, a.targets, cfg, nil, a.maxPathLengths)
	if err != nil {
		a.log.Error("max path length estimation failed", slog.String("err", err.Error()))
	}
	a.maxPathLengths.Scale(a.scale)
	return a.maxPathLengths
}

// GenerateVertex returns a random point of r inside material target, see [SampleVertex].
func (a *Analyzer) GenerateVertex(r Ray, target int) (md3.Vec, error) {
	v, err := SampleVertex(a.walker, r, target, a.cfg.StepSize, a.rng)
	if err != nil {
		a.log.Warn("could not generate vertex", slog.Int("target", target), slog.String("err", err.Error()))
		return v, err
	}
	return v, nil
}
