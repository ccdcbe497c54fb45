// Package scene implements a hierarchical detector geometry made of named volumes.
// Each volume owns a solid, the medium filling it and its daughter volumes.
// A [Geometry] locates points in the volume tree and finds the next boundary
// along a ray by sphere tracing the solids' distance fields.
package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom"
	"github.com/soypat/nugeom/material"
	"github.com/soypat/nugeom/pathlen"
)

// Unbounded is the step reported when nothing is crossed along a ray.
const Unbounded = pathlen.Unbounded

// ErrMissingGeometry is returned when no world volume is given or no top volume is set.
var ErrMissingGeometry = pathlen.ErrMissingGeometry

var _ pathlen.Navigator = (*Geometry)(nil)

// Volume is a node of the geometry tree. Daughters are expressed in the same
// (world) frame as their mother, must be contained in the mother's solid and
// must not overlap each other.
type Volume struct {
	Name      string
	Solid     nugeom.Solid
	Medium    *material.Medium
	Daughters []*Volume
}

// Config configures boundary searches of a [Geometry].
type Config struct {
	// Tolerance is the distance under which a point is considered on a surface.
	Tolerance float64
	// MaxMarch bounds the number of sphere tracing iterations of a single boundary search.
	MaxMarch int
	// Logger receives diagnostics. If nil logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when a zero Config is passed to [New].
func DefaultConfig() Config {
	return Config{
		Tolerance: 1e-9,
		MaxMarch:  4096,
	}
}

// Geometry is a volume tree with navigation capabilities. Navigation
// methods do not mutate the Geometry and are safe for concurrent use.
// [Geometry.SetTopVolume] must not be called concurrently with navigation.
type Geometry struct {
	world   *Volume
	top     *Volume
	volumes []*Volume
	tol     float64
	push    float64
	maxIter int
	log     *slog.Logger
	pool    sync.Pool
}

// New creates a Geometry with world as the top volume.
func New(world *Volume, cfg Config) (*Geometry, error) {
	if world == nil {
		return nil, fmt.Errorf("nil world volume: %w", ErrMissingGeometry)
	}
	def := DefaultConfig()
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.MaxMarch <= 0 {
		cfg.MaxMarch = def.MaxMarch
	}
	g := &Geometry{
		world:   world,
		top:     world,
		tol:     cfg.Tolerance,
		push:    2 * cfg.Tolerance,
		maxIter: cfg.MaxMarch,
		log:     cfg.Logger,
	}
	if g.log == nil {
		g.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g.log = g.log.With(slog.String("component", "scene"))
	g.pool.New = func() any { return new(nugeom.VecPool) }
	var errs []error
	seen := make(map[*Volume]bool)
	checked := make(map[*material.Material]bool)
	var walk func(v *Volume)
	walk = func(v *Volume) {
		if seen[v] {
			errs = append(errs, fmt.Errorf("volume %q placed more than once", v.Name))
			return
		}
		seen[v] = true
		if v.Solid == nil {
			errs = append(errs, fmt.Errorf("volume %q has nil solid", v.Name))
		}
		if v.Medium != nil && v.Medium.Material != nil && !checked[v.Medium.Material] {
			checked[v.Medium.Material] = true
			if err := v.Medium.Material.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("volume %q: %w", v.Name, err))
			}
		}
		g.volumes = append(g.volumes, v)
		for i, d := range v.Daughters {
			if d == nil {
				errs = append(errs, fmt.Errorf("volume %q has nil daughter[%d]", v.Name, i))
				continue
			}
			walk(d)
		}
	}
	walk(world)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	g.log.Info("geometry loaded", slog.String("top", world.Name), slog.Int("volumes", len(g.volumes)))
	return g, nil
}

// SetTopVolume restricts navigation to the volume named name and its daughters.
// If no volume has that name a warning is logged, the current top volume is kept
// and an error is returned.
func (g *Geometry) SetTopVolume(name string) error {
	for _, v := range g.volumes {
		if v.Name == name {
			g.top = v
			g.log.Info("top volume set", slog.String("top", name))
			return nil
		}
	}
	g.log.Warn("could not find volume, keeping current top volume", slog.String("name", name), slog.String("top", g.top.Name))
	return fmt.Errorf("volume %q not found", name)
}

// Top returns the current top volume.
func (g *Geometry) Top() *Volume { return g.top }

// Volumes returns all volumes of the tree in depth first order, starting at the world volume.
func (g *Geometry) Volumes() []*Volume { return g.volumes }

// BoundingEnvelope returns the bounding box of the top volume.
func (g *Geometry) BoundingEnvelope() (md3.Box, error) {
	if g == nil || g.top == nil || g.top.Solid == nil {
		return md3.Box{}, ErrMissingGeometry
	}
	return g.top.Solid.Bounds(), nil
}

// Materials returns the materials of the top volume and all its descendants in
// depth first order. Volumes without medium or material are skipped.
// A material shared by several volumes is returned once.
func (g *Geometry) Materials() []*material.Material {
	var mats []*material.Material
	seen := make(map[*material.Material]bool)
	var walk func(v *Volume)
	walk = func(v *Volume) {
		if v.Medium != nil && v.Medium.Material != nil && !seen[v.Medium.Material] {
			seen[v.Medium.Material] = true
			mats = append(mats, v.Medium.Material)
		}
		for _, d := range v.Daughters {
			walk(d)
		}
	}
	walk(g.top)
	return mats
}

func (g *Geometry) vecPool() *nugeom.VecPool {
	return g.pool.Get().(*nugeom.VecPool)
}

func (g *Geometry) putVecPool(vp *nugeom.VecPool) {
	g.pool.Put(vp)
}

func (g *Geometry) sdf(v *Volume, p md3.Vec, vp *nugeom.VecPool) float64 {
	d, err := nugeom.EvaluateOne(v.Solid, p, vp)
	if err != nil {
		// Solids of a validated tree only fail on programming errors.
		panic(fmt.Sprintf("evaluating volume %q: %s", v.Name, err))
	}
	return d
}
