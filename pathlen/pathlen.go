// Package pathlen computes material path lengths of rays traversing a detector
// geometry and samples interaction vertices along them.
//
// The geometry is accessed through the [Navigator] capability. A [Walker] steps
// a ray from boundary to boundary and reports one [Segment] per material crossing.
// On top of the walker the package implements:
//
//   - [Accumulate]: density weighted path length per material along one ray.
//   - [EstimateMax]: Monte Carlo estimate of the maximum weighted path length per
//     material over rays entering the bounding envelope from its six faces.
//   - [SampleVertex]: a random point in a target material distributed
//     proportionally to density times length along a ray.
//
// Materials are identified by nuclear codes (see [material.IonCode]). Mixtures
// contribute the full geometric length of a crossing to every one of their elements;
// lengths are not split by mass fraction. This is a known approximation.
package pathlen

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom/material"
)

// Unbounded is the conventional step returned by navigators when no
// surface is crossed along a ray. Steps at or above [NeverEnterStep] are treated as unbounded.
const (
	Unbounded      = 1e30
	NeverEnterStep = 9.99e29
)

var (
	// ErrNeverEntered is returned by a walk whose ray never intersects the geometry.
	ErrNeverEntered = errors.New("ray never enters the geometry")
	// ErrNoMaterialOnRay is returned by vertex sampling when the ray does not cross the target material.
	ErrNoMaterialOnRay = errors.New("no target material along ray")
	// ErrMissingGeometry indicates no geometry is loaded or its envelope is unavailable.
	ErrMissingGeometry = errors.New("missing geometry")
	// ErrUnresolvableMedium is logged when a volume has no medium attached.
	ErrUnresolvableMedium = errors.New("volume has no medium")
	// ErrUnresolvableMaterial is logged when a medium has no material attached.
	ErrUnresolvableMaterial = errors.New("medium has no material")
	// ErrMaxSteps is returned when a walk exceeds its step bound.
	ErrMaxSteps = errors.New("walk step limit exceeded")
)

// Navigator is the capability a geometry must provide to be traversed.
// Implementations must not keep per-query state: all traversal state lives in the caller.
type Navigator interface {
	// FindNode returns the medium of the deepest volume containing p.
	// inside is false when p is outside every volume. med is nil for a volume without medium.
	FindNode(p md3.Vec) (med *material.Medium, inside bool)
	// FindNextBoundary returns the distance from p along unit direction dir to
	// just past the next surface crossing, and whether the crossing enters a new region.
	// It returns [Unbounded] when nothing is crossed.
	FindNextBoundary(p, dir md3.Vec) (step float64, entering bool)
	// BoundingEnvelope returns the axis aligned bounding box of the top volume.
	BoundingEnvelope() (md3.Box, error)
	// Materials returns the materials attached to the geometry's volumes.
	Materials() []*material.Material
}

// Rand is a source of uniformly distributed numbers in [0,1).
// It is satisfied by *math/rand.Rand and *math/rand/v2.Rand.
type Rand interface {
	Float64() float64
}

// Ray is a start point and a unit direction.
type Ray struct {
	Origin md3.Vec
	Dir    md3.Vec
}

// NewRay returns a ray starting at origin heading towards dir, normalized.
func NewRay(origin, dir md3.Vec) (Ray, error) {
	n := md3.Norm(dir)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Ray{}, fmt.Errorf("invalid ray direction %v", dir)
	}
	return Ray{Origin: origin, Dir: md3.Scale(1/n, dir)}, nil
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) md3.Vec {
	return md3.Add(r.Origin, md3.Scale(t, r.Dir))
}

// Segment is the stretch of a ray between two consecutive boundary crossings
// inside a single material, attributed to one material identity.
type Segment struct {
	// Code is the nuclear code of the material or mixture element.
	Code int
	// Length is the geometric length of the crossing.
	Length float64
	// Weight multiplies Length to obtain the weighted length.
	Weight float64
	// Material is the material crossed. For mixtures it is the whole mixture.
	Material *material.Material
	// Start is the point where the segment begins.
	Start md3.Vec
}

// Weighted returns the segment's weighted length.
func (s Segment) Weighted() float64 {
	return s.Length * s.Weight
}
