package nugeom

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/geometry/md3"
)

const (
	// For an equilateral triangle of side length L the length of bisector is L multiplied this number which is sqrt(1-0.25).
	tribisect = 0.8660254037844386467637231707529361834714026269051903140279034897
)

// Solid is a 3D signed distance field evaluated on the CPU in batches.
// Distances are negative inside the solid, positive outside and zero on its surface.
// The field is not required to be exact but must never overestimate the
// distance to the surface so that sphere tracing over it does not skip boundaries.
type Solid interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length.  Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in processing, such as [VecPool].
	Evaluate(pos []md3.Vec, dist []float64, userData any) error
	// Bounds returns the solid's bounding box such that all of the shape is contained within.
	Bounds() md3.Box
}

// Builder wraps all solid primitive and operation logic generation.
// Provides error handling strategies with panics or error accumulation during shape generation.
type Builder struct {
	NoDimensionPanic bool
	accumErrs        []error
}

// Err returns all dimension errors accumulated so far when NoDimensionPanic is set.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if !bld.NoDimensionPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

func (*Builder) nilsolid(msg string) {
	panic("nil Solid argument: " + msg)
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// EvaluateOne is a convenience wrapper around [Solid.Evaluate] for a single position.
func EvaluateOne(s Solid, p md3.Vec, userData any) (float64, error) {
	var pos [1]md3.Vec
	var dist [1]float64
	pos[0] = p
	err := s.Evaluate(pos[:], dist[:], userData)
	return dist[0], err
}

// BoxContains reports whether p is inside or on the boundary of bb.
func BoxContains(bb md3.Box, p md3.Vec) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y &&
		p.Z >= bb.Min.Z && p.Z <= bb.Max.Z
}

// RayBox intersects the ray origin+t*dir with bb using the slab method and returns the
// parametric interval [tmin, tmax] of the intersection. ok is false when the ray misses the box
// or the box lies entirely behind the origin.
func RayBox(bb md3.Box, origin, dir md3.Vec) (tmin, tmax float64, ok bool) {
	tmin, tmax = math.Inf(-1), math.Inf(1)
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	hi := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t0 := (lo[i] - o[i]) * inv
		t1 := (hi[i] - o[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	if tmax < 0 {
		return 0, 0, false
	}
	return math.Max(tmin, 0), tmax, true
}

func minf(a, b float64) float64 {
	return math.Min(a, b)
}

func maxf(a, b float64) float64 {
	return math.Max(a, b)
}

func hypotf(a, b float64) float64 {
	return math.Hypot(a, b)
}

func signf(a float64) float64 {
	if a == 0 {
		return 0
	}
	return math.Copysign(1, a)
}

func clampf(v, Min, Max float64) float64 {
	if v < Min {
		return Min
	} else if v > Max {
		return Max
	}
	return v
}
