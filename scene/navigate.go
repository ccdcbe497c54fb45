package scene

import (
	"errors"
	"slices"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom"
	"github.com/soypat/nugeom/material"
)

// FindVolume returns the deepest volume under the top volume containing p, or nil if p is outside.
// Points on a surface belong to the outer side.
func (g *Geometry) FindVolume(p md3.Vec) *Volume {
	vp := g.vecPool()
	defer g.putVecPool(vp)
	return g.locate(p, vp)
}

// FindNode returns the medium of the deepest volume containing p. inside is
// false when p is outside the top volume. med is nil for volumes without medium.
func (g *Geometry) FindNode(p md3.Vec) (med *material.Medium, inside bool) {
	v := g.FindVolume(p)
	if v == nil {
		return nil, false
	}
	return v.Medium, true
}

func (g *Geometry) locate(p md3.Vec, vp *nugeom.VecPool) *Volume {
	if !nugeom.BoxContains(g.top.Solid.Bounds(), p) || g.sdf(g.top, p, vp) >= 0 {
		return nil
	}
	v := g.top
DESCEND:
	for {
		for _, d := range v.Daughters {
			if nugeom.BoxContains(d.Solid.Bounds(), p) && g.sdf(d, p, vp) < 0 {
				v = d
				continue DESCEND
			}
		}
		return v
	}
}

// FindNodes locates all positions in pos and stores the deepest containing volume
// of each in dst, or nil for positions outside the top volume. Solids are evaluated
// in batches, one batch per visited volume.
func (g *Geometry) FindNodes(pos []md3.Vec, dst []*Volume) error {
	if len(pos) != len(dst) {
		return errors.New("position and volume buffer length mismatch")
	} else if len(pos) == 0 {
		return nil
	}
	vp := g.vecPool()
	defer g.putVecPool(vp)
	for i := range dst {
		dst[i] = nil
	}
	idx := make([]int, len(pos))
	for i := range idx {
		idx[i] = i
	}
	return g.findNodes(g.top, pos, idx, dst, vp)
}

// findNodes assigns v to the positions indexed by idx that are inside v and recurses into daughters.
func (g *Geometry) findNodes(v *Volume, pos []md3.Vec, idx []int, dst []*Volume, vp *nugeom.VecPool) error {
	sub := vp.V3.Acquire(len(idx))
	dist := vp.Float.Acquire(len(idx))
	defer vp.V3.Release(sub)
	defer vp.Float.Release(dist)
	for i, j := range idx {
		sub[i] = pos[j]
	}
	err := v.Solid.Evaluate(sub, dist, vp)
	if err != nil {
		return err
	}
	inside := idx[:0:0]
	for i, j := range idx {
		if dist[i] < 0 {
			dst[j] = v
			inside = append(inside, j)
		}
	}
	if len(inside) == 0 {
		return nil
	}
	for _, d := range v.Daughters {
		err = g.findNodes(d, pos, inside, dst, vp)
		if err != nil {
			return err
		}
		// Positions claimed by a daughter are not tested against its siblings.
		remaining := inside[:0:0]
		for _, j := range inside {
			if dst[j] == v {
				remaining = append(remaining, j)
			}
		}
		inside = remaining
		if len(inside) == 0 {
			break
		}
	}
	return nil
}

// FindNextBoundary returns the distance from p along dir to just past the next
// surface crossing and whether that crossing enters a region different from the
// one containing p. If no surface is crossed, step is [Unbounded]. dir must be unit length.
// A ray that only touches a surface, such as one running along a face, does not cross it.
//
// When a search is cut short by the iteration limit the distance travelled is
// returned with entering false so that callers can resume from there.
func (g *Geometry) FindNextBoundary(p, dir md3.Vec) (step float64, entering bool) {
	vp := g.vecPool()
	defer g.putVecPool(vp)
	cur := g.locate(p, vp)
	if cur == nil {
		tmin, tmax, ok := nugeom.RayBox(g.top.Solid.Bounds(), p, dir)
		if !ok {
			return Unbounded, false
		}
		t, res := g.march(p, dir, tmin, tmax, 1, vp, func(x md3.Vec, dst []float64) {
			dst[0] = g.sdf(g.top, x, vp)
		})
		switch res {
		case marchPassed:
			return Unbounded, false
		case marchExhausted:
			return t, false
		}
		step = t + g.push
	} else {
		_, tmax, ok := nugeom.RayBox(cur.Solid.Bounds(), p, dir)
		if !ok {
			tmax = 0
		}
		t, res := g.march(p, dir, 0, tmax, 1+len(cur.Daughters), vp, func(x md3.Vec, dst []float64) {
			g.regionField(cur, x, vp, dst)
		})
		switch res {
		case marchExhausted:
			return t, false
		case marchPassed:
			t = tmax
		}
		step = t + g.push
	}
	next := g.locate(md3.Add(p, md3.Scale(step, dir)), vp)
	return step, next != cur
}

// regionField stores in dst the components of a field that is positive in the
// part of v not covered by its daughters: the negated distance of v followed by
// the distance of each daughter. The region is where every component is positive.
func (g *Geometry) regionField(v *Volume, x md3.Vec, vp *nugeom.VecPool, dst []float64) {
	dst[0] = -g.sdf(v, x, vp)
	for i, d := range v.Daughters {
		dst[i+1] = g.sdf(d, x, vp)
	}
}

type marchResult uint8

const (
	marchHit       marchResult = iota // sign change of field found.
	marchPassed                       // tend reached without sign change.
	marchExhausted                    // iteration limit reached.
)

// march sphere traces the region where all n field components are positive along
// p+t*dir for t in [tstart, tend]. A hit is reported at t when the field is within
// tolerance of zero at t and negative a push distance ahead.
//
// Where the ray touches a surface without crossing it the touching components
// give no step bound. The step is then bounded by the remaining components and by
// a tangent step that doubles while the contact lasts. If a step ends inside the
// surface the crossing is narrowed down by bisection.
func (g *Geometry) march(p, dir md3.Vec, tstart, tend float64, n int, vp *nugeom.VecPool, field func(x md3.Vec, dst []float64)) (float64, marchResult) {
	tol := g.tol
	comps := vp.Float.Acquire(n)
	aux := vp.Float.Acquire(n)
	defer vp.Float.Release(comps)
	defer vp.Float.Release(aux)
	at := func(t float64, dst []float64) float64 {
		field(md3.Add(p, md3.Scale(t, dir)), dst)
		return slices.Min(dst)
	}
	crossed := func(t float64) bool { return at(t, aux) < 0 }

	t := tstart
	tangent := g.push
	for i := 0; i < g.maxIter; i++ {
		v := at(t, comps)
		if v >= tol {
			tangent = g.push
			t += v
			if t > tend {
				return tend, marchPassed
			}
			continue
		}
		if v < 0 || crossed(t+g.push) {
			return t, marchHit
		}
		step := tangent
		for _, c := range comps {
			if c >= tol {
				step = min(step, c)
			}
		}
		tangent *= 2
		next := min(t+step, tend)
		if crossed(next) {
			return g.bisect(t, next, crossed), marchHit
		}
		if next >= tend {
			return tend, marchPassed
		}
		t = next
	}
	return t, marchExhausted
}

// bisect narrows [lo, hi] where crossed(lo) is false and crossed(hi) is true
// down to the tolerance and returns lo.
func (g *Geometry) bisect(lo, hi float64, crossed func(float64) bool) float64 {
	for hi-lo > g.tol {
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			break
		}
		if crossed(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}
