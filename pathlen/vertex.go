package pathlen

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/md3"
)

var errStopWalk = errors.New("stop walk")

// SampleVertex returns a random point of r inside material code target. The
// point is distributed proportionally to weight times length along the ray:
// a cumulative weighted distance d* is drawn uniformly in [0,D) where D is the
// ray's total weighted length through target, then the segment containing d* is
// marched in increments of stepSize from its start until d* is reached.
// Target segments lying wholly below d* are skipped at once, so the stepSize
// grid is anchored at the start of the segment holding d* and not at the ray
// origin. Both give the same distribution up to stepSize.
//
// If the ray does not cross target [ErrNoMaterialOnRay] is returned.
// If the second walk ends before d* the last point inside target is returned.
func SampleVertex(w *Walker, r Ray, target int, stepSize float64, rng Rand) (md3.Vec, error) {
	if stepSize <= 0 {
		return md3.Vec{}, fmt.Errorf("invalid vertex step size %g", stepSize)
	}
	total, err := targetLength(w, r, target)
	if err != nil {
		return md3.Vec{}, err
	}
	if total == 0 {
		return md3.Vec{}, ErrNoMaterialOnRay
	}
	dstar := rng.Float64() * total

	var (
		cum  float64
		last md3.Vec
	)
	nav := w.Navigator()
	err = w.ForEachSegment(r, func(seg Segment) error {
		if seg.Code != target {
			return nil
		}
		wl := seg.Weighted()
		if cum+wl < dstar {
			// Jump over the whole segment.
			cum += wl
			last = md3.Add(seg.Start, md3.Scale(max(seg.Length-stepSize, 0), r.Dir))
			return nil
		}
		k := 0
		for cum < dstar && float64(k+1)*stepSize < seg.Length {
			k++
			cum += stepSize * seg.Weight
		}
		if cum >= dstar && k > 0 {
			k--
		}
		// Verify the point lies in target, falling back towards the segment start.
		last = seg.Start
		for ; k > 0; k-- {
			p := md3.Add(seg.Start, md3.Scale(float64(k)*stepSize, r.Dir))
			if containsTarget(nav, p, target) {
				last = p
				break
			}
		}
		return errStopWalk
	})
	if err != nil && !errors.Is(err, errStopWalk) && !errors.Is(err, ErrMaxSteps) {
		return md3.Vec{}, err
	}
	return last, nil
}

// containsTarget reports whether the material at p has code target or holds it as a mixture element.
func containsTarget(nav Navigator, p md3.Vec, target int) bool {
	med, inside := nav.FindNode(p)
	if !inside || med == nil || med.Material == nil {
		return false
	}
	var buf [8]int
	for _, c := range med.Material.Codes(buf[:0]) {
		if c == target {
			return true
		}
	}
	return false
}
