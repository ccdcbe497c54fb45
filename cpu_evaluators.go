package nugeom

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// minReduce takes element-wise minimum of arguments and stores to first argument.
func minReduce(d1AndDst, d2 []float64) {
	for i := range d1AndDst {
		d1AndDst[i] = math.Min(d1AndDst[i], d2[i])
	}
}

func checkBuffers(pos []md3.Vec, dist []float64) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	return nil
}

func (u *sphere) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	if err := checkBuffers(pos, dist); err != nil {
		return err
	}
	r := u.r
	for i, p := range pos {
		dist[i] = md3.Norm(p) - r
	}
	return nil
}

func (b *box) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	if err := checkBuffers(pos, dist); err != nil {
		return err
	}
	d := md3.Scale(0.5, b.dims)
	r := b.round
	for i, p := range pos {
		q := md3.Vec{
			X: math.Abs(p.X) - d.X + r,
			Y: math.Abs(p.Y) - d.Y + r,
			Z: math.Abs(p.Z) - d.Z + r,
		}
		outside := md3.Vec{X: maxf(q.X, 0), Y: maxf(q.Y, 0), Z: maxf(q.Z, 0)}
		dist[i] = md3.Norm(outside) + minf(maxf(q.X, maxf(q.Y, q.Z)), 0.0) - r
	}
	return nil
}

func (c *cylinder) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	if err := checkBuffers(pos, dist); err != nil {
		return err
	}
	r, h, round := c.args()
	if round == 0 {
		for i, p := range pos {
			dx := hypotf(p.X, p.Y) - r
			dy := math.Abs(p.Z) - h
			dist[i] = minf(0, maxf(dx, dy)) + hypotf(maxf(0, dx), maxf(0, dy))
		}
	} else {
		for i, p := range pos {
			dx := hypotf(p.X, p.Y) - r + round
			dy := math.Abs(p.Z) - h
			dist[i] = minf(maxf(dx, dy), 0) + hypotf(maxf(dx, 0), maxf(dy, 0)) - round
		}
	}
	return nil
}

func (h *hex) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	if err := checkBuffers(pos, dist); err != nil {
		return err
	}
	const k1, k2, k3 = -tribisect, 0.5, 0.57735
	h1 := h.side
	h2 := h.h
	clm := k3 * h1
	for i, p := range pos {
		p = md3.Vec{X: math.Abs(p.X), Y: math.Abs(p.Y), Z: math.Abs(p.Z)}
		pm := minf(k1*p.X+k2*p.Y, 0)
		p.X -= 2 * k1 * pm
		p.Y -= 2 * k2 * pm
		d1 := hypotf(p.X-clampf(p.X, -clm, clm), p.Y-h1) * signf(p.Y-h1)
		d2 := p.Z - h2
		dist[i] = minf(maxf(d1, d2), 0) + hypotf(maxf(d1, 0), maxf(d2, 0))
	}
	return nil
}

func (t *torus) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	if err := checkBuffers(pos, dist); err != nil {
		return err
	}
	t1 := t.rGreater
	t2 := t.rLesser
	for i, p := range pos {
		qx := hypotf(p.X, p.Y) - t1
		dist[i] = hypotf(qx, p.Z) - t2
	}
	return nil
}

// Evaluate implements [Solid].
func (u *OpUnion) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	u.mustValidate()
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	auxDist := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(auxDist)
	err = u.joined[0].Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	for _, s := range u.joined[1:] {
		err = s.Evaluate(pos, auxDist, userData)
		if err != nil {
			return err
		}
		minReduce(dist, auxDist)
	}
	return nil
}

func (u *intersect) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	d1 := dist
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = u.s1.Evaluate(pos, d1, userData)
	if err != nil {
		return err
	}
	err = u.s2.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	for i := range d1 {
		dist[i] = maxf(d1[i], d2[i])
	}
	return nil
}

func (u *diff) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	d1 := dist
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = u.s1.Evaluate(pos, d1, userData)
	if err != nil {
		return err
	}
	err = u.s2.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] = maxf(d1[i], -d2[i])
	}
	return nil
}

func (t *translate) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	transformed := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(transformed)
	for i, p := range pos {
		transformed[i] = md3.Sub(p, t.p)
	}
	return t.s.Evaluate(transformed, dist, userData)
}

func (s *scale) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	scaled := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(scaled)
	factor := s.scale
	factorInv := 1. / s.scale
	for i, p := range pos {
		scaled[i] = md3.Scale(factorInv, p)
	}
	err = s.s.Evaluate(scaled, dist, userData)
	if err != nil {
		return err
	}
	for i, d := range dist {
		dist[i] = d * factor
	}
	return nil
}

func (o *offset) Evaluate(pos []md3.Vec, dist []float64, userData any) error {
	err := o.s.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] += o.off
	}
	return nil
}
