package nugeom

import (
	"github.com/soypat/geometry/md3"
)

type sphere struct {
	r float64
}

// NewSphere creates a sphere centered at the origin of radius r.
func (bld *Builder) NewSphere(r float64) Solid {
	valid := r > 0
	if !valid {
		bld.shapeErrorf("zero or negative sphere radius")
	}
	return &sphere{r: r}
}

func (s *sphere) Bounds() md3.Box {
	return md3.Box{
		Min: md3.Vec{X: -s.r, Y: -s.r, Z: -s.r},
		Max: md3.Vec{X: s.r, Y: s.r, Z: s.r},
	}
}

// NewBox creates a box centered at the origin with x,y,z dimensions and a rounding parameter to round edges.
func (bld *Builder) NewBox(x, y, z, round float64) Solid {
	if round < 0 || round > x/2 || round > y/2 || round > z/2 {
		bld.shapeErrorf("invalid box rounding value")
	}
	if x <= 0 || y <= 0 || z <= 0 {
		bld.shapeErrorf("zero or negative box dimension")
	}
	return &box{dims: md3.Vec{X: x, Y: y, Z: z}, round: round}
}

// NewSlab creates an axis aligned box spanning from min to max. Convenient for stacked layers.
func (bld *Builder) NewSlab(min, max md3.Vec) Solid {
	size := md3.Sub(max, min)
	b := bld.NewBox(size.X, size.Y, size.Z, 0)
	center := md3.Scale(0.5, md3.Add(min, max))
	return bld.Translate(b, center.X, center.Y, center.Z)
}

type box struct {
	dims  md3.Vec
	round float64
}

func (s *box) Bounds() md3.Box {
	h := md3.Scale(0.5, s.dims)
	return md3.Box{Min: md3.Scale(-1, h), Max: h}
}

// NewCylinder creates a cylinder centered at the origin with given radius and height.
// The cylinder's axis points in z direction.
func (bld *Builder) NewCylinder(r, h, rounding float64) Solid {
	okRounding := rounding >= 0 && rounding < r && rounding < h/2
	if !okRounding {
		bld.shapeErrorf("invalid cylinder rounding")
	}
	okDim := r > 0 && h > 0
	if !okDim {
		bld.shapeErrorf("bad cylinder dimension")
	}
	return &cylinder{r: r, h: h, round: rounding}
}

type cylinder struct {
	r     float64
	h     float64
	round float64
}

func (s *cylinder) Bounds() md3.Box {
	return md3.Box{
		Min: md3.Vec{X: -s.r, Y: -s.r, Z: -s.h / 2},
		Max: md3.Vec{X: s.r, Y: s.r, Z: s.h / 2},
	}
}

func (c *cylinder) args() (r, h, round float64) {
	return c.r, (c.h - 2*c.round) / 2, c.round
}

// NewHexagonalPrism creates a hexagonal prism given a face-to-face dimension and height.
// The hexagon's length is in the z axis.
func (bld *Builder) NewHexagonalPrism(face2Face, h float64) Solid {
	if face2Face <= 0 || h <= 0 {
		bld.shapeErrorf("invalid hexagonal prism parameter")
	}
	return &hex{side: face2Face, h: h}
}

type hex struct {
	side float64
	h    float64
}

func (s *hex) Bounds() md3.Box {
	l := s.side
	lx := l / tribisect
	return md3.Box{
		Min: md3.Vec{X: -lx, Y: -l, Z: -s.h},
		Max: md3.Vec{X: lx, Y: l, Z: s.h},
	}
}

type torus struct {
	rLesser, rGreater float64
}

// NewTorus creates a 3D torus given 2 radii to define the radius
// across (greaterRadius) and the "solid" radius (lesserRadius).
// The torus' axis is in the z axis.
func (bld *Builder) NewTorus(greaterRadius, lesserRadius float64) Solid {
	if greaterRadius < 2*lesserRadius {
		bld.shapeErrorf("too large torus lesser radius")
	}
	if greaterRadius <= 0 || lesserRadius <= 0 {
		bld.shapeErrorf("invalid torus parameter")
	}
	return &torus{rLesser: lesserRadius, rGreater: greaterRadius}
}

func (s *torus) Bounds() md3.Box {
	R := s.rLesser + s.rGreater
	return md3.Box{
		Min: md3.Vec{X: -R, Y: -R, Z: -s.rLesser},
		Max: md3.Vec{X: R, Y: R, Z: s.rLesser},
	}
}
