package nugeom

import (
	"fmt"

	"github.com/soypat/geometry/md3"
)

// OpUnion is the result of the [Builder.Union] operation. Prefer using [Builder.Union] to using this type directly.
//
// OpUnion is exported so that users can traverse a solid tree looking for
// unions and split them by bounding box when the joined solids are placed far apart.
type OpUnion struct {
	// joined contains 2 or more solids.
	// OpUnion methods will panic if joined less than 2 elements.
	joined []Solid
}

// Union joins the shapes of several solids into one. Is exact.
// Union aggregates nested Union results into its own. To prevent this behaviour use [OpUnion] directly.
func (bld *Builder) Union(solids ...Solid) Solid {
	if len(solids) < 2 {
		panic("need at least 2 arguments to Union")
	}
	var U OpUnion
	for i, s := range solids {
		if s == nil {
			bld.nilsolid(fmt.Sprintf("nil arg[%d] to Union", i))
		}
		if subU, ok := s.(*OpUnion); ok {
			U.joined = append(U.joined, subU.joined...)
		} else {
			U.joined = append(U.joined, s)
		}
	}
	return &U
}

// Bounds returns the union of all joined solids' bounding boxes.
func (u *OpUnion) Bounds() md3.Box {
	u.mustValidate()
	bb := u.joined[0].Bounds()
	for _, bb2 := range u.joined[1:] {
		bb = bb.Union(bb2.Bounds())
	}
	return bb
}

// Joined returns the solids joined by the union.
func (u *OpUnion) Joined() []Solid {
	return u.joined
}

func (u *OpUnion) mustValidate() {
	if len(u.joined) < 2 {
		panic("OpUnion must have at least 2 elements. please prefer using Builder.Union over OpUnion")
	}
}

// Difference is the solid difference of a-b. Does not produce an exact distance field.
func (bld *Builder) Difference(a, b Solid) Solid {
	if a == nil || b == nil {
		bld.nilsolid("Difference")
	}
	return &diff{s1: a, s2: b}
}

type diff struct {
	s1, s2 Solid // Performs s1-s2.
}

func (u *diff) Bounds() md3.Box {
	return u.s1.Bounds()
}

// Intersection is the solid intersection of a ^ b. Does not produce an exact distance field.
func (bld *Builder) Intersection(a, b Solid) Solid {
	if a == nil || b == nil {
		bld.nilsolid("Intersection")
	}
	return &intersect{s1: a, s2: b}
}

type intersect struct {
	s1, s2 Solid
}

func (u *intersect) Bounds() md3.Box {
	b1 := u.s1.Bounds()
	b2 := u.s2.Bounds()
	return md3.Box{
		Min: md3.Vec{X: maxf(b1.Min.X, b2.Min.X), Y: maxf(b1.Min.Y, b2.Min.Y), Z: maxf(b1.Min.Z, b2.Min.Z)},
		Max: md3.Vec{X: minf(b1.Max.X, b2.Max.X), Y: minf(b1.Max.Y, b2.Max.Y), Z: minf(b1.Max.Z, b2.Max.Z)},
	}
}

// Translate moves the solid s in the given direction (dirX, dirY, dirZ) and returns the result.
func (bld *Builder) Translate(s Solid, dirX, dirY, dirZ float64) Solid {
	if s == nil {
		bld.nilsolid("Translate")
	}
	if t, ok := s.(*translate); ok {
		// Collapse nested translations.
		return &translate{s: t.s, p: md3.Add(t.p, md3.Vec{X: dirX, Y: dirY, Z: dirZ})}
	}
	return &translate{s: s, p: md3.Vec{X: dirX, Y: dirY, Z: dirZ}}
}

type translate struct {
	s Solid
	p md3.Vec
}

func (u *translate) Bounds() md3.Box {
	bb := u.s.Bounds()
	return md3.Box{Min: md3.Add(bb.Min, u.p), Max: md3.Add(bb.Max, u.p)}
}

// Scale scales s by scaleFactor around the origin.
func (bld *Builder) Scale(s Solid, scaleFactor float64) Solid {
	if s == nil {
		bld.nilsolid("Scale")
	}
	if scaleFactor <= 0 {
		bld.shapeErrorf("zero or negative scale factor")
	}
	return &scale{s: s, scale: scaleFactor}
}

type scale struct {
	s     Solid
	scale float64
}

func (u *scale) Bounds() md3.Box {
	b := u.s.Bounds()
	return md3.Box{Min: md3.Scale(u.scale, b.Min), Max: md3.Scale(u.scale, b.Max)}
}

// Offset adds sdfAdd to the entire argument solid. If sdfAdd is negative this will
// round edges and increase the dimension of flat surfaces of the solid.
// If sdfAdd is positive the solid shrinks.
func (bld *Builder) Offset(s Solid, sdfAdd float64) Solid {
	if s == nil {
		bld.nilsolid("Offset")
	}
	return &offset{s: s, off: sdfAdd}
}

type offset struct {
	s   Solid
	off float64
}

func (o *offset) Bounds() md3.Box {
	bb := o.s.Bounds()
	if o.off >= 0 {
		return bb
	}
	grow := md3.Vec{X: -o.off, Y: -o.off, Z: -o.off}
	return md3.Box{Min: md3.Sub(bb.Min, grow), Max: md3.Add(bb.Max, grow)}
}
