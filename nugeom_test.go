package nugeom_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom"
)

func TestPrimitivesInsideOutside(t *testing.T) {
	var bld nugeom.Builder
	var vp nugeom.VecPool
	for _, test := range []struct {
		name    string
		s       nugeom.Solid
		inside  md3.Vec
		outside md3.Vec
	}{
		{name: "sphere", s: bld.NewSphere(1), inside: md3.Vec{X: 0.5}, outside: md3.Vec{Y: 1.5}},
		{name: "box", s: bld.NewBox(2, 4, 6, 0), inside: md3.Vec{X: 0.9, Y: 1.9, Z: 2.9}, outside: md3.Vec{X: 1.1}},
		{name: "roundbox", s: bld.NewBox(2, 2, 2, 0.2), inside: md3.Vec{}, outside: md3.Vec{X: 0.99, Y: 0.99, Z: 0.99}},
		{name: "cylinder", s: bld.NewCylinder(1, 2, 0), inside: md3.Vec{X: 0.5, Z: 0.9}, outside: md3.Vec{Z: 1.1}},
		{name: "torus", s: bld.NewTorus(3, 1), inside: md3.Vec{X: 3}, outside: md3.Vec{}},
		{name: "hex", s: bld.NewHexagonalPrism(1, 1), inside: md3.Vec{}, outside: md3.Vec{Z: 1.5}},
		{name: "union", s: bld.Union(bld.NewSphere(1), bld.Translate(bld.NewSphere(1), 3, 0, 0)), inside: md3.Vec{X: 3}, outside: md3.Vec{X: 1.5}},
		{name: "diff", s: bld.Difference(bld.NewSphere(2), bld.NewSphere(1)), inside: md3.Vec{X: 1.5}, outside: md3.Vec{}},
		{name: "intersect", s: bld.Intersection(bld.NewSphere(2), bld.NewBox(1, 1, 1, 0)), inside: md3.Vec{X: 0.4}, outside: md3.Vec{X: 1}},
		{name: "scale", s: bld.Scale(bld.NewSphere(1), 2), inside: md3.Vec{X: 1.9}, outside: md3.Vec{X: 2.1}},
		{name: "offset", s: bld.Offset(bld.NewSphere(1), -0.5), inside: md3.Vec{X: 1.4}, outside: md3.Vec{X: 1.6}},
	} {
		d, err := nugeom.EvaluateOne(test.s, test.inside, &vp)
		if err != nil {
			t.Fatal(test.name, err)
		}
		if d >= 0 {
			t.Errorf("%s: expected inside at %v, got distance %v", test.name, test.inside, d)
		}
		d, err = nugeom.EvaluateOne(test.s, test.outside, &vp)
		if err != nil {
			t.Fatal(test.name, err)
		}
		if d <= 0 {
			t.Errorf("%s: expected outside at %v, got distance %v", test.name, test.outside, d)
		}
		if !nugeom.BoxContains(test.s.Bounds(), test.inside) {
			t.Errorf("%s: bounds %v do not contain inside point %v", test.name, test.s.Bounds(), test.inside)
		}
	}
	if err := vp.AssertAllReleased(); err != nil {
		t.Error(err)
	}
}

func TestBoxDistanceExact(t *testing.T) {
	var bld nugeom.Builder
	var vp nugeom.VecPool
	slab := bld.NewSlab(md3.Vec{X: 0, Y: -5, Z: -5}, md3.Vec{X: 5, Y: 5, Z: 5})
	rng := rand.New(rand.NewSource(1))
	pos := make([]md3.Vec, 64)
	dist := make([]float64, len(pos))
	for i := range pos {
		pos[i] = md3.Vec{X: rng.Float64() * 5, Y: 0, Z: 0}
	}
	err := slab.Evaluate(pos, dist, &vp)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range pos {
		want := -math.Min(p.X, 5-p.X)
		if math.Abs(dist[i]-want) > 1e-12 {
			t.Errorf("slab distance at %v: got %v, want %v", p, dist[i], want)
		}
	}
}

func TestBuilderAccumulatesErrors(t *testing.T) {
	bld := nugeom.Builder{NoDimensionPanic: true}
	bld.NewSphere(-1)
	bld.NewBox(1, 0, 1, 0)
	if bld.Err() == nil {
		t.Fatal("expected accumulated dimension errors")
	}
	var panicking nugeom.Builder
	defer func() {
		if recover() == nil {
			t.Error("expected panic on bad dimension")
		}
	}()
	panicking.NewCylinder(0, 1, 0)
}

func TestOperationsNeedVecPool(t *testing.T) {
	var bld nugeom.Builder
	s := bld.Translate(bld.NewSphere(1), 1, 0, 0)
	_, err := nugeom.EvaluateOne(s, md3.Vec{}, nil)
	if err == nil {
		t.Error("expected error evaluating operation without VecPool")
	}
}

func TestTranslateBounds(t *testing.T) {
	var bld nugeom.Builder
	s := bld.Translate(bld.Translate(bld.NewBox(2, 2, 2, 0), 1, 0, 0), 0, 2, 0)
	bb := s.Bounds()
	want := md3.Box{Min: md3.Vec{X: 0, Y: 1, Z: -1}, Max: md3.Vec{X: 2, Y: 3, Z: 1}}
	if bb != want {
		t.Errorf("got bounds %v, want %v", bb, want)
	}
}

func TestRayBox(t *testing.T) {
	bb := md3.Box{Min: md3.Vec{X: 0, Y: -1, Z: -1}, Max: md3.Vec{X: 10, Y: 1, Z: 1}}
	tmin, tmax, ok := nugeom.RayBox(bb, md3.Vec{X: -1}, md3.Vec{X: 1})
	if !ok || tmin != 1 || tmax != 11 {
		t.Errorf("hit: got (%v,%v,%v)", tmin, tmax, ok)
	}
	_, _, ok = nugeom.RayBox(bb, md3.Vec{X: -1, Y: 5}, md3.Vec{X: 1})
	if ok {
		t.Error("expected miss for parallel offset ray")
	}
	_, _, ok = nugeom.RayBox(bb, md3.Vec{X: -1}, md3.Vec{X: -1})
	if ok {
		t.Error("expected miss for box behind origin")
	}
	tmin, tmax, ok = nugeom.RayBox(bb, md3.Vec{X: 5}, md3.Vec{X: 1})
	if !ok || tmin != 0 || tmax != 5 {
		t.Errorf("origin inside: got (%v,%v,%v)", tmin, tmax, ok)
	}
}
