package scene_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom"
	"github.com/soypat/nugeom/material"
	"github.com/soypat/nugeom/pathlen"
	"github.com/soypat/nugeom/scene"
)

// detector is a concrete hall holding an iron sphere with a lead core and an argon slab.
func detector(t *testing.T) (*scene.Geometry, map[string]*scene.Volume) {
	t.Helper()
	var bld nugeom.Builder
	core := &scene.Volume{
		Name:   "core",
		Solid:  bld.Translate(bld.NewSphere(0.5), -3, 0, 0),
		Medium: material.NewMedium(material.Lead()),
	}
	shell := &scene.Volume{
		Name:      "shell",
		Solid:     bld.Translate(bld.NewSphere(1), -3, 0, 0),
		Medium:    material.NewMedium(material.Iron()),
		Daughters: []*scene.Volume{core},
	}
	tpc := &scene.Volume{
		Name:   "tpc",
		Solid:  bld.NewSlab(md3.Vec{X: 1, Y: -1, Z: -1}, md3.Vec{X: 4, Y: 1, Z: 1}),
		Medium: material.NewMedium(material.LiquidArgon()),
	}
	hall := &scene.Volume{
		Name:      "hall",
		Solid:     bld.NewBox(10, 10, 10, 0),
		Medium:    material.NewMedium(material.Concrete()),
		Daughters: []*scene.Volume{shell, tpc},
	}
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	g, err := scene.New(hall, scene.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return g, map[string]*scene.Volume{"hall": hall, "shell": shell, "core": core, "tpc": tpc}
}

func TestNewValidation(t *testing.T) {
	_, err := scene.New(nil, scene.Config{})
	if !errors.Is(err, scene.ErrMissingGeometry) {
		t.Errorf("want ErrMissingGeometry, got %v", err)
	}
	var bld nugeom.Builder
	shared := &scene.Volume{Name: "shared", Solid: bld.NewSphere(1)}
	bad := &scene.Volume{
		Name:      "bad",
		Solid:     bld.NewSphere(3),
		Daughters: []*scene.Volume{shared, shared, nil, {Name: "nosolid"}},
	}
	_, err = scene.New(bad, scene.Config{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(err.(interface{ Unwrap() []error }).Unwrap()); n != 3 {
		t.Errorf("want 3 errors, got %d: %v", n, err)
	}
}

func TestNewInvalidMaterial(t *testing.T) {
	_, err := scene.New(nil, scene.Config{})
	if !errors.Is(err, pathlen.ErrMissingGeometry) {
		t.Errorf("want pathlen.ErrMissingGeometry, got %v", err)
	}
	var bld nugeom.Builder
	for _, mat := range []*material.Material{
		material.NewSubstance("negative", 56, 26, -1),
		material.NewMixture("empty", 1),
	} {
		world := &scene.Volume{
			Name:   "world",
			Solid:  bld.NewSphere(3),
			Medium: material.NewMedium(material.Iron()),
			Daughters: []*scene.Volume{{
				Name:   "bad",
				Solid:  bld.NewSphere(1),
				Medium: material.NewMedium(mat),
			}},
		}
		_, err := scene.New(world, scene.Config{})
		if err == nil {
			t.Errorf("%s: invalid material accepted", mat.Name)
		}
	}
}

func TestFindVolume(t *testing.T) {
	g, vols := detector(t)
	for _, test := range []struct {
		p    md3.Vec
		want string
	}{
		{p: md3.Vec{}, want: "hall"},
		{p: md3.Vec{X: -3}, want: "core"},
		{p: md3.Vec{X: -3.8}, want: "shell"},
		{p: md3.Vec{X: 2, Y: 0.5}, want: "tpc"},
		{p: md3.Vec{X: 6}, want: ""},
		{p: md3.Vec{X: 5}, want: ""}, // Surface points belong to the outside.
	} {
		got := g.FindVolume(test.p)
		if test.want == "" {
			if got != nil {
				t.Errorf("%v: want outside, got %q", test.p, got.Name)
			}
			continue
		}
		if got != vols[test.want] {
			t.Errorf("%v: want %q, got %v", test.p, test.want, got)
		}
		med, inside := g.FindNode(test.p)
		if !inside || med != vols[test.want].Medium {
			t.Errorf("%v: FindNode returned wrong medium", test.p)
		}
	}
}

func TestFindNodesMatchesFindVolume(t *testing.T) {
	g, _ := detector(t)
	var pos []md3.Vec
	for x := -6.0; x <= 6; x += 0.25 {
		for y := -1.5; y <= 1.5; y += 0.25 {
			pos = append(pos, md3.Vec{X: x, Y: y, Z: 0.1})
		}
	}
	dst := make([]*scene.Volume, len(pos))
	err := g.FindNodes(pos, dst)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range pos {
		if want := g.FindVolume(p); dst[i] != want {
			t.Errorf("%v: batched %v != single %v", p, dst[i], want)
		}
	}
	err = g.FindNodes(pos, dst[:1])
	if err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestFindNextBoundary(t *testing.T) {
	g, _ := detector(t)
	dir := md3.Vec{X: 1}
	// Expected boundaries along the x axis starting outside the hall.
	p := md3.Vec{X: -8}
	for _, want := range []struct {
		x        float64
		entering bool
	}{
		{x: -5, entering: true},   // Hall.
		{x: -4, entering: true},   // Shell.
		{x: -3.5, entering: true}, // Core.
		{x: -2.5, entering: true}, // Back to shell.
		{x: -2, entering: true},   // Back to hall.
		{x: 1, entering: true},    // TPC.
		{x: 4, entering: true},    // Hall.
		{x: 5, entering: true},    // Outside.
	} {
		step, entering := g.FindNextBoundary(p, dir)
		if step >= scene.Unbounded {
			t.Fatalf("from %v: unexpected unbounded step", p)
		}
		p = md3.Add(p, md3.Scale(step, dir))
		if math.Abs(p.X-want.x) > 1e-6 || entering != want.entering {
			t.Errorf("want boundary at %v (entering=%v), got %v (entering=%v)", want.x, want.entering, p.X, entering)
		}
	}
	step, _ := g.FindNextBoundary(p, dir)
	if step < scene.Unbounded {
		t.Errorf("want unbounded after leaving, got %v", step)
	}
	step, _ = g.FindNextBoundary(md3.Vec{X: -8, Y: 6}, dir)
	if step < scene.Unbounded {
		t.Errorf("want unbounded for ray missing the hall, got %v", step)
	}
}

func TestSetTopVolume(t *testing.T) {
	g, vols := detector(t)
	if err := g.SetTopVolume("nonexistent"); err == nil {
		t.Error("expected error for unknown volume")
	}
	if g.Top() != vols["hall"] {
		t.Error("top volume changed after failed set")
	}
	if err := g.SetTopVolume("shell"); err != nil {
		t.Fatal(err)
	}
	if g.FindVolume(md3.Vec{}) != nil {
		t.Error("point outside new top volume located")
	}
	if g.FindVolume(md3.Vec{X: -3}) != vols["core"] {
		t.Error("core not found under new top volume")
	}
	bb, err := g.BoundingEnvelope()
	if err != nil {
		t.Fatal(err)
	}
	if bb != vols["shell"].Solid.Bounds() {
		t.Errorf("envelope %v is not the shell's bounds", bb)
	}
	mats := g.Materials()
	if len(mats) != 2 || mats[0] != vols["shell"].Medium.Material || mats[1] != vols["core"].Medium.Material {
		t.Errorf("unexpected materials under shell: %v", mats)
	}
}

func TestMaterialsDeduplicated(t *testing.T) {
	g, vols := detector(t)
	// Share the hall's concrete with the TPC.
	vols["tpc"].Medium = vols["hall"].Medium
	mats := g.Materials()
	if len(mats) != 3 {
		t.Errorf("want 3 distinct materials, got %d", len(mats))
	}
	if len(g.Volumes()) != 4 || g.Volumes()[0] != vols["hall"] {
		t.Errorf("unexpected volume list")
	}
}

// abutting is a box [-1,11]x[-6,6]x[-6,6] holding two daughter slabs that share the face y=0.
func abutting(t *testing.T) *scene.Geometry {
	t.Helper()
	var bld nugeom.Builder
	world := &scene.Volume{
		Name:   "world",
		Solid:  bld.NewSlab(md3.Vec{X: -1, Y: -6, Z: -6}, md3.Vec{X: 11, Y: 6, Z: 6}),
		Medium: material.NewMedium(material.Concrete()),
		Daughters: []*scene.Volume{
			{
				Name:   "low",
				Solid:  bld.NewSlab(md3.Vec{X: 0, Y: -6, Z: -6}, md3.Vec{X: 10, Y: 0, Z: 6}),
				Medium: material.NewMedium(material.Iron()),
			},
			{
				Name:   "high",
				Solid:  bld.NewSlab(md3.Vec{X: 0, Y: 0, Z: -6}, md3.Vec{X: 10, Y: 6, Z: 6}),
				Medium: material.NewMedium(material.Iron()),
			},
		},
	}
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	g, err := scene.New(world, scene.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFindNextBoundaryAlongFace(t *testing.T) {
	g := abutting(t)
	dir := md3.Vec{X: 1}
	// The ray runs along the shared face of both daughters and only crosses the world's faces.
	p := md3.Vec{X: -2}
	for _, wantX := range []float64{-1, 11} {
		step, entering := g.FindNextBoundary(p, dir)
		if step >= scene.Unbounded {
			t.Fatalf("from %v: unexpected unbounded step", p)
		}
		p = md3.Add(p, md3.Scale(step, dir))
		if math.Abs(p.X-wantX) > 1e-6 || !entering {
			t.Errorf("want boundary at %v, got %v (entering=%v)", wantX, p.X, entering)
		}
	}
	// A ray in the world's top face never crosses into it.
	step, entering := g.FindNextBoundary(md3.Vec{X: -2, Y: 6}, dir)
	if step < scene.Unbounded || entering {
		t.Errorf("want unbounded step for ray in face, got %v (entering=%v)", step, entering)
	}
}
