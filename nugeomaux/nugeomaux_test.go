package nugeomaux

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	math "github.com/chewxy/math32"
	"github.com/soypat/nugeom"
	"github.com/soypat/nugeom/material"
	"github.com/soypat/nugeom/pathlen"
	"github.com/soypat/nugeom/scene"
)

func sphereInBox(t *testing.T) *scene.Geometry {
	t.Helper()
	var bld nugeom.Builder
	g, err := scene.New(&scene.Volume{
		Name:   "world",
		Solid:  bld.NewSphere(4),
		Medium: material.NewMedium(material.StandardRock()),
		Daughters: []*scene.Volume{{
			Name:   "target",
			Solid:  bld.NewBox(2, 2, 2, 0),
			Medium: material.NewMedium(material.Lead()),
		}},
	}, scene.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRenderSlice(t *testing.T) {
	g := sphereInBox(t)
	img, err := RenderSlice(g, SliceConfig{Height: 64})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
	if img.RGBAAt(0, 0) != black {
		t.Errorf("corner outside sphere not black: %v", img.RGBAAt(0, 0))
	}
	center, rim := img.RGBAAt(32, 32), img.RGBAAt(32, 4)
	if center == black || rim == black || center == rim {
		t.Errorf("materials not distinguished: center %v rim %v", center, rim)
	}
	_, err = RenderSlice(g, SliceConfig{Height: 0})
	if err == nil {
		t.Error("expected error for zero height")
	}
}

func TestRenderSlicePNG(t *testing.T) {
	g := sphereInBox(t)
	filename := filepath.Join(t.TempDir(), "slice.png")
	err := RenderSlicePNG(filename, g, SliceConfig{Axis: AxisX, Height: 80, Legend: true})
	if err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	img, err := png.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 80 {
		t.Errorf("want height 80, got %d", img.Bounds().Dy())
	}
}

func TestMaterialPalette(t *testing.T) {
	pal := materialPalette(4)
	for i, c := range pal {
		h, s, v := rgbToHSV(c.X, c.Y, c.Z)
		if math.Abs(h-float32(i)/4) > 1e-3 || math.Abs(s-0.65) > 1e-3 || math.Abs(v-1) > 1e-3 {
			t.Errorf("color %d: got hsv %v %v %v", i, h, s, v)
		}
	}
	dense, light := shade(pal[0], 1), shade(pal[0], 0)
	if light.R >= dense.R {
		t.Errorf("low density not darker: %v >= %v", light, dense)
	}
	// Shading only changes brightness.
	for i, c := range pal {
		want, _, _ := rgbToHSV(c.X, c.Y, c.Z)
		sh := shade(c, 0.5)
		h, s, v := rgbToHSV(float32(sh.R)/255, float32(sh.G)/255, float32(sh.B)/255)
		if math.Abs(h-want) > 0.01 || math.Abs(s-0.65) > 0.02 || math.Abs(v-0.675) > 0.01 {
			t.Errorf("color %d: shaded hsv %v %v %v", i, h, s, v)
		}
	}
}

func TestWriteTable(t *testing.T) {
	pl := pathlen.NewPathLengths([]int{material.IonCode(56, 26), material.IonCode(16, 8)})
	pl.AddPathLength(material.IonCode(56, 26), 12.5)
	var buf bytes.Buffer
	err := WriteTable(&buf, pl)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header and 2 rows, got %q", buf.String())
	}
	if !strings.Contains(lines[1], "1000080160") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "12.5") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}
