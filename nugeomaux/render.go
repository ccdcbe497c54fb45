// Package nugeomaux provides auxiliary tooling for inspecting detector
// geometries and path length results: cross section renders and text reports.
package nugeomaux

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom/material"
	"github.com/soypat/nugeom/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Axis selects the normal of a cross section plane.
type Axis uint8

const (
	AxisZ Axis = iota
	AxisY
	AxisX
)

// SliceConfig configures a cross section render.
type SliceConfig struct {
	// Axis is the normal of the section plane.
	Axis Axis
	// Offset is the position of the plane along Axis.
	Offset float64
	// Height is the image height in pixels. Width is chosen to preserve the aspect ratio.
	Height int
	// Legend draws the material names over the image.
	Legend bool
}

// RenderSlicePNG renders an axis aligned cross section of the top volume of g
// and saves it to a PNG file with said filename. See [RenderSlice].
func RenderSlicePNG(filename string, g *scene.Geometry, cfg SliceConfig) error {
	img, err := RenderSlice(g, cfg)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = png.Encode(fp, img)
	if err != nil {
		return err
	}
	return fp.Sync()
}

// RenderSlice renders an axis aligned cross section of the top volume of g.
// Each material gets its own hue, shaded by density. Points outside the
// geometry are black and volumes without material are red.
func RenderSlice(g *scene.Geometry, cfg SliceConfig) (*image.RGBA, error) {
	if cfg.Height <= 0 {
		return nil, errors.New("image height must be positive")
	}
	bb, err := g.BoundingEnvelope()
	if err != nil {
		return nil, err
	}
	u0, v0, u1, v1 := planeExtent(bb, cfg.Axis)
	if u1 <= u0 || v1 <= v0 {
		return nil, fmt.Errorf("degenerate section of bounds %v", bb)
	}
	pixPerUnit := float64(cfg.Height) / (v1 - v0)
	width := max(1, int(pixPerUnit*(u1-u0)))
	img := image.NewRGBA(image.Rect(0, 0, width, cfg.Height))

	mats := g.Materials()
	colors := materialColors(mats)
	pos := make([]md3.Vec, width)
	dst := make([]*scene.Volume, width)
	for j := 0; j < cfg.Height; j++ {
		// Image rows grow downwards.
		v := v1 - (float64(j)+0.5)/pixPerUnit
		for i := range pos {
			u := u0 + (float64(i)+0.5)/pixPerUnit
			pos[i] = planePoint(cfg.Axis, u, v, cfg.Offset)
		}
		err = g.FindNodes(pos, dst)
		if err != nil {
			return nil, err
		}
		for i, vol := range dst {
			img.SetRGBA(i, j, volumeColor(vol, colors))
		}
	}
	if cfg.Legend {
		drawLegend(img, mats, colors)
	}
	return img, nil
}

func volumeColor(v *scene.Volume, colors map[*material.Material]color.RGBA) color.RGBA {
	switch {
	case v == nil:
		return black
	case v.Medium == nil || v.Medium.Material == nil:
		return red
	}
	return colors[v.Medium.Material]
}

func materialColors(mats []*material.Material) map[*material.Material]color.RGBA {
	var maxDensity float64
	for _, m := range mats {
		maxDensity = max(maxDensity, m.Density)
	}
	pal := materialPalette(len(mats))
	colors := make(map[*material.Material]color.RGBA, len(mats))
	for i, m := range mats {
		rel := float32(1)
		if maxDensity > 0 {
			rel = float32(m.Density / maxDensity)
		}
		colors[m] = shade(pal[i], rel)
	}
	return colors
}

func drawLegend(img *image.RGBA, mats []*material.Material, colors map[*material.Material]color.RGBA) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	const swatch = 10
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, m := range mats {
		y := 4 + i*lineHeight
		if y+lineHeight > img.Bounds().Dy() {
			break
		}
		sw := image.Rect(4, y+1, 4+swatch, y+1+swatch)
		draw.Draw(img, sw, image.NewUniform(colors[m]), image.Point{}, draw.Src)
		d.Dot = fixed.P(8+swatch, y+face.Ascent)
		d.DrawString(fmt.Sprintf("%s (%.3g)", m.Name, m.Density))
	}
}

// planeExtent returns the in-plane extents of bb for a section normal to axis.
func planeExtent(bb md3.Box, axis Axis) (u0, v0, u1, v1 float64) {
	switch axis {
	case AxisX:
		return bb.Min.Y, bb.Min.Z, bb.Max.Y, bb.Max.Z
	case AxisY:
		return bb.Min.X, bb.Min.Z, bb.Max.X, bb.Max.Z
	default:
		return bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y
	}
}

func planePoint(axis Axis, u, v, offset float64) md3.Vec {
	switch axis {
	case AxisX:
		return md3.Vec{X: offset, Y: u, Z: v}
	case AxisY:
		return md3.Vec{X: u, Y: offset, Z: v}
	default:
		return md3.Vec{X: u, Y: v, Z: offset}
	}
}
