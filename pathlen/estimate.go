package pathlen

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"

	"github.com/soypat/geometry/md3"
)

// Envelope is an axis aligned box given by its center and half extents.
type Envelope struct {
	Origin      md3.Vec
	HalfExtents md3.Vec
}

// EnvelopeFromBox returns the envelope of bb.
func EnvelopeFromBox(bb md3.Box) Envelope {
	return Envelope{
		Origin:      md3.Scale(0.5, md3.Add(bb.Min, bb.Max)),
		HalfExtents: md3.Scale(0.5, md3.Sub(bb.Max, bb.Min)),
	}
}

// Box returns the envelope as a bounding box.
func (e Envelope) Box() md3.Box {
	return md3.Box{
		Min: md3.Sub(e.Origin, e.HalfExtents),
		Max: md3.Add(e.Origin, e.HalfExtents),
	}
}

// Face identifies one of the six faces of an [Envelope].
type Face uint8

// Faces in scanning order.
const (
	FaceTop    Face = iota // +y
	FaceBottom             // -y
	FaceLeft               // -x
	FaceRight              // +x
	FaceBack               // -z
	FaceFront              // +z
	numFaces
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceBack:
		return "back"
	case FaceFront:
		return "front"
	}
	return "Face(" + strconv.Itoa(int(f)) + ")"
}

// samplePoint returns a uniformly distributed point on face f of e.
func (e Envelope) samplePoint(f Face, rng Rand) md3.Vec {
	o, h := e.Origin, e.HalfExtents
	u1 := 2*rng.Float64() - 1
	u2 := 2*rng.Float64() - 1
	switch f {
	case FaceTop, FaceBottom:
		y := o.Y + h.Y
		if f == FaceBottom {
			y = o.Y - h.Y
		}
		return md3.Vec{X: o.X + u1*h.X, Y: y, Z: o.Z + u2*h.Z}
	case FaceLeft, FaceRight:
		x := o.X + h.X
		if f == FaceLeft {
			x = o.X - h.X
		}
		return md3.Vec{X: x, Y: o.Y + u1*h.Y, Z: o.Z + u2*h.Z}
	default:
		z := o.Z + h.Z
		if f == FaceBack {
			z = o.Z - h.Z
		}
		return md3.Vec{X: o.X + u1*h.X, Y: o.Y + u2*h.Y, Z: z}
	}
}

// sampleDir returns a random unit direction pointing from face f into the envelope.
// Tangential components are uniform in [-0.5,0.5) and the normal component is uniform in [0,1).
// Draws yielding a null vector are repeated.
func sampleDir(f Face, rng Rand) md3.Vec {
	for {
		d := md3.Vec{
			X: rng.Float64() - 0.5,
			Y: rng.Float64() - 0.5,
			Z: rng.Float64() - 0.5,
		}
		switch f {
		case FaceTop:
			d.Y = -(d.Y + 0.5)
		case FaceBottom:
			d.Y = d.Y + 0.5
		case FaceLeft:
			d.X = d.X + 0.5
		case FaceRight:
			d.X = -(d.X + 0.5)
		case FaceBack:
			d.Z = d.Z + 0.5
		case FaceFront:
			d.Z = -(d.Z + 0.5)
		}
		n := md3.Norm(d)
		if n > 0 {
			return md3.Scale(1/n, d)
		}
	}
}

// ScannerConfig configures [EstimateMax].
type ScannerConfig struct {
	// NPoints is the number of points sampled on each face.
	NPoints int
	// NRays is the number of directions sampled at each point.
	NRays int
	// Seed derives the random streams used when no Rand is passed to EstimateMax.
	Seed uint64
	// Logger receives progress. If nil progress is not logged.
	Logger *slog.Logger
}

// EstimateMax estimates the maximum weighted path length of each code in targets
// over rays shot inwards from the six faces of env, and stores it in dst.
// Entries of dst not in targets are zeroed.
//
// If rng is nil every sampled face point draws from its own stream derived from
// cfg.Seed, the target index, the face and the point index. For a fixed seed the
// estimate is then non-decreasing in both NPoints and NRays.
//
// Rays cut short by the walker's step limit contribute the length walked so far.
func EstimateMax(w *Walker, env Envelope, targets []int, cfg ScannerConfig, rng Rand, dst PathLengths) error {
	if cfg.NPoints < 0 || cfg.NRays < 0 {
		return fmt.Errorf("negative scanner sample count: points=%d rays=%d", cfg.NPoints, cfg.NRays)
	}
	dst.SetAllToZero()
	log := cfg.Logger
	var pcg *rand.PCG
	var stream *rand.Rand
	if rng == nil {
		pcg = rand.NewPCG(0, 0)
		stream = rand.New(pcg)
	}
	for it, target := range targets {
		var maxLength float64
		for f := range numFaces {
			if log != nil {
				log.Debug("scanning face", slog.String("face", f.String()), slog.Int("target", target))
			}
			for ip := 0; ip < cfg.NPoints; ip++ {
				src := rng
				if src == nil {
					pcg.Seed(cfg.Seed, uint64(it)<<32|uint64(f)<<28|uint64(ip))
					src = stream
				}
				start := env.samplePoint(f, src)
				for ir := 0; ir < cfg.NRays; ir++ {
					r := Ray{Origin: start, Dir: sampleDir(f, src)}
					length, err := targetLength(w, r, target)
					if err != nil {
						return err
					}
					maxLength = max(maxLength, length)
				}
			}
		}
		dst[target] = maxLength
		if log != nil {
			log.Info("max path length", slog.Int("target", target), slog.Float64("length", maxLength))
		}
	}
	return nil
}

// targetLength returns the weighted length of r through segments of code target.
func targetLength(w *Walker, r Ray, target int) (float64, error) {
	var sum float64
	err := w.ForEachSegment(r, func(seg Segment) error {
		if seg.Code == target {
			sum += seg.Weighted()
		}
		return nil
	})
	if errors.Is(err, ErrNeverEntered) || errors.Is(err, ErrMaxSteps) {
		err = nil
	}
	return sum, err
}
