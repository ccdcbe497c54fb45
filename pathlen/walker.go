package pathlen

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/soypat/geometry/md3"
	"github.com/soypat/nugeom/material"
)

// WalkerConfig configures a [Walker].
type WalkerConfig struct {
	Weighting Weighting
	// MaxSteps bounds the number of boundary searches of a single walk. Zero means no bound.
	MaxSteps int
	// Logger receives diagnostics about malformed geometry. If nil logging is disabled.
	Logger *slog.Logger
}

// Walker steps rays through a geometry from boundary to boundary.
// A Walker holds no per-walk state; the state of each walk lives in the
// ForEachSegment call so one Walker may serve several walks if its Navigator allows it.
type Walker struct {
	nav       Navigator
	weighting Weighting
	maxSteps  int
	log       *slog.Logger
}

// NewWalker creates a Walker over nav. It panics if nav is nil.
func NewWalker(nav Navigator, cfg WalkerConfig) *Walker {
	if nav == nil {
		panic("nil Navigator")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Walker{
		nav:       nav,
		weighting: cfg.Weighting,
		maxSteps:  max(cfg.MaxSteps, 0),
		log:       log,
	}
}

// Navigator returns the walker's navigator.
func (w *Walker) Navigator() Navigator { return w.nav }

// Weighting returns the weighting applied to segments.
func (w *Walker) Weighting() Weighting { return w.weighting }

// walkState is the traversal state of a single walk.
type walkState struct {
	pos     md3.Vec
	dir     md3.Vec
	entered bool
	steps   int
}

var errUnbounded = errors.New("unbounded step")

// ForEachSegment walks r through the geometry calling fn for every segment in ray order.
// The walk ends when the ray leaves the geometry for good after having entered it,
// returning nil. If the ray never enters the geometry [ErrNeverEntered] is returned
// and fn is never called. If fn returns an error the walk stops and the error is returned.
//
// A volume with no medium, or a medium with no material, ends the walk as if
// the ray had exited. r.Dir must be unit length.
func (w *Walker) ForEachSegment(r Ray, fn func(seg Segment) error) error {
	st := walkState{pos: r.Origin, dir: r.Dir}
	for {
		if err := w.countStep(&st); err != nil {
			return err
		}
		med, inside := w.nav.FindNode(st.pos)
		if !inside {
			if st.entered {
				return nil // Exited for good.
			}
			dist, err := w.crossing(&st)
			if errors.Is(err, errUnbounded) {
				w.log.Debug("ray never enters geometry", slog.Any("origin", r.Origin), slog.Any("dir", r.Dir))
				return ErrNeverEntered
			} else if err != nil {
				return err
			}
			st.pos = md3.Add(st.pos, md3.Scale(dist, st.dir))
			continue
		}
		st.entered = true
		if med == nil {
			w.log.Warn("malformed geometry", slog.String("err", ErrUnresolvableMedium.Error()), slog.Any("pos", st.pos))
			return nil
		}
		mat := med.Material
		if mat == nil {
			w.log.Warn("malformed geometry", slog.String("err", ErrUnresolvableMaterial.Error()), slog.String("medium", med.Name), slog.Any("pos", st.pos))
			return nil
		}
		dist, err := w.crossing(&st)
		if errors.Is(err, errUnbounded) {
			w.log.Warn("no boundary found from inside geometry", slog.String("material", mat.Name), slog.Any("pos", st.pos))
			return nil
		} else if err != nil {
			return err
		}
		err = w.emit(&st, mat, dist, fn)
		if err != nil {
			return err
		}
		st.pos = md3.Add(st.pos, md3.Scale(dist, st.dir))
	}
}

// emit calls fn with the segments of a crossing of length dist through mat.
func (w *Walker) emit(st *walkState, mat *material.Material, dist float64, fn func(Segment) error) error {
	weight := w.weighting.Weight(mat)
	switch mat.Kind {
	case material.Mixture:
		// Every element gets the full crossing length.
		for _, e := range mat.Elements {
			err := fn(Segment{Code: e.Code(), Length: dist, Weight: weight, Material: mat, Start: st.pos})
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fn(Segment{Code: mat.Code(), Length: dist, Weight: weight, Material: mat, Start: st.pos})
	}
}

// crossing returns the distance from the walk's position to the next boundary
// that enters a new region, stepping over coincident non-entering boundaries.
func (w *Walker) crossing(st *walkState) (float64, error) {
	var total float64
	for {
		p := md3.Add(st.pos, md3.Scale(total, st.dir))
		step, entering := w.nav.FindNextBoundary(p, st.dir)
		if step >= NeverEnterStep {
			return total, errUnbounded
		}
		total += step
		if entering {
			return total, nil
		}
		if err := w.countStep(st); err != nil {
			return total, err
		}
	}
}

func (w *Walker) countStep(st *walkState) error {
	st.steps++
	if w.maxSteps > 0 && st.steps > w.maxSteps {
		return fmt.Errorf("%w: %d steps at %v", ErrMaxSteps, w.maxSteps, st.pos)
	}
	return nil
}
