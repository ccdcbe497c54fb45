package pathlen

import (
	"strconv"

	"github.com/soypat/nugeom/material"
)

// Weighting decides how geometric length is weighted per material.
type Weighting uint8

const (
	// WeightDensity multiplies lengths by the material density.
	WeightDensity Weighting = iota
	// WeightNone leaves lengths unweighted.
	WeightNone
)

// Weight returns the length multiplier for m.
func (wt Weighting) Weight(m *material.Material) float64 {
	if wt == WeightDensity {
		return m.Density
	}
	return 1
}

func (wt Weighting) String() string {
	switch wt {
	case WeightDensity:
		return "density"
	case WeightNone:
		return "none"
	}
	return "Weighting(" + strconv.Itoa(int(wt)) + ")"
}

func weightingFor(withDensity bool) Weighting {
	if withDensity {
		return WeightDensity
	}
	return WeightNone
}
