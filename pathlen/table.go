package pathlen

import (
	"slices"
	"strconv"
	"strings"

	"github.com/soypat/nugeom/material"
)

// PathLengths maps material identity codes to accumulated (weighted) lengths.
// Materials absent from a walk keep a zero entry.
type PathLengths map[int]float64

// NewPathLengths returns a table with a zero entry for each code.
func NewPathLengths(codes []int) PathLengths {
	pl := make(PathLengths, len(codes))
	for _, c := range codes {
		pl[c] = 0
	}
	return pl
}

// SetAllToZero zeroes every entry keeping the keys.
func (pl PathLengths) SetAllToZero() {
	for c := range pl {
		pl[c] = 0
	}
}

// AddPathLength adds length to the entry of code.
func (pl PathLengths) AddPathLength(code int, length float64) {
	pl[code] += length
}

// ScalePathLength multiplies the entry of code by factor.
func (pl PathLengths) ScalePathLength(code int, factor float64) {
	if _, ok := pl[code]; ok {
		pl[code] *= factor
	}
}

// Scale multiplies every entry by factor.
func (pl PathLengths) Scale(factor float64) {
	for c := range pl {
		pl[c] *= factor
	}
}

// AreAllZero reports whether every entry is zero.
func (pl PathLengths) AreAllZero() bool {
	for _, l := range pl {
		if l != 0 {
			return false
		}
	}
	return true
}

// Codes returns the table's codes in ascending order.
func (pl PathLengths) Codes() []int {
	codes := make([]int, 0, len(pl))
	for c := range pl {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Clone returns a copy of the table that is not overwritten by later queries.
func (pl PathLengths) Clone() PathLengths {
	cp := make(PathLengths, len(pl))
	for c, l := range pl {
		cp[c] = l
	}
	return cp
}

func (pl PathLengths) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, c := range pl.Codes() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(material.FormatCode(c))
		sb.WriteString(": ")
		sb.WriteString(strconv.FormatFloat(pl[c], 'g', 6, 64))
	}
	sb.WriteByte('}')
	return sb.String()
}
