// Package material describes the media that fill detector volumes and
// resolves each material, or each element of a mixture, to a nuclear code.
package material

import (
	"errors"
	"fmt"
	"strconv"
)

// IonCode returns the nuclear code of the nucleus with mass number A and charge Z
// following the 10LZZZAAAI convention (L and I are zero): 1000000000 + Z*10000 + A*10.
func IonCode(A, Z int) int {
	return 1000000000 + Z*10000 + A*10
}

// SplitIonCode is the inverse of [IonCode].
func SplitIonCode(code int) (A, Z int) {
	rem := code - 1000000000
	return (rem % 10000) / 10, rem / 10000
}

// FormatCode returns a human readable form of a nuclear code such as "1000260560 (A=56,Z=26)".
func FormatCode(code int) string {
	A, Z := SplitIonCode(code)
	b := strconv.AppendInt(nil, int64(code), 10)
	b = append(b, " (A="...)
	b = strconv.AppendInt(b, int64(A), 10)
	b = append(b, ",Z="...)
	b = strconv.AppendInt(b, int64(Z), 10)
	b = append(b, ')')
	return string(b)
}

// Element is a single nuclide defined by its atomic mass and charge.
type Element struct {
	Name string
	// A is the atomic mass in g/mol. Truncated to an integer mass number for identification.
	A float64
	// Z is the atomic number.
	Z float64
	// Weight is the mass fraction of the element inside a mixture. Informational only.
	Weight float64
}

// Code returns the element's nuclear code.
func (e Element) Code() int {
	return IonCode(int(e.A), int(e.Z))
}

// Kind distinguishes single substances from mixtures of elements.
type Kind uint8

const (
	Substance Kind = iota
	Mixture
)

func (k Kind) String() string {
	switch k {
	case Substance:
		return "substance"
	case Mixture:
		return "mixture"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Material is a tagged variant: a Substance is identified by its own A and Z
// while a Mixture is made of its Elements. Density is shared by both.
type Material struct {
	Name    string
	Kind    Kind
	Density float64
	// A and Z of a Substance. For a Mixture these hold the effective (averaged) values.
	A, Z     float64
	Elements []Element
}

// NewSubstance creates a single-nuclide material.
func NewSubstance(name string, A, Z, density float64) *Material {
	return &Material{Name: name, Kind: Substance, A: A, Z: Z, Density: density}
}

// NewMixture creates a material composed of elements. The effective A and Z are
// the weight-averaged values of the elements.
func NewMixture(name string, density float64, elements ...Element) *Material {
	m := &Material{Name: name, Kind: Mixture, Density: density, Elements: elements}
	var wsum float64
	for _, e := range elements {
		wsum += e.Weight
	}
	if wsum > 0 {
		for _, e := range elements {
			m.A += e.A * e.Weight / wsum
			m.Z += e.Z * e.Weight / wsum
		}
	}
	return m
}

// IsMixture reports whether m is made of several elements.
func (m *Material) IsMixture() bool {
	return m.Kind == Mixture
}

// Code returns the nuclear code of a substance, or the code of the
// effective nucleus of a mixture.
func (m *Material) Code() int {
	return IonCode(int(m.A), int(m.Z))
}

// Codes appends the identifying codes of m to dst: one code for a substance
// and one per element for a mixture, in element order.
func (m *Material) Codes(dst []int) []int {
	switch m.Kind {
	case Mixture:
		for _, e := range m.Elements {
			dst = append(dst, e.Code())
		}
	default:
		dst = append(dst, m.Code())
	}
	return dst
}

// Validate checks the material is well formed.
func (m *Material) Validate() error {
	var errs []error
	if m.Density < 0 {
		errs = append(errs, fmt.Errorf("material %q: negative density %v", m.Name, m.Density))
	}
	switch m.Kind {
	case Substance:
		if m.A < 1 || m.Z < 1 {
			errs = append(errs, fmt.Errorf("material %q: invalid A=%v Z=%v", m.Name, m.A, m.Z))
		}
	case Mixture:
		if len(m.Elements) == 0 {
			errs = append(errs, fmt.Errorf("mixture %q: no elements", m.Name))
		}
		for i, e := range m.Elements {
			if e.A < 1 || e.Z < 1 {
				errs = append(errs, fmt.Errorf("mixture %q element[%d] %q: invalid A=%v Z=%v", m.Name, i, e.Name, e.A, e.Z))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("material %q: unknown kind %v", m.Name, m.Kind))
	}
	return errors.Join(errs...)
}

// Medium is the tracking medium attached to a volume. Material may be nil for malformed geometries.
type Medium struct {
	Name     string
	Material *Material
}

// NewMedium creates a medium named after its material.
func NewMedium(m *Material) *Medium {
	name := ""
	if m != nil {
		name = m.Name
	}
	return &Medium{Name: name, Material: m}
}
