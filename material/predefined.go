package material

// Common elements. Atomic masses in g/mol.
var (
	Hydrogen = Element{Name: "H", A: 1.008, Z: 1}
	Carbon   = Element{Name: "C", A: 12.011, Z: 6}
	Nitrogen = Element{Name: "N", A: 14.007, Z: 7}
	Oxygen   = Element{Name: "O", A: 15.999, Z: 8}
	Sodium   = Element{Name: "Na", A: 22.990, Z: 11}
	Silicon  = Element{Name: "Si", A: 28.086, Z: 14}
	Argon    = Element{Name: "Ar", A: 39.948, Z: 18}
	Calcium  = Element{Name: "Ca", A: 40.078, Z: 20}
	IronElem = Element{Name: "Fe", A: 55.845, Z: 26}
	LeadElem = Element{Name: "Pb", A: 207.2, Z: 82}
)

func withWeight(e Element, w float64) Element {
	e.Weight = w
	return e
}

// Iron returns pure iron with density 7.874 g/cm^3.
func Iron() *Material { return NewSubstance("Iron", IronElem.A, IronElem.Z, 7.874) }

// Lead returns pure lead with density 11.35 g/cm^3.
func Lead() *Material { return NewSubstance("Lead", LeadElem.A, LeadElem.Z, 11.35) }

// LiquidArgon returns liquid argon with density 1.396 g/cm^3.
func LiquidArgon() *Material { return NewSubstance("LiquidArgon", Argon.A, Argon.Z, 1.396) }

// Water returns H2O with density 1 g/cm^3.
func Water() *Material {
	return NewMixture("Water", 1.0,
		withWeight(Hydrogen, 0.1119),
		withWeight(Oxygen, 0.8881),
	)
}

// DryAir returns dry air at sea level with density 0.001205 g/cm^3.
func DryAir() *Material {
	return NewMixture("DryAir", 0.001205,
		withWeight(Nitrogen, 0.7553),
		withWeight(Oxygen, 0.2318),
		withWeight(Argon, 0.0129),
	)
}

// Concrete returns ordinary concrete with density 2.3 g/cm^3.
func Concrete() *Material {
	return NewMixture("Concrete", 2.3,
		withWeight(Oxygen, 0.532),
		withWeight(Silicon, 0.337),
		withWeight(Calcium, 0.044),
		withWeight(Sodium, 0.029),
		withWeight(Hydrogen, 0.010),
		withWeight(Carbon, 0.048),
	)
}

// StandardRock returns the conventional standard rock (A=22, Z=11) with density 2.65 g/cm^3.
func StandardRock() *Material { return NewSubstance("StandardRock", 22, 11, 2.65) }
