package pathlen

// Length units expressed in meters. Path lengths are reported in meters:
// a geometry described in centimeters uses LengthUnit = Centimeter.
const (
	Meter      = 1.0
	Kilometer  = 1e3 * Meter
	Centimeter = 1e-2 * Meter
	Millimeter = 1e-3 * Meter
	Micrometer = 1e-6 * Meter
)

// unitScale returns the factor converting lengths in unit to meters.
func unitScale(unit float64) float64 {
	return unit / Meter
}
