package pathlen

import (
	"github.com/soypat/geometry/md3"
	"go-hep.org/x/hep/fmom"
)

// RayFromFourVectors returns the ray starting at the spatial part of the 4-position x
// heading along the 3-momentum of p. The time component of x is ignored.
// Positions are expressed in geometry units.
func RayFromFourVectors(x, p fmom.PxPyPzE) (Ray, error) {
	origin := md3.Vec{X: x.Px(), Y: x.Py(), Z: x.Pz()}
	dir := md3.Vec{X: p.Px(), Y: p.Py(), Z: p.Pz()}
	return NewRay(origin, dir)
}
