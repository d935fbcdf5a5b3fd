package orbitguard

import "math"

// parallelPlaneε bounds the cross product norm under which two orbital planes
// are treated as parallel or coincident.
const parallelPlaneε = 1e-6

// PlaneNormal returns the orbital plane normal derived from the elements,
// h = (sin i sin Ω, −sin i cos Ω, cos i).
func PlaneNormal(el Elements) []float64 {
	si, ci := math.Sincos(el.i)
	sΩ, cΩ := math.Sincos(el.Ω)
	return []float64{si * sΩ, -si * cΩ, ci}
}

// IntersectionLine returns the unit vector along the intersection of the two
// orbital planes. The second return is false when the planes are parallel or
// coincident, which is a valid geometric outcome and not an error.
func IntersectionLine(el1, el2 Elements) ([]float64, bool) {
	L := cross(PlaneNormal(el1), PlaneNormal(el2))
	if norm(L) < parallelPlaneε {
		return nil, false
	}
	return unit(L), true
}

// AnomalyAtDirection returns the true anomaly at which the orbit crosses the
// plane position given by the unit direction d, by rotating d into the
// perifocal frame.
func (el Elements) AnomalyAtDirection(d []float64) float64 {
	rp := ECI2Perifocal(el.i, el.Ω, el.ω, d)
	return math.Atan2(rp[1], rp[0])
}

// RadiusAtAnomaly returns the orbital radius r = p / (1 + e cos ν).
func (el Elements) RadiusAtAnomaly(ν float64) float64 {
	return el.SemiParameter() / (1 + el.e*math.Cos(ν))
}
