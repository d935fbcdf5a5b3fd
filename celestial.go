package orbitguard

// CelestialObject defines the central body of the analysis.
// Only the fields needed for secular propagation are carried.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km^3/s^2
	J2     float64
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ && c.J2 == b.J2
}

// Earth is the body about which all cataloged objects orbit.
var Earth = CelestialObject{"Earth", 6378.137, 398600.4418, 1.08263e-3}
