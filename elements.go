package orbitguard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 2e1                          // 20 km

	// keplerε is the eccentric anomaly convergence bound of the fixed point
	// iteration. The contraction factor is ~e per iteration, so the cap is
	// only reached near e=1 where the solution is still approximate.
	keplerε        = 1e-12
	keplerMaxIters = 100
)

// ErrInvalidElements is returned when an element set cannot describe a bound
// Earth orbit. Callers processing a population are expected to skip the
// offending object, not abort the pass.
var ErrInvalidElements = errors.New("invalid orbital elements")

// Elements defines an osculating orbit via its Keplerian elements.
// All angles are stored in radians, distances in km, mean motion in rad/s.
type Elements struct {
	a, e, i, Ω, ω, ν, n float64
}

// NewElements creates an element set from the provided elements.
// WARNING: Angles must be in degrees not radians (as in catalogs).
func NewElements(a, e, i, Ω, ω, ν float64) Elements {
	return NewElementsRad(a, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), Deg2rad(ν))
}

// NewElementsRad creates an element set with all angles in radians.
// The mean motion is derived from the semi major axis.
func NewElementsRad(a, e, i, Ω, ω, ν float64) Elements {
	el := Elements{a, e, i, Ω, ω, ν, 0}
	if a > 0 {
		el.n = math.Sqrt(Earth.μ / math.Pow(a, 3))
	}
	return el
}

// NewElementsFromRV returns the element set matching the R and V vectors (km, km/s).
// From Vallado's RV2COE, page 113. Hyperbolic and parabolic states are rejected.
func NewElementsFromRV(R, V []float64) (Elements, error) {
	hVec := cross(R, V)
	nVec := cross([]float64{0, 0, 1}, hVec)
	v := norm(V)
	r := norm(R)
	if r == 0 {
		return Elements{}, fmt.Errorf("%w: zero radius vector", ErrInvalidElements)
	}
	ξ := (v*v)/2 - Earth.μ/r
	a := -Earth.μ / (2 * ξ)
	eVec := make([]float64, 3)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-Earth.μ/r)*R[k] - dot(R, V)*V[k]) / Earth.μ
	}
	e := norm(eVec)
	if e >= 1 {
		return Elements{}, fmt.Errorf("%w: e=%f is not a bound orbit", ErrInvalidElements, e)
	}
	i := math.Acos(hVec[2] / norm(hVec))
	ω := math.Acos(dot(nVec, eVec) / (norm(nVec) * e))
	if math.IsNaN(ω) {
		ω = 0
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω := math.Acos(nVec[0] / norm(nVec))
	if math.IsNaN(Ω) {
		Ω = 0
	}
	if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	cosν := dot(eVec, R) / (e * r)
	if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
		cosν = sign(cosν)
	}
	ν := math.Acos(cosν)
	if math.IsNaN(ν) {
		ν = 0
	}
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}
	// Fix rounding errors.
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)
	return NewElementsRad(a, e, i, Ω, ω, ν), nil
}

// Validate returns whether this element set describes a bound Earth orbit.
func (el Elements) Validate() error {
	if el.a <= 0 {
		return fmt.Errorf("%w: a=%f must be strictly positive", ErrInvalidElements, el.a)
	}
	if el.e < 0 || el.e >= 1 {
		return fmt.Errorf("%w: e=%f must be in [0,1)", ErrInvalidElements, el.e)
	}
	if el.n <= 0 {
		return fmt.Errorf("%w: n=%f must be strictly positive", ErrInvalidElements, el.n)
	}
	return nil
}

// Elements returns the seven elements carried by this set.
func (el Elements) Elements() (a, e, i, Ω, ω, ν, n float64) {
	return el.a, el.e, el.i, el.Ω, el.ω, el.ν, el.n
}

// MeanMotion returns the mean motion in rad/s.
func (el Elements) MeanMotion() float64 {
	return el.n
}

// SemiParameter returns the semi latus rectum.
func (el Elements) SemiParameter() float64 {
	return el.a * (1 - el.e*el.e)
}

// Apoapsis returns the apoapsis radius.
func (el Elements) Apoapsis() float64 {
	return el.a * (1 + el.e)
}

// Periapsis returns the periapsis radius.
func (el Elements) Periapsis() float64 {
	return el.a * (1 - el.e)
}

// Altitude returns the altitude of the semi major axis above the surface.
func (el Elements) Altitude() float64 {
	return el.a - Earth.Radius
}

// RNorm returns the orbital radius at the current true anomaly.
func (el Elements) RNorm() float64 {
	return el.SemiParameter() / (1 + el.e*math.Cos(el.ν))
}

// Period returns the orbital period.
func (el Elements) Period() time.Duration {
	// The time package does not trivially handle fractions of a second, so let's
	// compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(el.a, 3)/Earth.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// EccentricAnomaly converts the current true anomaly via the half angle relation.
func (el Elements) EccentricAnomaly() float64 {
	sν, cν := math.Sincos(el.ν / 2)
	return 2 * math.Atan2(math.Sqrt(1-el.e)*sν, math.Sqrt(1+el.e)*cν)
}

// MeanAnomaly returns the mean anomaly M = E - e sin E.
func (el Elements) MeanAnomaly() float64 {
	E := el.EccentricAnomaly()
	return E - el.e*math.Sin(E)
}

// trueAnomalyFromEccentric inverts the half angle relation.
func trueAnomalyFromEccentric(e, E float64) float64 {
	sE, cE := math.Sincos(E / 2)
	return 2 * math.Atan2(math.Sqrt(1+e)*sE, math.Sqrt(1-e)*cE)
}

// solveKepler solves Kepler's equation M = E - e sin E for E via fixed point
// iteration, stopping on convergence instead of after a blind iteration count.
func solveKepler(M, e float64) float64 {
	E := M
	for iter := 0; iter < keplerMaxIters; iter++ {
		Enext := M + e*math.Sin(E)
		if math.Abs(Enext-E) < keplerε {
			return Enext
		}
		E = Enext
	}
	return E
}

// String implements the stringer interface.
func (el Elements) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", el.a, el.e, Rad2deg(el.i), Rad2deg(el.Ω), Rad2deg(el.ω), Rad2deg(el.ν))
}

// Equals returns whether two element sets are identical with free true anomaly.
func (el Elements) Equals(el1 Elements) (bool, error) {
	if !floats.EqualWithinAbs(el.a, el1.a, distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(el.e, el1.e, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !floats.EqualWithinAbs(el.i, el1.i, angleε) {
		return false, errors.New("inclination invalid")
	}
	if !floats.EqualWithinAbs(el.Ω, el1.Ω, angleε) {
		return false, errors.New("RAAN invalid")
	}
	if el.e > eccentricityε && !floats.EqualWithinAbs(el.ω, el1.ω, angleε) {
		return false, errors.New("argument of perigee invalid")
	}
	return true, nil
}
