package orbitguard

import (
	"math"
	"time"
)

const (
	// decayAltitudeKm is the altitude under which the drag heuristic kicks in.
	decayAltitudeKm = 500.0
	// decayRateKm is the linear ramp factor of the heuristic, in km/s per km
	// below the threshold. An approximation, not a calibrated drag model.
	decayRateKm = 1e-6
)

// SecularPropagator advances an element set with analytic J2 secular rates and
// an altitude dependent decay heuristic. It is not an orbit integrator: only
// the slow drifts of Ω, ω and the anomaly advance are modeled.
type SecularPropagator struct {
	Body CelestialObject
}

// NewSecularPropagator returns a propagator about the Earth.
func NewSecularPropagator() SecularPropagator {
	return SecularPropagator{Earth}
}

// Propagate advances the element set in place by Δt. Elements are updated
// sequentially: secular rates are computed at the current state, then the
// anomaly is re-solved through Kepler's equation for the advanced mean anomaly.
func (sp SecularPropagator) Propagate(el *Elements, Δt time.Duration) {
	dt := Δt.Seconds()
	n := math.Sqrt(sp.Body.μ / math.Pow(el.a, 3))
	p := el.a * (1 - el.e*el.e)
	term := -1.5 * n * sp.Body.J2 * math.Pow(sp.Body.Radius/p, 2)

	sinI, cosI := math.Sincos(el.i)
	Ωdot := term * cosI
	ωdot := term * (2.5*sinI*sinI - 2)

	// Altitude dependent decay ramp below the threshold.
	if h := el.a - sp.Body.Radius; h < decayAltitudeKm {
		el.a += -decayRateKm * (decayAltitudeKm - h) * dt
	}

	el.Ω = wrap2π(el.Ω + Ωdot*dt)
	el.ω = wrap2π(el.ω + ωdot*dt)

	// Advance the anomaly: ν -> E -> M, drift by n·Δt, solve Kepler back.
	M := el.MeanAnomaly() + n*dt
	el.ν = trueAnomalyFromEccentric(el.e, solveKepler(M, el.e))

	// Mean motion follows the (possibly decayed) semi major axis.
	el.n = math.Sqrt(sp.Body.μ / math.Pow(el.a, 3))
}

// wrap2π wraps an angle into [0, 2π).
func wrap2π(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
