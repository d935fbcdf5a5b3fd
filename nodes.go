package orbitguard

import (
	"fmt"
	"math"
)

const (
	secondsPerDay = 86400.0
	monthDays     = 30.0

	// relMeanMotionε guards the synodic period against co-period orbits, where
	// |n1-n2| ~ 0 would blow up the division.
	relMeanMotionε = 1e-9

	// minSynodicDays rejects near co-orbital pairs (constellation members)
	// whose conjunction cadence is an artifact rather than a periodic risk.
	minSynodicDays = 0.2
)

// ConjunctionNode is one qualifying intersection of two orbits: the planes
// cross along Direction and the orbital radii there differ by no more than the
// evaluation tolerance.
type ConjunctionNode struct {
	ID1, ID2       int
	Name1, Name2   string
	Direction      []float64 // unit vector along the plane intersection
	DistanceDiffKm float64
	LatDeg, LonDeg float64 // approximate geodetic position of the node
	NodalFrequency float64 // conjunction events per 30 day month
	SynodicDays    float64
}

// String implements the Stringer interface.
func (cn ConjunctionNode) String() string {
	return fmt.Sprintf("%s x %s: Δr=%.3f km f_nc=%.2f/month Tc=%.2f days @ (%.2f, %.2f)",
		cn.Name1, cn.Name2, cn.DistanceDiffKm, cn.NodalFrequency, cn.SynodicDays, cn.LatDeg, cn.LonDeg)
}

// NodeEvaluator filters candidate pairs down to qualifying conjunction nodes.
type NodeEvaluator struct {
	ToleranceKm float64
}

// EvaluatePair computes the conjunction nodes of one pair. Parallel or
// coincident planes, radial mismatches beyond the tolerance, co-period pairs
// and sub 0.2 day synodic periods all yield no nodes.
func (ev NodeEvaluator) EvaluatePair(o1, o2 *TrackedObject) []ConjunctionNode {
	el1, el2 := o1.Elements, o2.Elements
	dir, ok := IntersectionLine(el1, el2)
	if !ok {
		return nil
	}

	var nodes []ConjunctionNode
	for _, d := range [][]float64{dir, neg(dir)} {
		ν1 := el1.AnomalyAtDirection(d)
		r1 := el1.RadiusAtAnomaly(ν1)
		ν2 := el2.AnomalyAtDirection(d)
		r2 := el2.RadiusAtAnomaly(ν2)

		distanceDiff := math.Abs(r1 - r2)
		if distanceDiff > ev.ToleranceKm {
			continue
		}
		relN := math.Abs(el1.n - el2.n)
		if relN <= relMeanMotionε {
			continue
		}
		synodicDays := (2 * math.Pi / relN) / secondsPerDay
		if synodicDays < minSynodicDays {
			continue
		}
		nodes = append(nodes, ConjunctionNode{
			ID1:            o1.ID,
			ID2:            o2.ID,
			Name1:          o1.Name,
			Name2:          o2.Name,
			Direction:      d,
			DistanceDiffKm: distanceDiff,
			LatDeg:         math.Asin(d[2]) / deg2rad,
			LonDeg:         math.Atan2(d[1], d[0]) / deg2rad,
			NodalFrequency: monthDays / synodicDays,
			SynodicDays:    synodicDays,
		})
	}
	return nodes
}

// AggregateCriticality sums the nodal frequency of every qualifying node into
// both participating objects. The result is returned as an explicit map rather
// than written into shared state; callers merge it into their own records.
// Objects without any node simply do not appear (score zero).
func AggregateCriticality(nodes []ConjunctionNode) map[int]float64 {
	scores := make(map[int]float64)
	for _, cn := range nodes {
		scores[cn.ID1] += cn.NodalFrequency
		scores[cn.ID2] += cn.NodalFrequency
	}
	return scores
}
