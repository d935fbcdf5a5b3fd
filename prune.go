package orbitguard

import "sort"

// CandidatePair references two objects of the same population by index.
type CandidatePair struct {
	I, J int
}

// CandidatePairs sweeps the perigee/apogee bands of the population and emits
// only the pairs whose radial ranges can overlap within the tolerance.
//
// Objects are sorted by ascending perigee. For each object, subsequent objects
// are scanned while their perigee stays below apogee+tolerance; the first
// violation ends the scan since the ordering guarantees no further matches.
// This reduces the two sided overlap test max(p1,p2) <= min(A1,A2)+tol to a
// single comparison, because the scanned object always has the larger perigee
// and its own perigee never exceeds its apogee. O(N log N + |candidates|),
// versus O(N^2) for the naive pairwise filter.
func CandidatePairs(pop Population, toleranceKm float64) []CandidatePair {
	n := len(pop)
	if n < 2 {
		return nil
	}
	type band struct {
		idx             int
		perigee, apogee float64
	}
	bands := make([]band, n)
	for k, o := range pop {
		bands[k] = band{k, o.Elements.Periapsis(), o.Elements.Apoapsis()}
	}
	sort.Slice(bands, func(a, b int) bool { return bands[a].perigee < bands[b].perigee })

	var pairs []CandidatePair
	for k := 0; k < n; k++ {
		limit := bands[k].apogee + toleranceKm
		for l := k + 1; l < n; l++ {
			if bands[l].perigee > limit {
				break
			}
			pairs = append(pairs, CandidatePair{bands[k].idx, bands[l].idx})
		}
	}
	return pairs
}
