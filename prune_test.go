package orbitguard

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

func TestCandidatePairsSmallPopulation(t *testing.T) {
	if pairs := CandidatePairs(nil, 10); pairs != nil {
		t.Fatal("empty population must yield no pairs")
	}
	single := Population{NewTrackedObjectFromElements(1, "A", NewElements(7000, 0, 50, 0, 0, 0))}
	if pairs := CandidatePairs(single, 10); pairs != nil {
		t.Fatal("single object must yield no pairs")
	}
}

func TestCandidatePairsDisjointBands(t *testing.T) {
	pop := Population{
		NewTrackedObjectFromElements(1, "LEO", NewElements(7000, 0.001, 50, 0, 0, 0)),
		NewTrackedObjectFromElements(2, "GEO", NewElements(42164, 0.0001, 0.1, 0, 0, 0)),
	}
	if pairs := CandidatePairs(pop, 10); len(pairs) != 0 {
		t.Fatalf("LEO/GEO bands must not overlap, got %d pairs", len(pairs))
	}
	pop = append(pop, NewTrackedObjectFromElements(3, "LEO2", NewElements(7003, 0.001, 60, 10, 0, 0)))
	pairs := CandidatePairs(pop, 10)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly the LEO pair, got %d", len(pairs))
	}
	i, j := pop[pairs[0].I].ID, pop[pairs[0].J].ID
	if !(i == 1 && j == 3 || i == 3 && j == 1) {
		t.Fatalf("wrong pair: %d, %d", i, j)
	}
}

// TestCandidatePairsMatchBruteForce checks that the interval sweep finds
// exactly the pairs of the naive two sided overlap test on a large random
// population.
func TestCandidatePairsMatchBruteForce(t *testing.T) {
	const (
		n   = 1000
		tol = 10.0
	)
	rng := rand.New(rand.NewSource(42))
	pop := make(Population, n)
	for k := 0; k < n; k++ {
		a := 6700 + 800*rng.Float64()
		e := 0.1 * rng.Float64()
		pop[k] = NewTrackedObjectFromElements(k, fmt.Sprintf("SAT_%d", k), NewElementsRad(a, e, 0.5, 0, 0, 0))
	}

	key := func(i, j int) [2]int {
		if i > j {
			i, j = j, i
		}
		return [2]int{i, j}
	}
	bruteForce := make(map[[2]int]bool)
	for i := 0; i < n; i++ {
		p1, a1 := pop[i].Elements.Periapsis(), pop[i].Elements.Apoapsis()
		for j := i + 1; j < n; j++ {
			p2, a2 := pop[j].Elements.Periapsis(), pop[j].Elements.Apoapsis()
			if math.Max(p1, p2) <= math.Min(a1, a2)+tol {
				bruteForce[key(i, j)] = true
			}
		}
	}

	swept := make(map[[2]int]bool)
	for _, pair := range CandidatePairs(pop, tol) {
		k := key(pop[pair.I].ID, pop[pair.J].ID)
		if swept[k] {
			t.Fatalf("duplicate pair %v", k)
		}
		swept[k] = true
	}

	if len(swept) != len(bruteForce) {
		t.Fatalf("sweep found %d pairs, brute force %d", len(swept), len(bruteForce))
	}
	for k := range bruteForce {
		if !swept[k] {
			t.Fatalf("sweep missed pair %v", k)
		}
	}
}
