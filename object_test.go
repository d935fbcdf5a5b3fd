package orbitguard

import (
	"testing"
	"time"
)

func TestTrackedObjectFromFixedElements(t *testing.T) {
	epoch := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	el1 := NewElementsRad(7000, 0, 0.9, 1.0, 0, 0)
	el2 := NewElementsRad(7005, 0, 1.0, 1.1, 0, 0)
	o1, err := NewTrackedObject(1, "LEO-A", FixedElements{el1}, epoch)
	if err != nil {
		t.Fatalf("fixed element source rejected: %s", err)
	}
	o2, err := NewTrackedObject(2, "LEO-B", FixedElements{el2}, epoch)
	if err != nil {
		t.Fatalf("fixed element source rejected: %s", err)
	}
	if ok, _ := o1.Elements.Equals(el1); !ok {
		t.Fatalf("elements not carried through the source: %s", o1.Elements)
	}

	// A population built through the source interface behaves like one built
	// from raw element sets.
	f, err := NewForecaster(testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	nodes, scores := f.Analyze(Population{o1, o2})
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if scores[o1.ID] <= 0 || scores[o2.ID] <= 0 {
		t.Fatalf("paired objects must score: %f, %f", scores[o1.ID], scores[o2.ID])
	}
}

func TestTrackedObjectRejectsInvalidSource(t *testing.T) {
	epoch := time.Now().UTC()
	if _, err := NewTrackedObject(9, "BROKEN", FixedElements{Elements{a: -1, e: 2}}, epoch); err == nil {
		t.Fatal("invalid elements must be rejected at construction")
	}
}

func TestElementSourceImplementations(t *testing.T) {
	epoch := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	el := NewElements(7000, 0.001, 51.6, 100, 90, 0)

	sv, err := NewStateVectorSource([]float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341}, epoch)
	if err != nil {
		t.Fatalf("state vector source rejected: %s", err)
	}
	for k, src := range []ElementSource{FixedElements{el}, sv} {
		if err := src.CurrentElements().Validate(); err != nil {
			t.Fatalf("source %d: current elements invalid: %s", k, err)
		}
		recomputed, err := src.RecomputeElements(epoch)
		if err != nil {
			t.Fatalf("source %d: recompute at own epoch failed: %s", k, err)
		}
		if ok, err := recomputed.Equals(src.CurrentElements()); !ok {
			t.Fatalf("source %d: recompute at own epoch must match: %s", k, err)
		}
	}

	// A raw state vector only describes its own epoch.
	if _, err := sv.RecomputeElements(epoch.Add(time.Hour)); err == nil {
		t.Fatal("state vector source must refuse another epoch")
	}
	// Fixed sets are epoch independent.
	if _, err := (FixedElements{el}).RecomputeElements(epoch.Add(time.Hour)); err != nil {
		t.Fatalf("fixed element source must accept any epoch: %s", err)
	}
}
