package orbitguard

import (
	"fmt"
	"time"
)

// ElementSource provides the osculating elements of a tracked object at a
// reference epoch. Catalog backed implementations recompute from their
// underlying model; fixed sets simply return what they hold.
type ElementSource interface {
	CurrentElements() Elements
	RecomputeElements(epoch time.Time) (Elements, error)
}

// StateVectorSource derives elements from a single ECI state vector at its epoch.
type StateVectorSource struct {
	R, V  []float64
	Epoch time.Time
	el    Elements
}

// NewStateVectorSource builds a source from position and velocity (km, km/s).
func NewStateVectorSource(R, V []float64, epoch time.Time) (*StateVectorSource, error) {
	el, err := NewElementsFromRV(R, V)
	if err != nil {
		return nil, err
	}
	return &StateVectorSource{R: R, V: V, Epoch: epoch, el: el}, nil
}

// CurrentElements implements the ElementSource interface.
func (s *StateVectorSource) CurrentElements() Elements {
	return s.el
}

// RecomputeElements implements the ElementSource interface. A raw state vector
// only describes the orbit at its own epoch, so any other epoch is refused.
func (s *StateVectorSource) RecomputeElements(epoch time.Time) (Elements, error) {
	if !epoch.Equal(s.Epoch) {
		return Elements{}, fmt.Errorf("state vector is only valid at %s, not %s", s.Epoch, epoch)
	}
	return s.el, nil
}

// FixedElements is an ElementSource backed by a precomputed element set.
type FixedElements struct {
	El Elements
}

// CurrentElements implements the ElementSource interface.
func (f FixedElements) CurrentElements() Elements {
	return f.El
}

// RecomputeElements implements the ElementSource interface.
func (f FixedElements) RecomputeElements(epoch time.Time) (Elements, error) {
	return f.El, nil
}

// TrackedObject is one cataloged object under analysis. Its element set is
// exclusively owned: within an analysis pass only the secular propagator
// writes it, and only during that object's own propagation call.
type TrackedObject struct {
	ID               int
	Name             string
	Elements         Elements
	CriticalityScore float64
}

// NewTrackedObject creates an object from a source, resolving its elements at
// the provided epoch.
func NewTrackedObject(id int, name string, src ElementSource, epoch time.Time) (*TrackedObject, error) {
	el, err := src.RecomputeElements(epoch)
	if err != nil {
		return nil, fmt.Errorf("object %d (%s): %w", id, name, err)
	}
	if err = el.Validate(); err != nil {
		return nil, fmt.Errorf("object %d (%s): %w", id, name, err)
	}
	return &TrackedObject{ID: id, Name: name, Elements: el}, nil
}

// NewTrackedObjectFromElements creates an object directly from an element set.
func NewTrackedObjectFromElements(id int, name string, el Elements) *TrackedObject {
	return &TrackedObject{ID: id, Name: name, Elements: el}
}

// String implements the Stringer interface.
func (o TrackedObject) String() string {
	return fmt.Sprintf("%s (#%d): %s", o.Name, o.ID, o.Elements)
}

// Population is the full set of objects of one analysis invocation.
type Population []*TrackedObject

// resetScores clears the derived criticality aggregate before a fresh pass.
func (pop Population) resetScores() {
	for _, o := range pop {
		o.CriticalityScore = 0
	}
}
