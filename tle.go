package orbitguard

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// NewTrackedObjectFromTLE derives a tracked object from a two line element set
// by extracting the SGP4 state vector at the reference epoch and converting it
// to osculating elements. The TEME axes are close enough to ECI for the plane
// geometry performed here.
func NewTrackedObjectFromTLE(id int, name, line1, line2 string, epoch time.Time) (*TrackedObject, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, fmt.Errorf("invalid TLE for %s: %w", name, err)
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed for %s: code=%d %s", name, sat.Error, sat.ErrorStr)
	}

	t := epoch.UTC()
	pos, vel := satellite.Propagate(sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	R := []float64{pos.X, pos.Y, pos.Z}
	V := []float64{vel.X, vel.Y, vel.Z}
	for _, v := range append(R, V...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("sgp4 propagation failed for %s: output is NaN/Inf", name)
		}
	}
	src, err := NewStateVectorSource(R, V, epoch)
	if err != nil {
		return nil, fmt.Errorf("state extraction failed for %s: %w", name, err)
	}
	return NewTrackedObject(id, name, src, epoch)
}

// validateTLELines performs basic format validation on TLE lines. This
// prevents passing garbage to go-satellite which calls log.Fatal on parse
// errors (which would kill the process).
func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}
