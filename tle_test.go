package orbitguard

import (
	"testing"
	"time"
)

const (
	issLine1 = "1 25544U 98067A   24100.50000000  .00016717  00000-0  10270-3 0  9005"
	issLine2 = "2 25544  51.6400 100.0000 0001000   0.0000   0.0000 15.50000000    09"
)

func TestNewTrackedObjectFromTLE(t *testing.T) {
	epoch := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	obj, err := NewTrackedObjectFromTLE(25544, "ISS", issLine1, issLine2, epoch)
	if err != nil {
		t.Fatalf("TLE extraction failed: %s", err)
	}
	if err := obj.Elements.Validate(); err != nil {
		t.Fatalf("extracted elements invalid: %s", err)
	}
	a, e, i, _, _, _, n := obj.Elements.Elements()
	if a < 6700 || a > 6900 {
		t.Fatalf("ISS semi major axis %f km out of range", a)
	}
	if e > 0.01 {
		t.Fatalf("ISS eccentricity %f too large", e)
	}
	if ok, err := anglesEqual(i, Deg2rad(51.64)); !ok {
		t.Logf("inclination differs from the TLE value: %s", err)
		if deg := Rad2deg(i); deg < 51 || deg > 52.5 {
			t.Fatalf("ISS inclination %f deg out of range", deg)
		}
	}
	if n <= 0 {
		t.Fatalf("mean motion %f", n)
	}
}

func TestNewTrackedObjectFromTLERejectsGarbage(t *testing.T) {
	epoch := time.Now()
	cases := []struct{ l1, l2 string }{
		{"", ""},
		{issLine1, ""},
		{issLine1[:50], issLine2},
		{"2" + issLine1[1:], issLine2},
		{issLine1, "1" + issLine2[1:]},
	}
	for k, tc := range cases {
		if _, err := NewTrackedObjectFromTLE(1, "BAD", tc.l1, tc.l2, epoch); err == nil {
			t.Fatalf("case %d: malformed TLE accepted", k)
		}
	}
}
