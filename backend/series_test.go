package backend

import (
	"testing"
)

func makeTestSeries(t *testing.T, sampleCount int) (*Series, float64) {
	s := NewSeries("speed (km/h)")
	expectedSum := float64(0)
	for i := 0; i < sampleCount; i++ {
		s.Insert(float64(i))
		expectedSum += float64(i)
	}
	if s.Len() != sampleCount {
		t.Errorf("expected %d values, got %d", sampleCount, s.Len())
	}
	return s, expectedSum
}

func TestParseHeading(t *testing.T) {
	type testcase struct {
		heading string
		name    string
		unit    string
	}
	for _, tc := range []testcase{
		{heading: "altitude (m)", name: "altitude", unit: "m"},
		{heading: " pulse ( bpm ) ", name: "pulse", unit: "bpm"},
		{heading: "distance", name: "distance"},
		{heading: "power (avg) (W)", name: "power (avg)", unit: "W"},
		{heading: "broken (m", name: "broken (m"},
	} {
		name, unit := parseHeading(tc.heading)
		if name != tc.name || unit != tc.unit {
			t.Errorf("%q: expected name %q and unit %q, got %q and %q", tc.heading, tc.name, tc.unit, name, unit)
		}
	}
	if h := NewSeries("altitude (m)").Heading(); h != "altitude (m)" {
		t.Errorf("expected heading to round trip, got %q", h)
	}
}

func TestSeriesSum(t *testing.T) {
	s, expectedSum := makeTestSeries(t, 10)
	if s.Sum() != expectedSum {
		t.Errorf("expected sum %f, got %f", expectedSum, s.Sum())
	}
	rMin, rMax := s.Range()
	if rMin != 0 || rMax != 9 {
		t.Errorf("expected range [0,9], got [%f,%f]", rMin, rMax)
	}
}

func TestSeriesStats(t *testing.T) {
	s, _ := makeTestSeries(t, 10)
	type testcase struct {
		name                string
		a, b                int
		max, mean, min, sum float64
		ok                  bool
	}
	for _, tc := range []testcase{
		{name: "whole series", a: 0, b: 9, max: 9, mean: 4.5, min: 0, sum: 45, ok: true},
		{name: "single value", a: 3, b: 3, max: 3, mean: 3, min: 3, sum: 3, ok: true},
		{name: "reversed", a: 4, b: 2, max: 4, mean: 3, min: 2, sum: 9, ok: true},
		{name: "clamped start", a: -5, b: 1, max: 1, mean: 0.5, min: 0, sum: 1, ok: false},
		{name: "clamped end", a: 8, b: 20, max: 9, mean: 8.5, min: 8, sum: 17, ok: false},
		{name: "past the end", a: 12, b: 20, max: 9, mean: 9, min: 9, sum: 9, ok: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			maximum, mean, minimum, sum, ok := s.Stats(tc.a, tc.b)
			if maximum != tc.max {
				t.Errorf("expected max %f, got %f", tc.max, maximum)
			}
			if mean != tc.mean {
				t.Errorf("expected mean %f, got %f", tc.mean, mean)
			}
			if minimum != tc.min {
				t.Errorf("expected min %f, got %f", tc.min, minimum)
			}
			if sum != tc.sum {
				t.Errorf("expected sum %f, got %f", tc.sum, sum)
			}
			if ok != tc.ok {
				t.Errorf("expected ok %v, got %v", tc.ok, ok)
			}
		})
	}
	if _, _, _, _, ok := NewSeries("empty").Stats(0, 1); ok {
		t.Errorf("expected stats of an empty series to fail")
	}
}
