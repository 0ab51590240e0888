package sensors

import (
	"testing"
	"time"
)

func TestRideDistanceAscends(t *testing.T) {
	r := NewRide(1)
	distance := r.Distance()
	prev, _ := distance.Read()
	for i := 0; i < 1000; i++ {
		r.Advance(time.Second)
		d, err := distance.Read()
		if err != nil {
			t.Fatalf("expected read to succeed, got: %v", err)
		}
		if d <= prev {
			t.Fatalf("expected distance to grow, got %f after %f", d, prev)
		}
		prev = d
	}
}

func TestRideBounds(t *testing.T) {
	r := NewRide(7)
	for i := 0; i < 5000; i++ {
		r.Advance(500 * time.Millisecond)
		if r.speed < minSpeed || r.speed > maxSpeed {
			t.Fatalf("speed %f out of bounds", r.speed)
		}
		if r.altitude < 0 {
			t.Fatalf("altitude %f below zero", r.altitude)
		}
		if r.pulse < restPulse-1 || r.pulse > maxPulse+1 {
			t.Fatalf("pulse %f out of bounds", r.pulse)
		}
	}
}

func TestRideDeterministic(t *testing.T) {
	a, b := NewRide(3), NewRide(3)
	for i := 0; i < 100; i++ {
		a.Advance(time.Second)
		b.Advance(time.Second)
	}
	as, bs := a.Sensors(), b.Sensors()
	for i := range as {
		av, _ := as[i].Read()
		bv, _ := bs[i].Read()
		if av != bv {
			t.Errorf("expected %s to match for equal seeds, got %f and %f", as[i].Name(), av, bv)
		}
	}
}

func TestHeading(t *testing.T) {
	r := NewRide(1)
	expected := []string{"altitude (m)", "speed (km/h)", "pulse (bpm)", "power (W)", "cadence (rpm)"}
	for i, s := range r.Sensors() {
		if h := Heading(s); h != expected[i] {
			t.Errorf("expected heading %q, got %q", expected[i], h)
		}
	}
	if h := Heading(r.Distance()); h != "distance (km)" {
		t.Errorf("expected distance heading, got %q", h)
	}
}
