package sensors

import (
	"math"
	"math/rand"
	"time"
)

const (
	minSpeed    = 8.0
	maxSpeed    = 48.0
	maxGradient = 0.12
	// riderMass is the mass of rider and bike in kg.
	riderMass = 85.0
	restPulse = 62.0
	maxPulse  = 185.0
)

// Ride simulates a bike ride. The values of its sensors change each time
// the ride advances.
type Ride struct {
	rng *rand.Rand

	distance float64
	altitude float64
	speed    float64
	gradient float64
	pulse    float64
	power    float64
	cadence  float64
}

func NewRide(seed int64) *Ride {
	return &Ride{
		rng:      rand.New(rand.NewSource(seed)),
		altitude: 250,
		speed:    22,
		pulse:    restPulse + 30,
		cadence:  80,
	}
}

// Advance moves the ride forward by dt.
func (r *Ride) Advance(dt time.Duration) {
	hours := dt.Hours()
	r.gradient = clamp(r.gradient+r.rng.NormFloat64()*0.004, -maxGradient, maxGradient)
	// Riders slow down uphill.
	r.speed = clamp(r.speed+r.rng.NormFloat64()*0.6-r.gradient*8, minSpeed, maxSpeed)
	step := r.speed * hours
	r.distance += step
	r.altitude = max(0, r.altitude+step*1000*r.gradient)

	// Climbing, rolling and air resistance at the current speed.
	v := r.speed / 3.6
	r.power = max(0, riderMass*9.81*v*(r.gradient+0.005)+0.3*v*v*v)

	target := restPulse + (maxPulse-restPulse)*math.Min(r.power/400, 1)
	r.pulse += (target - r.pulse) * math.Min(dt.Seconds()/20, 1)
	r.cadence = clamp(r.cadence+r.rng.NormFloat64()*2, 55, 110)
	if r.power == 0 {
		r.cadence = 0
	}
}

type rideSensor struct {
	name string
	unit Unit
	read func() float64
}

func (s rideSensor) Name() string           { return s.name }
func (s rideSensor) Unit() Unit             { return s.unit }
func (s rideSensor) Read() (float64, error) { return s.read(), nil }

// Distance is the sensor of the covered distance.
func (r *Ride) Distance() Sensor {
	return rideSensor{name: "distance", unit: Kilometers, read: func() float64 { return r.distance }}
}

// Sensors returns every sensor of the ride except the distance.
func (r *Ride) Sensors() []Sensor {
	return []Sensor{
		rideSensor{name: "altitude", unit: Meters, read: func() float64 { return r.altitude }},
		rideSensor{name: "speed", unit: KilometersPerHour, read: func() float64 { return r.speed }},
		rideSensor{name: "pulse", unit: BeatsPerMinute, read: func() float64 { return r.pulse }},
		rideSensor{name: "power", unit: Watts, read: func() float64 { return r.power }},
		rideSensor{name: "cadence", unit: RevolutionsPerMinute, read: func() float64 { return r.cadence }},
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
