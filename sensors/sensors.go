package sensors

type Unit uint8

func (u Unit) String() string {
	switch u {
	case Kilometers:
		return "km"
	case Meters:
		return "m"
	case KilometersPerHour:
		return "km/h"
	case BeatsPerMinute:
		return "bpm"
	case Watts:
		return "W"
	case RevolutionsPerMinute:
		return "rpm"
	default:
		return "?"
	}
}

const (
	Kilometers Unit = iota
	Meters
	KilometersPerHour
	BeatsPerMinute
	Watts
	RevolutionsPerMinute
	Unknown
)

type Sensor interface {
	Name() string
	Unit() Unit
	Read() (float64, error)
}

// Heading returns the column heading of s, such as "altitude (m)".
func Heading(s Sensor) string {
	return s.Name() + " (" + s.Unit().String() + ")"
}
