package backend

import (
	"strings"
)

// Series is one column of a table.
type Series struct {
	Name string
	// Unit is parsed from a trailing "(unit)" in the heading.
	Unit               string
	values             []float64
	rangeMin, rangeMax float64
	sum                float64
}

// NewSeries creates an empty series from a column heading such as
// "altitude (m)".
func NewSeries(heading string) *Series {
	name, unit := parseHeading(heading)
	return &Series{Name: name, Unit: unit}
}

func parseHeading(heading string) (name, unit string) {
	heading = strings.TrimSpace(heading)
	open := strings.LastIndexByte(heading, '(')
	if open < 0 || !strings.HasSuffix(heading, ")") {
		return heading, ""
	}
	return strings.TrimSpace(heading[:open]), strings.TrimSpace(heading[open+1 : len(heading)-1])
}

// Heading returns the name with the unit in the form it was parsed from.
func (s *Series) Heading() string {
	if s.Unit == "" {
		return s.Name
	}
	return s.Name + " (" + s.Unit + ")"
}

// Insert appends a value.
func (s *Series) Insert(value float64) {
	if len(s.values) == 0 {
		s.rangeMin, s.rangeMax = value, value
	}
	s.rangeMin = min(s.rangeMin, value)
	s.rangeMax = max(s.rangeMax, value)
	s.sum += value
	s.values = append(s.values, value)
}

func (s *Series) Len() int {
	return len(s.values)
}

// Values returns the values of the series. The slice must not be
// modified.
func (s *Series) Values() []float64 {
	return s.values
}

// Range returns the smallest and the largest value.
func (s *Series) Range() (minimum, maximum float64) {
	return s.rangeMin, s.rangeMax
}

func (s *Series) Sum() float64 {
	return s.sum
}

// Stats returns statistics about the values in the closed index interval
// [indexA,indexB]. If indexB is less than indexA, the interval
// [indexB,indexA] is used. Indices outside of the series are clamped, and
// ok is false if that was necessary or the series is empty.
func (s *Series) Stats(indexA, indexB int) (maximum, mean, minimum, sum float64, ok bool) {
	if len(s.values) < 1 {
		return 0, 0, 0, 0, false
	}
	if indexB < indexA {
		indexA, indexB = indexB, indexA
	}
	ok = true
	if indexA < 0 {
		indexA, ok = 0, false
	}
	if indexB >= len(s.values) {
		indexB, ok = len(s.values)-1, false
	}
	if indexA > indexB {
		// The whole interval is past the end of the data.
		v := s.values[len(s.values)-1]
		return v, v, v, v, false
	}
	values := s.values[indexA : indexB+1]
	maximum, minimum = values[0], values[0]
	for _, v := range values {
		sum += v
		maximum = max(maximum, v)
		minimum = min(minimum, v)
	}
	mean = sum / float64(len(values))
	return maximum, mean, minimum, sum, ok
}
