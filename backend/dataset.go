package backend

import "fmt"

// Table holds the columns of a tour file. The first column is the shared
// horizontal axis.
type Table struct {
	X      *Series
	Series []*Series
	// Skipped counts the rows which were dropped while reading.
	Skipped int
}

// NewTable creates a table with one series per heading.
func NewTable(headings []string) (*Table, error) {
	if len(headings) < 2 {
		return nil, fmt.Errorf("expected at least two columns, got %d", len(headings))
	}
	t := &Table{X: NewSeries(headings[0])}
	for _, h := range headings[1:] {
		t.Series = append(t.Series, NewSeries(h))
	}
	return t, nil
}

func (t *Table) Initialized() bool {
	return t != nil && t.X.Len() > 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.X.Len()
}

// Lookup returns the series with the given name.
func (t *Table) Lookup(name string) (*Series, bool) {
	for _, s := range t.Series {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Domain returns the first and the last x value.
func (t *Table) Domain() (dMin, dMax float64) {
	xs := t.X.Values()
	if len(xs) == 0 {
		return 0, 0
	}
	return xs[0], xs[len(xs)-1]
}

// insertRow appends a row. Cells which are missing repeat the previous
// value of their series.
func (t *Table) insertRow(x float64, cells []float64, present []bool) error {
	if n := t.X.Len(); n > 0 && x < t.X.values[n-1] {
		return fmt.Errorf("x value %v is smaller than the previous value %v", x, t.X.values[n-1])
	}
	t.X.Insert(x)
	for i, s := range t.Series {
		var v float64
		switch {
		case i < len(cells) && present[i]:
			v = cells[i]
		case s.Len() > 0:
			v = s.values[s.Len()-1]
		}
		s.Insert(v)
	}
	return nil
}
