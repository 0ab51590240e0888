package backend

import (
	"fmt"
	"strings"

	"git.sr.ht/~whereswaldon/tourchart/chart"
)

// SeriesOptions control how one column is shown.
type SeriesOptions struct {
	Fill    chart.FillMethod
	Layout  chart.BarLayout
	YSlider bool
	// Color is a hex color. A generated palette is used if it is empty.
	Color string
	// Group puts every column with the same group into one graph.
	Group  string
	Hidden bool
}

// ModelOptions control how a table is turned into a chart.
type ModelOptions struct {
	Type  chart.ChartType
	Title string
	// Series is keyed by the column name without its unit, or by its
	// lower case form.
	Series map[string]SeriesOptions
	Synch  *chart.IndexRange
	Marker *chart.IndexRange
	// X2 names a column which is offered as the alternative x axis
	// instead of being drawn. Its values must not descend.
	X2 string
}

// BuildModel creates the chart of a table. Every visible column becomes a
// graph of its own unless it shares a group with an earlier column.
func BuildModel(t *Table, opts ModelOptions) (*chart.Model, error) {
	if !t.Initialized() {
		return nil, fmt.Errorf("table has no rows")
	}
	m := &chart.Model{
		Type:  opts.Type,
		Title: opts.Title,
		X: chart.XData{
			Values: t.X.Values(),
			Label:  t.X.Name,
			Unit:   t.X.Unit,
			Synch:  opts.Synch,
			Marker: opts.Marker,
		},
	}
	x2, err := altAxis(t, opts.X2)
	if err != nil {
		return nil, err
	}
	if x2 != nil {
		m.X2 = &chart.XData{Values: x2.Values(), Label: x2.Name, Unit: x2.Unit}
	}
	groups := map[string]*chart.YData{}
	for i, s := range t.Series {
		if s == x2 {
			continue
		}
		so, ok := opts.Series[s.Name]
		if !ok {
			// Config keys are case insensitive.
			so = opts.Series[strings.ToLower(s.Name)]
		}
		if so.Hidden {
			continue
		}
		pal := Palette(i)
		if so.Color != "" {
			var err error
			pal, err = ParsePalette(so.Color)
			if err != nil {
				return nil, fmt.Errorf("failed building series %q: %w", s.Name, err)
			}
		}
		if y, ok := groups[so.Group]; ok && so.Group != "" {
			y.High = append(y.High, s.Values())
			y.Colors = append(y.Colors, pal)
			y.Label += ", " + s.Name
			continue
		}
		y := &chart.YData{
			Label:       s.Name,
			Unit:        s.Unit,
			High:        [][]float64{s.Values()},
			Colors:      []chart.Palette{pal},
			Fill:        so.Fill,
			Layout:      so.Layout,
			ShowYSlider: so.YSlider,
		}
		groups[so.Group] = y
		m.Y = append(m.Y, y)
	}
	if len(m.Y) == 0 {
		return nil, fmt.Errorf("no visible series")
	}
	return m, nil
}

// altAxis returns the column named name, ignoring case.
func altAxis(t *Table, name string) (*Series, error) {
	if name == "" {
		return nil, nil
	}
	for _, s := range t.Series {
		if !strings.EqualFold(s.Name, name) {
			continue
		}
		values := s.Values()
		for i := 1; i < len(values); i++ {
			if values[i] < values[i-1] {
				return nil, fmt.Errorf("alternative x axis %q descends at row %d", s.Name, i)
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("alternative x axis %q is not a column", name)
}

// ParseChartType parses "line", "bar" or "line-with-bars".
func ParseChartType(s string) (chart.ChartType, error) {
	for _, t := range []chart.ChartType{chart.ChartLine, chart.ChartBar, chart.ChartLineWithBars} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown chart type %q", s)
}

// ParseFill parses "none", "bottom" or "zero".
func ParseFill(s string) (chart.FillMethod, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return chart.FillNone, nil
	case "bottom":
		return chart.FillBottom, nil
	case "zero":
		return chart.FillZero, nil
	}
	return 0, fmt.Errorf("unknown fill %q", s)
}

// ParseLayout parses "beside" or "stacked".
func ParseLayout(s string) (chart.BarLayout, error) {
	switch strings.ToLower(s) {
	case "", "beside":
		return chart.BarBeside, nil
	case "stacked":
		return chart.BarStacked, nil
	}
	return 0, fmt.Errorf("unknown bar layout %q", s)
}
