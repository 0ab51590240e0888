package backend

import (
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/tourchart/chart"
)

func makeTestTable(t *testing.T) *Table {
	data := "distance (km),altitude (m),pulse (bpm),cadence (rpm)\n" +
		"0,100,80,70\n" +
		"1,120,90,75\n" +
		"2,110,95,80\n"
	table, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("failed reading test table: %v", err)
	}
	return table
}

func TestBuildModel(t *testing.T) {
	table := makeTestTable(t)
	m, err := BuildModel(table, ModelOptions{
		Type:  chart.ChartLine,
		Title: "tour",
		Series: map[string]SeriesOptions{
			"altitude": {Fill: chart.FillBottom, YSlider: true},
			"pulse":    {Group: "body"},
			"cadence":  {Group: "body", Color: "#ff0000"},
		},
	})
	if err != nil {
		t.Fatalf("expected building to succeed, got: %v", err)
	}
	if m.Title != "tour" || m.X.Label != "distance" || m.X.Unit != "km" {
		t.Errorf("unexpected chart header: %q %q %q", m.Title, m.X.Label, m.X.Unit)
	}
	if len(m.X.Values) != 3 {
		t.Errorf("expected 3 x values, got %d", len(m.X.Values))
	}
	if len(m.Y) != 2 {
		t.Fatalf("expected grouped series to share a graph, got %d graphs", len(m.Y))
	}
	altitude := m.Y[0]
	if altitude.Fill != chart.FillBottom || !altitude.ShowYSlider || altitude.Unit != "m" {
		t.Errorf("expected series options to be applied, got %+v", altitude)
	}
	body := m.Y[1]
	if len(body.High) != 2 || len(body.Colors) != 2 {
		t.Errorf("expected 2 value arrays with colors, got %d and %d", len(body.High), len(body.Colors))
	}
	if body.Label != "pulse, cadence" {
		t.Errorf("expected joined label, got %q", body.Label)
	}
	if body.Colors[0] == body.Colors[1] {
		t.Errorf("expected grouped series to have different colors")
	}
}

func TestBuildModelHidden(t *testing.T) {
	table := makeTestTable(t)
	m, err := BuildModel(table, ModelOptions{
		Series: map[string]SeriesOptions{
			"altitude": {Hidden: true},
			"pulse":    {Hidden: true},
		},
	})
	if err != nil {
		t.Fatalf("expected building to succeed, got: %v", err)
	}
	if len(m.Y) != 1 || m.Y[0].Label != "cadence" {
		t.Errorf("expected only cadence to be shown, got %d graphs", len(m.Y))
	}
	_, err = BuildModel(table, ModelOptions{
		Series: map[string]SeriesOptions{
			"altitude": {Hidden: true},
			"pulse":    {Hidden: true},
			"cadence":  {Hidden: true},
		},
	})
	if err == nil {
		t.Errorf("expected building a chart without series to fail")
	}
	_, err = BuildModel(table, ModelOptions{
		Series: map[string]SeriesOptions{
			"altitude": {Color: "not a color"},
		},
	})
	if err == nil {
		t.Errorf("expected an invalid color to fail")
	}
}

func TestBuildModelAltAxis(t *testing.T) {
	data := "distance (km),time (s),altitude (m)\n" +
		"0,0,100\n" +
		"1,200,120\n" +
		"2,500,110\n"
	table, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("failed reading test table: %v", err)
	}
	m, err := BuildModel(table, ModelOptions{X2: "Time"})
	if err != nil {
		t.Fatalf("expected building to succeed, got: %v", err)
	}
	if m.X2 == nil || m.X2.Label != "time" || m.X2.Unit != "s" {
		t.Fatalf("expected time as the alternative axis, got %+v", m.X2)
	}
	if len(m.X2.Values) != 3 || m.X2.Values[2] != 500 {
		t.Errorf("unexpected alternative axis values %v", m.X2.Values)
	}
	if len(m.Y) != 1 || m.Y[0].Label != "altitude" {
		t.Errorf("expected the alternative axis not to be drawn, got %d graphs", len(m.Y))
	}

	if _, err := BuildModel(table, ModelOptions{X2: "speed"}); err == nil {
		t.Errorf("expected a missing column to fail")
	}
	if _, err := BuildModel(table, ModelOptions{X2: "altitude"}); err == nil {
		t.Errorf("expected a descending column to fail")
	}
}

func TestPalette(t *testing.T) {
	seen := map[chart.Palette]bool{}
	for i := 0; i < 8; i++ {
		p := Palette(i)
		if seen[p] {
			t.Errorf("palette %d repeats an earlier palette", i)
		}
		seen[p] = true
		if p.Line.A != 0xff || p.Bright.A != 0xff {
			t.Errorf("expected opaque colors, got %v", p)
		}
	}
	p, err := ParsePalette("#3a7bd5")
	if err != nil {
		t.Fatalf("expected parsing to succeed, got: %v", err)
	}
	lum := func(c chart.Palette) (int, int, int) {
		return int(c.Line.R) + int(c.Line.G) + int(c.Line.B),
			int(c.Dark.R) + int(c.Dark.G) + int(c.Dark.B),
			int(c.Bright.R) + int(c.Bright.G) + int(c.Bright.B)
	}
	line, dark, bright := lum(p)
	if !(line < dark && dark < bright) {
		t.Errorf("expected colors to get lighter, got %d %d %d", line, dark, bright)
	}
}

func TestParseOptions(t *testing.T) {
	for _, s := range []string{"line", "BAR", "line-with-bars"} {
		if _, err := ParseChartType(s); err != nil {
			t.Errorf("expected %q to parse, got: %v", s, err)
		}
	}
	if typ, _ := ParseChartType("bar"); typ != chart.ChartBar {
		t.Errorf("expected bar chart, got %v", typ)
	}
	if _, err := ParseChartType("pie"); err == nil {
		t.Errorf("expected pie charts to be rejected")
	}
	if fill, err := ParseFill("zero"); err != nil || fill != chart.FillZero {
		t.Errorf("expected zero fill, got %v, %v", fill, err)
	}
	if fill, err := ParseFill(""); err != nil || fill != chart.FillNone {
		t.Errorf("expected no fill by default, got %v, %v", fill, err)
	}
	if _, err := ParseFill("top"); err == nil {
		t.Errorf("expected unknown fill to be rejected")
	}
	if layout, err := ParseLayout("stacked"); err != nil || layout != chart.BarStacked {
		t.Errorf("expected stacked layout, got %v, %v", layout, err)
	}
	if _, err := ParseLayout("diagonal"); err == nil {
		t.Errorf("expected unknown layout to be rejected")
	}
}
