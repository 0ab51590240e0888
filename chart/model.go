package chart

import (
	"image/color"
	"strconv"
)

type ChartType uint8

const (
	ChartLine ChartType = iota
	ChartBar
	ChartLineWithBars
)

func (t ChartType) String() string {
	switch t {
	case ChartLine:
		return "line"
	case ChartBar:
		return "bar"
	case ChartLineWithBars:
		return "line-with-bars"
	default:
		return "unknown"
	}
}

// FillMethod controls how the area under a line graph is painted.
type FillMethod uint8

const (
	FillNone FillMethod = iota
	// FillBottom fills from the line down to the bottom of the graph.
	FillBottom
	// FillZero fills from the line to the zero line, using swapped
	// gradients above and below it.
	FillZero
)

type BarLayout uint8

const (
	BarBeside BarLayout = iota
	BarStacked
)

// Palette is the color triple used to paint one value array.
type Palette struct {
	Line, Dark, Bright color.NRGBA
}

// IndexRange is an inclusive range of value indices.
type IndexRange struct {
	Start, End int
}

// ValueRange is the visible window of a value axis.
type ValueRange struct {
	Min, Max float64
}

// XData is the shared horizontal axis of a chart.
type XData struct {
	Values []float64
	Label  string
	Unit   string
	// Format renders a value for labels. Values are printed with
	// strconv if it is nil.
	Format func(float64) string
	// Synch highlights a sub range of every line graph.
	Synch *IndexRange
	// Ranges are additional sub ranges drawn with a light overlay.
	Ranges []IndexRange
	// Marker is the draggable X marker, if any.
	Marker *IndexRange
}

// YData is one graph of a chart. It may hold several parallel value
// arrays, which are drawn side by side or stacked for bar charts.
type YData struct {
	Label  string
	Unit   string
	Format func(float64) string

	High [][]float64
	Low  [][]float64

	Colors     []Palette
	ColorIndex [][]int

	Fill    FillMethod
	Layout  BarLayout
	Visible *ValueRange

	ShowYSlider bool
}

// Model is a complete chart frame supplied by the caller.
type Model struct {
	Type  ChartType
	Title string
	X     XData
	// X2 is an alternative horizontal axis with one value per value of X,
	// such as the elapsed time next to the distance. Only its values,
	// label, unit and format are used.
	X2 *XData
	Y  []*YData
}

func (x *XData) format(v float64) string {
	if x.Format != nil {
		return x.Format(v)
	}
	return formatValue(v)
}

func (y *YData) format(v float64) string {
	if y.Format != nil {
		return y.Format(v)
	}
	return formatValue(v)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// palette returns the colors for the value at valueIndex of the
// series at serieIndex.
func (y *YData) palette(serieIndex, valueIndex int) Palette {
	if len(y.Colors) == 0 {
		return defaultPalette
	}
	idx := serieIndex
	if serieIndex < len(y.ColorIndex) && valueIndex >= 0 && valueIndex < len(y.ColorIndex[serieIndex]) {
		idx = y.ColorIndex[serieIndex][valueIndex]
	}
	return y.Colors[clamp(idx, 0, len(y.Colors)-1)]
}

// Extent returns the data range of the graph, summing the value arrays
// for stacked layouts.
func (y *YData) Extent(stacked bool) (lo, hi float64, ok bool) {
	observe := func(v float64) {
		if !ok {
			lo, hi, ok = v, v, true
			return
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if stacked && len(y.High) > 1 {
		length := 0
		for _, s := range y.High {
			length = max(length, len(s))
		}
		for i := 0; i < length; i++ {
			sum := 0.0
			for _, s := range y.High {
				if i < len(s) {
					sum += s[i]
				}
			}
			observe(sum)
		}
	} else {
		for _, s := range y.High {
			for _, v := range s {
				observe(v)
			}
		}
	}
	for _, s := range y.Low {
		for _, v := range s {
			observe(v)
		}
	}
	return lo, hi, ok
}

var defaultPalette = Palette{
	Line:   color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
	Dark:   color.NRGBA{R: 0x6f, G: 0xa8, B: 0xc8, A: 0xff},
	Bright: color.NRGBA{R: 0xe4, G: 0xf0, B: 0xf7, A: 0xff},
}
