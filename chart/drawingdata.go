package chart

import (
	"image"
	"image/color"
	"math"
	"strconv"
)

// Unit is a labelled tick on one of the axes.
type Unit struct {
	Value float64
	Label string
}

// Style holds the layout metrics and the fixed colors of a chart.
type Style struct {
	Background color.NRGBA
	Grid       color.NRGBA
	Axis       color.NRGBA
	Text       color.NRGBA
	// FontSize is the label size in pixels.
	FontSize float64
	// MarginTop is the space above the first graph.
	MarginTop int
	// GraphGap is the vertical space between two graphs.
	GraphGap int
	// XUnitSpacing and YUnitSpacing are the minimum pixel distances
	// between two grid units.
	XUnitSpacing int
	YUnitSpacing int
	// BarFill is the fraction of a value slot covered by its bars.
	BarFill float64
}

func DefaultStyle() Style {
	return Style{
		Background:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Grid:         color.NRGBA{R: 241, G: 239, B: 226, A: 0xff},
		Axis:         color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		Text:         color.NRGBA{R: 60, G: 60, B: 60, A: 0xff},
		FontSize:     12,
		MarginTop:    5,
		GraphGap:     15,
		XUnitSpacing: 80,
		YUnitSpacing: 30,
		BarFill:      0.7,
	}
}

func (s Style) lineHeight() int {
	return int(math.Ceil(s.FontSize*1.25)) + 1
}

// DrawingData is the computed layout of one graph for the current
// viewport.
type DrawingData struct {
	Type  ChartType
	X     *XData
	Y     *YData
	Index int

	// XTitle is only set for the first graph of a chart.
	XTitle string

	DevMarginTop   int
	DevYTop        int
	DevYBottom     int
	DevGraphHeight int
	DevGraphWidth  int

	// XMin is the value at virtual device X 0.
	XMin   float64
	ScaleX float64

	GraphYBottom float64
	GraphYTop    float64
	ScaleY       float64

	// BarWidth is the computed bar width, which can be 0 when bars are
	// narrower than a pixel.
	BarWidth int
	BarXPos  int

	XUnits []Unit
	YUnits []Unit
	// ShowXUnits is set for the graph which carries the x axis labels.
	ShowXUnits bool

	barRects      [][]image.Rectangle
	barFocusRects [][]image.Rectangle
}

// XToDev converts an x value to a virtual device position.
func (d *DrawingData) XToDev(v float64) float64 {
	return (v - d.XMin) * d.ScaleX
}

// DevToX converts a virtual device position to an x value.
func (d *DrawingData) DevToX(dev float64) float64 {
	if d.ScaleX == 0 {
		return d.XMin
	}
	return d.XMin + dev/d.ScaleX
}

// YToDev converts a value of this graph to a device Y position.
func (d *DrawingData) YToDev(v float64) float64 {
	return float64(d.DevYBottom) - (v-d.GraphYBottom)*d.ScaleY
}

// DevToY converts a device Y position to a value of this graph.
func (d *DrawingData) DevToY(dev float64) float64 {
	if d.ScaleY == 0 {
		return d.GraphYBottom
	}
	return d.GraphYBottom + (float64(d.DevYBottom)-dev)/d.ScaleY
}

// BarRect returns the retained screen rectangle of a bar.
func (d *DrawingData) BarRect(serieIndex, valueIndex int) (image.Rectangle, bool) {
	return retained(d.barRects, serieIndex, valueIndex)
}

// BarFocusRect returns the retained hit rectangle of a bar.
func (d *DrawingData) BarFocusRect(serieIndex, valueIndex int) (image.Rectangle, bool) {
	return retained(d.barFocusRects, serieIndex, valueIndex)
}

func retained(rects [][]image.Rectangle, serieIndex, valueIndex int) (image.Rectangle, bool) {
	if serieIndex < 0 || serieIndex >= len(rects) || valueIndex < 0 || valueIndex >= len(rects[serieIndex]) {
		return image.Rectangle{}, false
	}
	r := rects[serieIndex][valueIndex]
	return r, !r.Empty()
}

// ComputeDrawingData lays out every graph of m into an image of the
// given virtual width and height.
func ComputeDrawingData(m *Model, virtualWidth, height int, st Style) []*DrawingData {
	if m == nil || len(m.Y) == 0 {
		return nil
	}
	line := st.lineHeight()
	top := st.MarginTop
	if m.Title != "" {
		top += line
	}
	xAxisHeight := line + 7
	if m.X.Label != "" || m.X.Unit != "" {
		xAxisHeight += 2
	}
	n := len(m.Y)
	graphHeight := max(0, (height-top-xAxisHeight-(n-1)*st.GraphGap)/n)

	xMin, xMax := xDomain(&m.X, m.Type)
	scaleX := 0.0
	if xMax > xMin && virtualWidth > 0 {
		scaleX = float64(virtualWidth) / (xMax - xMin)
	}
	xUnits := computeUnits(xMin, xMax, virtualWidth, st.XUnitSpacing, m.X.format)

	barWidth, barXPos := 0, 0
	if m.Type != ChartLine && len(m.X.Values) > 0 {
		slot := float64(virtualWidth) / float64(len(m.X.Values))
		barWidth, barXPos = computeBarWidth(slot, st.BarFill, m.Type, m.Y)
	}

	out := make([]*DrawingData, 0, n)
	for i, y := range m.Y {
		dd := &DrawingData{
			Type:           m.Type,
			X:              &m.X,
			Y:              y,
			Index:          i,
			DevMarginTop:   st.MarginTop,
			DevYTop:        top + i*(graphHeight+st.GraphGap),
			DevGraphHeight: graphHeight,
			DevGraphWidth:  virtualWidth,
			XMin:           xMin,
			ScaleX:         scaleX,
			BarWidth:       barWidth,
			BarXPos:        barXPos,
			XUnits:         xUnits,
			ShowXUnits:     i == n-1,
		}
		if i == 0 {
			dd.XTitle = m.Title
		}
		dd.DevYBottom = dd.DevYTop + graphHeight

		stacked := m.Type == ChartBar && y.Layout == BarStacked
		var lo, hi float64
		if y.Visible != nil {
			lo, hi = y.Visible.Min, y.Visible.Max
			dd.YUnits = computeUnits(lo, hi, graphHeight, st.YUnitSpacing, y.format)
		} else {
			var ok bool
			lo, hi, ok = y.Extent(stacked)
			if !ok {
				lo, hi = 0, 0
			}
			if m.Type != ChartLine {
				lo = min(lo, 0)
				hi = max(hi, 0)
			}
			if lo == hi {
				lo, hi = lo-1, hi+1
			}
			if step := unitStep(hi-lo, graphHeight, st.YUnitSpacing); step > 0 {
				lo = floor(lo/step) * step
				hi = ceil(hi/step) * step
			}
			dd.YUnits = computeUnits(lo, hi, graphHeight, st.YUnitSpacing, y.format)
		}
		dd.GraphYBottom, dd.GraphYTop = lo, hi
		if hi > lo {
			dd.ScaleY = float64(graphHeight) / (hi - lo)
		}
		out = append(out, dd)
	}
	return out
}

// xDomain returns the x value range mapped to the virtual width. Bar
// charts are padded by half a value step so that the outer bars fit.
func xDomain(x *XData, t ChartType) (lo, hi float64) {
	n := len(x.Values)
	if n == 0 {
		return 0, 0
	}
	lo, hi = x.Values[0], x.Values[n-1]
	if t == ChartLine {
		return lo, hi
	}
	step := 1.0
	if n > 1 && hi > lo {
		step = (hi - lo) / float64(n-1)
	}
	return lo - step/2, hi + step/2
}

func computeBarWidth(slot, fill float64, t ChartType, ys []*YData) (width, xPos int) {
	beside := 1
	for _, y := range ys {
		if t == ChartBar && y.Layout == BarBeside {
			beside = max(beside, len(y.High))
		}
	}
	width = int(slot*fill) / beside
	drawn := max(1, width)
	return width, -(drawn * beside) / 2
}

// unitStep picks a 1, 2 or 5 times power of ten step so that units are
// at least spacing pixels apart.
func unitStep(valueRange float64, pixels, spacing int) float64 {
	if valueRange <= 0 || pixels <= 0 || spacing <= 0 {
		return 0
	}
	count := max(1, pixels/spacing)
	raw := valueRange / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= raw {
			return step
		}
	}
	return 10 * mag
}

func computeUnits(lo, hi float64, pixels, spacing int, format func(float64) string) []Unit {
	step := unitStep(hi-lo, pixels, spacing)
	if step == 0 {
		return nil
	}
	var units []Unit
	decimals := max(0, -int(math.Floor(math.Log10(step))))
	first := math.Ceil(lo/step-1e-9) * step
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		// Avoid printing -0 and float noise.
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
		units = append(units, Unit{Value: v, Label: format(v)})
	}
	return units
}
