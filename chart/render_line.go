package chart

import (
	"image"
	"image/color"
)

const (
	alphaGraph       = 0xe0
	alphaSynchMarker = 0xd0
	alphaSynchOther  = 0x60
	alphaRangeMarker = 0x40
)

// lineFill is one fill pass below a line segment. Only the pixels inside
// clip are painted, with a vertical ramp starting at row y0.
type lineFill struct {
	path     []point
	clip     image.Rectangle
	from, to color.NRGBA
	y0       int
}

// zeroLine returns the value used as the zero line of a graph: zero when
// it is visible, otherwise the closer bound.
func zeroLine(dd *DrawingData) float64 {
	switch {
	case dd.GraphYBottom > 0:
		return dd.GraphYBottom
	case dd.GraphYTop < 0:
		return dd.GraphYTop
	default:
		return 0
	}
}

// linePoints converts the values in [start, end) to image positions.
// Values outside the visible range are clamped to the graph.
func linePoints(dd *DrawingData, values []float64, start, end, xOff int) []point {
	xs := dd.X.Values
	end = min(end, len(values), len(xs))
	if start >= end {
		return nil
	}
	pts := make([]point, 0, end-start)
	for i := start; i < end; i++ {
		v := clamp(values[i], dd.GraphYBottom, dd.GraphYTop)
		pts = append(pts, pt(dd.XToDev(xs[i])-float64(xOff), dd.YToDev(v)))
	}
	return pts
}

// lineFills returns the fill passes of a segment. Fill to zero has two
// passes with swapped gradients, one above and one below the zero line.
// Both cover the whole segment, so no gap appears where the sign
// changes.
func lineFills(dd *DrawingData, pts []point, pal Palette, alpha uint8, imageWidth int) []lineFill {
	if len(pts) == 0 || dd.ScaleY == 0 {
		return nil
	}
	dark, bright := withAlpha(pal.Dark, alpha), withAlpha(pal.Bright, alpha)
	graph := image.Rect(0, dd.DevYTop, imageWidth, dd.DevYBottom+1)
	closed := func(y float32) []point {
		path := make([]point, 0, len(pts)+2)
		path = append(path, pts...)
		return append(path, point{pts[len(pts)-1].X, y}, point{pts[0].X, y})
	}
	switch dd.Y.Fill {
	case FillBottom:
		return []lineFill{{
			path: closed(float32(dd.DevYBottom)),
			clip: graph,
			from: bright,
			to:   dark,
			y0:   dd.DevYTop,
		}}
	case FillZero:
		devZero := int(dd.YToDev(zeroLine(dd)))
		path := closed(float32(devZero))
		return []lineFill{
			{
				path: path,
				clip: image.Rect(0, dd.DevYTop, imageWidth, devZero),
				from: bright,
				to:   dark,
				y0:   dd.DevYTop,
			},
			{
				path: path,
				clip: image.Rect(0, devZero, imageWidth, dd.DevYBottom+1),
				from: dark,
				to:   bright,
				y0:   devZero,
			},
		}
	}
	return nil
}

func (g *Graph) drawLineGraph(dst *image.RGBA, dd *DrawingData, xOff int) {
	n := len(dd.X.Values)
	for serie, values := range dd.Y.High {
		pal := dd.Y.palette(serie, 0)
		synch := dd.X.Synch
		if synch == nil || n == 0 {
			g.drawLineSegment(dst, dd, values, 0, len(values), xOff, pal, alphaGraph)
			continue
		}
		start := clamp(synch.Start, 0, n-1)
		end := clamp(synch.End, start, n-1)
		// The passes overlap by one index so the segments join.
		g.drawLineSegment(dst, dd, values, 0, start+1, xOff, pal, alphaSynchOther)
		g.drawLineSegment(dst, dd, values, end, len(values), xOff, pal, alphaSynchOther)
		g.drawLineSegment(dst, dd, values, start, end+1, xOff, pal, alphaSynchMarker)
	}
}

func (g *Graph) drawLineSegment(dst *image.RGBA, dd *DrawingData, values []float64, start, end, xOff int, pal Palette, alpha uint8) {
	pts := linePoints(dd, values, start, end, xOff)
	if len(pts) == 0 {
		return
	}
	for _, f := range lineFills(dd, pts, pal, alpha, dst.Bounds().Dx()) {
		if f.clip.Empty() {
			continue
		}
		src := &verticalGradient{
			ramp: g.p.ramp(f.from, f.to, max(1, f.clip.Dy())),
			y0:   f.y0,
			clip: f.clip,
		}
		g.p.fillPaths(dst, src, f.path)
	}
	g.p.strokePolyline(dst, pts, withAlpha(pal.Line, alpha))
}

// drawRangeMarkers highlights the marked index ranges of every series.
func (g *Graph) drawRangeMarkers(dst *image.RGBA, dd *DrawingData, xOff int) {
	n := len(dd.X.Values)
	if n == 0 {
		return
	}
	for _, r := range dd.X.Ranges {
		start := clamp(r.Start, 0, n-1)
		end := clamp(r.End, start, n-1)
		for serie, values := range dd.Y.High {
			g.drawLineSegment(dst, dd, values, start, end+1, xOff, dd.Y.palette(serie, start), alphaRangeMarker)
		}
	}
}
