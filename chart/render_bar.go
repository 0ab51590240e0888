package chart

import (
	"image"
	"math"
)

// barBase returns the value a bar starts from: its low value when the
// graph has low values, otherwise the zero line.
func barBase(dd *DrawingData, serie, index int) float64 {
	if serie < len(dd.Y.Low) && index < len(dd.Y.Low[serie]) {
		return clamp(dd.Y.Low[serie][index], dd.GraphYBottom, dd.GraphYTop)
	}
	return zeroLine(dd)
}

// layoutBars computes the virtual rectangles of every bar and retains
// them with their hit rectangles in dd. Bars without height get an empty
// rectangle.
func layoutBars(dd *DrawingData, fromBottom bool) {
	xs := dd.X.Values
	width := max(1, dd.BarWidth)
	beside := dd.Type == ChartBar && dd.Y.Layout == BarBeside
	stacked := dd.Type == ChartBar && dd.Y.Layout == BarStacked

	dd.barRects = make([][]image.Rectangle, len(dd.Y.High))
	dd.barFocusRects = make([][]image.Rectangle, len(dd.Y.High))
	// Pixel height of the bars already stacked at each index.
	var stackHeight []int
	if stacked {
		stackHeight = make([]int, len(xs))
	}
	for serie, values := range dd.Y.High {
		n := min(len(values), len(xs))
		rects := make([]image.Rectangle, n)
		focus := make([]image.Rectangle, n)
		for i := 0; i < n; i++ {
			x := int(math.Round(dd.XToDev(xs[i]))) + dd.BarXPos
			if beside {
				x += serie * width
			}
			base := barBase(dd, serie, i)
			if fromBottom {
				base = dd.GraphYBottom
			}
			devBase := int(math.Round(dd.YToDev(base)))
			devValue := int(math.Round(dd.YToDev(clamp(values[i], dd.GraphYBottom, dd.GraphYTop))))
			height := devBase - devValue
			if height == 0 {
				continue
			}
			if stacked {
				devBase -= stackHeight[i]
				stackHeight[i] += height
			}
			r := image.Rect(x, devBase-height, x+width, devBase)
			if stacked {
				// A narrowed visible range cuts the upper bars of a stack.
				r = r.Intersect(image.Rect(r.Min.X, dd.DevYTop, r.Max.X, dd.DevYBottom))
				if r.Empty() {
					continue
				}
			}
			rects[i] = r
			focus[i] = image.Rect(r.Min.X-2, r.Min.Y-2, r.Max.X+2, r.Max.Y+5)
		}
		dd.barRects[serie] = rects
		dd.barFocusRects[serie] = focus
	}
}

func (g *Graph) drawBars(dst *image.RGBA, dd *DrawingData, xOff int) {
	for serie, rects := range dd.barRects {
		for i, r := range rects {
			if r.Empty() {
				continue
			}
			pal := dd.Y.palette(serie, i)
			r = r.Sub(image.Pt(xOff, 0))
			if dd.BarWidth == 0 {
				vline(dst, r.Min.X, r.Min.Y, r.Max.Y-1, pal.Line)
				continue
			}
			g.p.gradientRect(dst, r, pal.Bright, pal.Dark, false)
			strokeRect(dst, image.Rectangle{Min: r.Min, Max: r.Max.Sub(image.Pt(1, 1))}, pal.Line)
		}
	}
}

func (g *Graph) drawBarGraph(dst *image.RGBA, dd *DrawingData, xOff int) {
	g.drawBars(dst, dd, xOff)
}

// drawLineWithBarGraph draws bars from the bottom of the graph and a
// line through the values.
func (g *Graph) drawLineWithBarGraph(dst *image.RGBA, dd *DrawingData, xOff int) {
	g.drawBars(dst, dd, xOff)
	for serie, values := range dd.Y.High {
		pts := linePoints(dd, values, 0, len(values), xOff)
		g.p.strokePolyline(dst, pts, withAlpha(dd.Y.palette(serie, 0).Line, alphaGraph))
	}
}
