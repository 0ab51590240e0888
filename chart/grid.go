package chart

import (
	"image"
	"math"
)

// drawGrid paints the alternating unit bands, the vertical and the
// horizontal grid lines of one graph. The lowest horizontal line is the
// axis.
func (g *Graph) drawGrid(dst *image.RGBA, dd *DrawingData, xOff int) {
	st := g.cfg.Style
	band := withAlpha(st.Grid, 0x60)
	for i, u := range dd.XUnits {
		x := int(math.Round(dd.XToDev(u.Value))) - xOff
		if i%2 == 0 && i+1 < len(dd.XUnits) {
			next := int(math.Round(dd.XToDev(dd.XUnits[i+1].Value))) - xOff
			fillRect(dst, image.Rect(x, dd.DevYTop, next, dd.DevYBottom), band)
		}
		vline(dst, x, dd.DevYTop, dd.DevYBottom, st.Grid)
	}
	for i, u := range dd.YUnits {
		y := int(math.Round(dd.YToDev(u.Value)))
		c := st.Grid
		if i == 0 {
			c = st.Axis
		}
		hline(dst, 0, dst.Bounds().Dx()-1, y, c)
	}
}

// drawXUnits labels the x units below the graph.
func (g *Graph) drawXUnits(dst *image.RGBA, dd *DrawingData, xOff int) {
	st := g.cfg.Style
	y := dd.DevYBottom + 4
	right := -1
	for _, u := range dd.XUnits {
		x := int(math.Round(dd.XToDev(u.Value))) - xOff
		vline(dst, x, dd.DevYBottom, dd.DevYBottom+3, st.Axis)
		w, _ := g.p.measure(u.Label)
		lx := clamp(x-w/2, 0, max(0, dst.Bounds().Dx()-w))
		// Skip labels which would overlap their left neighbor.
		if lx <= right {
			continue
		}
		g.p.text(dst, u.Label, lx, y, st.Text)
		right = lx + w + 4
	}
	caption := dd.X.Label
	if dd.X.Unit != "" {
		if caption != "" {
			caption += " "
		}
		caption += "[" + dd.X.Unit + "]"
	}
	if caption != "" {
		w, _ := g.p.measure(caption)
		x := dd.DevGraphWidth - w - 2 - xOff
		fillRect(dst, image.Rect(x-2, y, x+w+2, y+g.p.height), st.Background)
		g.p.text(dst, caption, x, y, st.Text)
	}
}

// drawAxes paints the labels which do not scroll with the graph: the
// chart title and the y units of every graph.
func (g *Graph) drawAxes(frame *image.RGBA) {
	st := g.cfg.Style
	for _, dd := range g.drawingData {
		if dd.XTitle != "" {
			w, _ := g.p.measure(dd.XTitle)
			g.p.text(frame, dd.XTitle, frame.Bounds().Dx()/2-w/2, dd.DevMarginTop, st.Text)
		}
		top := dd.DevYTop
		for i := len(dd.YUnits) - 1; i >= 0; i-- {
			u := dd.YUnits[i]
			label := u.Label
			if i == len(dd.YUnits)-1 && dd.Y.Unit != "" {
				label += " " + dd.Y.Unit
			}
			y := int(math.Round(dd.YToDev(u.Value))) - g.p.height/2
			y = clamp(y, top, max(top, dd.DevYBottom-g.p.height/2))
			g.p.text(frame, label, 2, y, st.Text)
		}
	}
}
