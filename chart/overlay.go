package chart

import (
	"image"
	"image/color"
)

const (
	alphaSelectionFocused   = 0xf0
	alphaSelectionUnfocused = 0xa0
	alphaHoveredBar         = 0xd0
)

// barHalo inflates a bar by the marker margin without reaching below the
// axis.
func barHalo(r image.Rectangle, devYBottom int) image.Rectangle {
	half := BarMarkerWidth / 2
	h := r.Inset(-half)
	if h.Max.Y > devYBottom {
		h.Max.Y = devYBottom
	}
	return h
}

// drawBarSelection paints the halo around the selected bar of every
// series and graph.
func (g *Graph) drawBarSelection(dst *image.RGBA) {
	if !g.selected.ok {
		return
	}
	alpha := uint8(alphaSelectionUnfocused)
	if g.focused {
		alpha = alphaSelectionFocused
	}
	xOff := g.vp.ImageXOffset
	for _, dd := range g.drawingData {
		for serie := range dd.barRects {
			r, ok := dd.BarRect(serie, g.selected.value)
			if !ok {
				continue
			}
			r = r.Sub(image.Pt(xOff, 0))
			pal := dd.Y.palette(serie, g.selected.value)
			halo := barHalo(r, dd.DevYBottom)
			g.p.gradientRect(dst, halo.Inset(1), withAlpha(pal.Dark, alpha), withAlpha(pal.Bright, alpha), true)
			strokeRect(dst, halo, withAlpha(pal.Line, alpha))
			// Thicker bar.
			fillRect(dst, image.Rect(r.Min.X-1, r.Min.Y-2, r.Max.X+1, r.Max.Y+2), withAlpha(pal.Dark, alpha))
			if g.focused {
				g.drawFocusMarker(dst, (r.Min.X+r.Max.X)/2, dd.DevYBottom, pal)
			}
		}
	}
}

func (g *Graph) drawHoveredBar(dst *image.RGBA) {
	if !g.hovered.ok || g.drawingData[0].Type != ChartBar {
		return
	}
	xOff := g.vp.ImageXOffset
	for _, dd := range g.drawingData {
		for serie := range dd.barRects {
			r, ok := dd.BarRect(serie, g.hovered.value)
			if !ok {
				continue
			}
			r = r.Sub(image.Pt(xOff, 0))
			pal := dd.Y.palette(serie, g.hovered.value)
			halo := barHalo(r, dd.DevYBottom)
			g.p.gradientRect(dst, halo.Inset(1), withAlpha(pal.Dark, alphaHoveredBar), withAlpha(pal.Bright, alphaHoveredBar), true)
			strokeRect(dst, halo, withAlpha(pal.Line, alphaHoveredBar))
		}
	}
}

var markerColor = color.NRGBA{R: 255, G: 153, B: 0, A: 0xff}

// drawXMarker paints the X marker at the position it is dragged to.
func (g *Graph) drawXMarker(dst *image.RGBA) {
	xs := g.xValues()
	if len(xs) == 0 {
		return
	}
	start := clamp(g.markerStart, 0, len(xs)-1)
	end := clamp(g.markerEnd, start, len(xs)-1)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	for _, dd := range g.drawingData {
		x0 := g.vp.ToImage(int(dd.XToDev(xs[start])))
		x1 := g.vp.ToImage(int(dd.XToDev(xs[end])))
		r := image.Rect(x0, dd.DevYTop, x1, dd.DevYBottom)
		g.p.gradientRect(dst, r, white, withAlpha(markerColor, 0x80), true)
		vline(dst, x0, dd.DevYTop, dd.DevYBottom, withAlpha(markerColor, 0x80))
		vline(dst, x1, dd.DevYTop, dd.DevYBottom, withAlpha(markerColor, 0x80))
	}
}
