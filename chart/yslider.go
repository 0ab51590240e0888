package chart

import "image"

const ySliderHalfHit = 5

// YSlider is a horizontal cursor bounding the visible value range of one
// graph. Every graph which shows Y sliders has a top and a bottom one.
type YSlider struct {
	Top bool
	// Graph is the index of the drawing data the slider constrains.
	Graph int
	// LinePos is the device y position of the line. It may leave the
	// graph while dragging.
	LinePos     int
	clickOffset int
}

func (s *YSlider) HitRect(width int) image.Rectangle {
	return image.Rect(0, s.LinePos-ySliderHalfHit, width, s.LinePos+ySliderHalfHit+1)
}

// YSliders returns the sliders of every graph.
func (g *Graph) YSliders() []*YSlider {
	return g.ySliders
}

func (g *Graph) rebuildYSliders() {
	g.ySliders = g.ySliders[:0]
	g.hoveredYSlider, g.draggedYSlider = nil, nil
	for i, dd := range g.drawingData {
		if !dd.Y.ShowYSlider {
			continue
		}
		g.ySliders = append(g.ySliders,
			&YSlider{Top: true, Graph: i, LinePos: dd.DevYTop},
			&YSlider{Graph: i, LinePos: dd.DevYBottom},
		)
	}
}

func (g *Graph) hitYSlider(y int) *YSlider {
	for _, s := range g.ySliders {
		if y >= s.LinePos-ySliderHalfHit && y <= s.LinePos+ySliderHalfHit {
			return s
		}
	}
	return nil
}

func (g *Graph) moveYSlider(s *YSlider, devY int) {
	s.LinePos = devY - s.clickOffset
	g.markDirty(LevelLayer)
}

// ySliderPair returns the top and the bottom slider of a graph.
func (g *Graph) ySliderPair(graph int) (top, bottom *YSlider) {
	for _, s := range g.ySliders {
		if s.Graph != graph {
			continue
		}
		if s.Top {
			top = s
		} else {
			bottom = s
		}
	}
	return top, bottom
}

// adjustYSlider ends a Y slider drag. The lower value becomes the visible
// minimum no matter which slider was dragged past the other, and the
// graph is laid out again.
func (g *Graph) adjustYSlider() {
	s := g.draggedYSlider
	// The value labels are hidden once the slider is dropped.
	g.draggedYSlider, g.hoveredYSlider = nil, nil
	if s == nil || s.Graph >= len(g.drawingData) {
		return
	}
	dd := g.drawingData[s.Graph]
	top, bottom := g.ySliderPair(s.Graph)
	if top == nil || bottom == nil {
		return
	}
	v1 := dd.DevToY(float64(top.LinePos))
	v2 := dd.DevToY(float64(bottom.LinePos))
	lo, hi := min(v1, v2), max(v1, v2)
	if hi == lo || dd.ScaleY == 0 {
		// A collapsed range can not be shown, restore the sliders.
		top.LinePos, bottom.LinePos = dd.DevYTop, dd.DevYBottom
		g.markDirty(LevelLayer)
		g.invalidate()
		return
	}
	if v1 < v2 {
		top.LinePos, bottom.LinePos = dd.DevYBottom, dd.DevYTop
	} else {
		top.LinePos, bottom.LinePos = dd.DevYTop, dd.DevYBottom
	}
	dd.Y.Visible = &ValueRange{Min: lo, Max: hi}
	g.cursor = CursorDefault
	g.markDirty(LevelLayer)
	g.log.Debug("y range changed", "graph", s.Graph, "min", lo, "max", hi)

	g.sched.Post(func() {
		if g.disposed {
			return
		}
		g.relayout()
		g.invalidate()
	})
}

// ResetVisibleRange shows the full value range of every graph again.
func (g *Graph) ResetVisibleRange() {
	for _, dd := range g.drawingData {
		dd.Y.Visible = nil
	}
	g.relayout()
	g.invalidate()
}

// drawYSliders paints the label and the line of the hovered or dragged Y
// slider.
func (g *Graph) drawYSliders(dst *image.RGBA) {
	s := g.draggedYSlider
	if s == nil {
		s = g.hoveredYSlider
	}
	if s == nil || s.Graph >= len(g.drawingData) {
		return
	}
	dd := g.drawingData[s.Graph]
	pal := dd.Y.palette(0, 0)
	y := clamp(s.LinePos, dd.DevYTop, dd.DevYBottom)

	text := dd.Y.format(dd.DevToY(float64(s.LinePos)))
	if dd.Y.Unit != "" {
		text += " " + dd.Y.Unit
	}
	w, h := g.p.measure(text)
	w += 4
	x := max(0, g.vp.ToImage(g.ySliderX)-w-5)
	r := image.Rect(x, y-h, x+w, y)
	g.p.gradientRect(dst, r, withAlpha(pal.Bright, 0xb0), withAlpha(pal.Dark, 0xb0), true)
	strokeRect(dst, r, withAlpha(pal.Line, 0xa0))
	g.p.text(dst, text, x+2, y-h, g.cfg.Style.Text)

	for px := 0; px < dst.Bounds().Dx(); px += 2 {
		fillRect(dst, image.Rect(px, y, px+1, y+1), pal.Line)
	}
}
