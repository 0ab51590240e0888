package chart

import (
	"image"
	"math"
	"sort"
)

type SliderID uint8

const (
	SliderA SliderID = iota
	SliderB
)

func (id SliderID) String() string {
	if id == SliderA {
		return "A"
	}
	return "B"
}

// sliderHalfHit is half the width of the strip around a slider line which
// grabs the slider.
const sliderHalfHit = 10

// SliderLabel is the value label of a slider in one graph, in image
// coordinates.
type SliderLabel struct {
	Text          string
	X, Y          int
	Width, Height int
	// YGraph is where the slider crosses the value line.
	YGraph int
}

func (l SliderLabel) Rect() image.Rectangle {
	return image.Rect(l.X, l.Y, l.X+l.Width, l.Y+l.Height)
}

// XSlider is a vertical cursor on the x axis.
type XSlider struct {
	ID SliderID
	// LinePos is the virtual x position of the line. It always lies in
	// [0, virtual width].
	LinePos int
	// PositionRatio is LinePos relative to the virtual width.
	PositionRatio float64
	ValueIndex    int
	Value         float64
	Labels        []SliderLabel
}

// HitRect is the virtual area which grabs the slider.
func (s *XSlider) HitRect(height int) image.Rectangle {
	return image.Rect(s.LinePos-sliderHalfHit, 0, s.LinePos+sliderHalfHit+1, height)
}

// nearestIndex returns the index of the value closest to v in the sorted
// values.
func nearestIndex(values []float64, v float64) int {
	n := len(values)
	if n == 0 {
		return 0
	}
	i := sort.SearchFloat64s(values, v)
	if i >= n {
		return n - 1
	}
	if i > 0 && v-values[i-1] <= values[i]-v {
		return i - 1
	}
	return i
}

func (g *Graph) XSlider(id SliderID) *XSlider {
	if id == SliderA {
		return g.sliderA
	}
	return g.sliderB
}

// LeftSlider returns the slider with the smaller line position.
func (g *Graph) LeftSlider() *XSlider {
	if g.sliderA.LinePos <= g.sliderB.LinePos {
		return g.sliderA
	}
	return g.sliderB
}

// RightSlider returns the slider with the larger line position.
func (g *Graph) RightSlider() *XSlider {
	if g.sliderA.LinePos <= g.sliderB.LinePos {
		return g.sliderB
	}
	return g.sliderA
}

// SelectedSlider is the slider moved by the keyboard.
func (g *Graph) SelectedSlider() *XSlider {
	return g.selectedSlider
}

func (g *Graph) otherSlider(s *XSlider) *XSlider {
	if s == g.sliderA {
		return g.sliderB
	}
	return g.sliderA
}

// syncXSliders moves the sliders to the positions of their value indices
// after the layout changed. Sliders without a valid index go to the first
// and the last value.
func (g *Graph) syncXSliders() {
	n := len(g.xValues())
	if n == 0 {
		return
	}
	if g.sliderA.ValueIndex < 0 || g.sliderA.ValueIndex >= n {
		g.sliderA.ValueIndex = 0
	}
	if g.sliderB.ValueIndex < 0 || g.sliderB.ValueIndex >= n {
		g.sliderB.ValueIndex = n - 1
	}
	g.placeAtIndex(g.sliderA, g.sliderA.ValueIndex)
	g.placeAtIndex(g.sliderB, g.sliderB.ValueIndex)
}

func (g *Graph) placeAtIndex(s *XSlider, index int) {
	xs := g.xValues()
	if len(xs) == 0 {
		return
	}
	index = clamp(index, 0, len(xs)-1)
	dd := g.drawingData[0]
	s.ValueIndex = index
	s.Value = xs[index]
	s.LinePos = clamp(int(math.Round(dd.XToDev(xs[index]))), 0, g.vp.VirtualWidth)
	s.PositionRatio = g.positionRatio(s.LinePos)
}

func (g *Graph) positionRatio(linePos int) float64 {
	if g.vp.VirtualWidth == 0 {
		return 0
	}
	return float64(linePos) / float64(g.vp.VirtualWidth)
}

// moveXSlider moves the slider line to a virtual position and selects
// the nearest value.
func (g *Graph) moveXSlider(s *XSlider, virtualPos int) {
	xs := g.xValues()
	if len(xs) == 0 {
		return
	}
	pos := clamp(virtualPos, 0, g.vp.VirtualWidth)
	idx := nearestIndex(xs, g.drawingData[0].DevToX(float64(pos)))
	s.LinePos = pos
	s.PositionRatio = g.positionRatio(pos)
	s.ValueIndex = idx
	s.Value = xs[idx]
	g.markDirty(LevelLayer)
}

// MoveXSlider moves a slider to a virtual position.
func (g *Graph) MoveXSlider(id SliderID, virtualPos int) {
	g.moveXSlider(g.XSlider(id), virtualPos)
	g.invalidate()
}

// SetXSliderValueIndex moves a slider to the value at index, which is
// clamped to the x values.
func (g *Graph) SetXSliderValueIndex(id SliderID, index int) {
	if !g.hasData() {
		return
	}
	g.placeAtIndex(g.XSlider(id), index)
	g.markDirty(LevelLayer)
	g.invalidate()
}

// ResetSliders moves the left slider to the first and the right slider
// to the last value.
func (g *Graph) ResetSliders() {
	n := len(g.xValues())
	if n == 0 {
		return
	}
	left, right := g.LeftSlider(), g.RightSlider()
	g.placeAtIndex(left, 0)
	g.placeAtIndex(right, n-1)
	g.markDirty(LevelLayer)
	g.slidersMoved()
	g.invalidate()
}

// SwitchXData swaps the horizontal axis with the alternative one of the
// model. The sliders keep their value indices and move to the positions
// of the new values. It reports whether the model has an alternative
// axis.
func (g *Graph) SwitchXData() bool {
	m := g.model
	if m == nil || m.X2 == nil || len(m.X2.Values) == 0 {
		return false
	}
	alt := m.X2
	m.X.Values, alt.Values = alt.Values, m.X.Values
	m.X.Label, alt.Label = alt.Label, m.X.Label
	m.X.Unit, alt.Unit = alt.Unit, m.X.Unit
	m.X.Format, alt.Format = alt.Format, m.X.Format
	last := len(m.X.Values) - 1
	for _, s := range []*XSlider{g.sliderA, g.sliderB} {
		s.ValueIndex = min(s.ValueIndex, last)
	}
	g.relayout()
	g.slidersMoved()
	g.invalidate()
	g.log.Debug("x axis switched", "label", m.X.Label)
	return true
}

// layoutXSliderLabels computes the labels of both sliders for the
// current scroll position.
func (g *Graph) layoutXSliderLabels() {
	g.layoutSliderLabels(g.sliderA)
	g.layoutSliderLabels(g.sliderB)

	// Push the lower priority labels down where both overlap.
	top, bottom := g.onTop.Labels, g.onBottom.Labels
	for i := range top {
		if i >= len(bottom) {
			break
		}
		t, b := top[i], &bottom[i]
		if t.X+t.Width > b.X && t.X < b.X+b.Width {
			b.Y += b.Height
		}
	}
}

func (g *Graph) layoutSliderLabels(s *XSlider) {
	s.Labels = s.Labels[:0]
	line := g.vp.ToImage(s.LinePos)
	left := g.vp.ScrollPos
	right := left + g.vp.Width
	_, textHeight := g.p.measure("0")
	for _, dd := range g.drawingData {
		var value float64
		if len(dd.Y.High) > 0 && len(dd.Y.High[0]) > 0 {
			value = dd.Y.High[0][clamp(s.ValueIndex, 0, len(dd.Y.High[0])-1)]
		}
		text := dd.Y.format(value)
		if dd.Y.Unit != "" {
			text += " " + dd.Y.Unit
		}
		tw, _ := g.p.measure(text)
		w := tw + 4
		x := line - w/2
		if s == g.draggedSlider {
			// The dragged label stays in the viewport.
			if x < left {
				x = left
			} else if x+w >= right {
				x = right - w - 1
			}
		} else {
			limit := max(g.vp.MinWidth, g.vp.Width)
			if g.vp.CanScroll {
				limit = g.vp.VirtualWidth
			}
			if x+w > limit {
				x = limit - w - 1
			}
			x = max(0, x)
		}
		h := textHeight
		yGraph := int(math.Round(dd.YToDev(clamp(value, dd.GraphYBottom, dd.GraphYTop))))
		s.Labels = append(s.Labels, SliderLabel{
			Text:   text,
			X:      x,
			Y:      dd.DevYTop - h,
			Width:  w,
			Height: h,
			YGraph: clamp(yGraph, dd.DevYTop, dd.DevYBottom),
		})
	}
}

// drawXSlider paints the line, the labels and the focus marker of a
// slider in every graph.
func (g *Graph) drawXSlider(dst *image.RGBA, s *XSlider) {
	line := g.vp.ToImage(s.LinePos)
	strong := s == g.hoveredSlider || (g.focused && s == g.selectedSlider)
	for i, dd := range g.drawingData {
		if i >= len(s.Labels) {
			break
		}
		l := s.Labels[i]
		pal := dd.Y.palette(0, s.ValueIndex)
		alpha := uint8(alphaSynchOther)
		if strong {
			alpha = alphaSynchMarker
		}
		dottedVLine(dst, line, l.Y+l.Height, dd.DevYBottom, withAlpha(pal.Line, alpha))

		r := l.Rect()
		if s == g.LeftSlider() {
			g.p.gradientRect(dst, r, pal.Dark, pal.Bright, false)
		} else {
			g.p.gradientRect(dst, r, pal.Bright, pal.Dark, false)
		}
		strokeRect(dst, r, pal.Line)
		g.p.text(dst, l.Text, l.X+2, l.Y, g.cfg.Style.Text)

		// Value marker on the graph.
		fillRect(dst, image.Rect(line-3, l.YGraph-2, line+4, l.YGraph+1), pal.Line)

		if g.focused && s == g.selectedSlider {
			g.drawFocusMarker(dst, line, dd.DevYBottom, pal)
		}
	}
}

// drawFocusMarker paints the small triangle below the axis which shows
// the keyboard focus.
func (g *Graph) drawFocusMarker(dst *image.RGBA, x, devYBottom int, pal Palette) {
	half := BarMarkerWidth / 2
	left := float64(x - half)
	tri := []point{
		pt(left, float64(devYBottom+1+half)),
		pt(left+float64(half), float64(devYBottom+1)),
		pt(left+BarMarkerWidth, float64(devYBottom+1+half)),
	}
	g.p.fillPaths(dst, image.NewUniform(withAlpha(pal.Dark, 0xc0)), tri)
	closed := append(append([]point(nil), tri...), tri[0])
	g.p.strokePolyline(dst, closed, withAlpha(pal.Line, 0xc0))
}
