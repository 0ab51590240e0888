package chart

import "image"

type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Cursor is the pointer shape the owner should show over the chart.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorResizeHorizontal
	CursorResizeVertical
	CursorDragMarker
	// The hand cursors scroll the chart at a quarter, once, twice and ten
	// times the pointer speed.
	CursorHand025
	CursorHand1
	CursorHand2
	CursorHand10
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorResizeHorizontal:
		return "resize-horizontal"
	case CursorResizeVertical:
		return "resize-vertical"
	case CursorDragMarker:
		return "drag-marker"
	case CursorHand025:
		return "hand-0.25x"
	case CursorHand1:
		return "hand-1x"
	case CursorHand2:
		return "hand-2x"
	case CursorHand10:
		return "hand-10x"
	default:
		return "unknown"
	}
}

func (g *Graph) Cursor() Cursor {
	return g.cursor
}

// Tooltip returns the description of the hovered bar and the pointer
// position it belongs to.
func (g *Graph) Tooltip() (text string, at image.Point, ok bool) {
	return g.tooltip, g.pointer, g.tooltip != ""
}

// ContextSliders returns the sliders under the last secondary button
// release, left one first. Both are nil when no slider was hit.
func (g *Graph) ContextSliders() (left, right *XSlider) {
	return g.contextLeft, g.contextRight
}

// SelectedBar returns the value index of the selected bar.
func (g *Graph) SelectedBar() (serie, value int, ok bool) {
	return g.selected.serie, g.selected.value, g.selected.ok
}

// HoveredBar returns the bar under the pointer.
func (g *Graph) HoveredBar() (serie, value int, ok bool) {
	return g.hovered.serie, g.hovered.value, g.hovered.ok
}

// Dragging reports whether a slider, the marker or the chart is being
// dragged.
func (g *Graph) Dragging() bool {
	return g.draggedSlider != nil || g.draggedYSlider != nil || g.markerDragging || g.scrolling
}

func (g *Graph) hitXSlider(virtualX, y int) *XSlider {
	if !g.showXSliders {
		return nil
	}
	p := image.Pt(virtualX, y)
	h := g.vp.ImageHeight()
	switch {
	case p.In(g.sliderA.HitRect(h)):
		return g.sliderA
	case p.In(g.sliderB.HitRect(h)):
		return g.sliderB
	}
	return nil
}

// PointerDown starts the interaction under the viewport position x, y.
// A slider takes precedence over a Y slider, which takes precedence over
// a bar. Otherwise the chart is dragged when it can be scrolled, or the X
// marker when it was hit.
func (g *Graph) PointerDown(x, y int, b Button) {
	g.pointer = image.Pt(x, y)
	if !g.hasData() || b != ButtonPrimary {
		return
	}
	vx := g.vp.ToVirtual(x)

	if s := g.hitXSlider(vx, y); s != nil {
		g.draggedSlider = s
		g.onTop, g.onBottom = s, g.otherSlider(s)
		g.sliderClickOffset = vx - s.LinePos
		g.selectedSlider = s
		g.markDirty(LevelLayer)
		g.invalidate()
		return
	}
	if s := g.hitYSlider(y); s != nil {
		g.draggedYSlider = s
		s.clickOffset = y - s.LinePos
		g.ySliderX = vx
		return
	}
	g.updateHoveredBar(vx, y)
	if g.hovered.ok {
		g.selectBar(g.hovered.serie, g.hovered.value)
		if f := g.cfg.Handlers.BarSelected; f != nil {
			f(g.hovered.serie, g.hovered.value)
		}
		g.invalidate()
		return
	}
	if g.vp.ScrollVisible() {
		g.scrolling = true
		g.smoothScrollActive = false
		g.scrollStartPos = g.vp.ScrollPos
		g.scrollStartX = x
		g.setupScrollCursor(x, y)
		return
	}
	if g.cfg.MarkerDragger != nil && g.markerHit(vx) {
		g.startMarkerDrag(vx)
		g.invalidate()
	}
}

// PointerMove updates the active drag, or the hover state when nothing is
// dragged.
func (g *Graph) PointerMove(x, y int) {
	g.pointer = image.Pt(x, y)
	if !g.hasData() {
		return
	}
	vx := g.vp.ToVirtual(x)

	switch {
	case g.scrolling:
		g.setupScrollCursor(x, y)
		pos := g.scrollStartPos - int(float64(x-g.scrollStartX)*g.scrollAccel)
		if pos < 0 || pos > g.vp.ScrollMax() {
			// Restart the drag at the scroll bounds.
			pos = clamp(pos, 0, g.vp.ScrollMax())
			g.scrollStartPos = pos
			g.scrollStartX = x
		}
		if g.vp.setScrollPos(pos) {
			g.invalidate()
		}

	case g.draggedSlider != nil:
		s := g.draggedSlider
		g.autoScrollLine = x - g.sliderClickOffset
		if g.vp.CanScroll && (g.autoScrollLine <= -1 || g.autoScrollLine >= g.vp.Width) {
			if !g.autoScrollActive {
				g.startAutoScroll()
			}
		} else {
			g.moveXSlider(s, vx-g.sliderClickOffset)
		}
		g.slidersMoved()
		g.invalidate()

	case g.draggedYSlider != nil:
		g.moveYSlider(g.draggedYSlider, y)
		g.ySliderX = vx
		g.invalidate()

	case g.markerDragging:
		g.dragMarker(vx)
		g.invalidate()

	default:
		g.updateHover(x, y, vx)
	}
}

func (g *Graph) updateHover(x, y, vx int) {
	dirty := false
	defer func() {
		if dirty {
			g.markDirty(LevelLayer)
			g.invalidate()
		}
	}()

	if s := g.hitXSlider(vx, y); s != nil {
		if g.hoveredSlider != s {
			g.hoveredSlider = s
			g.hoveredYSlider = nil
			dirty = true
		}
		g.cursor = CursorResizeHorizontal
		return
	}
	if g.hoveredSlider != nil {
		g.hoveredSlider = nil
		dirty = true
	}

	if s := g.hitYSlider(y); s != nil {
		g.hoveredYSlider = s
		g.ySliderX = vx
		g.cursor = CursorResizeVertical
		dirty = true
		return
	}
	if g.hoveredYSlider != nil {
		g.hoveredYSlider = nil
		dirty = true
	}

	if g.cfg.MarkerDragger != nil && g.markerHit(vx) {
		g.cursor = CursorDragMarker
		return
	}
	if g.updateHoveredBar(vx, y) {
		dirty = true
	}
	switch {
	case g.hovered.ok:
		g.cursor = CursorDefault
	case g.vp.ScrollVisible():
		g.setupScrollCursor(x, y)
	default:
		g.cursor = CursorDefault
	}
}

// updateHoveredBar hit tests the retained bar rectangles next to the
// pointer and reports whether the hovered bar changed.
func (g *Graph) updateHoveredBar(vx, y int) bool {
	hit := g.barAt(vx, y)
	if hit == g.hovered {
		return false
	}
	g.hovered = hit
	g.tooltip = ""
	if hit.ok {
		if f := g.cfg.Handlers.DescribeBar; f != nil {
			if text, ok := f(hit.serie, hit.value); ok {
				g.tooltip = text
			}
		}
	}
	return true
}

func (g *Graph) barAt(vx, y int) barRef {
	if g.drawingData[0].Type == ChartLine {
		return barRef{}
	}
	p := image.Pt(vx, y)
	xs := g.xValues()
	for _, dd := range g.drawingData {
		near := nearestIndex(xs, dd.DevToX(float64(vx)))
		for serie := range dd.barFocusRects {
			// Beside bars can be offset into the neighbor slot.
			for i := max(0, near-1); i <= min(len(xs)-1, near+1); i++ {
				if r, ok := dd.BarFocusRect(serie, i); ok && p.In(r) {
					return barRef{serie: serie, value: i, ok: true}
				}
			}
		}
	}
	return barRef{}
}

// setupScrollCursor picks the scroll speed from the vertical pointer
// position. Changing the speed while dragging restarts the drag at the
// pointer.
func (g *Graph) setupScrollCursor(x, y int) {
	h := g.vp.Height
	h4, h2 := h/4, h/2
	old := g.scrollAccel
	switch {
	case y < h4:
		g.scrollAccel, g.cursor = 0.25, CursorHand025
	case y < h2:
		g.scrollAccel, g.cursor = 1, CursorHand1
	case y > h-h4:
		g.scrollAccel, g.cursor = 10, CursorHand10
	default:
		g.scrollAccel, g.cursor = 2, CursorHand2
	}
	if g.scrolling && old != g.scrollAccel {
		g.scrollStartPos = g.vp.ScrollPos
		g.scrollStartX = x
	}
}

// PointerUp ends the active drag. A secondary button release records the
// sliders under the pointer for a context menu.
func (g *Graph) PointerUp(x, y int, b Button) {
	g.pointer = image.Pt(x, y)
	if !g.hasData() {
		return
	}
	vx := g.vp.ToVirtual(x)

	switch {
	case g.scrolling:
		g.scrolling = false
	case g.draggedSlider != nil:
		g.draggedSlider = nil
		g.markDirty(LevelLayer)
		g.invalidate()
		if !g.vp.CanScroll && g.vp.AutoZoom {
			g.sched.Post(func() {
				if !g.disposed {
					g.ZoomInWithSlider()
				}
			})
		}
	case g.draggedYSlider != nil:
		g.adjustYSlider()
		g.invalidate()
	case g.markerDragging:
		g.endMarkerDrag()
		g.invalidate()
	}

	if b == ButtonSecondary {
		g.computeContextSliders(vx, y)
	}
}

func (g *Graph) computeContextSliders(vx, y int) {
	g.contextLeft, g.contextRight = nil, nil
	if !g.showXSliders {
		return
	}
	p := image.Pt(vx, y)
	h := g.vp.ImageHeight()
	var a, b *XSlider
	if p.In(g.sliderA.HitRect(h)) {
		a = g.sliderA
	}
	if p.In(g.sliderB.HitRect(h)) {
		b = g.sliderB
	}
	switch {
	case a == nil && b == nil:
	case b == nil:
		g.contextLeft = a
	case a == nil:
		g.contextLeft = b
	case a.LinePos == b.LinePos:
		g.contextLeft = a
	case a.LinePos < b.LinePos:
		g.contextLeft, g.contextRight = a, b
	default:
		g.contextLeft, g.contextRight = b, a
	}
}

// PointerLeave ends a chart drag and clears the hover state.
func (g *Graph) PointerLeave() {
	dirty := false
	if g.scrolling {
		g.scrolling = false
	} else if g.draggedSlider == nil && g.hoveredYSlider != nil {
		g.hoveredYSlider = nil
		dirty = true
	}
	if g.hoveredSlider != nil {
		g.hoveredSlider = nil
		dirty = true
	}
	g.tooltip = ""
	g.cursor = CursorDefault
	if dirty {
		g.markDirty(LevelLayer)
		g.invalidate()
	}
}

// DoubleClick reports a double click on the hovered bar, or on the chart
// when no bar is hovered.
func (g *Graph) DoubleClick(x, y int) {
	g.pointer = image.Pt(x, y)
	if !g.hasData() {
		return
	}
	if g.hovered.ok {
		if f := g.cfg.Handlers.BarDoubleClicked; f != nil {
			f(g.hovered.serie, g.hovered.value)
		}
		return
	}
	if f := g.cfg.Handlers.DoubleClicked; f != nil {
		f()
	}
}

// Focus sets the keyboard focus state.
func (g *Graph) Focus(focused bool) {
	if g.focused == focused {
		return
	}
	g.focused = focused
	g.selectionDirty = true
	if focused {
		if g.selectedSlider == nil {
			g.selectedSlider = g.LeftSlider()
		}
		if f := g.cfg.Handlers.FocusGained; f != nil {
			f()
		}
	}
	g.invalidate()
}

func (g *Graph) Focused() bool {
	return g.focused
}

func (g *Graph) slidersMoved() {
	if f := g.cfg.Handlers.SlidersMoved; f != nil {
		f(g.LeftSlider(), g.RightSlider())
	}
}

func (g *Graph) selectBar(serie, value int) {
	g.selected = barRef{serie: serie, value: value, ok: true}
	g.selectionDirty = true
}

// SelectBar selects the bars at the value index and scrolls them into
// view.
func (g *Graph) SelectBar(valueIndex int) {
	n := len(g.xValues())
	if n == 0 {
		return
	}
	g.selectBar(g.selected.serie, clamp(valueIndex, 0, n-1))
	g.pendingScrollToSelection = true
	g.pendingSmoothScroll = true
	g.vp.Parts = 1
	g.invalidate()
}
