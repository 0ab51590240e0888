package chart

import (
	"time"
)

const (
	autoScrollInterval   = 10 * time.Millisecond
	smoothScrollInterval = 10 * time.Millisecond
	smoothScrollStep     = 5
)

// SetScrollPos scrolls the chart, e.g. from a scrollbar. It cancels a
// running smooth scroll.
func (g *Graph) SetScrollPos(pos int) {
	g.smoothScrollActive = false
	if g.vp.setScrollPos(pos) {
		g.markDirty(LevelLayer)
		g.invalidate()
	}
}

// ScrollPos returns the horizontal scroll position.
func (g *Graph) ScrollPos() int {
	return g.vp.ScrollPos
}

// startAutoScroll is called when a dragged slider leaves the viewport.
// The slider is first moved to the border. When the chart can be
// scrolled further in that direction, a timer scrolls it together with
// the slider.
func (g *Graph) startAutoScroll() {
	s := g.draggedSlider
	line := g.autoScrollLine
	w := g.vp.Width
	if !g.vp.ScrollVisible() {
		if line < 0 {
			g.moveXSlider(s, g.vp.ToVirtual(0))
		} else if line > w-1 {
			g.moveXSlider(s, g.vp.ToVirtual(w-1))
		}
		return
	}
	if line < 0 {
		g.moveXSlider(s, g.vp.ScrollPos)
	} else if line >= w-1 {
		g.moveXSlider(s, g.vp.ScrollPos+w-1)
	}
	g.computeAutoScrollOffset()
	if g.autoScrollOffset == 0 {
		return
	}
	g.autoScrollActive = true
	g.sched.After(autoScrollInterval, g.autoScrollTick)
}

// computeAutoScrollOffset derives the scroll step from how far the
// slider line is past the viewport edge. It is zero inside the viewport
// and once the chart can not be scrolled further.
func (g *Graph) computeAutoScrollOffset() {
	g.autoScrollOffset = 0
	line := g.autoScrollLine
	w := g.vp.Width
	if line >= 0 && line < w {
		return
	}
	switch {
	case line < -1 && g.vp.ScrollPos > 0:
		g.autoScrollOffset = line
	case line > w && g.vp.ScrollPos < g.vp.ScrollMax():
		g.autoScrollOffset = line - w
	}
}

func (g *Graph) autoScrollTick() {
	if g.disposed || g.draggedSlider == nil {
		g.autoScrollActive = false
		return
	}
	g.computeAutoScrollOffset()
	g.vp.setScrollPos(g.vp.ScrollPos + g.autoScrollOffset)
	g.moveXSlider(g.draggedSlider, g.draggedSlider.LinePos+g.autoScrollOffset)
	g.slidersMoved()
	g.invalidate()
	if g.autoScrollOffset == 0 {
		g.autoScrollActive = false
		return
	}
	g.sched.After(autoScrollInterval, g.autoScrollTick)
}

// AutoScrolling reports whether the auto scroll timer is running.
func (g *Graph) AutoScrolling() bool {
	return g.autoScrollActive
}

// smoothScrollTo scrolls towards pos in small steps.
func (g *Graph) smoothScrollTo(pos int) {
	g.smoothScrollTarget = clamp(pos, 0, g.vp.ScrollMax())
	if g.smoothScrollActive {
		return
	}
	g.smoothScrollActive = true
	g.smoothScrollGen++
	gen := g.smoothScrollGen
	var tick func()
	tick = func() {
		if g.disposed || !g.smoothScrollActive || gen != g.smoothScrollGen {
			return
		}
		diff := g.smoothScrollTarget - g.vp.ScrollPos
		if abs(diff) <= smoothScrollStep {
			g.vp.setScrollPos(g.smoothScrollTarget)
			g.smoothScrollActive = false
			g.invalidate()
			return
		}
		if diff > 0 {
			g.vp.setScrollPos(g.vp.ScrollPos + smoothScrollStep)
		} else {
			g.vp.setScrollPos(g.vp.ScrollPos - smoothScrollStep)
		}
		g.invalidate()
		g.sched.After(smoothScrollInterval, tick)
	}
	g.sched.After(smoothScrollInterval, tick)
}

// SmoothScrolling reports whether a smooth scroll is running.
func (g *Graph) SmoothScrolling() bool {
	return g.smoothScrollActive
}

// updateScroll applies the scroll positions requested by zoom operations
// and bar selection.
func (g *Graph) updateScroll() {
	if !g.vp.ScrollVisible() {
		g.pendingScrollToLeftSlider = false
		g.pendingScrollToSelection = false
		return
	}
	switch {
	case g.pendingScrollToLeftSlider:
		g.pendingScrollToLeftSlider = false
		left := min(g.sliderA.LinePos, g.sliderB.LinePos)
		g.vp.setScrollPos(left - int(float64(g.vp.Width)*ZoomReducingFactor/2))
	case g.pendingScrollToSelection && g.selected.ok:
		g.pendingScrollToSelection = false
		xs := g.xValues()
		idx := clamp(g.selected.value, 0, len(xs)-1)
		pos := int(g.drawingData[0].XToDev(xs[idx])) - g.vp.Width/2
		if g.pendingSmoothScroll {
			g.smoothScrollTo(pos)
		} else {
			g.vp.setScrollPos(pos)
		}
	}
}
