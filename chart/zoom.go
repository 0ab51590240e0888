package chart

// ZoomIn doubles the zoom ratio, up to the maximum chart width.
func (g *Graph) ZoomIn() {
	if g.vp.Width <= 0 || g.vp.VirtualWidth > g.vp.MaxWidth {
		return
	}
	if g.vp.VirtualWidth*2 > g.vp.MaxWidth {
		g.vp.Ratio = float64(g.vp.MaxWidth) / float64(g.vp.Width)
	} else {
		g.vp.Ratio *= 2
	}
	g.vp.Parts = 1
	g.pendingScrollToSelection = true
	g.pendingSmoothScroll = false
	g.applyZoom()
}

// ZoomInWithSlider zooms to the range between the sliders. A scrollable
// chart keeps some room around the sliders and scrolls to the left one,
// otherwise only the range between the sliders is shown.
func (g *Graph) ZoomInWithSlider() {
	if !g.hasData() || g.vp.Width <= 0 {
		return
	}
	left, right := g.LeftSlider(), g.RightSlider()
	diff := float64(right.LinePos - left.LinePos)
	switch {
	case diff == 0:
		g.vp.Ratio = 1
		g.vp.OffsetRatio = 0
		g.pendingScrollToLeftSlider = false
	case g.vp.CanScroll:
		graphWidth := g.vp.VirtualWidth
		if g.vp.Ratio == 1 {
			graphWidth = g.vp.Width
		}
		g.vp.Ratio = float64(graphWidth) * (1 - ZoomReducingFactor) / diff
		g.pendingScrollToLeftSlider = true
	default:
		g.vp.Ratio = float64(g.vp.VirtualWidth) / diff
		g.vp.OffsetRatio = left.PositionRatio
	}
	g.vp.Parts = 1
	g.applyZoom()
}

// ZoomOut shows the whole chart.
func (g *Graph) ZoomOut() {
	g.vp.Ratio = 1
	g.vp.OffsetRatio = 0
	g.vp.Parts = 1
	g.vp.PartPos = 0
	g.pendingSmoothScroll = false
	g.applyZoom()
}

// ZoomWithParts splits the chart into parts of about the viewport width
// and shows the part at position. Each part is narrower than the
// viewport, so its neighbors stay partly visible. Zooming with parts
// enables scrolling.
func (g *Graph) ZoomWithParts(parts, position int, scrollSmoothly bool) {
	if parts < 1 || g.vp.Width <= 0 {
		return
	}
	position = clamp(position, 0, parts-1)
	g.vp.CanScroll = true
	g.vp.AutoZoom = false

	w := g.vp.Width
	graphWidth := min(g.vp.MaxWidth, w*parts)
	virtual := int(float64(graphWidth) * ZoomWithPartsRatio)
	g.vp.Ratio = max(1, float64(virtual)/float64(w))
	g.vp.Parts, g.vp.PartPos = parts, position
	g.applyZoom()

	partWidth := g.vp.VirtualWidth / parts
	partBorder := w - partWidth
	pos := 0
	if position > 0 {
		pos = partWidth*position - 1 - partBorder/2
	}
	if scrollSmoothly {
		g.smoothScrollTo(pos)
	} else {
		g.smoothScrollActive = false
		g.vp.setScrollPos(pos)
	}
}

// MoveToNextPart shows the next part after ZoomWithParts.
func (g *Graph) MoveToNextPart() {
	if g.vp.PartPos < g.vp.Parts-1 {
		g.ZoomWithParts(g.vp.Parts, g.vp.PartPos+1, true)
	}
}

// MoveToPrevPart shows the previous part after ZoomWithParts.
func (g *Graph) MoveToPrevPart() {
	if g.vp.PartPos > 0 {
		g.ZoomWithParts(g.vp.Parts, g.vp.PartPos-1, true)
	}
}

// applyZoom recomputes the viewport and the layout for the new ratio and
// moves the sliders to their values.
func (g *Graph) applyZoom() {
	g.vp.enforceMinMaxWidth()
	g.relayout()
	g.updateScroll()
	g.log.Debug("zoomed", "ratio", g.vp.Ratio, "virtualWidth", g.vp.VirtualWidth, "scroll", g.vp.ScrollPos)
	g.invalidate()
}
