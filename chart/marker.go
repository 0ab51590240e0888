package chart

// markerHit reports whether the virtual position lies inside the X
// marker.
func (g *Graph) markerHit(virtualX int) bool {
	xs := g.xValues()
	if len(xs) == 0 || g.drawingData[0].X.Marker == nil {
		return false
	}
	dd := g.drawingData[0]
	m := dd.X.Marker
	start := int(dd.XToDev(xs[clamp(m.Start, 0, len(xs)-1)]))
	end := int(dd.XToDev(xs[clamp(m.End, 0, len(xs)-1)]))
	return virtualX >= start && virtualX <= end
}

func (g *Graph) startMarkerDrag(virtualX int) {
	m := g.drawingData[0].X.Marker
	g.markerDragging = true
	g.markerClickX = virtualX
	g.markerStart, g.markerEnd = m.Start, m.End
	g.markDirty(LevelLayer)
}

// dragMarker moves the marker by the distance between the click and
// virtualX. The marker keeps the value width of the dragger when it is
// pushed against either end of the values.
func (g *Graph) dragMarker(virtualX int) {
	xs := g.xValues()
	n := len(xs)
	if n == 0 {
		return
	}
	dd := g.drawingData[0]
	m := dd.X.Marker
	width := g.cfg.MarkerDragger.MarkerValueWidth()
	diff := dd.DevToX(float64(virtualX)) - dd.DevToX(float64(g.markerClickX))

	start := nearestIndex(xs, xs[clamp(m.Start, 0, n-1)]+diff)
	end := nearestIndex(xs, xs[clamp(m.End, 0, n-1)]+diff)
	moved := xs[end] - xs[start]
	switch {
	case start == 0 && moved < width:
		end = start
		for end < n-1 && xs[end]-xs[0] < width {
			end++
		}
	case end == n-1 && moved < width:
		start = end
		for start > 0 && xs[n-1]-xs[start] < width {
			start--
		}
	case moved > width:
		// Shrink to the first index which reaches the width.
		e := start
		for e < end && xs[e]-xs[start] < width {
			e++
		}
		end = e
	}
	g.markerStart, g.markerEnd = start, min(end, n-1)
	g.markDirty(LevelLayer)
}

func (g *Graph) endMarkerDrag() {
	g.markerDragging = false
	g.markDirty(LevelLayer)
	if g.cfg.MarkerDragger != nil {
		g.cfg.MarkerDragger.MarkerMoved(g.markerStart, g.markerEnd)
	}
}

// MarkerDrag returns the marker range while it is dragged.
func (g *Graph) MarkerDrag() (start, end int, ok bool) {
	return g.markerStart, g.markerEnd, g.markerDragging
}
