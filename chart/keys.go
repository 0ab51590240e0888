package chart

type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
)

type Modifiers uint8

const (
	// ModCtrl moves ten times as far.
	ModCtrl Modifiers = 1 << iota
	// ModShift moves five times as far.
	ModShift
	// ModAlt switches the selected slider instead of moving it.
	ModAlt
)

// Key moves the selected slider, or the bar selection of a bar chart, by
// one value. It reports whether the key was used.
func (g *Graph) Key(k Key, mods Modifiers) bool {
	xs := g.xValues()
	n := len(xs)
	if n == 0 {
		return false
	}
	step := 1
	if mods&ModCtrl != 0 {
		step *= 10
	}
	if mods&ModShift != 0 {
		step *= 5
	}
	if k == KeyLeft {
		step = -step
	}

	if g.drawingData[0].Type == ChartBar {
		idx := 0
		if g.selected.ok {
			idx = wrapIndex(g.selected.value+step, n)
		}
		g.SelectBar(idx)
		if f := g.cfg.Handlers.BarSelected; f != nil {
			f(g.selected.serie, g.selected.value)
		}
		return true
	}

	if !g.showXSliders {
		return false
	}
	if g.selectedSlider == nil {
		g.selectedSlider = g.LeftSlider()
	}
	if mods&ModAlt != 0 {
		g.selectedSlider = g.otherSlider(g.selectedSlider)
		g.markDirty(LevelLayer)
		g.invalidate()
		return true
	}

	s := g.selectedSlider
	g.placeAtIndex(s, wrapIndex(s.ValueIndex+step, n))
	g.scrollIntoView(s.LinePos)
	g.cursor = CursorDefault
	g.markDirty(LevelLayer)
	g.slidersMoved()
	g.invalidate()
	return true
}

// wrapIndex moves past either end of the values to the other end.
func wrapIndex(i, n int) int {
	switch {
	case i >= n:
		return 0
	case i < 0:
		return n - 1
	}
	return i
}

// scrollIntoView scrolls the chart when the virtual position is outside
// the viewport.
func (g *Graph) scrollIntoView(virtualX int) {
	if !g.vp.ScrollVisible() {
		return
	}
	x := virtualX - g.vp.ScrollPos
	if x < 0 || x >= g.vp.Width {
		g.vp.setScrollPos(virtualX - g.vp.Width/2)
	}
}
