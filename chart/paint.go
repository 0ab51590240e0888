package chart

import (
	"image"

	"golang.org/x/image/draw"
)

// Paint composes the visible part of the chart. The returned image is
// reused by the next call and is only valid until then. It returns nil
// when the viewport is empty.
func (g *Graph) Paint() *image.RGBA {
	size := image.Pt(g.vp.Width, g.vp.Height)
	if size.X <= 0 || size.Y <= 0 || g.disposed {
		return g.frame
	}
	if g.frame == nil || g.frame.Bounds().Size() != size {
		g.frame = image.NewRGBA(image.Rectangle{Max: size})
	}
	frame := g.frame
	if !g.hasData() {
		fillAll(frame, g.cfg.Style.Background)
		return frame
	}

	graph := g.cache.level(LevelGraph)
	if !graph.valid(g.imageSize()) {
		g.scheduleGraphRender()
	}
	if graph.img == nil {
		// The first render has not completed yet.
		fillAll(frame, g.cfg.Style.Background)
		return frame
	}
	base := graph.img.Bounds().Size()

	custom := g.cache.level(LevelCustom)
	custom.regenerate(base, func(dst *image.RGBA) {
		draw.Draw(dst, dst.Bounds(), graph.img, image.Point{}, draw.Src)
		g.drawCustomLayers(dst)
	})

	if g.selectionDirty {
		g.cache.invalidate(LevelLayer)
		g.selectionDirty = false
	}
	layer := g.cache.level(LevelLayer)
	layer.regenerate(base, func(dst *image.RGBA) {
		draw.Draw(dst, dst.Bounds(), custom.img, image.Point{}, draw.Src)
		g.drawLayer(dst)
	})
	if layer.img == nil {
		fillAll(frame, g.cfg.Style.Background)
		return frame
	}

	g.updateScroll()

	// The image can be smaller than the viewport, fill the padding.
	src := layer.img.Bounds()
	at := image.Pt(g.vp.ScrollPos, 0)
	visible := image.Rectangle{Max: src.Size().Sub(at)}.Intersect(frame.Bounds())
	if visible != frame.Bounds() {
		fillAll(frame, g.cfg.Style.Background)
	}
	draw.Draw(frame, visible, layer.img, at, draw.Src)
	g.drawAxes(frame)
	return frame
}

func (g *Graph) imageSize() image.Point {
	return image.Pt(g.vp.ImageWidth(), g.vp.ImageHeight())
}

// scheduleGraphRender queues a render of the base graph on the next idle
// tick. The task is dropped when a newer request or Dispose supersedes
// it.
func (g *Graph) scheduleGraphRender() {
	if g.renderScheduled {
		return
	}
	g.renderScheduled = true
	gen := g.drawCounter
	g.sched.Post(func() {
		if g.disposed || gen != g.drawCounter {
			g.log.Debug("discarding stale graph render", "generation", gen, "current", g.drawCounter)
			return
		}
		g.renderScheduled = false
		size := g.imageSize()
		if !g.cache.level(LevelGraph).regenerate(size, g.drawGraph) {
			g.log.Debug("skipped graph render", "width", size.X, "height", size.Y)
			return
		}
		g.cache.invalidate(LevelCustom)
		g.invalidate()
	})
}

func (g *Graph) drawGraph(dst *image.RGBA) {
	fillAll(dst, g.cfg.Style.Background)
	xOff := g.vp.ImageXOffset
	for _, dd := range g.drawingData {
		g.drawGrid(dst, dd, xOff)
		switch dd.Type {
		case ChartBar:
			g.drawBarGraph(dst, dd, xOff)
		case ChartLineWithBars:
			g.drawLineWithBarGraph(dst, dd, xOff)
		default:
			g.drawLineGraph(dst, dd, xOff)
			g.drawRangeMarkers(dst, dd, xOff)
		}
		if dd.ShowXUnits {
			g.drawXUnits(dst, dd, xOff)
		}
	}
}

func (g *Graph) drawCustomLayers(dst *image.RGBA) {
	for _, l := range g.cfg.Layers {
		for _, dd := range g.drawingData {
			l.DrawLayer(dst, dd, g)
		}
	}
}

// drawLayer paints everything which changes with the interaction state.
func (g *Graph) drawLayer(dst *image.RGBA) {
	if g.markerDragging {
		g.drawXMarker(dst)
	}
	g.drawYSliders(dst)
	if g.drawingData[0].Type != ChartLine {
		g.drawBarSelection(dst)
		g.drawHoveredBar(dst)
	}
	if g.showXSliders {
		g.layoutXSliderLabels()
		g.drawXSlider(dst, g.sliderA)
		g.drawXSlider(dst, g.sliderB)
	}
}
