package chart

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsRenderIndependently(t *testing.T) {
	g, q := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(lineModel(50))
	settle(g, q)
	assert.Equal(t, 1, g.Renders(LevelGraph))
	assert.Equal(t, 1, g.Renders(LevelCustom))
	assert.Equal(t, 1, g.Renders(LevelLayer))

	g.RequestRedraw(LevelLayer)
	settle(g, q)
	assert.Equal(t, 1, g.Renders(LevelGraph))
	assert.Equal(t, 1, g.Renders(LevelCustom))
	assert.Equal(t, 2, g.Renders(LevelLayer))

	g.RequestRedraw(LevelCustom)
	settle(g, q)
	assert.Equal(t, 1, g.Renders(LevelGraph))
	assert.Equal(t, 2, g.Renders(LevelCustom))
	assert.Equal(t, 3, g.Renders(LevelLayer))

	// Painting a clean chart regenerates nothing.
	settle(g, q)
	assert.Equal(t, 1, g.Renders(LevelGraph))
	assert.Equal(t, 2, g.Renders(LevelCustom))
	assert.Equal(t, 3, g.Renders(LevelLayer))
}

func TestGraphRenderIsDeferred(t *testing.T) {
	g, q := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(lineModel(50))

	frame := g.Paint()
	require.NotNil(t, frame)
	assert.Equal(t, 0, g.Renders(LevelGraph))
	assert.Equal(t, 1, q.Len())

	// Painting again does not queue a second render.
	g.Paint()
	assert.Equal(t, 1, q.Len())

	q.Run(q.now)
	assert.Equal(t, 1, g.Renders(LevelGraph))
}

func TestStaleRenderIsDiscarded(t *testing.T) {
	invalidated := 0
	g, q := newTestGraph(t, Config{Handlers: Handlers{Invalidate: func() { invalidated++ }}}, 400, 300)
	g.SetModel(lineModel(50))
	g.Paint()
	g.SetModel(lineModel(60))
	g.Paint()
	assert.Equal(t, 2, q.Len())

	q.Run(q.now)
	assert.Equal(t, 1, g.Renders(LevelGraph), "only the newest request renders")
	assert.Equal(t, 1, invalidated)
}

func TestDisposeDropsPendingRender(t *testing.T) {
	invalidated := 0
	g, q := newTestGraph(t, Config{Handlers: Handlers{Invalidate: func() { invalidated++ }}}, 400, 300)
	g.SetModel(lineModel(50))
	g.Paint()
	g.Dispose()
	q.Run(q.now)
	assert.True(t, g.Disposed())
	assert.Equal(t, 0, g.Renders(LevelGraph))
	assert.Zero(t, invalidated)
	assert.Nil(t, g.Paint())
}

func TestEmptyChartPaintsBackground(t *testing.T) {
	g, q := newTestGraph(t, Config{}, 120, 80)
	frame := g.Paint()
	require.NotNil(t, frame)
	assert.Equal(t, image.Rect(0, 0, 120, 80), frame.Bounds())
	bg := g.cfg.Style.Background
	for _, p := range []image.Point{{0, 0}, {60, 40}, {119, 79}} {
		assert.Equal(t, color.RGBAModel.Convert(bg), frame.At(p.X, p.Y))
	}
	assert.Zero(t, q.Len(), "nothing to render")

	g.SetModel(&Model{Y: []*YData{{}}})
	g.Paint()
	assert.Zero(t, q.Len(), "no x values")
}

func TestZeroSizeIsSkipped(t *testing.T) {
	var c layerCache
	c.invalidate()
	painted := false
	assert.False(t, c.regenerate(image.Pt(0, 20), func(*image.RGBA) { painted = true }))
	assert.False(t, painted)
	assert.True(t, c.regenerate(image.Pt(10, 20), func(*image.RGBA) { painted = true }))
	assert.True(t, painted)
	assert.False(t, c.regenerate(image.Pt(10, 20), func(*image.RGBA) {}), "a clean level is kept")
	assert.True(t, c.regenerate(image.Pt(11, 20), func(*image.RGBA) {}), "a resized level is repainted")
	assert.Equal(t, 2, c.renders)
}

func TestInvalidateDirtiesUpperLevels(t *testing.T) {
	var c imageCache
	size := image.Pt(4, 4)
	for l := LevelGraph; l < numLevels; l++ {
		c.level(l).regenerate(size, func(*image.RGBA) {})
	}
	c.invalidate(LevelCustom)
	assert.True(t, c.level(LevelGraph).valid(size))
	assert.False(t, c.level(LevelCustom).valid(size))
	assert.False(t, c.level(LevelLayer).valid(size))
}

func TestCustomLayersAreDrawn(t *testing.T) {
	calls := 0
	layer := LayerFunc(func(dst *image.RGBA, dd *DrawingData, g *Graph) {
		calls++
		fillRect(dst, image.Rect(200, dd.DevYTop, 210, dd.DevYTop+10), color.NRGBA{R: 0xff, A: 0xff})
	})
	m := lineModel(50)
	m.Y = append(m.Y, &YData{High: [][]float64{{1, 2}}})
	g, q := newTestGraph(t, Config{Layers: []Layer{layer}}, 400, 300)
	g.SetModel(m)
	settle(g, q)
	assert.Equal(t, 2, calls, "once per graph")

	frame := g.Paint()
	dd := g.DrawingData()[1]
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, frame.At(205, dd.DevYTop+5))

	g.SetLayers(nil)
	settle(g, q)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, g.Renders(LevelGraph))
}

func TestResizeRelayouts(t *testing.T) {
	g, q := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(lineModel(50))
	settle(g, q)

	g.Resize(400, 300)
	settle(g, q)
	assert.Equal(t, 1, g.Renders(LevelGraph), "same size")

	g.Resize(600, 200)
	assert.Equal(t, 600, g.DrawingData()[0].DevGraphWidth)
	settle(g, q)
	assert.Equal(t, 2, g.Renders(LevelGraph))
	assert.Equal(t, image.Pt(600, 200), g.Paint().Bounds().Size())
}

func TestFillToZeroPaintsBothSides(t *testing.T) {
	values := []float64{-5, -2, 0, 3, 7, 1, -1, 4, 6, 2}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	render := func(fill FillMethod) *image.RGBA {
		g, q := newTestGraph(t, Config{}, 400, 300)
		g.SetModel(&Model{
			X: XData{Values: xs},
			Y: []*YData{{High: [][]float64{values}, Fill: fill}},
		})
		settle(g, q)
		frame := g.Paint()
		out := image.NewRGBA(frame.Bounds())
		copy(out.Pix, frame.Pix)
		return out
	}
	plain, filled := render(FillNone), render(FillZero)

	// Between the peak at index 4 and the zero line.
	assert.NotEqual(t, plain.At(178, 150), filled.At(178, 150), "above zero")
	// Between the zero line and the negative value at index 1.
	assert.NotEqual(t, plain.At(44, 170), filled.At(44, 170), "below zero")
	// Above the peak nothing is filled.
	assert.Equal(t, plain.At(178, 15), filled.At(178, 15))
}

func TestFillToZeroPassesMeet(t *testing.T) {
	values := []float64{-5, -2, 0, 3, 7, 1, -1, 4, 6, 2}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	m := &Model{X: XData{Values: xs}, Y: []*YData{{High: [][]float64{values}, Fill: FillZero}}}
	dd := ComputeDrawingData(m, 400, 300, DefaultStyle())[0]
	pts := linePoints(dd, values, 0, len(values), 0)

	fills := lineFills(dd, pts, defaultPalette, alphaGraph, 400)
	require.Len(t, fills, 2)
	above, below := fills[0], fills[1]
	assert.Equal(t, above.clip.Max.Y, below.clip.Min.Y, "no gap at the zero line")
	assert.Equal(t, dd.DevYTop, above.clip.Min.Y)
	assert.Equal(t, dd.DevYBottom+1, below.clip.Max.Y)
	assert.Equal(t, 400, above.clip.Dx())
	assert.Equal(t, 400, below.clip.Dx())
	assert.Equal(t, above.from, below.to, "gradients are swapped")
	assert.Equal(t, above.to, below.from)

	dd.Y.Fill = FillBottom
	fills = lineFills(dd, pts, defaultPalette, alphaGraph, 400)
	require.Len(t, fills, 1)
	assert.Equal(t, dd.DevYTop, fills[0].clip.Min.Y)

	dd.Y.Fill = FillNone
	assert.Empty(t, lineFills(dd, pts, defaultPalette, alphaGraph, 400))
}

func TestZeroLine(t *testing.T) {
	for _, tc := range []struct {
		lo, hi, want float64
	}{
		{lo: -2, hi: 5, want: 0},
		{lo: 3, hi: 5, want: 3},
		{lo: -9, hi: -4, want: -4},
	} {
		dd := &DrawingData{GraphYBottom: tc.lo, GraphYTop: tc.hi}
		assert.Equal(t, tc.want, zeroLine(dd), "range [%v, %v]", tc.lo, tc.hi)
	}
}

func TestSynchDrawsAllSegments(t *testing.T) {
	render := func(synch *IndexRange) *image.RGBA {
		m := lineModel(100)
		m.X.Synch = synch
		g, q := newTestGraph(t, Config{}, 400, 300)
		g.SetModel(m)
		settle(g, q)
		frame := g.Paint()
		out := image.NewRGBA(frame.Bounds())
		copy(out.Pix, frame.Pix)
		return out
	}
	without, with := render(nil), render(&IndexRange{Start: 40, End: 60})
	assert.NotEqual(t, without.Pix, with.Pix, "the synch range changes the alpha outside the range")
}
