package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceValueRoundTrip(t *testing.T) {
	m := lineModel(1001)
	dd := ComputeDrawingData(m, 400, 300, DefaultStyle())
	require.Len(t, dd, 1)
	for p := 0; p <= 400; p++ {
		v := dd[0].DevToX(float64(p))
		assert.InDelta(t, float64(p), dd[0].XToDev(v), 1)
	}
	for y := dd[0].DevYTop; y <= dd[0].DevYBottom; y++ {
		v := dd[0].DevToY(float64(y))
		assert.InDelta(t, float64(y), dd[0].YToDev(v), 1)
	}
}

func TestSliderIndexRoundTrip(t *testing.T) {
	g, _ := newTestGraph(t, Config{ShowXSliders: true}, 400, 300)
	g.SetModel(lineModel(1001))
	dd := g.DrawingData()[0]
	xs := dd.X.Values
	for p := 1; p < 400; p += 7 {
		g.MoveXSlider(SliderA, p)
		s := g.XSlider(SliderA)
		assert.Equal(t, p, s.LinePos)
		assert.InDelta(t, float64(p), dd.XToDev(xs[s.ValueIndex]), 1)
	}
}

func TestSinglePointHasZeroScale(t *testing.T) {
	m := &Model{
		X: XData{Values: []float64{3}},
		Y: []*YData{{High: [][]float64{{5}}}},
	}
	dd := ComputeDrawingData(m, 400, 300, DefaultStyle())
	require.Len(t, dd, 1)
	assert.Zero(t, dd[0].ScaleX)
	assert.Equal(t, 3.0, dd[0].DevToX(120))
	assert.Less(t, dd[0].GraphYBottom, dd[0].GraphYTop, "a constant series gets a value range")
}

func TestComputeDrawingDataSplitsHeight(t *testing.T) {
	m := lineModel(10)
	m.Title = "ride"
	m.Y = append(m.Y, &YData{High: [][]float64{{1, 2, 3}}})
	st := DefaultStyle()
	dd := ComputeDrawingData(m, 400, 300, st)
	require.Len(t, dd, 2)
	assert.Equal(t, "ride", dd[0].XTitle)
	assert.Empty(t, dd[1].XTitle)
	assert.Equal(t, dd[0].DevGraphHeight, dd[1].DevGraphHeight)
	assert.Equal(t, dd[0].DevYBottom+st.GraphGap, dd[1].DevYTop)
	assert.False(t, dd[0].ShowXUnits)
	assert.True(t, dd[1].ShowXUnits)
	assert.Greater(t, dd[0].DevYTop, st.MarginTop, "the title takes a line")
}

func TestVisibleRangeOverridesData(t *testing.T) {
	m := lineModel(10)
	m.Y[0].Visible = &ValueRange{Min: -10, Max: 30}
	dd := ComputeDrawingData(m, 400, 300, DefaultStyle())
	assert.Equal(t, -10.0, dd[0].GraphYBottom)
	assert.Equal(t, 30.0, dd[0].GraphYTop)
}

func TestComputeUnits(t *testing.T) {
	units := computeUnits(0, 1, 100, 20, formatValue)
	require.NotEmpty(t, units)
	assert.Equal(t, "0", units[0].Label)
	for _, u := range units {
		assert.NotContains(t, u.Label, "0000000", "float noise in %q", u.Label)
	}
	assert.Equal(t, 1.0, units[len(units)-1].Value)

	units = computeUnits(-3, 3, 300, 30, formatValue)
	for _, u := range units {
		assert.NotEqual(t, "-0", u.Label)
	}
	assert.Nil(t, computeUnits(1, 1, 300, 30, formatValue))
}

func TestBesideBarsAreAdjacent(t *testing.T) {
	m := barModel(BarBeside, []float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1})
	g, _ := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(m)
	dd := g.DrawingData()[0]
	require.Positive(t, dd.BarWidth)

	for i := 0; i < 5; i++ {
		r0, ok0 := dd.BarRect(0, i)
		r1, ok1 := dd.BarRect(1, i)
		require.True(t, ok0)
		require.True(t, ok1)
		assert.Equal(t, dd.BarWidth, r0.Dx())
		assert.Equal(t, dd.BarWidth, r1.Dx())
		assert.Equal(t, r0.Max.X, r1.Min.X, "bar %d", i)
		assert.True(t, r0.Intersect(r1).Empty())
	}
}

func TestStackedBarsAccumulate(t *testing.T) {
	m := barModel(BarStacked, []float64{1, 2, 3}, []float64{2, 2, 2})
	g, _ := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(m)
	dd := g.DrawingData()[0]
	assert.Equal(t, 0.0, dd.GraphYBottom)
	assert.Equal(t, 5.0, dd.GraphYTop, "stacked values are summed")

	for i := 0; i < 3; i++ {
		r0, _ := dd.BarRect(0, i)
		r1, _ := dd.BarRect(1, i)
		assert.Equal(t, r0.Min.X, r1.Min.X)
		assert.Equal(t, r0.Min.Y, r1.Max.Y, "bar %d stacks on the first series", i)
	}
}

func TestStackedBarsStayInsideGraph(t *testing.T) {
	m := barModel(BarStacked, []float64{5, 5, 5}, []float64{5, 5, 5})
	m.Y[0].Visible = &ValueRange{Min: 0, Max: 6}
	g, _ := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(m)
	dd := g.DrawingData()[0]

	for i := 0; i < 3; i++ {
		r0, ok := dd.BarRect(0, i)
		require.True(t, ok)
		r1, ok := dd.BarRect(1, i)
		require.True(t, ok, "the visible part of bar %d is kept", i)
		assert.GreaterOrEqual(t, r1.Min.Y, dd.DevYTop, "bar %d", i)
		assert.Equal(t, r0.Min.Y, r1.Max.Y, "bar %d", i)
		assert.LessOrEqual(t, r0.Max.Y, dd.DevYBottom, "bar %d", i)

		focus, ok := dd.BarFocusRect(1, i)
		require.True(t, ok)
		assert.LessOrEqual(t, dd.DevYTop-focus.Min.Y, 2, "halo of bar %d", i)
	}
}

func TestZeroHeightBarsAreSkipped(t *testing.T) {
	m := barModel(BarBeside, []float64{0, 3})
	g, _ := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(m)
	dd := g.DrawingData()[0]
	_, ok := dd.BarRect(0, 0)
	assert.False(t, ok)
	_, ok = dd.BarRect(0, 1)
	assert.True(t, ok)
}

func TestNarrowBarsKeepOnePixel(t *testing.T) {
	vals := make([]float64, 2000)
	for i := range vals {
		vals[i] = 1
	}
	m := barModel(BarBeside, vals)
	g, _ := newTestGraph(t, Config{}, 400, 300)
	g.SetModel(m)
	dd := g.DrawingData()[0]
	assert.Zero(t, dd.BarWidth)
	r, ok := dd.BarRect(0, 10)
	require.True(t, ok)
	assert.Equal(t, 1, r.Dx())
}
