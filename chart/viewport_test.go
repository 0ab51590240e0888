package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualWidthIsClamped(t *testing.T) {
	for _, width := range []int{0, 1, 4, 5, 100, 400, 1920, 5000} {
		for _, ratio := range []float64{1, 1.5, 2, 3.7, 10, 100} {
			got := VirtualWidth(width, ratio, DefaultMinWidth, DefaultMaxWidth)
			want := int(float64(width)*ratio + 0.5)
			want = max(DefaultMinWidth, min(DefaultMaxWidth, want))
			assert.Equal(t, want, got, "width %d ratio %v", width, ratio)
			assert.GreaterOrEqual(t, got, DefaultMinWidth)
			assert.LessOrEqual(t, got, DefaultMaxWidth)
		}
	}
}

func TestViewportOffsetWithoutScrolling(t *testing.T) {
	v := newViewport(Config{})
	v.Width, v.Height = 400, 300
	v.Ratio = 2
	v.OffsetRatio = 0.25
	v.update()
	assert.Equal(t, 800, v.VirtualWidth)
	assert.Equal(t, 200, v.ImageXOffset)
	assert.Equal(t, 0, v.ScrollMax())
	assert.Equal(t, 400, v.ImageWidth())
	assert.Equal(t, 250, v.ToVirtual(50))

	v.OffsetRatio = 0.9
	v.update()
	assert.Equal(t, 400, v.ImageXOffset, "offset must keep the slice inside the virtual width")
}

func TestViewportScrolling(t *testing.T) {
	v := newViewport(Config{CanScrollZoomedChart: true, AutoZoomToSlider: true})
	assert.False(t, v.AutoZoom, "scrolling disables auto zoom")
	v.Width, v.Height = 400, 300
	v.Ratio = 3
	v.update()
	assert.True(t, v.ScrollVisible())
	assert.Equal(t, 800, v.ScrollMax())
	assert.Equal(t, 1200, v.ImageWidth())

	assert.True(t, v.setScrollPos(5000))
	assert.Equal(t, 800, v.ScrollPos)
	assert.False(t, v.setScrollPos(900))
	assert.Equal(t, 900, v.ToVirtual(100))
}

func TestViewportRatioNeverBelowOne(t *testing.T) {
	v := newViewport(Config{})
	v.Width = 400
	v.Ratio = 0.3
	v.update()
	assert.Equal(t, 1.0, v.Ratio)
	assert.Equal(t, 400, v.VirtualWidth)
}

func TestViewportEnforcesMaxWidth(t *testing.T) {
	v := newViewport(Config{CanScrollZoomedChart: true, MaxWidth: 1000})
	v.Width = 400
	v.Ratio = 8
	v.enforceMinMaxWidth()
	assert.Equal(t, 2.5, v.Ratio)
	assert.Equal(t, 1000, v.VirtualWidth)
}

func TestUnzoomedChartHasNoScrollbar(t *testing.T) {
	g, _ := newTestGraph(t, Config{CanScrollZoomedChart: true, ShowXSliders: true}, 400, 300)
	g.SetModel(lineModel(401))

	vp := g.Viewport()
	assert.Equal(t, 400, vp.VirtualWidth)
	assert.False(t, vp.ScrollVisible())

	g.MoveXSlider(SliderA, -50)
	g.MoveXSlider(SliderB, 1000)
	assert.Equal(t, 0, g.XSlider(SliderA).LinePos)
	assert.Equal(t, 400, g.XSlider(SliderB).LinePos)
}

func TestViewportCopyAnswersQueries(t *testing.T) {
	g, _ := newTestGraph(t, Config{CanScrollZoomedChart: true}, 400, 300)
	g.SetModel(lineModel(50))
	assert.False(t, g.Viewport().ScrollVisible())
	assert.Equal(t, 0, g.Viewport().ScrollMax())

	g.ZoomIn()
	assert.True(t, g.Viewport().ScrollVisible())
	assert.Equal(t, g.Viewport().VirtualWidth-400, g.Viewport().ScrollMax())
	assert.Equal(t, g.Viewport().VirtualWidth, g.Viewport().ImageWidth())
}
