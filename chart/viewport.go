package chart

import "math"

const (
	// DefaultMinWidth and DefaultMaxWidth bound the virtual image width.
	DefaultMinWidth  = 5
	DefaultMaxWidth  = 0x7fff
	DefaultMinHeight = 5
	DefaultMaxHeight = 4000

	// ZoomReducingFactor leaves some room around the sliders when zooming
	// to them.
	ZoomReducingFactor = 0.1
	// ZoomWithPartsRatio shrinks each part so its neighbors stay visible.
	ZoomWithPartsRatio = 0.8

	BarMarkerWidth = 16
)

// VirtualWidth returns the width of a chart which is zoomed by ratio,
// bounded by the minimum and maximum chart width.
func VirtualWidth(visible int, ratio float64, minWidth, maxWidth int) int {
	return max(minWidth, min(maxWidth, int(math.Round(float64(visible)*ratio))))
}

// Viewport maps the visible part of a chart onto its virtual, zoomed
// image.
type Viewport struct {
	// Width and Height are the visible size in pixels.
	Width, Height int
	VirtualWidth  int
	// Ratio is the zoom ratio, VirtualWidth divided by Width. It is never
	// below 1.
	Ratio float64
	// OffsetRatio selects the visible slice of the virtual width when the
	// chart can not be scrolled.
	OffsetRatio  float64
	ImageXOffset int
	// ScrollPos is the horizontal scroll position when scrolling is
	// enabled.
	ScrollPos int

	CanScroll bool
	AutoZoom  bool

	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int

	// Parts and PartPos describe the zoom-with-parts state.
	Parts, PartPos int
}

func newViewport(cfg Config) Viewport {
	v := Viewport{
		Ratio:     1,
		CanScroll: cfg.CanScrollZoomedChart,
		AutoZoom:  cfg.AutoZoomToSlider && !cfg.CanScrollZoomedChart,
		MinWidth:  cfg.MinWidth,
		MaxWidth:  cfg.MaxWidth,
		MinHeight: cfg.MinHeight,
		MaxHeight: cfg.MaxHeight,
		Parts:     1,
	}
	if v.MinWidth <= 0 {
		v.MinWidth = DefaultMinWidth
	}
	if v.MaxWidth <= 0 {
		v.MaxWidth = DefaultMaxWidth
	}
	if v.MinHeight <= 0 {
		v.MinHeight = DefaultMinHeight
	}
	if v.MaxHeight <= 0 {
		v.MaxHeight = DefaultMaxHeight
	}
	return v
}

// update recomputes the virtual width and the image offset after the
// size, the ratio or the policy changed.
func (v *Viewport) update() {
	v.Ratio = max(1, v.Ratio)
	v.VirtualWidth = VirtualWidth(v.Width, v.Ratio, v.MinWidth, v.MaxWidth)
	if v.CanScroll {
		v.ImageXOffset = 0
	} else {
		v.ScrollPos = 0
		if v.Ratio == 1 {
			v.ImageXOffset = 0
		} else {
			v.ImageXOffset = clamp(int(v.OffsetRatio*float64(v.VirtualWidth)), 0, max(0, v.VirtualWidth-v.Width))
		}
	}
	v.ScrollPos = clamp(v.ScrollPos, 0, v.ScrollMax())
}

// enforceMinMaxWidth reduces the zoom ratio when the virtual width would
// leave the allowed range.
func (v *Viewport) enforceMinMaxWidth() {
	if v.Width <= 0 {
		return
	}
	if float64(v.Width)*v.Ratio > float64(v.MaxWidth) {
		v.Ratio = max(1, float64(v.MaxWidth)/float64(v.Width))
	}
	v.update()
}

// ScrollMax is the largest scroll position.
func (v Viewport) ScrollMax() int {
	if !v.CanScroll {
		return 0
	}
	return max(0, v.VirtualWidth-v.Width)
}

// ScrollVisible reports whether a horizontal scrollbar is needed.
func (v Viewport) ScrollVisible() bool {
	return v.CanScroll && v.VirtualWidth > v.Width
}

// ImageWidth is the width of the cached images.
func (v Viewport) ImageWidth() int {
	if v.CanScroll {
		return v.VirtualWidth
	}
	return max(v.MinWidth, v.Width)
}

// ImageHeight is the height of the cached images.
func (v Viewport) ImageHeight() int {
	return max(v.MinHeight, min(v.Height, v.MaxHeight))
}

// ToVirtual converts a viewport X position to a virtual position.
func (v Viewport) ToVirtual(devX int) int {
	return devX + v.ScrollPos + v.ImageXOffset
}

// ToImage converts a virtual X position to a position in the cached
// images.
func (v Viewport) ToImage(virtualX int) int {
	return virtualX - v.ImageXOffset
}

func (v *Viewport) setScrollPos(pos int) bool {
	pos = clamp(pos, 0, v.ScrollMax())
	if pos == v.ScrollPos {
		return false
	}
	v.ScrollPos = pos
	return true
}
