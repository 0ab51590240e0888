package chart

import "image"

// Level identifies one of the cached images of a Graph. Each level is
// composed on top of the level below it.
type Level uint8

const (
	// LevelGraph holds the series geometry, units and grid.
	LevelGraph Level = iota
	// LevelCustom is the graph plus the caller supplied layers.
	LevelCustom
	// LevelLayer is the custom image plus sliders, markers and the
	// selection.
	LevelLayer

	numLevels
)

func (l Level) String() string {
	switch l {
	case LevelGraph:
		return "graph"
	case LevelCustom:
		return "custom"
	case LevelLayer:
		return "layer"
	default:
		return "unknown"
	}
}

type layerCache struct {
	img   *image.RGBA
	dirty bool
	// renders counts regenerations.
	renders int
}

func (c *layerCache) valid(size image.Point) bool {
	return c.img != nil && !c.dirty && c.img.Bounds().Size() == size
}

func (c *layerCache) invalidate() {
	c.dirty = true
}

// ensure returns a buffer of the given size, reusing the previous one
// when the size did not change.
func (c *layerCache) ensure(size image.Point) *image.RGBA {
	if c.img == nil || c.img.Bounds().Size() != size {
		c.img = image.NewRGBA(image.Rectangle{Max: size})
	}
	return c.img
}

// regenerate repaints the level when it is not valid for size.
func (c *layerCache) regenerate(size image.Point, paint func(dst *image.RGBA)) bool {
	if c.valid(size) {
		return false
	}
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	dst := c.ensure(size)
	paint(dst)
	c.dirty = false
	c.renders++
	return true
}

type imageCache struct {
	levels [numLevels]layerCache
}

func (c *imageCache) level(l Level) *layerCache {
	return &c.levels[l]
}

// invalidate dirties l and every level above it.
func (c *imageCache) invalidate(l Level) {
	for i := l; i < numLevels; i++ {
		c.levels[i].invalidate()
	}
}
