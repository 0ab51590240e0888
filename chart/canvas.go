package chart

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type point struct {
	X, Y float32
}

func pt(x, y float64) point {
	return point{X: float32(x), Y: float32(y)}
}

// painter owns the scratch state used to rasterize into the chart
// images.
type painter struct {
	z      vector.Rasterizer
	face   font.Face
	ascent int
	height int
	ramps  *lru.Cache
}

type rampKey struct {
	from, to color.NRGBA
	n        int
}

func newPainter(fontSize float64) *painter {
	p := &painter{}
	p.face = basicfont.Face7x13
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		if face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    fontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			p.face = face
		}
	}
	m := p.face.Metrics()
	p.ascent = m.Ascent.Ceil()
	p.height = m.Height.Ceil()
	// The cache size is fixed and valid, so New can not fail.
	p.ramps, _ = lru.New(256)
	return p
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = uint8(uint32(c.A) * uint32(a) / 0xff)
	return c
}

func lerpColor(from, to color.NRGBA, t float32) color.NRGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(math32.Round(float32(a) + (float32(b)-float32(a))*t))
	}
	return color.NRGBA{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: mix(from.A, to.A)}
}

// ramp returns n colors blending from one color to another.
func (p *painter) ramp(from, to color.NRGBA, n int) []color.NRGBA {
	key := rampKey{from: from, to: to, n: n}
	if v, ok := p.ramps.Get(key); ok {
		return v.([]color.NRGBA)
	}
	r := make([]color.NRGBA, n)
	for i := range r {
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}
		r[i] = lerpColor(from, to, t)
	}
	p.ramps.Add(key, r)
	return r
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Canon().Intersect(dst.Bounds())
	if r.Empty() || c.A == 0 {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func fillAll(dst *image.RGBA, c color.NRGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func hline(dst *image.RGBA, x0, x1, y int, c color.NRGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	fillRect(dst, image.Rect(x0, y, x1+1, y+1), c)
}

func vline(dst *image.RGBA, x, y0, y1 int, c color.NRGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	fillRect(dst, image.Rect(x, y0, x+1, y1+1), c)
}

// dottedVLine draws every other pixel between y0 and y1.
func dottedVLine(dst *image.RGBA, x, y0, y1 int, c color.NRGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y += 2 {
		fillRect(dst, image.Rect(x, y, x+1, y+1), c)
	}
}

// strokeRect outlines r so that the outline covers its right and bottom
// edges too.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.NRGBA) {
	hline(dst, r.Min.X, r.Max.X, r.Min.Y, c)
	hline(dst, r.Min.X, r.Max.X, r.Max.Y, c)
	vline(dst, r.Min.X, r.Min.Y+1, r.Max.Y-1, c)
	vline(dst, r.Max.X, r.Min.Y+1, r.Max.Y-1, c)
}

// gradientRect fills r blending from one color to the other, top to
// bottom when vertical and left to right otherwise.
func (p *painter) gradientRect(dst *image.RGBA, r image.Rectangle, from, to color.NRGBA, vertical bool) {
	r = r.Canon()
	if vertical {
		ramp := p.ramp(from, to, r.Dy())
		for i, c := range ramp {
			fillRect(dst, image.Rect(r.Min.X, r.Min.Y+i, r.Max.X, r.Min.Y+i+1), c)
		}
		return
	}
	ramp := p.ramp(from, to, r.Dx())
	for i, c := range ramp {
		fillRect(dst, image.Rect(r.Min.X+i, r.Min.Y, r.Min.X+i+1, r.Max.Y), c)
	}
}

// verticalGradient paints rows of a ramp starting at y0. Pixels outside
// clip are transparent, which confines a path fill to a band.
type verticalGradient struct {
	ramp []color.NRGBA
	y0   int
	clip image.Rectangle
}

func (g *verticalGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *verticalGradient) Bounds() image.Rectangle { return g.clip }

func (g *verticalGradient) At(x, y int) color.Color {
	if !image.Pt(x, y).In(g.clip) || len(g.ramp) == 0 {
		return color.NRGBA{}
	}
	return g.ramp[clamp(y-g.y0, 0, len(g.ramp)-1)]
}

func pathBounds(paths ...[]point) image.Rectangle {
	var r image.Rectangle
	first := true
	for _, path := range paths {
		for _, q := range path {
			b := image.Rect(int(math32.Floor(q.X)), int(math32.Floor(q.Y)), int(math32.Ceil(q.X))+1, int(math32.Ceil(q.Y))+1)
			if first {
				r, first = b, false
			} else {
				r = r.Union(b)
			}
		}
	}
	return r
}

// fillPaths rasterizes the closed polygons and composites src through
// them. Only the bounding box of the polygons is touched.
func (p *painter) fillPaths(dst *image.RGBA, src image.Image, paths ...[]point) {
	r := pathBounds(paths...).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	p.z.Reset(r.Dx(), r.Dy())
	p.z.DrawOp = draw.Over
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	for _, path := range paths {
		if len(path) < 3 {
			continue
		}
		p.z.MoveTo(path[0].X-ox, path[0].Y-oy)
		for _, q := range path[1:] {
			p.z.LineTo(q.X-ox, q.Y-oy)
		}
		p.z.ClosePath()
	}
	p.z.Draw(dst, r, src, r.Min)
}

// strokePolyline draws a one pixel wide line through the points. Every
// segment becomes a quad with the same winding, so joints do not blend
// twice.
func (p *painter) strokePolyline(dst *image.RGBA, pts []point, c color.NRGBA) {
	if len(pts) == 0 || c.A == 0 {
		return
	}
	quads := make([][]point, 0, len(pts))
	for i := range pts {
		a := pts[max(0, i-1)]
		b := pts[i]
		if i == 0 && len(pts) > 1 {
			continue
		}
		quads = append(quads, segmentQuad(a, b))
	}
	p.fillPaths(dst, image.NewUniform(c), quads...)
}

func segmentQuad(a, b point) []point {
	// Pixel centers.
	a.X, a.Y, b.X, b.Y = a.X+0.5, a.Y+0.5, b.X+0.5, b.Y+0.5
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math32.Hypot(dx, dy)
	if l < 1e-3 {
		return []point{{a.X - 0.5, a.Y + 0.5}, {a.X + 0.5, a.Y + 0.5}, {a.X + 0.5, a.Y - 0.5}, {a.X - 0.5, a.Y - 0.5}}
	}
	// Half a pixel along and across the segment.
	ux, uy := dx/l*0.5, dy/l*0.5
	nx, ny := -uy, ux
	return []point{
		{a.X - ux + nx, a.Y - uy + ny},
		{b.X + ux + nx, b.Y + uy + ny},
		{b.X + ux - nx, b.Y + uy - ny},
		{a.X - ux - nx, a.Y - uy - ny},
	}
}

func (p *painter) measure(s string) (w, h int) {
	return font.MeasureString(p.face, s).Ceil(), p.height
}

// text draws s with its top left corner at x, y.
func (p *painter) text(dst *image.RGBA, s string, x, y int, c color.NRGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: p.face,
		Dot:  fixed.P(x, y+p.ascent),
	}
	d.DrawString(s)
}
