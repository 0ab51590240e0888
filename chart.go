package main

import (
	"image"
	"image/color"
	"time"

	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/tourchart/chart"
)

const doubleClickInterval = 400 * time.Millisecond

// ChartView shows a chart.Graph and feeds it with the input events of the
// window. The graph runs its deferred work on a task queue which is
// drained every frame.
type ChartView struct {
	graph *chart.Graph
	queue *chart.TaskQueue
	model *chart.Model

	zoom   gesture.Scroll
	pan    gesture.Scroll
	panBar widget.Scrollbar
	// wheel accumulates vertical scrolling until it is worth a zoom step.
	wheel int

	pressed  chart.Button
	pressing bool
	// lastPress is the time of the last primary press, for detecting
	// double clicks.
	lastPress    time.Duration
	hasLastPress bool
	lastPressPos image.Point
	// pointerPos is the last pointer position over the chart.
	pointerPos image.Point

	// buffers alternate so that the image shown by the previous frame is
	// never overwritten.
	buffers [2]*image.RGBA
	current int
	dirty   bool
}

func NewChartView(cfg chart.Config) *ChartView {
	c := &ChartView{queue: &chart.TaskQueue{}}
	cfg.Scheduler = c.queue
	invalidate := cfg.Handlers.Invalidate
	cfg.Handlers.Invalidate = func() {
		c.dirty = true
		if invalidate != nil {
			invalidate()
		}
	}
	c.graph = chart.New(cfg)
	return c
}

func (c *ChartView) Graph() *chart.Graph {
	return c.graph
}

// SetModel shows m and reports whether it differs from the model that
// was shown.
func (c *ChartView) SetModel(m *chart.Model) bool {
	if m == c.model {
		return false
	}
	c.model = m
	c.graph.SetModel(m)
	return true
}

// Dispose releases the graph. Tasks which are still queued do nothing.
func (c *ChartView) Dispose() {
	c.graph.Dispose()
	c.model = nil
}

func buttonOf(b pointer.Buttons) chart.Button {
	switch {
	case b.Contain(pointer.ButtonSecondary):
		return chart.ButtonSecondary
	case b.Contain(pointer.ButtonTertiary):
		return chart.ButtonTertiary
	}
	return chart.ButtonPrimary
}

func modifiersOf(m key.Modifiers) chart.Modifiers {
	var mods chart.Modifiers
	if m.Contain(key.ModCtrl) {
		mods |= chart.ModCtrl
	}
	if m.Contain(key.ModShift) {
		mods |= chart.ModShift
	}
	if m.Contain(key.ModAlt) {
		mods |= chart.ModAlt
	}
	return mods
}

func cursorOf(c chart.Cursor) pointer.Cursor {
	switch c {
	case chart.CursorResizeHorizontal:
		return pointer.CursorColResize
	case chart.CursorResizeVertical:
		return pointer.CursorRowResize
	case chart.CursorDragMarker:
		return pointer.CursorCrosshair
	case chart.CursorHand025:
		return pointer.CursorGrab
	case chart.CursorHand1:
		return pointer.CursorPointer
	case chart.CursorHand2:
		return pointer.CursorGrabbing
	case chart.CursorHand10:
		return pointer.CursorAllScroll
	}
	return pointer.CursorDefault
}

// speedBadge names the scroll speed of a hand cursor, empty for other
// cursors.
func speedBadge(c chart.Cursor) string {
	switch c {
	case chart.CursorHand025:
		return "0.25x"
	case chart.CursorHand1:
		return "1x"
	case chart.CursorHand2:
		return "2x"
	case chart.CursorHand10:
		return "10x"
	}
	return ""
}

// Update delivers the input events of the last frame to the graph.
func (c *ChartView) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Leave | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pos := e.Position.Round()
		c.pointerPos = pos
		switch e.Kind {
		case pointer.Press:
			gtx.Execute(key.FocusCmd{Tag: c})
			c.pressed, c.pressing = buttonOf(e.Buttons), true
			c.graph.PointerDown(pos.X, pos.Y, c.pressed)
			if c.pressed == chart.ButtonPrimary {
				d := pos.Sub(c.lastPressPos)
				if c.hasLastPress && e.Time-c.lastPress < doubleClickInterval && d.X*d.X+d.Y*d.Y < 25 {
					c.graph.DoubleClick(pos.X, pos.Y)
					c.hasLastPress = false
				} else {
					c.lastPress, c.lastPressPos, c.hasLastPress = e.Time, pos, true
				}
			}
		case pointer.Move, pointer.Drag:
			c.graph.PointerMove(pos.X, pos.Y)
		case pointer.Release:
			if c.pressing {
				c.pressing = false
				c.graph.PointerUp(pos.X, pos.Y, c.pressed)
			}
		case pointer.Cancel:
			if c.pressing {
				c.pressing = false
				c.graph.PointerUp(pos.X, pos.Y, c.pressed)
			}
			c.graph.PointerLeave()
		case pointer.Leave:
			c.graph.PointerLeave()
		}
	}
	for {
		ev, ok := gtx.Event(
			key.FocusFilter{Target: c},
			key.Filter{Focus: c, Name: key.NameLeftArrow, Optional: key.ModCtrl | key.ModShift | key.ModAlt},
			key.Filter{Focus: c, Name: key.NameRightArrow, Optional: key.ModCtrl | key.ModShift | key.ModAlt},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.FocusEvent:
			c.graph.Focus(ev.Focus)
		case key.Event:
			if ev.State != key.Press {
				continue
			}
			k := chart.KeyLeft
			if ev.Name == key.NameRightArrow {
				k = chart.KeyRight
			}
			c.graph.Key(k, modifiersOf(ev.Modifiers))
		}
	}

	vp := c.graph.Viewport()
	if dist := c.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 && vp.ScrollVisible() {
		c.graph.SetScrollPos(vp.ScrollPos + dist)
	}
	if dist := c.panBar.ScrollDistance(); dist != 0 && vp.ScrollVisible() {
		c.graph.SetScrollPos(vp.ScrollPos + int(dist*float32(vp.VirtualWidth)))
	}
	c.wheel += c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6))
	step := gtx.Dp(40)
	for ; c.wheel <= -step; c.wheel += step {
		c.graph.ZoomIn()
	}
	for ; c.wheel >= step; c.wheel -= step {
		c.graph.ZoomOut()
	}
}

// frameBuffer returns the next of the alternating buffers, sized like r.
func (c *ChartView) frameBuffer(r image.Rectangle) *image.RGBA {
	c.current = 1 - c.current
	buf := c.buffers[c.current]
	if buf == nil || buf.Bounds() != r {
		buf = image.NewRGBA(r)
		c.buffers[c.current] = buf
	}
	return buf
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	if c.graph.Size() != size {
		c.graph.Resize(size.X, size.Y)
	}
	c.Update(gtx)
	c.queue.Run(gtx.Now)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)
	c.pan.Add(gtx.Ops)
	c.zoom.Add(gtx.Ops)
	cursorOf(c.graph.Cursor()).Add(gtx.Ops)

	c.dirty = false
	if frame := c.graph.Paint(); frame != nil {
		buf := c.frameBuffer(frame.Bounds())
		copy(buf.Pix, frame.Pix)
		paint.NewImageOp(buf).Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
	}
	if c.graph.Focused() {
		c.layoutFocusBorder(gtx, th)
	}
	if vp := c.graph.Viewport(); vp.ScrollVisible() {
		c.layoutScrollbar(gtx, th, vp)
	}
	if text, at, ok := c.graph.Tooltip(); ok {
		c.layoutTooltip(gtx, th, text, at)
	} else if badge := speedBadge(c.graph.Cursor()); badge != "" {
		c.layoutTooltip(gtx, th, badge, c.pointerPos)
	}

	if next, ok := c.queue.Next(); ok {
		gtx.Execute(op.InvalidateCmd{At: next})
	} else if c.dirty {
		gtx.Execute(op.InvalidateCmd{})
	}
	return D{Size: size}
}

func (c *ChartView) layoutFocusBorder(gtx C, th *material.Theme) {
	col := th.ContrastBg
	col.A = 120
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  clip.Rect{Max: gtx.Constraints.Max}.Path(),
		Width: float32(gtx.Dp(2)),
	}.Op())
}

func (c *ChartView) layoutScrollbar(gtx C, th *material.Theme, vp chart.Viewport) {
	virtual := float32(vp.VirtualWidth)
	start := float32(vp.ScrollPos) / virtual
	end := float32(vp.ScrollPos+vp.Width) / virtual
	layout.S.Layout(gtx, func(gtx C) D {
		scrollbar := material.Scrollbar(th, &c.panBar)
		scrollbar.Track.MajorPadding = 0
		scrollbar.Track.MinorPadding = 0
		scrollbar.Indicator.CornerRadius = 0
		scrollbar.Indicator.Color.A = 100
		return scrollbar.Layout(gtx, layout.Horizontal, start, end)
	})
}

func (c *ChartView) layoutTooltip(gtx C, th *material.Theme, text string, at image.Point) {
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	l := material.Body2(th, text)
	dims, call := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 225, A: 240}, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(4).Layout(gtx, l.Layout)
			},
		)
	})
	gtx.Constraints = origConstraints

	offset := gtx.Dp(16)
	pos := at.Add(image.Pt(offset, offset))
	if pos.X+dims.Size.X > gtx.Constraints.Max.X {
		pos.X = max(at.X-offset-dims.Size.X, 0)
	}
	if pos.Y+dims.Size.Y > gtx.Constraints.Max.Y {
		pos.Y = max(at.Y-offset-dims.Size.Y, 0)
	}
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}
