package chart

import (
	"image"
	"io"

	"github.com/charmbracelet/log"
)

// Layer paints a caller supplied overlay on top of the graph image.
type Layer interface {
	DrawLayer(dst *image.RGBA, dd *DrawingData, g *Graph)
}

// LayerFunc adapts a function to the Layer interface.
type LayerFunc func(dst *image.RGBA, dd *DrawingData, g *Graph)

func (f LayerFunc) DrawLayer(dst *image.RGBA, dd *DrawingData, g *Graph) {
	f(dst, dd, g)
}

// MarkerDragger is informed when the user drags the X marker.
type MarkerDragger interface {
	// MarkerValueWidth is the x value width of the marker, which is kept
	// while dragging.
	MarkerValueWidth() float64
	// MarkerMoved is called when a drag ends.
	MarkerMoved(startIndex, endIndex int)
}

// Handlers are the events a Graph sends to its owner. Every field is
// optional.
type Handlers struct {
	BarSelected      func(serieIndex, valueIndex int)
	BarDoubleClicked func(serieIndex, valueIndex int)
	DoubleClicked    func()
	FocusGained      func()
	// DescribeBar returns the tooltip for a bar. Returning false hides
	// the tooltip.
	DescribeBar func(serieIndex, valueIndex int) (string, bool)
	// SlidersMoved is called when a slider drag or a key press moved a
	// slider.
	SlidersMoved func(left, right *XSlider)
	// Invalidate asks the owner to paint again.
	Invalidate func()
}

type Config struct {
	// CanScrollZoomedChart shows a zoomed chart in a scrollable virtual
	// image. Otherwise only a slice of the zoomed chart is shown.
	CanScrollZoomedChart bool
	// AutoZoomToSlider zooms to the sliders when a slider is released.
	// It is ignored when CanScrollZoomedChart is set.
	AutoZoomToSlider bool
	ShowXSliders     bool

	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int

	Style         Style
	Scheduler     Scheduler
	Logger        *log.Logger
	Handlers      Handlers
	Layers        []Layer
	MarkerDragger MarkerDragger
}

type barRef struct {
	serie, value int
	ok           bool
}

// Graph renders a chart into cached images and handles the interaction
// with it. A Graph is not safe for concurrent use: every method, and every
// task it schedules, must run on the goroutine which owns it.
type Graph struct {
	cfg   Config
	log   *log.Logger
	sched Scheduler
	p     *painter

	model       *Model
	drawingData []*DrawingData
	vp          Viewport

	cache          imageCache
	frame          *image.RGBA
	selectionDirty bool
	// drawCounter is the generation of the newest graph render request.
	drawCounter     uint64
	renderScheduled bool
	disposed        bool

	sliderA, sliderB  *XSlider
	onTop, onBottom   *XSlider
	selectedSlider    *XSlider
	hoveredSlider     *XSlider
	draggedSlider     *XSlider
	sliderClickOffset int
	showXSliders      bool

	ySliders       []*YSlider
	hoveredYSlider *YSlider
	draggedYSlider *YSlider
	ySliderX       int

	scrolling      bool
	scrollStartX   int
	scrollStartPos int
	scrollAccel    float64

	autoScrollActive   bool
	autoScrollLine     int
	autoScrollOffset   int
	smoothScrollActive bool
	smoothScrollTarget int
	smoothScrollGen    uint64

	pendingScrollToLeftSlider bool
	pendingScrollToSelection  bool
	pendingSmoothScroll       bool

	selected barRef
	hovered  barRef
	tooltip  string
	focused  bool

	markerDragging bool
	markerClickX   int
	markerStart    int
	markerEnd      int

	contextLeft, contextRight *XSlider

	cursor  Cursor
	pointer image.Point
}

// New creates a Graph. Work which is deferred by the Graph runs on
// cfg.Scheduler, a private TaskQueue is used if it is nil.
func New(cfg Config) *Graph {
	if cfg.Style == (Style{}) {
		cfg.Style = DefaultStyle()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = &TaskQueue{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Graph{
		cfg:          cfg,
		log:          logger,
		sched:        cfg.Scheduler,
		p:            newPainter(cfg.Style.FontSize),
		vp:           newViewport(cfg),
		showXSliders: cfg.ShowXSliders,
	}
	g.sliderA = &XSlider{ID: SliderA}
	g.sliderB = &XSlider{ID: SliderB, ValueIndex: -1}
	g.onTop, g.onBottom = g.sliderB, g.sliderA
	g.selectedSlider = g.sliderA
	g.markDirty(LevelGraph)
	return g
}

// markDirty invalidates l and the levels above it. Dirtying the graph
// level supersedes a render which is still queued.
func (g *Graph) markDirty(l Level) {
	g.cache.invalidate(l)
	if l == LevelGraph {
		g.drawCounter++
		g.renderScheduled = false
	}
}

// Scheduler returns the scheduler which runs the deferred work.
func (g *Graph) Scheduler() Scheduler {
	return g.sched
}

// Dispose releases the images. Pending deferred work becomes a no-op.
func (g *Graph) Dispose() {
	g.disposed = true
	g.draggedSlider = nil
	g.autoScrollActive = false
	g.smoothScrollActive = false
	for i := range g.cache.levels {
		g.cache.levels[i].img = nil
	}
	g.frame = nil
	g.log.Debug("chart disposed", "generation", g.drawCounter)
}

// Disposed reports whether Dispose was called.
func (g *Graph) Disposed() bool {
	return g.disposed
}

// SetModel replaces the chart data and lays it out for the current
// viewport.
func (g *Graph) SetModel(m *Model) {
	g.model = m
	g.relayout()
}

// Model returns the current chart data, which may be nil.
func (g *Graph) Model() *Model {
	return g.model
}

// SetDrawingData replaces the current frame with precomputed drawing
// data.
func (g *Graph) SetDrawingData(dd []*DrawingData) {
	g.model = modelFromDrawingData(dd)
	g.applyDrawingData(dd)
}

// DrawingData returns the current frame.
func (g *Graph) DrawingData() []*DrawingData {
	return g.drawingData
}

func modelFromDrawingData(dd []*DrawingData) *Model {
	if len(dd) == 0 {
		return nil
	}
	m := &Model{
		Type:  dd[0].Type,
		Title: dd[0].XTitle,
		X:     *dd[0].X,
	}
	for _, d := range dd {
		m.Y = append(m.Y, d.Y)
	}
	return m
}

// relayout recomputes the drawing data from the model for the current
// viewport.
func (g *Graph) relayout() {
	if g.model == nil {
		g.applyDrawingData(nil)
		return
	}
	dd := ComputeDrawingData(g.model, g.vp.VirtualWidth, g.vp.ImageHeight(), g.cfg.Style)
	g.applyDrawingData(dd)
}

func (g *Graph) applyDrawingData(dd []*DrawingData) {
	g.drawingData = dd
	for _, d := range dd {
		if d.Type != ChartLine {
			layoutBars(d, d.Type == ChartLineWithBars)
		}
	}
	g.markDirty(LevelGraph)
	g.selectionDirty = true
	g.hovered = barRef{}
	g.rebuildYSliders()
	g.syncXSliders()
}

// Resize sets the visible size of the chart.
func (g *Graph) Resize(width, height int) {
	if width == g.vp.Width && height == g.vp.Height {
		return
	}
	g.vp.Width, g.vp.Height = width, height
	if g.vp.Parts > 1 {
		g.ZoomWithParts(g.vp.Parts, g.vp.PartPos, false)
		return
	}
	g.vp.enforceMinMaxWidth()
	g.relayout()
}

// Size returns the visible size.
func (g *Graph) Size() image.Point {
	return image.Pt(g.vp.Width, g.vp.Height)
}

// Viewport returns a copy of the current viewport state.
func (g *Graph) Viewport() Viewport {
	return g.vp
}

// SetCanScrollZoomedChart switches between a scrollable zoomed chart and
// a clipped one. Enabling it disables auto zoom.
func (g *Graph) SetCanScrollZoomedChart(canScroll bool) {
	g.vp.CanScroll = canScroll
	if canScroll {
		g.vp.AutoZoom = false
	}
	g.vp.update()
	g.relayout()
}

// SetAutoZoomToSlider enables zooming to the sliders when a slider is
// released. Enabling it disables scrolling.
func (g *Graph) SetAutoZoomToSlider(autoZoom bool) {
	g.vp.AutoZoom = autoZoom
	if autoZoom && g.vp.CanScroll {
		g.vp.CanScroll = false
		g.vp.update()
		g.relayout()
	}
}

// SetShowXSliders shows or hides the X sliders.
func (g *Graph) SetShowXSliders(show bool) {
	g.showXSliders = show
	g.markDirty(LevelLayer)
	g.invalidate()
}

// SetLayers replaces the custom layers.
func (g *Graph) SetLayers(layers []Layer) {
	g.cfg.Layers = layers
	g.RequestRedraw(LevelCustom)
}

// SetMarkerDragger sets the listener for X marker drags.
func (g *Graph) SetMarkerDragger(m MarkerDragger) {
	g.cfg.MarkerDragger = m
}

// SetHandlers replaces the event handlers.
func (g *Graph) SetHandlers(h Handlers) {
	g.cfg.Handlers = h
}

// RequestRedraw dirties the level and the levels above it and asks the
// owner to paint.
func (g *Graph) RequestRedraw(l Level) {
	g.markDirty(l)
	g.invalidate()
}

// Renders returns how often the level was regenerated.
func (g *Graph) Renders(l Level) int {
	return g.cache.level(l).renders
}

func (g *Graph) invalidate() {
	if g.disposed {
		return
	}
	if f := g.cfg.Handlers.Invalidate; f != nil {
		f()
	}
}

func (g *Graph) hasData() bool {
	return len(g.drawingData) > 0 && len(g.drawingData[0].X.Values) > 0
}

func (g *Graph) xValues() []float64 {
	if len(g.drawingData) == 0 {
		return nil
	}
	return g.drawingData[0].X.Values
}
