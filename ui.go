package main

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/tourchart/backend"
	"git.sr.ht/~whereswaldon/tourchart/chart"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

func mustIcon(data []byte) *widget.Icon {
	icon, _ := widget.NewIcon(data)
	return icon
}

var (
	openIcon        = mustIcon(icons.FileFolderOpen)
	zoomInIcon      = mustIcon(icons.ActionZoomIn)
	zoomOutIcon     = mustIcon(icons.ActionZoomOut)
	zoomSlidersIcon = mustIcon(icons.ImageCenterFocusStrong)
	partsIcon       = mustIcon(icons.ActionViewColumn)
	prevPartIcon    = mustIcon(icons.NavigationChevronLeft)
	nextPartIcon    = mustIcon(icons.NavigationChevronRight)
	synchIcon       = mustIcon(icons.ActionCompareArrows)
)

// chartParts is the number of parts the chart is split into by the parts
// button.
const chartParts = 4

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws     backend.WindowState
	expl   *explorer.Explorer
	logger *log.Logger
	th     *material.Theme

	sessionStream *stream.Stream[backend.Session]
	session       backend.Session

	chart     *ChartView
	chartType widget.Enum
	canScroll widget.Bool
	autoZoom  widget.Bool
	legend    component.GridState
	// enabled holds the legend check boxes by series name.
	enabled map[string]*widget.Bool

	openBtn        widget.Clickable
	zoomInBtn      widget.Clickable
	zoomOutBtn     widget.Clickable
	zoomSlidersBtn widget.Clickable
	partsBtn       widget.Clickable
	prevPartBtn    widget.Clickable
	nextPartBtn    widget.Clickable
	synchBtn       widget.Clickable

	contextArea      component.ContextArea
	menu             component.MenuState
	zoomSlidersItem  widget.Clickable
	resetSlidersItem widget.Clickable
	resetRangeItem   widget.Clickable
	switchXItem      widget.Clickable
	markRangeItem    widget.Clickable
	// xSwitched is set while the alternative x axis is shown.
	xSwitched bool

	// status reports the last chart event.
	status string
	err    string
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, logger *log.Logger, cfg chart.Config, invalidate func()) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		logger:        logger,
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Sessions),
		enabled:       map[string]*widget.Bool{},
	}
	opts := ws.Bundle.Datasource.Options()
	ui.chartType.Value = opts.Type.String()
	ui.canScroll.Value = cfg.CanScrollZoomedChart
	ui.autoZoom.Value = cfg.AutoZoomToSlider

	cfg.Logger = logger
	cfg.Handlers = chart.Handlers{
		BarSelected: func(serie, value int) {
			ui.status = "Selected " + ui.describeBar(serie, value)
		},
		BarDoubleClicked: func(serie, value int) {
			ui.status = "Double clicked " + ui.describeBar(serie, value)
		},
		DoubleClicked: ui.markSliderRange,
		FocusGained: func() {
			ui.status = "Arrow keys move the slider, alt switches it"
		},
		DescribeBar: func(serie, value int) (string, bool) {
			if v, ok := ui.barValue(serie, value); !ok || v == 0 {
				return "", false
			}
			return ui.describeBar(serie, value), true
		},
		SlidersMoved: func(left, right *chart.XSlider) {
			ui.status = fmt.Sprintf("Sliders at %v and %v", left.Value, right.Value)
		},
		Invalidate: invalidate,
	}
	cfg.MarkerDragger = &markerDragger{ui: ui}
	ui.chart = NewChartView(cfg)
	return ui
}

// markerDragger keeps the x marker in the model options of the datasource.
type markerDragger struct {
	ui *UI
}

func (m *markerDragger) MarkerValueWidth() float64 {
	s := m.ui.session
	opts := m.ui.ws.Bundle.Datasource.Options()
	if s.Table == nil || opts.Marker == nil {
		return 0
	}
	xs := s.Table.X.Values()
	start := min(max(opts.Marker.Start, 0), len(xs)-1)
	end := min(max(opts.Marker.End, 0), len(xs)-1)
	return xs[end] - xs[start]
}

func (m *markerDragger) MarkerMoved(start, end int) {
	ds := m.ui.ws.Bundle.Datasource
	opts := ds.Options()
	opts.Marker = &chart.IndexRange{Start: start, End: end}
	ds.SetOptions(opts)
	m.ui.status = fmt.Sprintf("Marker moved to %d..%d", start, end)
}

// markSliderRange places the x marker between the sliders.
func (ui *UI) markSliderRange() {
	g := ui.chart.Graph()
	left, right := g.LeftSlider(), g.RightSlider()
	ds := ui.ws.Bundle.Datasource
	opts := ds.Options()
	opts.Marker = &chart.IndexRange{Start: left.ValueIndex, End: right.ValueIndex}
	ds.SetOptions(opts)
	ui.status = fmt.Sprintf("Marked %v to %v", left.Value, right.Value)
}

func (ui *UI) synchSliderRange() {
	g := ui.chart.Graph()
	left, right := g.LeftSlider(), g.RightSlider()
	ds := ui.ws.Bundle.Datasource
	opts := ds.Options()
	if opts.Synch != nil && opts.Synch.Start == left.ValueIndex && opts.Synch.End == right.ValueIndex {
		opts.Synch = nil
	} else {
		opts.Synch = &chart.IndexRange{Start: left.ValueIndex, End: right.ValueIndex}
	}
	ds.SetOptions(opts)
}

// barGraph returns the first graph which has the value array serie.
func (ui *UI) barGraph(serie, value int) (*chart.YData, bool) {
	m := ui.session.Model
	if m == nil || value < 0 || value >= len(m.X.Values) {
		return nil, false
	}
	for _, y := range m.Y {
		if serie < len(y.High) && value < len(y.High[serie]) {
			return y, true
		}
	}
	return nil, false
}

func (ui *UI) barValue(serie, value int) (float64, bool) {
	y, ok := ui.barGraph(serie, value)
	if !ok {
		return 0, false
	}
	return y.High[serie][value], true
}

func (ui *UI) describeBar(serie, value int) string {
	y, ok := ui.barGraph(serie, value)
	if !ok {
		return "nothing"
	}
	x := ui.session.Model.X
	return fmt.Sprintf("%s %v %s at %s %v", y.Label, y.High[serie][value], y.Unit, x.Label, x.Values[value])
}

func (ui *UI) setSeriesHidden(name string, hidden bool) {
	ds := ui.ws.Bundle.Datasource
	opts := ds.Options()
	series := make(map[string]backend.SeriesOptions, len(opts.Series)+1)
	for k, v := range opts.Series {
		series[k] = v
	}
	so := series[name]
	so.Hidden = hidden
	series[name] = so
	opts.Series = series
	ds.SetOptions(opts)
}

// Update the state of the UI and handle its events.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	if ui.chart.SetModel(ui.session.Model) && ui.xSwitched {
		// Keep showing the alternative axis after a reload.
		ui.xSwitched = ui.chart.Graph().SwitchXData()
	}
	ui.err = ""
	if ui.session.Err != nil {
		ui.err = ui.session.Err.Error()
	}

	ds := ui.ws.Bundle.Datasource
	if ui.openBtn.Clicked(gtx) {
		go func() {
			if _, err := ds.LoadFromFile(ui.expl); err != nil {
				ui.logger.Error("failed opening file", "err", err)
			}
		}()
	}
	g := ui.chart.Graph()
	if ui.zoomInBtn.Clicked(gtx) {
		g.ZoomIn()
	}
	if ui.zoomOutBtn.Clicked(gtx) {
		g.ZoomOut()
	}
	if ui.zoomSlidersBtn.Clicked(gtx) {
		g.ZoomInWithSlider()
	}
	if ui.partsBtn.Clicked(gtx) {
		g.ZoomWithParts(chartParts, 0, true)
	}
	if ui.prevPartBtn.Clicked(gtx) {
		g.MoveToPrevPart()
	}
	if ui.nextPartBtn.Clicked(gtx) {
		g.MoveToNextPart()
	}
	if ui.synchBtn.Clicked(gtx) {
		ui.synchSliderRange()
	}
	if ui.zoomSlidersItem.Clicked(gtx) {
		g.ZoomInWithSlider()
	}
	if ui.resetSlidersItem.Clicked(gtx) {
		g.ResetSliders()
	}
	if ui.resetRangeItem.Clicked(gtx) {
		g.ResetVisibleRange()
	}
	if ui.switchXItem.Clicked(gtx) && g.SwitchXData() {
		ui.xSwitched = !ui.xSwitched
		ui.status = "Showing " + g.Model().X.Label + " on the x axis"
	}
	if ui.markRangeItem.Clicked(gtx) {
		ui.markSliderRange()
	}
	if ui.canScroll.Update(gtx) {
		g.SetCanScrollZoomedChart(ui.canScroll.Value)
		if ui.canScroll.Value {
			ui.autoZoom.Value = false
		}
	}
	if ui.autoZoom.Update(gtx) {
		g.SetAutoZoomToSlider(ui.autoZoom.Value)
	}
	if ui.chartType.Update(gtx) {
		typ, err := backend.ParseChartType(ui.chartType.Value)
		if err == nil {
			opts := ds.Options()
			opts.Type = typ
			ds.SetOptions(opts)
		}
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) iconButton(btn *widget.Clickable, icon *widget.Icon, description string) layout.FlexChild {
	return layout.Rigid(func(gtx C) D {
		b := material.IconButton(ui.th, btn, icon, description)
		b.Size = 20
		b.Inset = layout.UniformInset(6)
		return layout.UniformInset(2).Layout(gtx, b.Layout)
	})
}

func (ui *UI) layoutToolbar(gtx C) D {
	viewport := ui.chart.Graph().Viewport()
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		ui.iconButton(&ui.openBtn, openIcon, "Open tour"),
		ui.iconButton(&ui.zoomInBtn, zoomInIcon, "Zoom in"),
		ui.iconButton(&ui.zoomOutBtn, zoomOutIcon, "Zoom out"),
		ui.iconButton(&ui.zoomSlidersBtn, zoomSlidersIcon, "Zoom to sliders"),
		ui.iconButton(&ui.partsBtn, partsIcon, "Split into parts"),
		ui.iconButton(&ui.prevPartBtn, prevPartIcon, "Previous part"),
		ui.iconButton(&ui.nextPartBtn, nextPartIcon, "Next part"),
		ui.iconButton(&ui.synchBtn, synchIcon, "Highlight slider range"),
		layout.Rigid(material.CheckBox(ui.th, &ui.canScroll, "Scroll").Layout),
		layout.Rigid(func(gtx C) D {
			if ui.canScroll.Value {
				gtx = gtx.Disabled()
			}
			return material.CheckBox(ui.th, &ui.autoZoom, "Auto zoom").Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			l := material.Body2(ui.th, fmt.Sprintf("zoom %.2fx", viewport.Ratio))
			l.Alignment = text.End
			return l.Layout(gtx)
		}),
	)
}

func (ui *UI) layoutLegend(gtx C) D {
	t := ui.session.Table
	g := ui.chart.Graph()
	left, right := g.LeftSlider(), g.RightSlider()
	opts := ui.ws.Bundle.Datasource.Options()

	table := component.Table(ui.th, &ui.legend)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(90)
	const (
		colorCol = iota
		seriesNameCol
		minCol
		meanCol
		maxCol
		numCols
	)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - (numCols-2)*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	return table.Layout(gtx, len(t.Series), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			size := valueColWidth
			switch index {
			case colorCol:
				size = colorColWidth
			case seriesNameCol:
				size = nameColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(ui.th, "Shown")
			case seriesNameCol:
				l = material.Body1(ui.th, "Series between the sliders")
				l.Alignment = text.Middle
			case minCol:
				l = material.Body1(ui.th, "Min")
				l.Alignment = text.End
			case meanCol:
				l = material.Body1(ui.th, "Mean")
				l.Alignment = text.End
			case maxCol:
				l = material.Body1(ui.th, "Max")
				l.Alignment = text.End
			}
			l.Color = ui.th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, ui.th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			series := t.Series[row]
			so, ok := opts.Series[series.Name]
			if !ok {
				so = opts.Series[strings.ToLower(series.Name)]
			}
			pal := backend.Palette(row)
			if so.Color != "" {
				if p, err := backend.ParsePalette(so.Color); err == nil {
					pal = p
				}
			}
			enabled := ui.enabledBool(series.Name, !so.Hidden)
			if col == colorCol && enabled.Update(gtx) {
				ui.setSeriesHidden(series.Name, !enabled.Value)
			}
			disabledAlpha := uint8(100)
			maximum, mean, minimum, _, _ := series.Stats(left.ValueIndex, right.ValueIndex)
			valueLabel := func(v float64) D {
				l := material.Body2(ui.th, fmt.Sprintf("%.2f %s", v, series.Unit))
				if !enabled.Value {
					l.Color.A = disabledAlpha
				}
				l.Alignment = text.End
				return l.Layout(gtx)
			}
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return enabled.Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							fullColor := pal.Line
							if !enabled.Value {
								fullColor.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fullColor, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case seriesNameCol:
					l := material.Body2(ui.th, series.Heading())
					if !enabled.Value {
						l.Color.A = disabledAlpha
					}
					return l.Layout(gtx)
				case minCol:
					return valueLabel(minimum)
				case meanCol:
					return valueLabel(mean)
				case maxCol:
					return valueLabel(maximum)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				c := pal.Bright
				c.A = 80
				paint.FillShape(gtx.Ops, c, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}

func (ui *UI) enabledBool(name string, value bool) *widget.Bool {
	b, ok := ui.enabled[name]
	if !ok {
		b = &widget.Bool{}
		ui.enabled[name] = b
	}
	b.Value = value
	return b
}

func (ui *UI) layoutStatus(gtx C) D {
	s := ui.session
	line := filepath.Base(s.Path)
	if s.Table != nil {
		line += fmt.Sprintf(" | %d rows", s.Table.Len())
		if s.Table.Skipped > 0 {
			line += fmt.Sprintf(", %d skipped", s.Table.Skipped)
		}
	}
	if s.Revision > 0 {
		line += fmt.Sprintf(" | reloaded %d times", s.Revision)
	}
	if ui.status != "" {
		line += " | " + ui.status
	}
	l := material.Body2(ui.th, line)
	l.MaxLines = 1
	return layout.UniformInset(4).Layout(gtx, l.Layout)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.chartType, chart.ChartLine.String(), "Lines").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.chartType, chart.ChartBar.String(), "Bars").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.chartType, chart.ChartLineWithBars.String(), "Lines with bars").Layout),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.err) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.err)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, ui.layoutChart),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = gtx.Constraints.Max.Y / 4
			return ui.layoutLegend(gtx)
		}),
		layout.Rigid(ui.layoutStatus),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No tour loaded yet."
	if ui.session.Loading {
		msg = "Loading " + filepath.Base(ui.session.Path) + "..."
	}
	l := material.Body1(ui.th, msg)
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Tour").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.err).Layout(gtx)
		}),
	)
}

// contextMenuOptions fills the chart context menu. Slider actions are
// offered when the menu was opened on a slider.
func (ui *UI) contextMenuOptions() {
	g := ui.chart.Graph()
	ui.menu.Options = append(ui.menu.Options[:0],
		component.MenuItem(ui.th, &ui.zoomSlidersItem, "Zoom to sliders").Layout,
		component.MenuItem(ui.th, &ui.resetSlidersItem, "Reset sliders").Layout,
		component.MenuItem(ui.th, &ui.resetRangeItem, "Reset value range").Layout,
	)
	if m := g.Model(); m != nil && m.X2 != nil {
		ui.menu.Options = append(ui.menu.Options,
			component.MenuItem(ui.th, &ui.switchXItem, "Show "+m.X2.Label+" on the x axis").Layout)
	}
	if left, _ := g.ContextSliders(); left != nil {
		ui.menu.Options = append(ui.menu.Options,
			component.MenuItem(ui.th, &ui.markRangeItem, "Mark range between sliders").Layout)
	}
}

func (ui *UI) layoutChart(gtx C) D {
	return layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
		layout.Expanded(func(gtx C) D {
			ui.contextMenuOptions()
			return ui.contextArea.Layout(gtx, func(gtx C) D {
				gtx.Constraints.Min = image.Point{}
				return component.Menu(ui.th, &ui.menu).Layout(gtx)
			})
		}),
	)
}

// Dispose releases the chart once the window is gone.
func (ui *UI) Dispose() {
	ui.chart.Dispose()
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.session.Table.Initialized() && ui.session.Model != nil {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
