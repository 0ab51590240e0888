package chart

import (
	"testing"
	"time"
)

// lineModel returns a line chart whose x values are 0..n-1.
func lineModel(n int) *Model {
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = float64(i % 7)
	}
	return &Model{
		Type: ChartLine,
		X:    XData{Values: xs},
		Y:    []*YData{{High: [][]float64{ys}}},
	}
}

func barModel(layout BarLayout, series ...[]float64) *Model {
	n := 0
	for _, s := range series {
		n = max(n, len(s))
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return &Model{
		Type: ChartBar,
		X:    XData{Values: xs},
		Y:    []*YData{{High: series, Layout: layout}},
	}
}

func newTestGraph(t *testing.T, cfg Config, width, height int) (*Graph, *TaskQueue) {
	t.Helper()
	q := &TaskQueue{}
	cfg.Scheduler = q
	g := New(cfg)
	g.Resize(width, height)
	return g, q
}

// settle paints, runs the deferred render and paints again.
func settle(g *Graph, q *TaskQueue) {
	g.Paint()
	q.Run(q.now)
	g.Paint()
}

// runTimers advances the queue clock until no work is left or limit
// steps passed.
func runTimers(q *TaskQueue, limit int) int {
	steps := 0
	for ; steps < limit && q.Len() > 0; steps++ {
		q.Run(q.now.Add(20 * time.Millisecond))
	}
	return steps
}
