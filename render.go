package main

import (
	"fmt"
	"image"
	"time"

	"git.sr.ht/~whereswaldon/tourchart/backend"
	"git.sr.ht/~whereswaldon/tourchart/chart"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderRounds bounds the number of task queue runs spent waiting for
// the deferred chart renders.
const renderRounds = 16

func newRenderCmd() *cobra.Command {
	var output string
	render := &cobra.Command{
		Use:          "render <tour.csv|tour.xlsx>",
		Short:        "Render a tour chart into a png image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(viper.GetViper())
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)
			t, err := backend.ReadFile(args[0])
			if err != nil {
				return err
			}
			img, err := renderTable(t, cfg, logger)
			if err != nil {
				return err
			}
			if err := imgio.Save(output, img, imgio.PNGEncoder()); err != nil {
				return fmt.Errorf("failed saving %s: %w", output, err)
			}
			logger.Info("rendered chart", "path", output, "size", img.Bounds().Size())
			return nil
		},
	}
	flags := render.Flags()
	flags.StringVarP(&output, "output", "o", "tour.png", "Output png file")
	flags.Int("width", 1200, "Width of the visible chart in pixels")
	flags.Int("height", 600, "Height of the chart in pixels")
	flags.Float64("zoom", 1, "Zoom ratio, widening the image accordingly")
	flags.Float64("scale", 1, "Scale factor of the saved image")
	flags.String("type", "line", "Chart type (line, bar, line-with-bars)")
	viper.BindPFlag("render.width", flags.Lookup("width"))
	viper.BindPFlag("render.height", flags.Lookup("height"))
	viper.BindPFlag("render.zoom", flags.Lookup("zoom"))
	viper.BindPFlag("render.scale", flags.Lookup("scale"))
	viper.BindPFlag("chart.type", flags.Lookup("type"))
	return render
}

// renderTable draws the chart of t without a window.
func renderTable(t *backend.Table, cfg Config, logger *log.Logger) (image.Image, error) {
	m, err := backend.BuildModel(t, cfg.Model)
	if err != nil {
		return nil, err
	}
	q := &chart.TaskQueue{}
	ccfg := cfg.Chart
	ccfg.Scheduler = q
	ccfg.Logger = logger
	g := chart.New(ccfg)
	defer g.Dispose()
	g.Resize(int(float64(cfg.Render.Width)*cfg.Render.Zoom), cfg.Render.Height)
	g.SetModel(m)

	now := time.Now()
	frame := g.Paint()
	for i := 0; i < renderRounds && q.Len() > 0; i++ {
		now = now.Add(time.Second)
		q.Run(now)
		frame = g.Paint()
	}
	if frame == nil {
		return nil, fmt.Errorf("chart has no frame")
	}
	if q.Len() > 0 {
		logger.Warn("chart still busy after rendering", "tasks", q.Len())
	}
	var img image.Image = frame
	if cfg.Render.Scale < 1 {
		size := frame.Bounds().Size()
		w := max(int(float64(size.X)*cfg.Render.Scale), 1)
		h := max(int(float64(size.Y)*cfg.Render.Scale), 1)
		img = transform.Resize(frame, w, h, transform.Linear)
	} else {
		// The frame belongs to the disposed graph.
		cp := image.NewRGBA(frame.Bounds())
		copy(cp.Pix, frame.Pix)
		img = cp
	}
	return img, nil
}
