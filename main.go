package main

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/tourchart/backend"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cmd     = newRootCmd()
)

func init() {
	cobra.OnInitialize(initConfig)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./tourchart.yaml or $HOME/.config/tourchart/tourchart.yaml)")
}

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tourchart [tour.csv|tour.xlsx]",
		Short: "Interactive charts of recorded tours",
		Long: `Show the columns of a csv or xlsx tour file as an interactive chart.
The first column is the x axis, every other column becomes a series.
The file is reloaded whenever it changes on disk.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runViewer(path)
		},
	}
	flags := root.PersistentFlags()
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", flags.Lookup("log-level"))

	flags = root.Flags()
	flags.String("type", "line", "Chart type (line, bar, line-with-bars)")
	flags.Bool("can-scroll", true, "Scroll zoomed charts instead of sliding the zoom window")
	flags.Bool("auto-zoom", false, "Zoom to the slider range while dragging")
	viper.BindPFlag("chart.type", flags.Lookup("type"))
	viper.BindPFlag("chart.can-scroll", flags.Lookup("can-scroll"))
	viper.BindPFlag("chart.auto-zoom", flags.Lookup("auto-zoom"))

	root.AddCommand(newRenderCmd())
	return root
}

func runViewer(path string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	ds, err := backend.NewDatasource(context.Background(), logger, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed creating datasource: %w", err)
	}
	bundle := backend.NewBundle(ds)
	go func() {
		w := app.NewWindow(app.Title("tourchart"))
		ctx, cancel := context.WithCancel(context.Background())
		ws := backend.NewWindowState(ctx, bundle, w)
		expl := explorer.NewExplorer(w)
		ui := NewUI(ws, expl, logger, cfg.Chart, w.Invalidate)
		err := loop(w, expl, ui)
		ui.Dispose()
		cancel()
		if cerr := ds.Close(); cerr != nil {
			logger.Error("failed closing datasource", "err", cerr)
		}
		if err != nil {
			logger.Fatal("window closed", "err", err)
		}
		os.Exit(0)
	}()
	if path != "" {
		logger.Info("loading tour", "path", path)
		ds.Load(path)
	}
	app.Main()
	return nil
}

func loop(w *app.Window, expl *explorer.Explorer, ui *UI) error {
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
