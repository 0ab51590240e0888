package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~whereswaldon/tourchart/backend"
	"git.sr.ht/~whereswaldon/tourchart/chart"
	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is everything read from flags, the environment and the config
// file.
type Config struct {
	LogLevel log.Level
	Chart    chart.Config
	Model    backend.ModelOptions
	Render   RenderConfig
}

type RenderConfig struct {
	Width, Height int
	// Zoom is the zoom ratio of the rendered chart. The image is widened
	// to show the whole zoomed chart.
	Zoom float64
	// Scale resizes the finished image, for thumbnails.
	Scale float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("chart.type", chart.ChartLine.String())
	v.SetDefault("chart.can-scroll", true)
	v.SetDefault("chart.auto-zoom", false)
	v.SetDefault("chart.show-x-sliders", true)
	v.SetDefault("chart.min-width", chart.DefaultMinWidth)
	v.SetDefault("chart.max-width", chart.DefaultMaxWidth)
	v.SetDefault("render.width", 1200)
	v.SetDefault("render.height", 600)
	v.SetDefault("render.zoom", 1.0)
	v.SetDefault("render.scale", 1.0)
}

func initConfig() {
	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("tourchart")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home + "/.config/tourchart")
		}
		viper.SetConfigName("tourchart")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Can't read config:", err)
			os.Exit(1)
		}
	}
}

// loadConfig converts the settings of v.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return cfg, fmt.Errorf("failed parsing log level: %w", err)
	}
	cfg.LogLevel = level
	cfg.Chart = chart.Config{
		CanScrollZoomedChart: v.GetBool("chart.can-scroll"),
		AutoZoomToSlider:     v.GetBool("chart.auto-zoom"),
		ShowXSliders:         v.GetBool("chart.show-x-sliders"),
		MinWidth:             v.GetInt("chart.min-width"),
		MaxWidth:             v.GetInt("chart.max-width"),
	}
	if cfg.Chart.MinWidth > cfg.Chart.MaxWidth {
		return cfg, fmt.Errorf("chart min-width %d exceeds max-width %d", cfg.Chart.MinWidth, cfg.Chart.MaxWidth)
	}
	cfg.Model.Type, err = backend.ParseChartType(v.GetString("chart.type"))
	if err != nil {
		return cfg, err
	}
	cfg.Model.Title = v.GetString("chart.title")
	cfg.Model.X2 = v.GetString("chart.x2")
	cfg.Model.Series = map[string]backend.SeriesOptions{}
	for name := range v.GetStringMap("series") {
		key := "series." + name + "."
		var so backend.SeriesOptions
		if so.Fill, err = backend.ParseFill(v.GetString(key + "fill")); err != nil {
			return cfg, fmt.Errorf("series %q: %w", name, err)
		}
		if so.Layout, err = backend.ParseLayout(v.GetString(key + "layout")); err != nil {
			return cfg, fmt.Errorf("series %q: %w", name, err)
		}
		so.YSlider = v.GetBool(key + "y-slider")
		so.Color = v.GetString(key + "color")
		so.Group = v.GetString(key + "group")
		so.Hidden = v.GetBool(key + "hidden")
		cfg.Model.Series[name] = so
	}
	cfg.Render = RenderConfig{
		Width:  v.GetInt("render.width"),
		Height: v.GetInt("render.height"),
		Zoom:   v.GetFloat64("render.zoom"),
		Scale:  v.GetFloat64("render.scale"),
	}
	if cfg.Render.Width <= 0 || cfg.Render.Height <= 0 {
		return cfg, fmt.Errorf("invalid render size %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	cfg.Render.Zoom = max(cfg.Render.Zoom, 1)
	if cfg.Render.Scale <= 0 || cfg.Render.Scale > 1 {
		return cfg, fmt.Errorf("render scale %v is not in (0, 1]", cfg.Render.Scale)
	}
	return cfg, nil
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tourchart",
	})
}
