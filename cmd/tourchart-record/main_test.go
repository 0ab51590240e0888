package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~whereswaldon/tourchart/backend"
	"git.sr.ht/~whereswaldon/tourchart/sensors"
)

type brokenSensor struct{}

func (brokenSensor) Name() string           { return "broken" }
func (brokenSensor) Unit() sensors.Unit     { return sensors.Watts }
func (brokenSensor) Read() (float64, error) { return 0, errors.New("unplugged") }

func TestRecorderOutputIsReadable(t *testing.T) {
	var buf bytes.Buffer
	ride := sensors.NewRide(42)
	rec := newRecorder(&buf, ride.Distance(), ride.Sensors())
	if err := rec.writeHeadings(); err != nil {
		t.Fatalf("failed writing headings: %v", err)
	}
	for i := 0; i < 20; i++ {
		ride.Advance(time.Second)
		if err := rec.writeSample(); err != nil {
			t.Fatalf("failed writing sample: %v", err)
		}
	}
	table, err := backend.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("expected recorded tour to be readable, got: %v", err)
	}
	if table.Len() != 20 {
		t.Errorf("expected 20 rows, got %d", table.Len())
	}
	if table.X.Name != "distance" || len(table.Series) != 5 {
		t.Errorf("unexpected columns: %q and %d series", table.X.Heading(), len(table.Series))
	}
}

func TestRecorderSkipsBrokenSensors(t *testing.T) {
	var buf bytes.Buffer
	ride := sensors.NewRide(1)
	rec := newRecorder(&buf, ride.Distance(), []sensors.Sensor{brokenSensor{}, ride.Sensors()[0]})
	ride.Advance(time.Second)
	if err := rec.writeSample(); err != nil {
		t.Fatalf("expected a broken value sensor to be skipped, got: %v", err)
	}
	cells := strings.Split(strings.TrimSpace(buf.String()), ", ")
	if len(cells) != 3 || cells[1] != "" {
		t.Errorf("expected an empty cell for the broken sensor, got %q", buf.String())
	}

	rec = newRecorder(&buf, brokenSensor{}, ride.Sensors())
	if err := rec.writeSample(); err == nil {
		t.Errorf("expected a broken x sensor to fail")
	}
}
