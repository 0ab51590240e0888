package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/tourchart/sensors"
	"github.com/charmbracelet/log"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: record a simulated ride as a csv tour file
Usage:

 %[1]s -output tour.csv

OR, to watch the ride while it is recorded:

 %[1]s -output tour.csv & tourchart tour.csv

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", time.Second, "Interval between writing new samples")
	step := flag.Duration("ride-step", 0, "Simulated ride time per sample (defaults to the sample interval)")
	outputName := flag.String("output", "-", "Output file for CSV tour data")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed of the simulated ride")
	count := flag.Int("samples", 0, "Number of samples to write before exiting (0 runs until interrupted)")
	flag.Parse()
	if *step == 0 {
		*step = *dur
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatal("failed opening output file", "path", *outputName, "err", err)
		}
		output = f
	}

	ride := sensors.NewRide(*seed)
	rec := newRecorder(output, ride.Distance(), ride.Sensors())
	if err := rec.writeHeadings(); err != nil {
		log.Fatal("failed writing headings", "err", err)
	}

	ticker := time.NewTicker(*dur)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer ticker.Stop()
	for written := 0; *count == 0 || written < *count; written++ {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			if err := output.Close(); err != nil {
				log.Error("failed closing output", "err", err)
			}
			return
		case <-ticker.C:
			ride.Advance(*step)
			if err := rec.writeSample(); err != nil {
				log.Fatal("failed writing sample", "err", err)
			}
		}
	}
	if err := output.Close(); err != nil {
		log.Error("failed closing output", "err", err)
	}
}

// recorder writes complete csv lines, so that readers following the file
// never see a partial sample.
type recorder struct {
	w       io.Writer
	x       sensors.Sensor
	sensors []sensors.Sensor
	line    strings.Builder
}

func newRecorder(w io.Writer, x sensors.Sensor, list []sensors.Sensor) *recorder {
	return &recorder{w: w, x: x, sensors: list}
}

func (r *recorder) writeHeadings() error {
	r.line.Reset()
	r.line.WriteString(sensors.Heading(r.x))
	for _, s := range r.sensors {
		r.line.WriteString(", ")
		r.line.WriteString(sensors.Heading(s))
	}
	return r.flush()
}

func (r *recorder) writeSample() error {
	r.line.Reset()
	var errs []error
	write := func(s sensors.Sensor) {
		v, err := s.Read()
		if err != nil {
			// Leave the cell empty, readers repeat the previous value.
			errs = append(errs, fmt.Errorf("failed reading %s: %w", s.Name(), err))
			return
		}
		r.line.WriteString(strconv.FormatFloat(v, 'f', 4, 64))
	}
	write(r.x)
	if len(errs) > 0 {
		return errs[0]
	}
	for _, s := range r.sensors {
		r.line.WriteString(", ")
		write(s)
	}
	for _, err := range errs {
		log.Warn("dropping sensor value", "err", err)
	}
	return r.flush()
}

func (r *recorder) flush() error {
	r.line.WriteByte('\n')
	_, err := io.WriteString(r.w, r.line.String())
	return err
}
