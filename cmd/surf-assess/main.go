// Command surf-assess evaluates surf conditions from the command line and
// prints the assessment as JSON. It needs no network or API key.
//
//	surf-assess -height 1.2 -period 9 -wind-dir 西 -wind-speed 8 -facing 90
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ngmaloney/surf-terminal/internal/surf"
)

// options mirrors the flags with their accepted ranges.
type options struct {
	Height    float64 `validate:"gte=0,lte=30"`
	Period    float64 `validate:"gte=0,lte=30"`
	WindSpeed float64 `validate:"gte=0,lte=300"`
	Facing    string  `validate:"omitempty,numeric"`
	Safety    string  `validate:"omitempty,oneof=safe warning danger"`
	WindDir   string
	Concerns  string
	Compact   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("surf-assess", flag.ContinueOnError)
	fs.Float64Var(&opts.Height, "height", 0, "Wave height in meters")
	fs.Float64Var(&opts.Period, "period", 0, "Wave period in seconds")
	fs.StringVar(&opts.WindDir, "wind-dir", "", "Wind direction in degrees or text (e.g., 270, 西北, 東北風)")
	fs.Float64Var(&opts.WindSpeed, "wind-speed", 0, "Wind speed in km/h")
	fs.StringVar(&opts.Facing, "facing", "", "Beach facing in degrees")
	fs.StringVar(&opts.Safety, "safety", "", "Safety level override: safe, warning or danger")
	fs.StringVar(&opts.Concerns, "concerns", "", "Comma-separated safety concerns")
	fs.BoolVar(&opts.Compact, "compact", false, "Print compact JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := opts.input()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(surf.Evaluate(in))
}

// input validates the flags and converts them to an evaluation input.
func (o options) input() (surf.Input, error) {
	if err := validator.New().Struct(o); err != nil {
		return surf.Input{}, fmt.Errorf("invalid flags: %w", err)
	}

	in := surf.Input{
		WaveHeight:   o.Height,
		WavePeriod:   o.Period,
		WindSpeedKmh: o.WindSpeed,
		SafetyLevel:  surf.SafetyLevel(o.Safety),
	}

	if o.Facing != "" {
		facing, err := strconv.ParseFloat(o.Facing, 64)
		if err != nil || !surf.IsFinite(facing) || facing < 0 || facing >= 360 {
			return surf.Input{}, fmt.Errorf("invalid facing %q", o.Facing)
		}
		in.BeachFacing = &facing
	}

	if dir := strings.TrimSpace(o.WindDir); dir != "" {
		deg, err := strconv.ParseFloat(dir, 64)
		switch {
		case err == nil && surf.IsFinite(deg):
			in.WindDirectionDegrees = &deg
		case err == nil || errors.Is(err, strconv.ErrRange):
			return surf.Input{}, fmt.Errorf("invalid wind direction %q", o.WindDir)
		default:
			in.WindDirectionText = dir
		}
	}

	for _, c := range strings.Split(o.Concerns, ",") {
		if c = strings.TrimSpace(c); c != "" {
			in.Concerns = append(in.Concerns, c)
		}
	}
	return in, nil
}
