package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/shgcavity/cavity"
	"github.com/AnkushinDaniil/shgcavity/entity"
	"github.com/AnkushinDaniil/shgcavity/entity/format"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

type App struct {
	Output  string
	Format  format.Format
	Samples int
	Params  parameters.Parameters
}

func New(output string, f format.Format, samples int, params parameters.Parameters) *App {
	if samples <= 0 {
		samples = cavity.DefaultSamples
	}
	return &App{
		Output:  output,
		Format:  f,
		Samples: samples,
		Params:  params,
	}
}

// Run sweeps s across the stability range and writes the curves to
// a.Output in a.Format.
func (a *App) Run(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("App finished")
	}()
	log.WithFields(log.Fields{
		"output":     a.Output,
		"format":     a.Format,
		"samples":    a.Samples,
		"f":          a.Params.F,
		"l":          a.Params.L,
		"v":          a.Params.V,
		"s":          a.Params.S,
		"eta":        a.Params.Eta,
		"alpha":      a.Params.Alpha,
		"wavelength": a.Params.Wavelength,
		"cut":        a.Params.Cut(),
	}).Debug("App started")

	params, sweep, err := Sweep(ctx, a.Params, a.Samples)
	if err != nil {
		return err
	}

	f, err := os.Create(a.Output)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	renderTime := time.Now()
	if err := Render(f, a.Format, sweep, params.S); err != nil {
		return fmt.Errorf("failed to render %s: %w", a.Format, err)
	}
	log.WithFields(log.Fields{
		"time":    time.Since(renderTime),
		"samples": sweep.Len(),
		"output":  a.Output,
	}).Info("Sweep rendered and saved")

	return nil
}

// Center returns p with s moved to the middle of the stability range when it
// lies outside it, together with that range.
func Center(p parameters.Parameters) (parameters.Parameters, cavity.Bounds, error) {
	bounds, err := cavity.SBounds(p)
	if err != nil {
		return p, bounds, err
	}
	if !bounds.Usable() {
		return p, bounds, fmt.Errorf("%w: s range [%g, %g] m", cavity.ErrUnstableForAllS, bounds.Min, bounds.Max)
	}
	if !bounds.Contains(p.S) {
		log.WithFields(log.Fields{
			"s":   p.S,
			"min": bounds.Min,
			"max": bounds.Max,
		}).Info("s outside the stability range, moved to its center")
		p = p.WithS(bounds.Center())
	}
	return p, bounds, nil
}

// Sweep centers s if needed and solves the cavity on samples points across
// the sweep window.
func Sweep(ctx context.Context, p parameters.Parameters, samples int) (parameters.Parameters, entity.SweptModeResult, error) {
	p, bounds, err := Center(p)
	if err != nil {
		return p, entity.SweptModeResult{}, err
	}
	sweep, err := cavity.SolveRange(ctx, p, cavity.DefaultSValues(bounds, samples))
	if err != nil {
		return p, entity.SweptModeResult{}, fmt.Errorf("failed to sweep s: %w", err)
	}
	return p, sweep, nil
}

// Render writes sweep to w. s marks the current operating point on charts.
func Render(w io.Writer, f format.Format, sweep entity.SweptModeResult, s float64) error {
	switch f {
	case format.HTML:
		page, err := createPage(sweep, s)
		if err != nil {
			return err
		}
		return page.Render(w)
	case format.Png:
		return renderPNG(w, sweep, s)
	case format.Csv:
		return writeCSV(w, sweep)
	case format.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sweep)
	case format.YAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(sweep)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}
