package app

import (
	"fmt"
	"io"

	"github.com/AnkushinDaniil/shgcavity/cavity"
	"github.com/AnkushinDaniil/shgcavity/entity"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

const unstable = "Cavity unstable"

// WriteSummary prints r in display units. A nil r means the cavity is
// unstable at the requested s.
func WriteSummary(w io.Writer, r *entity.ModeResult) error {
	if r == nil {
		_, err := fmt.Fprintf(w, "Crystal:\n%s\n\nCollimated arm:\n%s\n", unstable, unstable)
		return err
	}
	_, err := fmt.Fprintf(w,
		"Crystal:\n"+
			"wt = %.2f µm\tbt = %.2f mm\tξt=%.3f\n"+
			"ws = %.2f µm\tbs = %.2f mm\tξs=%.3f\n"+
			"ellipticity = %.2f\n\n"+
			"Collimated arm:\n"+
			"wt = %.2f µm\tbt = %.2f mm\n"+
			"ws = %.2f µm\tbs = %.2f mm\n"+
			"ellipticity = %.2f\n",
		r.TangentialWaistCrystal*um,
		r.TangentialConfocalParameterCrystal*mm,
		r.TangentialFocusingParameter,
		r.SagittalWaistCrystal*um,
		r.SagittalConfocalParameterCrystal*mm,
		r.SagittalFocusingParameter,
		r.EllipticityCrystal,
		r.TangentialWaistCollimated*um,
		r.TangentialConfocalParameterCollimated*mm,
		r.SagittalWaistCollimated*um,
		r.SagittalConfocalParameterCollimated*mm,
		r.EllipticityCollimated,
	)
	return err
}

// BoundsReport collects the stability ranges of a configuration.
type BoundsReport struct {
	Tangential  cavity.Bounds `json:"tangential" yaml:"tangential"`
	Sagittal    cavity.Bounds `json:"sagittal" yaml:"sagittal"`
	Combined    cavity.Bounds `json:"combined" yaml:"combined"`
	SweepWindow cavity.Bounds `json:"sweep_window" yaml:"sweep_window"`
	Usable      bool          `json:"usable" yaml:"usable"`
}

func NewBoundsReport(t, s cavity.Bounds) BoundsReport {
	combined := t.Intersect(s)
	return BoundsReport{
		Tangential:  t,
		Sagittal:    s,
		Combined:    combined,
		SweepWindow: combined.SweepWindow(),
		Usable:      combined.Usable(),
	}
}

// Bounds computes the stability ranges of p.
func Bounds(p parameters.Parameters) (BoundsReport, error) {
	t, err := cavity.SBoundsTangential(p)
	if err != nil {
		return BoundsReport{}, err
	}
	s, err := cavity.SBoundsSagittal(p)
	if err != nil {
		return BoundsReport{}, err
	}
	return NewBoundsReport(t, s), nil
}

// WriteBounds prints the ranges of b in mm.
func WriteBounds(w io.Writer, b BoundsReport) error {
	rows := []struct {
		name   string
		bounds cavity.Bounds
	}{
		{"tangential", b.Tangential},
		{"sagittal", b.Sagittal},
		{"combined", b.Combined},
		{"sweep window", b.SweepWindow},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-12s s = %.3f .. %.3f mm\n", row.name, row.bounds.Min*mm, row.bounds.Max*mm); err != nil {
			return err
		}
	}
	if !b.Usable {
		_, err := fmt.Fprintf(w, "%s for all s\n", unstable)
		return err
	}
	return nil
}
