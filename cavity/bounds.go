package cavity

import (
	"math"

	"github.com/AnkushinDaniil/shgcavity/entity/cut"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/entity/plane"
)

const (
	// MinStableWidth is the narrowest s range that still counts as usable.
	MinStableWidth = 1e-3
	// SampleMargin keeps default sweep samples away from the range edges,
	// where the waist diverges.
	SampleMargin = 100e-6
)

// Bounds is a range of s values in meters.
type Bounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (b Bounds) Width() float64 {
	return b.Max - b.Min
}

// Contains reports whether s lies strictly inside the range. At the edges
// |m| = 1 and the eigenmode is degenerate.
func (b Bounds) Contains(s float64) bool {
	return s > b.Min && s < b.Max
}

// Center returns the midpoint of the range.
func (b Bounds) Center() float64 {
	return (b.Min + b.Max) / 2
}

// Usable reports whether the range is wide enough and non-negative to be
// swept. An empty or inverted range is never usable.
func (b Bounds) Usable() bool {
	return b.Width() >= MinStableWidth && b.Min >= 0 && b.Max >= 0
}

// SweepWindow returns the range shrunk by SampleMargin on both sides.
func (b Bounds) SweepWindow() Bounds {
	return Bounds{Min: b.Min + SampleMargin, Max: b.Max - SampleMargin}
}

// Intersect returns the overlap of b and o. The result is inverted when the
// ranges are disjoint.
func (b Bounds) Intersect(o Bounds) Bounds {
	return Bounds{Min: math.Max(b.Min, o.Min), Max: math.Min(b.Max, o.Max)}
}

func sorted(s1, s2 float64) Bounds {
	return Bounds{Min: math.Min(s1, s2), Max: math.Max(s1, s2)}
}

// SBoundsTangential returns the s range for which |m| < 1 in the tangential
// plane. The edges are the two roots of |m(s)| = 1.
func SBoundsTangential(p parameters.Parameters) (Bounds, error) {
	if err := validate(p); err != nil {
		return Bounds{}, err
	}
	// the optical path through a Brewster-cut crystal in the tangential
	// plane is shortened by eta^3 instead of eta
	eta := p.Eta
	if p.Cut() == cut.Brewster {
		eta = p.Eta * p.Eta * p.Eta
	}
	cos := math.Cos(p.Alpha)

	s1 := -p.L/(2*eta) + p.F*cos
	s2 := -p.L/(2*eta) + (p.F*p.V)/(-p.F+p.V/cos)
	return finiteBounds(plane.Tangential, s1, s2)
}

// SBoundsSagittal returns the s range for which |m| < 1 in the sagittal
// plane.
func SBoundsSagittal(p parameters.Parameters) (Bounds, error) {
	if err := validate(p); err != nil {
		return Bounds{}, err
	}
	cos := math.Cos(p.Alpha)

	s1 := -p.L/(2*p.Eta) + p.F/cos
	s2 := -p.L/(2*p.Eta) + p.F*p.V/(-p.F+p.V*cos)
	return finiteBounds(plane.Sagittal, s1, s2)
}

// SBounds returns the s range for which the resonator is stable in both
// planes. The result may be empty or inverted; check Usable before sweeping.
func SBounds(p parameters.Parameters) (Bounds, error) {
	t, err := SBoundsTangential(p)
	if err != nil {
		return Bounds{}, err
	}
	s, err := SBoundsSagittal(p)
	if err != nil {
		return Bounds{}, err
	}
	return t.Intersect(s), nil
}

// PlaneBounds returns the stability range of a single plane.
func PlaneBounds(pl plane.Plane, p parameters.Parameters) (Bounds, error) {
	switch pl {
	case plane.Tangential:
		return SBoundsTangential(p)
	case plane.Sagittal:
		return SBoundsSagittal(p)
	default:
		return Bounds{}, invalid("unknown plane %s", pl)
	}
}

func finiteBounds(pl plane.Plane, s1, s2 float64) (Bounds, error) {
	for _, s := range []float64{s1, s2} {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Bounds{}, invalid("%s stability bound is not finite", pl)
		}
	}
	return sorted(s1, s2), nil
}
