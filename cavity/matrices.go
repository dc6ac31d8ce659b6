package cavity

import (
	"math"

	"github.com/AnkushinDaniil/shgcavity/entity/cut"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/entity/plane"
	"github.com/AnkushinDaniil/shgcavity/gaussian"
)

type matrixFunc func(p parameters.Parameters) gaussian.Matrix

// roundTrip holds the round-trip matrices referenced to the crystal center.
// A Brewster-cut crystal only changes the tangential plane.
var roundTrip = map[plane.Plane]map[cut.Cut]matrixFunc{
	plane.Tangential: {
		cut.Plane:    tangentialPlane,
		cut.Brewster: tangentialBrewster,
	},
	plane.Sagittal: {
		cut.Plane:    sagittal,
		cut.Brewster: sagittal,
	},
}

// secondaryFocus holds the matrices from the crystal center to the
// secondary focus in the collimated arm.
var secondaryFocus = map[plane.Plane]map[cut.Cut]matrixFunc{
	plane.Tangential: {
		cut.Plane:    secondaryFocusTangentialPlane,
		cut.Brewster: secondaryFocusTangentialBrewster,
	},
	plane.Sagittal: {
		cut.Plane:    secondaryFocusSagittal,
		cut.Brewster: secondaryFocusSagittal,
	},
}

// RoundTripMatrix returns the round-trip transfer matrix of the resonator in
// the given plane, starting and ending at the crystal center.
func RoundTripMatrix(pl plane.Plane, p parameters.Parameters) (gaussian.Matrix, error) {
	return lookup(roundTrip, pl, p)
}

// SecondaryFocusMatrix returns the transfer matrix from the crystal center
// to the secondary focus in the given plane.
func SecondaryFocusMatrix(pl plane.Plane, p parameters.Parameters) (gaussian.Matrix, error) {
	return lookup(secondaryFocus, pl, p)
}

func TangentialMatrix(p parameters.Parameters) (gaussian.Matrix, error) {
	return RoundTripMatrix(plane.Tangential, p)
}

func SagittalMatrix(p parameters.Parameters) (gaussian.Matrix, error) {
	return RoundTripMatrix(plane.Sagittal, p)
}

func SecondaryFocusMatrixTangential(p parameters.Parameters) (gaussian.Matrix, error) {
	return SecondaryFocusMatrix(plane.Tangential, p)
}

func SecondaryFocusMatrixSagittal(p parameters.Parameters) (gaussian.Matrix, error) {
	return SecondaryFocusMatrix(plane.Sagittal, p)
}

func lookup(table map[plane.Plane]map[cut.Cut]matrixFunc, pl plane.Plane, p parameters.Parameters) (gaussian.Matrix, error) {
	if err := validate(p); err != nil {
		return gaussian.Matrix{}, err
	}
	build, ok := table[pl][p.Cut()]
	if !ok {
		return gaussian.Matrix{}, invalid("no matrix for %s plane with %s cut", pl, p.Cut())
	}
	m := build(p)
	if !m.IsFinite() {
		return gaussian.Matrix{}, invalid("%s matrix is not finite", pl)
	}
	return m, nil
}

func tangentialPlane(p parameters.Parameters) gaussian.Matrix {
	f, l, v, s, eta := p.F, p.L, p.V, p.S, p.Eta
	sec := 1 / math.Cos(p.Alpha)

	a := (f*f*eta - f*(l+2*(s+v)*eta)*sec + v*(l+2*s*eta)*sec*sec) / (f * f * eta)
	b := ((2*f*eta - (l+2*s*eta)*sec) * (f*(l+2*(s+v)*eta) - v*(l+2*s*eta)*sec)) / (2 * f * f * eta * eta)
	c := (-2 * sec * (f - v*sec)) / (f * f)
	return gaussian.NewMatrix(a, b, c, a)
}

func tangentialBrewster(p parameters.Parameters) gaussian.Matrix {
	f, l, v, s, eta := p.F, p.L, p.V, p.S, p.Eta
	eta3 := eta * eta * eta
	sec := 1 / math.Cos(p.Alpha)

	a := (f*f*eta3 - f*(l+2*(s+v)*eta3)*sec + v*(l+2*s*eta3)*sec*sec) / (f * f * eta3)
	b := ((2*f*eta3 - (l+2*s*eta3)*sec) * (f*(l+2*(s+v)*eta3) - v*(l+2*s*eta3)*sec)) / (2 * f * f * eta3 * eta)
	c := -(2 * sec * (f - v*sec)) / (f * f * eta * eta)
	return gaussian.NewMatrix(a, b, c, a)
}

func sagittal(p parameters.Parameters) gaussian.Matrix {
	f, l, v, s, eta := p.F, p.L, p.V, p.S, p.Eta
	cos := math.Cos(p.Alpha)

	a := (f*f*eta - f*(l+2*(s+v)*eta)*cos + v*(l+2*s*eta)*cos*cos) / (f * f * eta)
	b := ((2*f*eta - (l+2*s*eta)*cos) * (f*(l+2*(s+v)*eta) - v*(l+2*s*eta)*cos)) / (2 * f * f * eta * eta)
	c := (2 * cos * (-f + v*cos)) / (f * f)
	return gaussian.NewMatrix(a, b, c, a)
}

func secondaryFocusTangentialPlane(p parameters.Parameters) gaussian.Matrix {
	f, l, v, s, eta := p.F, p.L, p.V, p.S, p.Eta
	sec := 1 / math.Cos(p.Alpha)

	a := 1 - (v*sec)/f
	b := (f*(l+2*(s+v)*eta) - v*(l+2*s*eta)*sec) / (2 * f * eta)
	c := -(sec / f)
	d := 1 - ((l+2*s*eta)*sec)/(2*f*eta)
	return gaussian.NewMatrix(a, b, c, d)
}

func secondaryFocusTangentialBrewster(p parameters.Parameters) gaussian.Matrix {
	f, l, v, s, eta := p.F, p.L, p.V, p.S, p.Eta
	eta3 := eta * eta * eta
	sec := 1 / math.Cos(p.Alpha)

	a := (f - v*sec) / (f * eta)
	b := (f*(l+2*(s+v)*eta3) - v*(l+2*s*eta3)*sec) / (2 * f * eta * eta)
	c := -(sec / (f * eta))
	d := eta - ((l+2*s*eta3)*sec)/(2*f*eta*eta)
	return gaussian.NewMatrix(a, b, c, d)
}

func secondaryFocusSagittal(p parameters.Parameters) gaussian.Matrix {
	f, l, v, s, eta := p.F, p.L, p.V, p.S, p.Eta
	cos := math.Cos(p.Alpha)

	a := 1 - (v*cos)/f
	b := (f*(l+2*(s+v)*eta) - v*(l+2*s*eta)*cos) / (2 * f * eta)
	c := -(cos / f)
	d := 1 - ((l+2*s*eta)*cos)/(2*f*eta)
	return gaussian.NewMatrix(a, b, c, d)
}
