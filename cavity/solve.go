// Package cavity computes the eigenmode of a bow-tie second-harmonic
// generation resonator from its geometry and crystal properties.
//
// Every function is a pure function of its Parameters argument.
package cavity

import (
	"fmt"

	"github.com/AnkushinDaniil/shgcavity/entity"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/entity/plane"
	"github.com/AnkushinDaniil/shgcavity/gaussian"
)

// Index of the air in the collimated arm.
const freeSpaceIndex = 1

// beam is the eigenmode of one plane at the crystal and at the secondary
// focus.
type beam struct {
	crystal    complex128
	collimated complex128
}

// Solve returns the cavity eigenmode for p. It returns an *UnstableError if
// p.S lies outside SBounds(p).
func Solve(p parameters.Parameters) (entity.ModeResult, error) {
	bounds, err := SBounds(p)
	if err != nil {
		return entity.ModeResult{}, err
	}
	if !bounds.Contains(p.S) {
		return entity.ModeResult{}, &UnstableError{S: p.S, Bounds: bounds}
	}

	t, err := solvePlane(plane.Tangential, p)
	if err != nil {
		return entity.ModeResult{}, err
	}
	s, err := solvePlane(plane.Sagittal, p)
	if err != nil {
		return entity.ModeResult{}, err
	}

	wtCrystal := gaussian.Waist(t.crystal, p.Eta, p.Wavelength)
	btCrystal := gaussian.ConfocalParameter(t.crystal)
	wsCrystal := gaussian.Waist(s.crystal, p.Eta, p.Wavelength)
	bsCrystal := gaussian.ConfocalParameter(s.crystal)

	wtCollimated := gaussian.Waist(t.collimated, freeSpaceIndex, p.Wavelength)
	wsCollimated := gaussian.Waist(s.collimated, freeSpaceIndex, p.Wavelength)

	return entity.ModeResult{
		TangentialWaistCrystal:                wtCrystal,
		TangentialConfocalParameterCrystal:    btCrystal,
		TangentialFocusingParameter:           p.L / btCrystal,
		SagittalWaistCrystal:                  wsCrystal,
		SagittalConfocalParameterCrystal:      bsCrystal,
		SagittalFocusingParameter:             p.L / bsCrystal,
		EllipticityCrystal:                    wsCrystal / wtCrystal,
		TangentialWaistCollimated:             wtCollimated,
		TangentialConfocalParameterCollimated: gaussian.ConfocalParameter(t.collimated),
		SagittalWaistCollimated:               wsCollimated,
		SagittalConfocalParameterCollimated:   gaussian.ConfocalParameter(s.collimated),
		EllipticityCollimated:                 wsCollimated / wtCollimated,
	}, nil
}

func solvePlane(pl plane.Plane, p parameters.Parameters) (beam, error) {
	rt, err := RoundTripMatrix(pl, p)
	if err != nil {
		return beam{}, err
	}
	q, err := gaussian.Eigenmode(rt, p.Eta)
	if err != nil {
		return beam{}, fmt.Errorf("failed to solve %s eigenmode: %w", pl, err)
	}

	sf, err := SecondaryFocusMatrix(pl, p)
	if err != nil {
		return beam{}, err
	}
	collimated, err := gaussian.Propagate(q, sf, freeSpaceIndex, p.Eta)
	if err != nil {
		return beam{}, fmt.Errorf("failed to propagate %s eigenmode to the secondary focus: %w", pl, err)
	}
	return beam{crystal: q, collimated: collimated}, nil
}
