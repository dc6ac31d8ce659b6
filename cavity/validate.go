package cavity

import (
	"math"

	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

// minCos is the smallest |cos(alpha)| accepted; beyond it the folding
// mirrors act at grazing incidence and sec(alpha) overflows the formulas.
const minCos = 1e-9

func validate(p parameters.Parameters) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"f", p.F}, {"l", p.L}, {"v", p.V}, {"s", p.S},
		{"eta", p.Eta}, {"alpha", p.Alpha}, {"wavelength", p.Wavelength},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid("%s is not finite", f.name)
		}
	}

	switch {
	case p.F <= 0:
		return invalid("focal length must be positive, got %g", p.F)
	case p.L <= 0:
		return invalid("crystal length must be positive, got %g", p.L)
	case p.V <= 0:
		return invalid("secondary focus distance must be positive, got %g", p.V)
	case p.Eta < 1:
		return invalid("refractive index must be at least 1, got %g", p.Eta)
	case p.Wavelength <= 0:
		return invalid("wavelength must be positive, got %g", p.Wavelength)
	case math.Abs(math.Cos(p.Alpha)) < minCos:
		return invalid("cos(alpha) vanishes for alpha = %g", p.Alpha)
	}
	return nil
}
