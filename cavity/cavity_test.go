package cavity

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/entity/plane"
	"github.com/AnkushinDaniil/shgcavity/gaussian"
)

// bowTie is a 100 mm radius of curvature cavity with a 10 mm crystal at
// 532 nm and 10 degrees angle of incidence.
func bowTie(brewster bool) parameters.Parameters {
	return parameters.Parameters{
		F:          0.05,
		L:          0.01,
		V:          0.1,
		S:          0.07,
		Eta:        1.5,
		Alpha:      0.1745,
		Wavelength: 532e-9,
		Brewster:   brewster,
	}
}

const relTol = 1e-9

func TestSBounds(t *testing.T) {
	tests := []struct {
		name       string
		params     parameters.Parameters
		tangential Bounds
		sagittal   Bounds
		combined   Bounds
	}{
		{
			name:       "plane cut",
			params:     bowTie(false),
			tangential: Bounds{0.045907340160631076, 0.09367479676490469},
			sagittal:   Bounds{0.04743770253209676, 0.09979911472436878},
			combined:   Bounds{0.04743770253209676, 0.09367479676490469},
		},
		{
			name:       "brewster cut",
			params:     bowTie(true),
			tangential: Bounds{0.04775919201248293, 0.09552664861675653},
			sagittal:   Bounds{0.04743770253209676, 0.09979911472436878},
			combined:   Bounds{0.04775919201248293, 0.09552664861675653},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := SBoundsTangential(tt.params)
			require.NoError(t, err)
			assertBounds(t, tt.tangential, tb)

			sb, err := SBoundsSagittal(tt.params)
			require.NoError(t, err)
			assertBounds(t, tt.sagittal, sb)

			b, err := SBounds(tt.params)
			require.NoError(t, err)
			assertBounds(t, tt.combined, b)
			assert.LessOrEqual(t, b.Min, b.Max)
			assert.True(t, b.Usable())

			pb, err := PlaneBounds(plane.Sagittal, tt.params)
			require.NoError(t, err)
			assert.Equal(t, sb, pb)
		})
	}
}

func assertBounds(t *testing.T, want, got Bounds) {
	t.Helper()
	assert.InEpsilon(t, want.Min, got.Min, relTol)
	assert.InEpsilon(t, want.Max, got.Max, relTol)
}

func TestHalfTraceAtAndInsideBounds(t *testing.T) {
	for _, brewster := range []bool{false, true} {
		p := bowTie(brewster)
		for _, pl := range []plane.Plane{plane.Tangential, plane.Sagittal} {
			b, err := PlaneBounds(pl, p)
			require.NoError(t, err)

			for _, s := range []float64{b.Min, b.Max} {
				m, err := RoundTripMatrix(pl, p.WithS(s))
				require.NoError(t, err)
				assert.InDelta(t, 1, math.Abs(gaussian.StabilityFactor(m)), 1e-9, "%s at %g", pl, s)
			}
			for _, s := range Linspace(b.Min+1e-6, b.Max-1e-6, 25) {
				m, err := RoundTripMatrix(pl, p.WithS(s))
				require.NoError(t, err)
				assert.True(t, gaussian.IsStable(m), "%s at %g", pl, s)
				assert.InDelta(t, 1, m.Det(), 1e-9)
			}
			for _, s := range []float64{b.Min - 1e-3, b.Max + 1e-3} {
				m, err := RoundTripMatrix(pl, p.WithS(s))
				require.NoError(t, err)
				assert.False(t, gaussian.IsStable(m), "%s at %g", pl, s)
			}
		}
	}
}

func TestMatrixVariants(t *testing.T) {
	plain, err := TangentialMatrix(bowTie(false))
	require.NoError(t, err)
	brewster, err := TangentialMatrix(bowTie(true))
	require.NoError(t, err)
	assert.NotEqual(t, plain, brewster)

	sPlain, err := SagittalMatrix(bowTie(false))
	require.NoError(t, err)
	sBrewster, err := SagittalMatrix(bowTie(true))
	require.NoError(t, err)
	assert.Equal(t, sPlain, sBrewster)

	fPlain, err := SecondaryFocusMatrixSagittal(bowTie(false))
	require.NoError(t, err)
	fBrewster, err := SecondaryFocusMatrixSagittal(bowTie(true))
	require.NoError(t, err)
	assert.Equal(t, fPlain, fBrewster)

	tPlain, err := SecondaryFocusMatrixTangential(bowTie(false))
	require.NoError(t, err)
	tBrewster, err := SecondaryFocusMatrixTangential(bowTie(true))
	require.NoError(t, err)
	assert.NotEqual(t, tPlain, tBrewster)
}

func TestMatricesAtNormalIncidenceCoincide(t *testing.T) {
	p := bowTie(false)
	p.Alpha = 0

	mt, err := TangentialMatrix(p)
	require.NoError(t, err)
	ms, err := SagittalMatrix(p)
	require.NoError(t, err)
	for i := range 2 {
		for j := range 2 {
			assert.InDelta(t, mt[i][j], ms[i][j], 1e-12)
		}
	}
}

func TestSolve(t *testing.T) {
	t.Run("plane cut", func(t *testing.T) {
		r, err := Solve(bowTie(false))
		require.NoError(t, err)

		assert.InEpsilon(t, 6.359509668283927e-05, r.TangentialWaistCrystal, relTol)
		assert.InEpsilon(t, 0.07164844329786485, r.TangentialConfocalParameterCrystal, relTol)
		assert.InEpsilon(t, 0.13957037361477473, r.TangentialFocusingParameter, relTol)
		assert.InEpsilon(t, 6.626398507727869e-05, r.SagittalWaistCrystal, relTol)
		assert.InEpsilon(t, 0.0777883565594648, r.SagittalConfocalParameterCrystal, relTol)
		assert.InEpsilon(t, 0.01/0.0777883565594648, r.SagittalFocusingParameter, relTol)
		assert.InEpsilon(t, 1.04196688948756, r.EllipticityCrystal, relTol)
		assert.InEpsilon(t, 9.230796633206924e-05, r.TangentialWaistCollimated, relTol)
		assert.InEpsilon(t, 0.10063443254094888, r.TangentialConfocalParameterCollimated, relTol)
		assert.InEpsilon(t, 9.788051346432731e-05, r.SagittalWaistCollimated, relTol)
		assert.InEpsilon(t, 0.11315160377914327, r.SagittalConfocalParameterCollimated, relTol)
		assert.InEpsilon(t, 1.0603690813879634, r.EllipticityCollimated, relTol)
	})

	t.Run("brewster cut", func(t *testing.T) {
		r, err := Solve(bowTie(true))
		require.NoError(t, err)

		assert.InEpsilon(t, 9.528142179320331e-05, r.TangentialWaistCrystal, relTol)
		assert.InEpsilon(t, 0.16083329271681499, r.TangentialConfocalParameterCrystal, relTol)
		assert.InEpsilon(t, 0.06217618150495347, r.TangentialFocusingParameter, relTol)
		assert.InEpsilon(t, 6.626398507727869e-05, r.SagittalWaistCrystal, relTol)
		assert.InEpsilon(t, 0.6954554605733799, r.EllipticityCrystal, relTol)
		assert.InEpsilon(t, 9.596207168826061e-05, r.TangentialWaistCollimated, relTol)
		assert.InEpsilon(t, 0.10875956615106236, r.TangentialConfocalParameterCollimated, relTol)
		assert.InEpsilon(t, 1.019991666940027, r.EllipticityCollimated, relTol)
	})
}

func TestSolveAllValuesPhysical(t *testing.T) {
	for _, brewster := range []bool{false, true} {
		p := bowTie(brewster)
		b, err := SBounds(p)
		require.NoError(t, err)

		for _, s := range DefaultSValues(b, 20) {
			r, err := Solve(p.WithS(s))
			require.NoError(t, err)
			for key, v := range r.Map() {
				assert.Greater(t, v, 0.0, "%s at s = %g", key, s)
				assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "%s at s = %g", key, s)
			}
			assert.Less(t, r.EllipticityCrystal, 10.0)
		}
	}
}

func TestSolveNormalIncidenceIsRound(t *testing.T) {
	p := bowTie(false)
	p.Alpha = 0

	r, err := Solve(p)
	require.NoError(t, err)
	assert.InDelta(t, 1, r.EllipticityCrystal, 1e-9)
	assert.InDelta(t, 1, r.EllipticityCollimated, 1e-9)
	assert.InEpsilon(t, 6.499310105146566e-05, r.TangentialWaistCrystal, relTol)
}

func TestSolveUnstable(t *testing.T) {
	p := bowTie(false)
	b, err := SBounds(p)
	require.NoError(t, err)

	for _, s := range []float64{0.03, b.Min - 1e-6, b.Min, b.Max, b.Max + 1e-6, 0.2} {
		_, err := Solve(p.WithS(s))
		require.ErrorIs(t, err, ErrUnstable, "s = %g", s)

		var unstable *UnstableError
		require.True(t, errors.As(err, &unstable))
		assert.Equal(t, s, unstable.S)
		assert.Equal(t, b, unstable.Bounds)
	}

	_, err = Solve(p.WithS(b.Center()))
	assert.NoError(t, err)
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *parameters.Parameters)
	}{
		{"zero focal length", func(p *parameters.Parameters) { p.F = 0 }},
		{"grazing incidence", func(p *parameters.Parameters) { p.Alpha = math.Pi / 2 }},
		{"index below one", func(p *parameters.Parameters) { p.Eta = 0 }},
		{"zero wavelength", func(p *parameters.Parameters) { p.Wavelength = 0 }},
		{"negative crystal length", func(p *parameters.Parameters) { p.L = -0.01 }},
		{"nan distance", func(p *parameters.Parameters) { p.V = math.NaN() }},
		{"infinite s", func(p *parameters.Parameters) { p.S = math.Inf(1) }},
		{"diverging bound", func(p *parameters.Parameters) { p.Alpha, p.V = 0, p.F }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := bowTie(false)
			tt.modify(&p)

			_, err := SBounds(p)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			_, err = Solve(p)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			_, err = SolveRange(context.Background(), p, nil)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}

	_, err := TangentialMatrix(parameters.Parameters{})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = RoundTripMatrix(plane.Plane(7), bowTie(false))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
