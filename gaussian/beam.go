// Package gaussian implements paraxial Gaussian beam algebra on the complex
// beam parameter q and real 2x2 ABCD transfer matrices.
//
// The package knows nothing about resonator geometry. A refractive index eta
// enters only through the reduced beam parameter q/eta.
package gaussian

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegenerate is returned when the ABCD denominator vanishes.
var ErrDegenerate = errors.New("gaussian: degenerate transfer matrix")

// Matrix is a real ABCD transfer matrix [[A, B], [C, D]].
type Matrix [2][2]float64

func NewMatrix(a, b, c, d float64) Matrix {
	return Matrix{{a, b}, {c, d}}
}

func (m Matrix) A() float64 { return m[0][0] }
func (m Matrix) B() float64 { return m[0][1] }
func (m Matrix) C() float64 { return m[1][0] }
func (m Matrix) D() float64 { return m[1][1] }

// Det returns AD - BC. It is 1 for a lossless system between equal indices.
func (m Matrix) Det() float64 {
	return m.A()*m.D() - m.B()*m.C()
}

// Mul returns the product m·n, i.e. n is traversed first.
func (m Matrix) Mul(n Matrix) Matrix {
	var r Matrix
	for i := range 2 {
		for j := range 2 {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

// IsFinite reports whether every entry is neither NaN nor infinite.
func (m Matrix) IsFinite() bool {
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Propagate applies the ABCD law
//
//	q' = etaFinal·(A·q/etaInitial + B)/(C·q/etaInitial + D)
//
// It fails with ErrDegenerate only when the denominator is exactly zero.
func Propagate(q complex128, m Matrix, etaFinal, etaInitial float64) (complex128, error) {
	reduced := q / complex(etaInitial, 0)
	den := complex(m.C(), 0)*reduced + complex(m.D(), 0)
	if den == 0 {
		return 0, ErrDegenerate
	}
	return complex(etaFinal, 0) * (complex(m.A(), 0)*reduced + complex(m.B(), 0)) / den, nil
}

// Curvature returns the wavefront radius of curvature 1/Re(1/q), or +Inf for
// a flat wavefront.
func Curvature(q complex128) float64 {
	re := real(1 / q)
	if re == 0 {
		return math.Inf(1)
	}
	return 1 / re
}

// Waist returns the beam radius sqrt(-wavelength/(π·eta·Im(1/q))). A beam
// parameter with Im(1/q) >= 0 does not describe a real beam and yields 0.
func Waist(q complex128, eta, wavelength float64) float64 {
	inner := -wavelength / (math.Pi * eta * imag(1/q))
	if !(inner >= 0) || math.IsInf(inner, 1) {
		return 0
	}
	return math.Sqrt(inner)
}

// ConfocalParameter returns b = -2/Im(1/q), positive when Im(q) > 0.
func ConfocalParameter(q complex128) float64 {
	return -2 / imag(1/q)
}

// StabilityFactor returns the half trace m = (A+D)/2.
func StabilityFactor(m Matrix) float64 {
	return (m.A() + m.D()) / 2
}

// IsStable reports |m| < 1.
func IsStable(m Matrix) bool {
	return math.Abs(StabilityFactor(m)) < 1
}

// Eigenmode returns the self-consistent beam parameter of the round trip m
// referenced to a medium of index eta:
//
//	q = 2·B·eta / (D - A ± sqrt((D+A-2)(D+A+2)))
//
// The square root is the principal branch. Both signs are fixed points of the
// round trip; the one with Im(q) >= 0 is returned, which is the physical beam
// (Im(1/q) < 0) whenever the matrix is stable. For an unstable matrix the
// result is real.
func Eigenmode(m Matrix, eta float64) (complex128, error) {
	trace := m.A() + m.D()
	root := cmplx.Sqrt(complex((trace-2)*(trace+2), 0))
	num := complex(2*m.B()*eta, 0)
	diff := complex(m.D()-m.A(), 0)

	den := diff + root
	if den == 0 {
		return 0, ErrDegenerate
	}
	q := num / den
	if imag(q) < 0 {
		if den = diff - root; den == 0 {
			return 0, ErrDegenerate
		}
		q = num / den
	}
	return q, nil
}
