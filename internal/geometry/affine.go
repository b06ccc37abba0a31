package geometry

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
)

// snap is the resolution coefficients are rounded to after solving. It
// removes solver noise so that exact inputs yield exact pixel centres.
const snap = 1e9

// SolveAffine finds the affine transform mapping the src triangle onto dst.
// The result is in the row-major f64.Aff3 layout consumed by
// golang.org/x/image/draw:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
func SolveAffine(src, dst [3]Point) (f64.Aff3, error) {
	if Collinear(src[0], src[1], src[2]) {
		return f64.Aff3{}, fmt.Errorf("source triangle %v %v %v: %w", src[0], src[1], src[2], ErrDegenerateGeometry)
	}
	a := mat.NewDense(6, 6, nil)
	b := mat.NewVecDense(6, nil)
	for i := 0; i < 3; i++ {
		a.SetRow(2*i, []float64{src[i].X, src[i].Y, 1, 0, 0, 0})
		a.SetRow(2*i+1, []float64{0, 0, 0, src[i].X, src[i].Y, 1})
		b.SetVec(2*i, dst[i].X)
		b.SetVec(2*i+1, dst[i].Y)
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return f64.Aff3{}, fmt.Errorf("solve affine: %v: %w", err, ErrDegenerateGeometry)
	}
	var m f64.Aff3
	for i := range m {
		m[i] = math.Round(x.AtVec(i)*snap) / snap
	}
	return m, nil
}

// Apply maps p through the affine transform m.
func Apply(m f64.Aff3, p Point) Point {
	return Point{
		m[0]*p.X + m[1]*p.Y + m[2],
		m[3]*p.X + m[4]*p.Y + m[5],
	}
}
