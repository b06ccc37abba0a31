// Package geometry holds the coordinate model shared by the extractor: the
// display/hires mapping, the perpendicular corner constraint, parallelogram
// closure and the three point affine solve used for warping.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateGeometry reports corners that cannot span a rectangle, such as
// coincident points or a zero sized output.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

const epsilon = 1e-9

// Point is a continuous 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Round returns p rounded to the nearest integer pixel.
func (p Point) Round() (x, y int) { return int(math.Round(p.X)), int(math.Round(p.Y)) }

// Near reports whether q lies within tol of p on both axes.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

func (p Point) String() string { return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y) }

// Mapper converts between display space (lores pixels offset by the margin)
// and hires scan space.
type Mapper struct {
	Scale  float64
	Margin float64
}

// ToHires maps a display point to hires coordinates.
func (m Mapper) ToHires(p Point) Point {
	return Point{(p.X - m.Margin) / m.Scale, (p.Y - m.Margin) / m.Scale}
}

// ToDisplay maps a hires point to display coordinates.
func (m Mapper) ToDisplay(p Point) Point {
	return Point{p.X*m.Scale + m.Margin, p.Y*m.Scale + m.Margin}
}

// FitScale returns the uniform factor that fits a w x h image inside the
// budget, mirroring the aspect-preserving zoom fit of an image viewer.
func FitScale(budgetW, budgetH, w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	zx := float64(budgetW) / float64(w)
	zy := float64(budgetH) / float64(h)
	if zx < zy {
		return zx
	}
	return zy
}

// PerpendicularFoot projects p onto the line through b that is perpendicular
// to the segment a->b. The result is where the third corner of a rectangle
// with first edge a->b must lie.
func PerpendicularFoot(a, b, p Point) (Point, error) {
	dir := b.Sub(a)
	n := dir.Dot(dir)
	if n < epsilon {
		return Point{}, fmt.Errorf("perpendicular through %v: %w", b, ErrDegenerateGeometry)
	}
	perp := Point{-dir.Y, dir.X}
	k := p.Sub(b).Dot(perp) / n
	return b.Add(perp.Mul(k)), nil
}

// ParallelogramCorner returns the point completing the parallelogram a, b, c.
func ParallelogramCorner(a, b, c Point) Point {
	return a.Add(c).Sub(b)
}

// Collinear reports whether the three points span no area.
func Collinear(a, b, c Point) bool {
	area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return math.Abs(area) < epsilon
}
