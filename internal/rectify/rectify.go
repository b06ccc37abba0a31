// Package rectify turns three hires corners of a rotated or skewed postcard
// into an upright buffer and provides the follow-up orientation fixes.
package rectify

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"golang.org/x/image/draw"
	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/geometry"
)

// DefaultInterpolation is the sampling used when none is configured.
const DefaultInterpolation = "approx-bilinear"

var interpolators = map[string]draw.Interpolator{
	"nearest":         draw.NearestNeighbor,
	"approx-bilinear": draw.ApproxBiLinear,
	"bilinear":        draw.BiLinear,
	"catmull-rom":     draw.CatmullRom,
}

// Interpolations lists the accepted interpolation names.
func Interpolations() []string {
	names := make([]string, 0, len(interpolators))
	for n := range interpolators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// InterpolatorByName resolves an interpolation name. An empty name selects
// DefaultInterpolation.
func InterpolatorByName(name string) (draw.Interpolator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultInterpolation
	}
	if in, ok := interpolators[name]; ok {
		return in, nil
	}
	return nil, fmt.Errorf("unknown interpolation %q (want one of %s)", name, strings.Join(Interpolations(), ", "))
}

// Rectifier warps postcards out of a scan.
type Rectifier struct {
	Interpolator draw.Interpolator
	Background   color.Color
}

// Option configures a Rectifier.
type Option func(*Rectifier)

// WithInterpolator selects the sampling used for the warp.
func WithInterpolator(in draw.Interpolator) Option {
	return func(r *Rectifier) { r.Interpolator = in }
}

// WithBackground sets the colour of output pixels that fall outside the scan.
func WithBackground(c color.Color) Option {
	return func(r *Rectifier) { r.Background = c }
}

// New creates a Rectifier with approximate bilinear sampling on black.
func New(opts ...Option) *Rectifier {
	r := &Rectifier{
		Interpolator: draw.ApproxBiLinear,
		Background:   color.Black,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Rectify extracts the rectangle spanned by hires corners p0, p1, p2 where
// p0->p1 is the top edge and p1->p2 the right edge. The result is
// round(|p0p1|) x round(|p1p2|) pixels with p0 at the origin.
func (r *Rectifier) Rectify(src image.Image, p0, p1, p2 geometry.Point) (*image.RGBA, error) {
	w := p0.Dist(p1)
	h := p1.Dist(p2)
	size := image.Pt(int(math.Round(w)), int(math.Round(h)))
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("postcard of %.2fx%.2f px: %w", w, h, geometry.ErrDegenerateGeometry)
	}
	dst := [3]geometry.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}}
	out, err := r.Warp(src, [3]geometry.Point{p0, p1, p2}, dst, size)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("rectified %v %v %v into %dx%d", p0, p1, p2, size.X, size.Y)
	return out, nil
}

// Warp maps the from triangle of src onto the to triangle of a new size
// buffer. Pixels that sample outside src keep the background colour.
func (r *Rectifier) Warp(src image.Image, from, to [3]geometry.Point, size image.Point) (*image.RGBA, error) {
	m, err := geometry.SolveAffine(from, to)
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(out, out.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	r.Interpolator.Transform(out, m, src, src.Bounds(), draw.Src, nil)
	return out, nil
}

// Rectify runs a default Rectifier.
func Rectify(src image.Image, p0, p1, p2 geometry.Point) (*image.RGBA, error) {
	return New().Rectify(src, p0, p1, p2)
}
