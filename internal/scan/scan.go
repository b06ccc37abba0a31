// Package scan prepares a decoded scan for display: portrait scans are turned
// to landscape and a lores copy is scaled to fit the display budget.
package scan

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/draw"
	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/geometry"
	"github.com/example/postcardscan/internal/rectify"
)

// Scan is one source image in both resolutions.
type Scan struct {
	Path  string
	Hires *image.RGBA
	Lores *image.RGBA
	// Scale is lores size divided by hires size, uniform on both axes.
	Scale float64
	// Rotated is set when the source was taller than wide and turned.
	Rotated bool
}

// New builds a Scan from a decoded image. budget is the largest lores size.
func New(path string, img image.Image, budget image.Point) *Scan {
	s := &Scan{Path: path, Hires: clone.AsRGBA(img)}
	if b := s.Hires.Bounds(); b.Dy() > b.Dx() {
		s.Hires = rectify.Rotate90(s.Hires)
		s.Rotated = true
		klog.V(1).Infof("%s: portrait scan %dx%d turned to landscape", path, b.Dx(), b.Dy())
	}
	b := s.Hires.Bounds()
	s.Scale = geometry.FitScale(budget.X, budget.Y, b.Dx(), b.Dy())
	w := max(1, int(math.Round(float64(b.Dx())*s.Scale)))
	h := max(1, int(math.Round(float64(b.Dy())*s.Scale)))
	s.Lores = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(s.Lores, s.Lores.Bounds(), s.Hires, b, draw.Src, nil)
	klog.V(1).Infof("%s: hires %dx%d, lores %dx%d, scale %.4f", path, b.Dx(), b.Dy(), w, h, s.Scale)
	return s
}

// Mapper returns the display/hires mapping for this scan drawn at margin.
func (s *Scan) Mapper(margin int) geometry.Mapper {
	return geometry.Mapper{Scale: s.Scale, Margin: float64(margin)}
}
