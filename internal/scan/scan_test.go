package scan

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 10, 20, 30, 255
	}
	return img
}

func TestNewLandscape(t *testing.T) {
	s := New("a.png", solid(4000, 3000), image.Pt(800, 600))
	if s.Rotated {
		t.Fatalf("landscape scan should not be rotated")
	}
	if math.Abs(s.Scale-0.2) > 1e-12 {
		t.Fatalf("scale = %v, want 0.2", s.Scale)
	}
	if s.Lores.Bounds().Size() != image.Pt(800, 600) {
		t.Fatalf("lores size = %v", s.Lores.Bounds().Size())
	}
	if c := s.Lores.RGBAAt(400, 300); c != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("lores pixel = %v", c)
	}
}

func TestNewPortraitIsRotated(t *testing.T) {
	img := solid(300, 500)
	img.SetRGBA(299, 0, color.RGBA{255, 0, 0, 255})
	s := New("p.png", img, image.Pt(800, 600))
	if !s.Rotated {
		t.Fatalf("portrait scan should be rotated")
	}
	if s.Hires.Bounds().Size() != image.Pt(500, 300) {
		t.Fatalf("hires size = %v, want 500x300", s.Hires.Bounds().Size())
	}
	if c := s.Hires.RGBAAt(0, 0); c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("top right pixel should move to top left, got %v", c)
	}
	if s.Scale != 1.6 {
		t.Fatalf("scale = %v, want 1.6", s.Scale)
	}
}

func TestMapper(t *testing.T) {
	s := New("a.png", solid(1600, 1200), image.Pt(800, 600))
	m := s.Mapper(10)
	if m.Margin != 10 || m.Scale != 0.5 {
		t.Fatalf("mapper = %+v", m)
	}
}
