package rectify

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"

	"github.com/example/postcardscan/internal/geometry"
)

// pattern returns an image where every pixel encodes its own position.
func pattern(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	return img
}

func sameRegion(t *testing.T, got, src *image.RGBA, off image.Point) {
	t.Helper()
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g, w := got.RGBAAt(x, y), src.RGBAAt(x+off.X, y+off.Y); g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestRectifyAxisAligned(t *testing.T) {
	src := pattern(160, 120)
	for _, name := range []string{"nearest", "approx-bilinear"} {
		in, err := InterpolatorByName(name)
		if err != nil {
			t.Fatalf("InterpolatorByName(%q): %v", name, err)
		}
		got, err := New(WithInterpolator(in)).Rectify(src, geometry.Pt(0, 0), geometry.Pt(100, 0), geometry.Pt(100, 50))
		if err != nil {
			t.Fatalf("%s: Rectify: %v", name, err)
		}
		if got.Bounds().Dx() != 100 || got.Bounds().Dy() != 50 {
			t.Fatalf("%s: size = %v, want 100x50", name, got.Bounds().Size())
		}
		sameRegion(t, got, src, image.Point{})
	}
}

func TestRectifyOffset(t *testing.T) {
	src := pattern(200, 200)
	got, err := New(WithInterpolator(draw.NearestNeighbor)).Rectify(src, geometry.Pt(20, 30), geometry.Pt(80, 30), geometry.Pt(80, 70))
	if err != nil {
		t.Fatalf("Rectify: %v", err)
	}
	if got.Bounds().Size() != image.Pt(60, 40) {
		t.Fatalf("size = %v, want 60x40", got.Bounds().Size())
	}
	sameRegion(t, got, src, image.Pt(20, 30))
}

func TestRectifyRotatedDimensions(t *testing.T) {
	src := pattern(400, 400)
	// 3-4-5 triangle edges: 50 wide, 100 tall.
	p0 := geometry.Pt(100, 100)
	p1 := geometry.Pt(130, 140)
	p2 := geometry.Pt(50, 200)
	got, err := Rectify(src, p0, p1, p2)
	if err != nil {
		t.Fatalf("Rectify: %v", err)
	}
	if got.Bounds().Size() != image.Pt(50, 100) {
		t.Fatalf("size = %v, want 50x100", got.Bounds().Size())
	}
}

func TestRectifyOutsideScanIsBackground(t *testing.T) {
	src := pattern(50, 50)
	got, err := New(WithInterpolator(draw.NearestNeighbor)).Rectify(src, geometry.Pt(40, 0), geometry.Pt(60, 0), geometry.Pt(60, 10))
	if err != nil {
		t.Fatalf("Rectify: %v", err)
	}
	if c := got.RGBAAt(15, 5); c != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("pixel outside scan = %v, want opaque black", c)
	}
	if c := got.RGBAAt(5, 5); c != src.RGBAAt(45, 5) {
		t.Fatalf("pixel inside scan = %v, want %v", c, src.RGBAAt(45, 5))
	}
}

func TestRectifyDegenerate(t *testing.T) {
	src := pattern(10, 10)
	_, err := Rectify(src, geometry.Pt(1, 1), geometry.Pt(1.2, 1), geometry.Pt(1.2, 5))
	if !errors.Is(err, geometry.ErrDegenerateGeometry) {
		t.Fatalf("expected ErrDegenerateGeometry, got %v", err)
	}
}

func TestInterpolatorByName(t *testing.T) {
	if in, err := InterpolatorByName(""); err != nil || in != draw.ApproxBiLinear {
		t.Fatalf("default interpolator = %v, %v", in, err)
	}
	if _, err := InterpolatorByName("sinc"); err == nil {
		t.Fatalf("expected error for unknown interpolation")
	}
}
