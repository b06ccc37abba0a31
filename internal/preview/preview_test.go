package preview

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	xdraw "golang.org/x/image/draw"

	"github.com/example/postcardscan/internal/geometry"
	"github.com/example/postcardscan/internal/rectify"
	"github.com/example/postcardscan/internal/theme"
)

func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestCanvasSize(t *testing.T) {
	st := NewStyle(nil, DefaultMargin, DefaultZoomSize)
	if got := CanvasSize(image.Pt(800, 600), st); got != image.Pt(1020, 620) {
		t.Errorf("CanvasSize(800x600) = %v", got)
	}
	if got := CanvasSize(image.Pt(800, 300), st); got != image.Pt(1020, 410) {
		t.Errorf("CanvasSize(800x300) = %v", got)
	}
}

func TestComposeLayout(t *testing.T) {
	st := NewStyle(theme.Default(), 10, 200)
	green := color.RGBA{0, 200, 0, 255}
	blue := color.RGBA{0, 0, 200, 255}
	red := color.RGBA{200, 0, 0, 255}
	v := View{
		Lores:     fill(100, 80, green),
		Cursor:    geometry.Pt(30, 40),
		Corners:   []geometry.Point{{X: 50, Y: 50}},
		Zoom:      fill(200, 200, blue),
		Thumbnail: fill(20, 10, red),
	}
	img := Compose(v, st)

	if img.Bounds().Size() != image.Pt(320, 410) {
		t.Fatalf("canvas size = %v", img.Bounds().Size())
	}
	checks := []struct {
		name string
		at   image.Point
		want color.RGBA
	}{
		{"margin", image.Pt(5, 5), st.Background},
		{"scan", image.Pt(60, 70), green},
		{"crosshair start", image.Pt(10, 40), st.CrosshairPrimary},
		{"crosshair second dash", image.Pt(25, 40), st.CrosshairSecondary},
		{"crosshair third dash", image.Pt(35, 40), st.CrosshairPrimary},
		{"crosshair vertical", image.Pt(30, 10), st.CrosshairPrimary},
		{"corner ring", image.Pt(53, 50), st.Corner},
		{"zoom", image.Pt(125, 5), blue},
		{"zoom crosshair", image.Pt(120, 100), st.CrosshairPrimary},
		{"thumbnail", image.Pt(125, 215), red},
		{"below thumbnail", image.Pt(125, 300), st.Background},
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.at.X, c.at.Y); got != c.want {
			t.Errorf("%s at %v = %v, want %v", c.name, c.at, got, c.want)
		}
	}
}

func TestComposeCursorOutsideScan(t *testing.T) {
	st := NewStyle(nil, 10, 200)
	v := View{Lores: fill(100, 80, color.RGBA{1, 2, 3, 255}), Cursor: geometry.Pt(250, 300)}
	img := Compose(v, st)
	if got := img.RGBAAt(60, 300); got != st.Background {
		t.Fatalf("crosshair leaked outside the scan: %v", got)
	}
}

func TestComposeEdges(t *testing.T) {
	st := NewStyle(nil, 10, 200)
	v := View{
		Lores:   fill(100, 80, color.RGBA{1, 2, 3, 255}),
		Cursor:  geometry.Pt(0, 0),
		Corners: []geometry.Point{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 60}, {X: 20, Y: 60}},
	}
	img := Compose(v, st)
	for _, p := range []image.Point{{50, 20}, {80, 40}, {50, 60}, {20, 40}} {
		if got := img.RGBAAt(p.X, p.Y); got != st.Edge {
			t.Errorf("edge pixel %v = %v, want %v", p, got, st.Edge)
		}
	}
}

func TestZoom(t *testing.T) {
	hires := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			hires.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	r := rectify.New(rectify.WithInterpolator(xdraw.NearestNeighbor))

	z, err := Zoom(r, hires, geometry.Pt(50, 50), 10, 20)
	if err != nil {
		t.Fatalf("Zoom: %v", err)
	}
	if z.Bounds().Size() != image.Pt(20, 20) {
		t.Fatalf("zoom size = %v", z.Bounds().Size())
	}
	if z.RGBAAt(0, 0) != hires.RGBAAt(40, 40) {
		t.Errorf("unmagnified zoom origin = %v, want %v", z.RGBAAt(0, 0), hires.RGBAAt(40, 40))
	}

	z, err = Zoom(r, hires, geometry.Pt(50, 50), 5, 20)
	if err != nil {
		t.Fatalf("Zoom: %v", err)
	}
	if z.RGBAAt(3, 3) != hires.RGBAAt(46, 46) {
		t.Errorf("2x zoom pixel = %v, want %v", z.RGBAAt(3, 3), hires.RGBAAt(46, 46))
	}
}

func TestZoomExtent(t *testing.T) {
	if got := ZoomExtent(50, 0.25); got != 200 {
		t.Fatalf("ZoomExtent = %v, want 200", got)
	}
}

func TestDrawRing(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	drawRing(img, 10, 10, 3, 2, red)
	for _, p := range []image.Point{{13, 10}, {12, 10}, {10, 7}, {12, 12}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("ring pixel %v not set", p)
		}
	}
	for _, p := range []image.Point{{10, 10}, {11, 10}, {14, 10}} {
		if img.RGBAAt(p.X, p.Y) == red {
			t.Errorf("pixel %v should stay clear", p)
		}
	}
	drawRing(img, 0, 0, 3, 2, red)
	if img.RGBAAt(3, 0) != red {
		t.Errorf("ring clipped at the corner lost its visible part")
	}
}

func TestDrawLine(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	drawLine(img, 0, 0, 6, 3, red)
	for _, p := range []image.Point{{0, 0}, {3, 2}, {6, 3}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("line pixel %v not set", p)
		}
	}
	drawLine(img, 8, 8, 8, 8, red)
	if img.RGBAAt(8, 8) != red {
		t.Errorf("single point line not drawn")
	}
	drawLine(img, 5, 5, 15, 5, red)
	if img.RGBAAt(9, 5) != red {
		t.Errorf("line clipped at the edge lost its visible part")
	}
}
