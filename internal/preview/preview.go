// Package preview draws the extractor view: the lores scan with crosshair and
// corner markers, a magnified crop around the cursor and the thumbnail of the
// last postcard.
package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/example/postcardscan/internal/geometry"
	"github.com/example/postcardscan/internal/rectify"
	"github.com/example/postcardscan/internal/theme"
)

const (
	DefaultMargin    = 10
	DefaultZoomSize  = 200
	DefaultZoomLevel = 50
	DashStep         = 10
	CornerRadius     = 3
	cornerWidth      = 2
)

// Style fixes the layout and colours of the view.
type Style struct {
	Margin   int
	ZoomSize int

	Background         color.RGBA
	CrosshairPrimary   color.RGBA
	CrosshairSecondary color.RGBA
	Corner             color.RGBA
	Edge               color.RGBA
}

// NewStyle takes the colours from t.
func NewStyle(t *theme.Theme, margin, zoomSize int) Style {
	if t == nil {
		t = theme.Default()
	}
	return Style{
		Margin:             margin,
		ZoomSize:           zoomSize,
		Background:         t.Background,
		CrosshairPrimary:   t.CrosshairPrimary,
		CrosshairSecondary: t.CrosshairSecondary,
		Corner:             t.Corner,
		Edge:               t.Edge,
	}
}

// View is everything drawn in one frame. Cursor and Corners are display
// coordinates, which are canvas coordinates.
type View struct {
	Lores     *image.RGBA
	Cursor    geometry.Point
	Corners   []geometry.Point
	Zoom      *image.RGBA
	Thumbnail *image.RGBA
}

// CanvasSize is the size of the composite for a lores image of size lores.
func CanvasSize(lores image.Point, st Style) image.Point {
	return image.Pt(
		lores.X+2*st.Margin+st.ZoomSize,
		max(lores.Y+2*st.Margin, 2*st.ZoomSize+st.Margin),
	)
}

// ScanRect is where the lores scan sits on the canvas.
func ScanRect(lores image.Point, st Style) image.Rectangle {
	return image.Rectangle{Max: lores}.Add(image.Pt(st.Margin, st.Margin))
}

// ZoomRect is where the magnified crop sits on the canvas.
func ZoomRect(lores image.Point, st Style) image.Rectangle {
	x := lores.X + 2*st.Margin
	return image.Rect(x, 0, x+st.ZoomSize, st.ZoomSize)
}

// ThumbnailOrigin is the top left corner of the thumbnail panel.
func ThumbnailOrigin(lores image.Point, st Style) image.Point {
	return image.Pt(lores.X+2*st.Margin, st.ZoomSize+st.Margin)
}

// ZoomExtent is the hires half-width of the magnified crop. Lower zoom levels
// show a smaller area and so magnify more.
func ZoomExtent(level, scale float64) float64 {
	return level / scale
}

// Zoom warps the square of half-width extent around the hires point center
// into a size x size buffer.
func Zoom(r *rectify.Rectifier, hires image.Image, center geometry.Point, extent float64, size int) (*image.RGBA, error) {
	from := [3]geometry.Point{
		{X: center.X - extent, Y: center.Y - extent},
		{X: center.X + extent, Y: center.Y - extent},
		{X: center.X + extent, Y: center.Y + extent},
	}
	s := float64(size)
	to := [3]geometry.Point{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}}
	return r.Warp(hires, from, to, image.Pt(size, size))
}

// Compose renders v onto a new canvas.
func Compose(v View, st Style) *image.RGBA {
	var lores image.Point
	if v.Lores != nil {
		lores = v.Lores.Bounds().Size()
	}
	canvas := image.NewRGBA(image.Rectangle{Max: CanvasSize(lores, st)})
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(st.Background), image.Point{}, draw.Src)

	scanRect := ScanRect(lores, st)
	if v.Lores != nil {
		draw.Draw(canvas, scanRect, v.Lores, v.Lores.Bounds().Min, draw.Src)
	}
	cx, cy := v.Cursor.Round()
	drawCrosshair(canvas, scanRect, image.Pt(cx, cy), DashStep, st.CrosshairPrimary, st.CrosshairSecondary)
	drawCorners(canvas, scanRect, v.Corners, st)

	zoomRect := ZoomRect(lores, st)
	if v.Zoom != nil {
		draw.Draw(canvas, zoomRect, v.Zoom, v.Zoom.Bounds().Min, draw.Src)
	}
	mid := zoomRect.Min.Add(image.Pt(st.ZoomSize/2, st.ZoomSize/2))
	drawCrosshair(canvas, zoomRect, mid, DashStep, st.CrosshairPrimary, st.CrosshairSecondary)

	if v.Thumbnail != nil {
		o := ThumbnailOrigin(lores, st)
		r := v.Thumbnail.Bounds().Sub(v.Thumbnail.Bounds().Min).Add(o)
		draw.Draw(canvas, r, v.Thumbnail, v.Thumbnail.Bounds().Min, draw.Src)
	}
	return canvas
}

func drawCorners(canvas *image.RGBA, region image.Rectangle, corners []geometry.Point, st Style) {
	clip, ok := canvas.SubImage(region).(*image.RGBA)
	if !ok {
		return
	}
	for i, c := range corners {
		x, y := c.Round()
		drawRing(clip, x, y, CornerRadius, cornerWidth, st.Corner)
		if i > 0 {
			px, py := corners[i-1].Round()
			drawLine(clip, px, py, x, y, st.Edge)
		}
	}
	if len(corners) == 4 {
		fx, fy := corners[0].Round()
		lx, ly := corners[3].Round()
		drawLine(clip, lx, ly, fx, fy, st.Edge)
	}
}
