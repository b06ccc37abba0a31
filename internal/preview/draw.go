package preview

import (
	"image"
	"image/color"
	"math"
)

// drawLine steps from (x0,y0) to (x1,y1) one pixel along the longer axis at
// a time. Points outside img are dropped by Set.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	if n == 0 {
		img.Set(x0, y0, col)
		return
	}
	for i := 0; i <= n; i++ {
		x := x0 + int(math.Round(float64(i*dx)/float64(n)))
		y := y0 + int(math.Round(float64(i*dy)/float64(n)))
		img.Set(x, y, col)
	}
}

// drawRing marks the pixels whose centre lies within half a pixel of a circle
// of radius r-width+1 through r around (cx,cy).
func drawRing(img *image.RGBA, cx, cy, r, width int, col color.Color) {
	inner := float64(r-width+1) - 0.5
	outer := float64(r) + 0.5
	for y := cy - r - 1; y <= cy+r+1; y++ {
		for x := cx - r - 1; x <= cx+r+1; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if d >= inner && d <= outer {
				img.Set(x, y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawBicolorLine draws an axis aligned line from (x0,y0) to (x1,y1) in
// dashes of length step, alternating c1 and c2 and starting with c1.
func drawBicolorLine(img *image.RGBA, x0, y0, x1, y1, step int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	dir := 1
	if length < 0 {
		length, dir = -length, -1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/step)%2 == 1 {
			col = c2
		}
		if horiz {
			img.Set(x0+dir*i, y0, col)
		} else {
			img.Set(x0, y0+dir*i, col)
		}
	}
}

// drawCrosshair spans region with a horizontal and a vertical bicolour line
// through at. Dashes are counted from the region's top left corner.
func drawCrosshair(img *image.RGBA, region image.Rectangle, at image.Point, step int, c1, c2 color.Color) {
	if region.Empty() {
		return
	}
	clip, ok := img.SubImage(region).(*image.RGBA)
	if !ok {
		return
	}
	if at.Y >= region.Min.Y && at.Y < region.Max.Y {
		drawBicolorLine(clip, region.Min.X, at.Y, region.Max.X-1, at.Y, step, c1, c2)
	}
	if at.X >= region.Min.X && at.X < region.Max.X {
		drawBicolorLine(clip, at.X, region.Min.Y, at.X, region.Max.Y-1, step, c1, c2)
	}
}
