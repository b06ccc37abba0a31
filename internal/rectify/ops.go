package rectify

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// Rotate90 rotates img a quarter turn counter-clockwise: a transpose followed
// by a top-bottom flip.
func Rotate90(img image.Image) *image.RGBA {
	src := clone.AsShallowRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			si := x*src.Stride + (w-1-y)*4
			di := y*dst.Stride + x*4
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

// FlipHorizontal mirrors img left to right.
func FlipHorizontal(img image.Image) *image.RGBA {
	return transform.FlipH(img)
}

// FlipVertical mirrors img top to bottom.
func FlipVertical(img image.Image) *image.RGBA {
	return transform.FlipV(img)
}

// Thumbnail scales img to fit a size x size box keeping its aspect ratio.
func Thumbnail(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	if b.Empty() || size <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	f := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*f)))
	h := max(1, int(math.Round(float64(b.Dy())*f)))
	return transform.Resize(img, w, h, transform.Linear)
}
