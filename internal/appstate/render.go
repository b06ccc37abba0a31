package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/theme"
)

// ProgramTitle names the application in the window title.
const ProgramTitle = "postcardscan"

// statusHeight fits one line of basicfont.Face7x13 with padding.
const statusHeight = 20

var messageFace font.Face = basicfont.Face7x13

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		klog.Errorf("parse font: %v", err)
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		klog.Errorf("message face: %v", err)
		return
	}
	messageFace = face
}

// paintWindow fills dst with the canvas frame, the status bar along the
// bottom edge and msg centred over the canvas when set.
func paintWindow(dst *image.RGBA, frame *image.RGBA, status, msg string, th *theme.Theme) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(th.Background), image.Point{}, draw.Src)
	if frame != nil {
		draw.Draw(dst, frame.Bounds().Add(b.Min), frame, frame.Bounds().Min, draw.Src)
	}

	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(bar.Min.X+6, bar.Min.Y+14)}
	d.DrawString(status)

	if msg != "" {
		canvas := image.Rect(b.Min.X, b.Min.Y, b.Max.X, bar.Min.Y)
		drawMessage(dst, canvas, msg, th)
	}
}

func drawMessage(dst *image.RGBA, area image.Rectangle, msg string, th *theme.Theme) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.MessageText), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	box := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, box, image.NewUniform(th.MessageBackground), image.Point{}, draw.Over)
	drawRect(dst, box, th.MessageText)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func drawRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, u, image.Point{}, draw.Src)
	}
}
