package rectify

import (
	"bytes"
	"image"
	"testing"
)

func TestRotate90(t *testing.T) {
	src := pattern(4, 2)
	got := Rotate90(src)
	if got.Bounds().Size() != image.Pt(2, 4) {
		t.Fatalf("size = %v, want 2x4", got.Bounds().Size())
	}
	// Counter-clockwise: the top right pixel ends up top left.
	if got.RGBAAt(0, 0) != src.RGBAAt(3, 0) {
		t.Errorf("top left = %v, want %v", got.RGBAAt(0, 0), src.RGBAAt(3, 0))
	}
	if got.RGBAAt(1, 3) != src.RGBAAt(0, 1) {
		t.Errorf("bottom right = %v, want %v", got.RGBAAt(1, 3), src.RGBAAt(0, 1))
	}
}

func TestRotate90FourTimesIsIdentity(t *testing.T) {
	src := pattern(7, 3)
	got := Rotate90(Rotate90(Rotate90(Rotate90(src))))
	if !bytes.Equal(got.Pix, src.Pix) || got.Bounds() != src.Bounds() {
		t.Fatalf("four rotations changed the image")
	}
}

func TestFlipsAreInvolutions(t *testing.T) {
	src := pattern(5, 4)
	if got := FlipHorizontal(FlipHorizontal(src)); !bytes.Equal(got.Pix, src.Pix) {
		t.Errorf("double horizontal flip changed the image")
	}
	if got := FlipVertical(FlipVertical(src)); !bytes.Equal(got.Pix, src.Pix) {
		t.Errorf("double vertical flip changed the image")
	}
	if got := FlipHorizontal(src); got.RGBAAt(0, 0) != src.RGBAAt(4, 0) {
		t.Errorf("horizontal flip did not mirror left to right")
	}
	if got := FlipVertical(src); got.RGBAAt(0, 0) != src.RGBAAt(0, 3) {
		t.Errorf("vertical flip did not mirror top to bottom")
	}
}

func TestThumbnailFits(t *testing.T) {
	tests := []struct {
		w, h int
		want image.Point
	}{
		{400, 200, image.Pt(200, 100)},
		{100, 300, image.Pt(67, 200)},
		{50, 50, image.Pt(200, 200)},
	}
	for _, tt := range tests {
		got := Thumbnail(pattern(tt.w, tt.h), 200)
		if got.Bounds().Size() != tt.want {
			t.Errorf("Thumbnail(%dx%d) = %v, want %v", tt.w, tt.h, got.Bounds().Size(), tt.want)
		}
	}
}
