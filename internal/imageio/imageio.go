// Package imageio reads scans and writes postcards.
package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is used when a postcard path asks for JPEG output.
const JPEGQuality = 95

var decodable = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether path has an extension the decoder understands.
func IsImage(path string) bool {
	return decodable[strings.ToLower(filepath.Ext(path))]
}

// Files is the filesystem codec.
type Files struct{}

// Decode opens and decodes the image at path.
func (Files) Decode(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img to path, choosing the format from the extension. PNG is
// used for anything that is not JPEG or BMP.
func (Files) Encode(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := imgio.Save(path, img, encoderFor(path)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string) imgio.Encoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality)
	case ".bmp":
		return imgio.BMPEncoder()
	default:
		return imgio.PNGEncoder()
	}
}
