//go:build linux || freebsd || openbsd || netbsd || dragonfly

// Package clipboard publishes postcards to the system clipboard as PNG.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"os"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = initBackend()
	})
	return initErr
}

// WriteImage encodes img as PNG and offers it on the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return writePNG(data)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
