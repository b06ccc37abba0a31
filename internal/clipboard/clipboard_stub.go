//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

// Package clipboard publishes postcards to the system clipboard as PNG.
package clipboard

import (
	"errors"
	"image"
)

// WriteImage is unsupported on this platform.
func WriteImage(image.Image) error {
	return errors.New("clipboard image operations are not supported on this platform")
}
