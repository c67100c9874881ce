// internal/app/system/imaging/imaging.go

// Package imaging normalizes uploaded property photos before they go
// to the object store: fixed 1280x720 frame, JPEG at quality 80.
package imaging

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	frameWidth  = 1280
	frameHeight = 720
	jpegQuality = 80
)

// Compress decodes an uploaded image, resizes it into the standard
// frame, and re-encodes it as JPEG. The result is what gets uploaded;
// originals are never stored.
func Compress(r io.Reader) (*bytes.Buffer, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	resized := imaging.Resize(src, frameWidth, frameHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return &buf, nil
}
