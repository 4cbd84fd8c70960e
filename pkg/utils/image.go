package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// FrameImage converts a packed RGB frame of width x height
// pixels into an image.
func FrameImage(frame []byte, width, height int) (*image.RGBA, error) {
	if len(frame) != width*height*3 {
		return nil, fmt.Errorf("utils: got frame of %d bytes, want %d", len(frame), width*height*3)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: frame[i], G: frame[i+1], B: frame[i+2], A: 0xFF})
		}
	}
	return img, nil
}

// WriteBMP encodes img as a bitmap.
func WriteBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

// SaveImage writes img to path, as a PNG when the path ends in .png
// and as a bitmap otherwise.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if strings.ToLower(filepath.Ext(path)) == ".png" {
		err = png.Encode(f, img)
	} else {
		err = WriteBMP(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
