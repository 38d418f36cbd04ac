package conversion

import (
	"fmt"
	"image"
	"image/color"

	"image-enhancer/internal/opencv/safe"
)

// MatToImage converts an 8-bit gray, BGR or BGRA Mat to a standard Go image.
func MatToImage(src *safe.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	rows := src.Rows()
	cols := src.Cols()
	channels := src.Channels()

	m := src.GetMat()
	data := m.ToBytes()
	if len(data) < rows*cols*channels {
		return nil, fmt.Errorf("Mat data is not continuous: got %d bytes for %dx%dx%d", len(data), cols, rows, channels)
	}

	switch channels {
	case 1:
		return bytesToGray(data, rows, cols), nil
	case 3, 4:
		return bytesToRGBA(data, rows, cols, channels), nil
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
}

// bytesToGray copies single-channel rows into an image.Gray
func bytesToGray(data []byte, rows, cols int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+cols], data[y*cols:(y+1)*cols])
	}
	return img
}

// bytesToRGBA swaps OpenCV's BGR(A) order into RGBA
func bytesToRGBA(data []byte, rows, cols, channels int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := (y*cols + x) * channels
			alpha := uint8(255)
			if channels == 4 {
				alpha = data[i+3]
			}
			img.SetRGBA(x, y, color.RGBA{R: data[i+2], G: data[i+1], B: data[i], A: alpha})
		}
	}

	return img
}
