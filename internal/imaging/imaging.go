// Package imaging normalizes uploaded cover images: oversized images
// are downscaled and re-encoded as JPEG before they reach blob storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Result holds a processed image and its final dimensions.
type Result struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// Processor downscales images wider than MaxWidth. Images at or under
// the limit pass through untouched, as do formats the decoder does not
// recognize (SVG in particular has no raster representation to scale).
type Processor struct {
	maxWidth int
	quality  int
}

func NewProcessor(maxWidth, quality int) *Processor {
	return &Processor{maxWidth: maxWidth, quality: quality}
}

// Process returns the image to store. Downscaling keeps the aspect
// ratio and never upscales.
func (p *Processor) Process(data []byte, mimeType string) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Not a raster format we can decode, store it as-is.
		return &Result{Data: data, MimeType: mimeType}, nil
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= p.maxWidth {
		return &Result{Data: data, MimeType: mimeType, Width: width, Height: height}, nil
	}

	newWidth := p.maxWidth
	newHeight := height * p.maxWidth / width
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode JPEG: %w", err)
	}

	return &Result{
		Data:     buf.Bytes(),
		MimeType: "image/jpeg",
		Width:    newWidth,
		Height:   newHeight,
	}, nil
}
