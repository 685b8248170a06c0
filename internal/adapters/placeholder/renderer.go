// Package placeholder renders the gray stand-in images referenced by mock content.
package placeholder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"

	"mockgram/internal/adapters/cache"
	"mockgram/internal/domain"
)

var (
	frameColor = color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	fillColor  = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
)

// Renderer produces PNG placeholders and caches them by size.
type Renderer struct {
	maxSize int
	images  *cache.MemoryCache[[]byte]
}

// NewRenderer creates a renderer accepting sizes from 1 to maxSize pixels per side.
func NewRenderer(maxSize int, ttl time.Duration) *Renderer {
	return &Renderer{
		maxSize: maxSize,
		images:  cache.NewMemoryCache[[]byte](ttl),
	}
}

// PNG returns the encoded placeholder of the given size.
// Returns domain.ErrInvalidDimensions if a side is outside 1..maxSize.
func (r *Renderer) PNG(width, height int) ([]byte, error) {
	if width < 1 || height < 1 || width > r.maxSize || height > r.maxSize {
		return nil, domain.ErrInvalidDimensions
	}

	key := fmt.Sprintf("%dx%d", width, height)
	if data, ok := r.images.Get(key); ok {
		return data, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame(width, height), imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding placeholder %s: %w", key, err)
	}

	data := buf.Bytes()
	r.images.Set(key, data)
	return data, nil
}

// Close stops background cache eviction.
func (r *Renderer) Close() {
	r.images.Close()
}

// frame draws a light panel inside a darker border proportional to the smaller side.
func frame(width, height int) *image.NRGBA {
	img := imaging.New(width, height, frameColor)

	border := min(width, height) / 20
	if border == 0 || width <= 2*border || height <= 2*border {
		return img
	}

	inner := imaging.New(width-2*border, height-2*border, fillColor)
	return imaging.Paste(img, inner, image.Pt(border, border))
}
