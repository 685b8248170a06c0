package placeholder_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"mockgram/internal/adapters/placeholder"
	"mockgram/internal/domain"
)

func TestRenderer_PNG_DecodesToRequestedSize(t *testing.T) {
	// Arrange
	r := placeholder.NewRenderer(2000, time.Minute)
	defer r.Close()

	for _, size := range []image.Point{{800, 600}, {150, 150}, {1, 1}, {3, 40}} {
		// Act
		data, err := r.PNG(size.X, size.Y)

		// Assert
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", size, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%v: not a PNG: %v", size, err)
		}
		if got := img.Bounds().Size(); got != size {
			t.Errorf("size: got %v, want %v", got, size)
		}
	}
}

func TestRenderer_PNG_DrawsBorder(t *testing.T) {
	r := placeholder.NewRenderer(2000, time.Minute)
	defer r.Close()

	data, _ := r.PNG(200, 100)
	img, _ := png.Decode(bytes.NewReader(data))

	if img.At(0, 0) == img.At(100, 50) {
		t.Error("expected corner and center to differ")
	}
}

func TestRenderer_PNG_CachesBySize(t *testing.T) {
	r := placeholder.NewRenderer(2000, time.Minute)
	defer r.Close()

	first, _ := r.PNG(150, 150)
	second, _ := r.PNG(150, 150)

	if &first[0] != &second[0] {
		t.Error("expected the cached image to be reused")
	}
}

func TestRenderer_PNG_InvalidDimensions(t *testing.T) {
	r := placeholder.NewRenderer(500, time.Minute)
	defer r.Close()

	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {501, 10}, {10, 501}} {
		if _, err := r.PNG(size[0], size[1]); err != domain.ErrInvalidDimensions {
			t.Errorf("%v: expected ErrInvalidDimensions, got %v", size, err)
		}
	}
}
