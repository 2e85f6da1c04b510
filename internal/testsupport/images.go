// Package testsupport provides fixtures shared by pngpress tests.
package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// WritePNG renders a flat opaque PNG of the given dimensions at path.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 60, B: 30, A: 255})
		}
	}
	savePNG(t, path, img)
}

// WriteAlphaPNG renders a PNG with a transparent left half and an opaque
// right half, exercising alpha flattening.
func WriteAlphaPNG(t testing.TB, path string, width, height int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			alpha := uint8(255)
			if x < width/2 {
				alpha = 0
			}
			img.Set(x, y, color.NRGBA{R: 10, G: 120, B: 220, A: alpha})
		}
	}
	savePNG(t, path, img)
}

// WriteNoisyPNG renders a PNG of deterministic random pixels. Noise resists
// JPEG compression, which keeps output sizes large enough to force the
// quality search downward.
func WriteNoisyPNG(t testing.TB, path string, width, height int) {
	t.Helper()

	rng := rand.New(rand.NewSource(1))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	savePNG(t, path, img)
}

// WriteCorruptPNG writes a file with a .png name that no decoder accepts.
func WriteCorruptPNG(t testing.TB, path string) {
	t.Helper()

	ensureDir(t, path)
	if err := os.WriteFile(path, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func savePNG(t testing.TB, path string, img image.Image) {
	t.Helper()

	ensureDir(t, path)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func ensureDir(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
}
